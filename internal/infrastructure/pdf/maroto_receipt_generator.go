// Package pdf implementa a geração do comprovante de pagamento em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Fazenda + COMPROVANTE DE PAGAMENTO + Data           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRABALHADOR: Nome + registro FIXO                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Data | Tipo | Item | Qtd | Valor                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGO                                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: id do pagamento + QR de conferência                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	apppayment "github.com/fazenda-rp/ledger-api/internal/application/payment"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ apppayment.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa payment.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	farmName string
}

// NewMarotoReceiptGenerator constrói o gerador com o nome da fazenda no
// cabeçalho.
func NewMarotoReceiptGenerator(farmName string) *MarotoReceiptGenerator {
	if farmName == "" {
		farmName = "Fazenda"
	}
	return &MarotoReceiptGenerator{farmName: farmName}
}

// GenerateReceiptPDF gera o comprovante e devolve seus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	p *entity.Payment,
	w *entity.Worker,
	lines []*entity.Transaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de Pagamento", true).
		WithAuthor(g.farmName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(workerRow(p, w))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(p))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome da fazenda (esq) e título + data (dir).
func (g *MarotoReceiptGenerator) headerRow(p *entity.Payment) core.Row {
	data := p.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.farmName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Serviço: "+p.ServiceType, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(p.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// workerRow: dados do trabalhador pago.
func workerRow(p *entity.Payment, w *entity.Worker) core.Row {
	nome := "—"
	fixo := "—"
	if w != nil {
		nome = w.DisplayName
		if w.FixoID != "" {
			fixo = w.FixoID
		}
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TRABALHADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nome, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("FIXO: %s   |   Transações pagas: %d",
				fixo, len(p.TransactionIDs),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de transações cobertas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Item / serviço", 4, align.Left),
		h("Qtd.", 1, align.Center),
		h("Valor", 3, align.Right),
	)
}

// tableLineRows: uma linha por transação coberta.
func tableLineRows(lines []*entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, t := range lines {
		desc := t.ItemDisplayName
		if desc == "" {
			desc = t.ItemID
		}
		if desc == "" {
			desc = t.ServiceType
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				t.Timestamp.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				txTypeLabel(t.Type),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				t.QuantityOrZero().StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(t.ValueOrZero()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: bloco do total alinhado à direita.
func totalRow(p *entity.Payment) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL PAGO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+formatMoney(p.TotalValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// footerRow: id completo do pagamento + QR para conferência.
func footerRow(p *entity.Payment) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(p.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Identificador do pagamento:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3,
			}),
			text.New(p.ID, props.Text{
				Size: 7, Top: 9, Left: 3, Color: colorGray,
			}),
			text.New("Guarde este comprovante. O QR contém o identificador\npara conferência no painel da fazenda.", props.Text{
				Size: 8, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func txTypeLabel(t string) string {
	switch t {
	case entity.TxTypeAdd:
		return "devolução"
	case entity.TxTypeRemove:
		return "retirada"
	case entity.TxTypeDeposit:
		return "depósito"
	case entity.TxTypeWithdraw:
		return "saque"
	}
	return t
}

// shortID devolve o prefixo curto do uuid para exibição.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney formata um decimal com separador de milhar e duas casas.
// Ex: 25000 → "25.000,00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
