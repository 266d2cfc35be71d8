package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// Score é a saída do motor de pontuação. Consultiva: anota decisões da
// gerência, nunca bloqueia pagamento.
type Score struct {
	HonestyScore decimal.Decimal // 0-100
	Suspicious   bool
	Flags        []string
}

// ComputeScore agrega os extratos por categoria em um honesty score
// (média ponderada das eficiências, pesos por exposição monetária) e marca
// atividade suspeita quando alguma eficiência cai abaixo do limiar ou a
// quantidade de um único item estoura o teto razoável da janela.
func ComputeScore(ledgers []CategoryLedger, txns []*entity.Transaction, cfg Config) Score {
	s := Score{HonestyScore: hundred}
	if len(ledgers) == 0 {
		return s
	}

	// Média ponderada sobre os buckets presentes; o score é limitado a 100
	// (devolver além do esperado não rende crédito extra).
	var weighted, totalWeight decimal.Decimal
	for _, l := range ledgers {
		weight, ok := cfg.Pesos[l.Bucket]
		if !ok || !weight.IsPositive() {
			continue
		}
		eff := decimal.Min(l.Efficiency, hundred)
		weighted = weighted.Add(eff.Mul(weight))
		totalWeight = totalWeight.Add(weight)
	}
	if totalWeight.IsPositive() {
		s.HonestyScore = weighted.Div(totalWeight)
	}

	for _, l := range ledgers {
		if l.Withdrawn.IsPositive() && l.Efficiency.LessThan(cfg.LimiarEficienciaBaixa) {
			s.Suspicious = true
			s.Flags = append(s.Flags, fmt.Sprintf(
				"eficiência %s%% em %s abaixo do limiar %s%%",
				l.Efficiency.Round(1).String(), l.Bucket, cfg.LimiarEficienciaBaixa.String()))
		}
	}

	for item, qty := range quantityByItem(txns) {
		if qty.GreaterThan(cfg.QuantidadeMaximaRazoavel) {
			s.Suspicious = true
			s.Flags = append(s.Flags, fmt.Sprintf(
				"quantidade %s de %q excede o teto %s na janela",
				qty.String(), item, cfg.QuantidadeMaximaRazoavel.String()))
		}
	}

	return s
}

// quantityByItem soma a quantidade retirada por item dentro da janela.
func quantityByItem(txns []*entity.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Quantity == nil || t.ItemID == "" || !entity.IsWithdrawal(t.Type) {
			continue
		}
		totals[t.ItemID] = totals[t.ItemID].Add(*t.Quantity)
	}
	return totals
}
