// Package reconcile casa retiradas com devoluções por categoria de item e
// deriva as métricas de prestação de contas de um trabalhador (serviço de
// domínio, sem dependências de infraestrutura).
//
// Nada aqui é persistido: o CategoryLedger é recalculado a partir das
// transações correntes em cada leitura, inclusive após um rename global
// de item.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Config reúne as constantes nomeadas da reconciliação e da pontuação.
// Os valores vêm da configuração da aplicação; nunca são inferidos.
type Config struct {
	RatioSementePlanta  decimal.Decimal // expected = withdrawn * ratio
	RatioRacaoAnimal    decimal.Decimal
	RatioConsumivel     decimal.Decimal
	CustoReposicaoBalde decimal.Decimal

	LimiarEficienciaBaixa    decimal.Decimal // percentual
	QuantidadeMaximaRazoavel decimal.Decimal

	Pesos map[Bucket]decimal.Decimal
}

// Params espelha Config em float64 para construção a partir de LedgerConfig.
type Params struct {
	RatioSementePlanta       float64
	RatioRacaoAnimal         float64
	RatioConsumivel          float64
	CustoReposicaoBalde      float64
	LimiarEficienciaBaixa    float64
	QuantidadeMaximaRazoavel float64
	PesoSementes             float64
	PesoFerramentas          float64
	PesoRacao                float64
	PesoConsumiveis          float64
}

// NewConfig converte os parâmetros de configuração para decimais.
func NewConfig(p Params) Config {
	return Config{
		RatioSementePlanta:       decimal.NewFromFloat(p.RatioSementePlanta),
		RatioRacaoAnimal:         decimal.NewFromFloat(p.RatioRacaoAnimal),
		RatioConsumivel:          decimal.NewFromFloat(p.RatioConsumivel),
		CustoReposicaoBalde:      decimal.NewFromFloat(p.CustoReposicaoBalde),
		LimiarEficienciaBaixa:    decimal.NewFromFloat(p.LimiarEficienciaBaixa),
		QuantidadeMaximaRazoavel: decimal.NewFromFloat(p.QuantidadeMaximaRazoavel),
		Pesos: map[Bucket]decimal.Decimal{
			BucketSementes:    decimal.NewFromFloat(p.PesoSementes),
			BucketFerramentas: decimal.NewFromFloat(p.PesoFerramentas),
			BucketRacao:       decimal.NewFromFloat(p.PesoRacao),
			BucketConsumiveis: decimal.NewFromFloat(p.PesoConsumiveis),
		},
	}
}

// DefaultConfig devolve os mesmos defaults expostos em pkg/config.
// Usado por testes e pelo modo sem configuração.
func DefaultConfig() Config {
	return NewConfig(Params{
		RatioSementePlanta:       1.0,
		RatioRacaoAnimal:         0.5,
		RatioConsumivel:          1.0,
		CustoReposicaoBalde:      2.0,
		LimiarEficienciaBaixa:    50.0,
		QuantidadeMaximaRazoavel: 1000.0,
		PesoSementes:             0.40,
		PesoFerramentas:          0.30,
		PesoRacao:                0.20,
		PesoConsumiveis:          0.10,
	})
}

// ratio devolve a razão de conversão do bucket.
func (c Config) ratio(b Bucket) decimal.Decimal {
	switch b {
	case BucketSementes:
		return c.RatioSementePlanta
	case BucketRacao:
		return c.RatioRacaoAnimal
	default:
		return c.RatioConsumivel
	}
}

// CategoryLedger é o extrato derivado de um bucket para um trabalhador.
type CategoryLedger struct {
	Bucket     Bucket
	Withdrawn  decimal.Decimal
	Returned   decimal.Decimal
	Net        decimal.Decimal // max(0, withdrawn - returned)
	Efficiency decimal.Decimal // percentual; 100 quando nada foi retirado

	// Somente ferramentas: a eficiência dá lugar ao déficit de devolução.
	Shortfall     decimal.Decimal
	ShortfallCost decimal.Decimal

	Notes []string
}

// Reconcile particiona as transações pela taxonomia e computa o extrato de
// cada bucket com atividade. As transações já devem estar filtradas por
// trabalhador e janela de tempo pelo chamador.
func Reconcile(txns []*entity.Transaction, cfg Config) []CategoryLedger {
	type acc struct {
		withdrawn decimal.Decimal
		returned  decimal.Decimal
	}
	byBucket := make(map[Bucket]*acc, len(AllBuckets))

	for _, t := range txns {
		if t.Category != entity.CategoryInventory || t.ItemID == "" || t.Quantity == nil {
			continue
		}
		bucket, kind := Classify(t.ItemID)
		a := byBucket[bucket]
		if a == nil {
			a = &acc{}
			byBucket[bucket] = a
		}
		switch {
		case entity.IsWithdrawal(t.Type) && kind.CountsAsWithdrawal():
			a.withdrawn = a.withdrawn.Add(*t.Quantity)
		case entity.IsReturn(t.Type) && kind.CountsAsReturn():
			a.returned = a.returned.Add(*t.Quantity)
		}
	}

	ledgers := make([]CategoryLedger, 0, len(byBucket))
	for _, bucket := range AllBuckets {
		a, ok := byBucket[bucket]
		if !ok {
			continue
		}
		ledgers = append(ledgers, buildLedger(bucket, a.withdrawn, a.returned, cfg))
	}
	return ledgers
}

func buildLedger(bucket Bucket, withdrawn, returned decimal.Decimal, cfg Config) CategoryLedger {
	l := CategoryLedger{
		Bucket:    bucket,
		Withdrawn: withdrawn,
		Returned:  returned,
		Net:       withdrawn.Sub(returned),
	}

	// Devolução acima do retirado nunca vira cobrança negativa: o net é
	// zerado e o excedente fica como nota informativa.
	if l.Net.IsNegative() {
		l.Notes = append(l.Notes, fmt.Sprintf(
			"devolução excede a retirada em %s", returned.Sub(withdrawn).String()))
		l.Net = decimal.Zero
	}

	l.Efficiency = efficiency(withdrawn, returned, cfg.ratio(bucket))

	if bucket == BucketFerramentas {
		// Ferramentas respondem por unidade: déficit e custo de reposição.
		l.Shortfall = decimal.Max(decimal.Zero, withdrawn.Sub(returned))
		l.ShortfallCost = l.Shortfall.Mul(cfg.CustoReposicaoBalde)
		// Para ferramentas a eficiência é item-a-item (razão 1:1).
		l.Efficiency = efficiency(withdrawn, returned, decimal.NewFromInt(1))
	}

	return l
}

// efficiency = returned / (withdrawn * ratio) * 100.
// Nada retirado => nada devido => 100, nunca NaN.
func efficiency(withdrawn, returned, ratio decimal.Decimal) decimal.Decimal {
	expected := withdrawn.Mul(ratio)
	if !expected.IsPositive() {
		return hundred
	}
	return returned.Div(expected).Mul(hundred)
}
