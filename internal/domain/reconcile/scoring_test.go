package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/reconcile"
)

func TestComputeScore_TudoDevolvidoScore100(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "corn_seed", 10),
		tx(entity.TxTypeAdd, "corn", 10),
		tx(entity.TxTypeRemove, "balde", 2),
		tx(entity.TxTypeAdd, "balde", 2),
	}
	cfg := reconcile.DefaultConfig()
	ledgers := reconcile.Reconcile(txns, cfg)

	score := reconcile.ComputeScore(ledgers, txns, cfg)

	assert.True(t, score.HonestyScore.Equal(decimal.NewFromInt(100)), "score = %s", score.HonestyScore)
	assert.False(t, score.Suspicious)
	assert.Empty(t, score.Flags)
}

func TestComputeScore_MediaPonderada(t *testing.T) {
	// Sementes a 80% (peso 0.40) e baldes a 100% (peso 0.30):
	// score = (80*0.40 + 100*0.30) / 0.70 = 88.57...
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "corn_seed", 50),
		tx(entity.TxTypeAdd, "corn", 40),
		tx(entity.TxTypeRemove, "balde", 2),
		tx(entity.TxTypeAdd, "balde", 2),
	}
	cfg := reconcile.DefaultConfig()
	ledgers := reconcile.Reconcile(txns, cfg)

	score := reconcile.ComputeScore(ledgers, txns, cfg)

	expected := decimal.NewFromInt(80).Mul(decimal.NewFromFloat(0.40)).
		Add(decimal.NewFromInt(100).Mul(decimal.NewFromFloat(0.30))).
		Div(decimal.NewFromFloat(0.70))
	assert.True(t, score.HonestyScore.Sub(expected).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"score = %s, esperado ~%s", score.HonestyScore, expected.Round(2))
}

func TestComputeScore_EficienciaBaixaMarcaSuspeita(t *testing.T) {
	// 10% de devolução fica bem abaixo do limiar default de 50%.
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "corn_seed", 100),
		tx(entity.TxTypeAdd, "corn", 10),
	}
	cfg := reconcile.DefaultConfig()
	ledgers := reconcile.Reconcile(txns, cfg)

	score := reconcile.ComputeScore(ledgers, txns, cfg)

	assert.True(t, score.Suspicious)
	assert.NotEmpty(t, score.Flags)
}

func TestComputeScore_QuantidadeForaDoRazoavel(t *testing.T) {
	// Mesmo com devolução integral, 5000 unidades de um único item na
	// janela estoura o teto default de 1000.
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "corn_seed", 5000),
		tx(entity.TxTypeAdd, "corn", 5000),
	}
	cfg := reconcile.DefaultConfig()
	ledgers := reconcile.Reconcile(txns, cfg)

	score := reconcile.ComputeScore(ledgers, txns, cfg)

	assert.True(t, score.Suspicious)
}

func TestComputeScore_DevolucaoExcedenteNaoPassaDe100(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "corn_seed", 10),
		tx(entity.TxTypeAdd, "corn", 25),
	}
	cfg := reconcile.DefaultConfig()
	ledgers := reconcile.Reconcile(txns, cfg)

	score := reconcile.ComputeScore(ledgers, txns, cfg)

	assert.True(t, score.HonestyScore.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.False(t, score.Suspicious)
}

func TestComputeScore_SemAtividade(t *testing.T) {
	score := reconcile.ComputeScore(nil, nil, reconcile.DefaultConfig())

	assert.True(t, score.HonestyScore.Equal(decimal.NewFromInt(100)))
	assert.False(t, score.Suspicious)
}
