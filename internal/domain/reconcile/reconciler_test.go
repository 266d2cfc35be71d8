package reconcile_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/reconcile"
)

func qty(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func tx(txType, itemID string, quantity float64) *entity.Transaction {
	return &entity.Transaction{
		ID:        "t-" + itemID + "-" + txType,
		WorkerID:  "w1",
		Timestamp: time.Now().UTC(),
		Type:      txType,
		Category:  entity.CategoryInventory,
		ItemID:    itemID,
		Quantity:  qty(quantity),
	}
}

func ledgerFor(t *testing.T, ledgers []reconcile.CategoryLedger, b reconcile.Bucket) reconcile.CategoryLedger {
	t.Helper()
	for _, l := range ledgers {
		if l.Bucket == b {
			return l
		}
	}
	require.Failf(t, "bucket ausente", "não há extrato para %s", b)
	return reconcile.CategoryLedger{}
}

// Cenário A: 10 retiradas de corn_seed qty 5 (total 50), devolução de 40 de
// corn, razão 1:1 => eficiência 80%.
func TestReconcile_SementesCenarioA(t *testing.T) {
	var txns []*entity.Transaction
	for i := 0; i < 10; i++ {
		txns = append(txns, tx(entity.TxTypeRemove, "corn_seed", 5))
	}
	txns = append(txns, tx(entity.TxTypeAdd, "corn", 40))

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())
	l := ledgerFor(t, ledgers, reconcile.BucketSementes)

	assert.True(t, l.Withdrawn.Equal(decimal.NewFromInt(50)), "withdrawn = %s", l.Withdrawn)
	assert.True(t, l.Returned.Equal(decimal.NewFromInt(40)))
	assert.True(t, l.Net.Equal(decimal.NewFromInt(10)))
	assert.True(t, l.Efficiency.Equal(decimal.NewFromInt(80)), "eficiência = %s", l.Efficiency)
}

// Cenário B: 3 baldes retirados, 1 devolvido, custo unitário $2 =>
// déficit 2, custo devido $4.00.
func TestReconcile_BaldesCenarioB(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "balde", 3),
		tx(entity.TxTypeAdd, "balde", 1),
	}

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())
	l := ledgerFor(t, ledgers, reconcile.BucketFerramentas)

	assert.True(t, l.Shortfall.Equal(decimal.NewFromInt(2)), "déficit = %s", l.Shortfall)
	assert.True(t, l.ShortfallCost.Equal(decimal.NewFromInt(4)), "custo = %s", l.ShortfallCost)
}

// Ração usa razão 2:1 (expected = withdrawn * 0.5): 10 rações retiradas e
// 5 animais devolvidos é cumprimento integral.
func TestReconcile_RacaoAnimalRazao(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "racao_bovina", 10),
		tx(entity.TxTypeDeposit, "vaca", 5),
	}

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())
	l := ledgerFor(t, ledgers, reconcile.BucketRacao)

	assert.True(t, l.Efficiency.Equal(decimal.NewFromInt(100)), "eficiência = %s", l.Efficiency)
}

// Nada retirado => eficiência exatamente 100, nunca NaN nem divisão por zero.
func TestReconcile_SemRetiradaEficiencia100(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeAdd, "milho", 15),
	}

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())
	l := ledgerFor(t, ledgers, reconcile.BucketSementes)

	assert.True(t, l.Efficiency.Equal(decimal.NewFromInt(100)))
	assert.True(t, l.Withdrawn.IsZero())
}

// Devolução maior que a retirada: net zerado com nota, nunca cobrança negativa.
func TestReconcile_DevolucaoExcedenteClampaNet(t *testing.T) {
	txns := []*entity.Transaction{
		tx(entity.TxTypeRemove, "semente_trigo", 5),
		tx(entity.TxTypeAdd, "trigo", 9),
	}

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())
	l := ledgerFor(t, ledgers, reconcile.BucketSementes)

	assert.True(t, l.Net.IsZero(), "net = %s", l.Net)
	assert.NotEmpty(t, l.Notes)
	// A eficiência permanece no intervalo [0, +inf).
	assert.False(t, l.Efficiency.IsNegative())
}

// Transações financeiras e sem quantidade ficam fora da reconciliação.
func TestReconcile_IgnoraFinanceirasESemQuantidade(t *testing.T) {
	v := decimal.NewFromFloat(12.5)
	txns := []*entity.Transaction{
		{Type: entity.TxTypeDeposit, Category: entity.CategoryFinancial, Value: &v},
		{Type: entity.TxTypeRemove, Category: entity.CategoryInventory, ItemID: "corn_seed"},
	}

	ledgers := reconcile.Reconcile(txns, reconcile.DefaultConfig())

	assert.Empty(t, ledgers)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		item   string
		bucket reconcile.Bucket
	}{
		{"corn_seed", reconcile.BucketSementes},
		{"semente_milho", reconcile.BucketSementes},
		{"milho", reconcile.BucketSementes},
		{"racao_suina", reconcile.BucketRacao},
		{"porco", reconcile.BucketRacao},
		{"balde_leite", reconcile.BucketFerramentas},
		{"bucket", reconcile.BucketFerramentas},
		{"adubo", reconcile.BucketConsumiveis},
	}
	for _, c := range cases {
		bucket, _ := reconcile.Classify(c.item)
		assert.Equal(t, c.bucket, bucket, "item %q", c.item)
	}
}
