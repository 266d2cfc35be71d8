package analysis_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-rp/ledger-api/internal/application/analysis"
	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/reconcile"
	"github.com/fazenda-rp/ledger-api/internal/infrastructure/memory"
)

func buildFixture(t *testing.T) (*memory.Store, *analysis.UseCase, string) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	w := &entity.Worker{DisplayName: "Maria", NameKey: "maria", Role: entity.RoleWorker, Active: true}
	require.NoError(t, store.Workers().Create(ctx, w))
	uc := analysis.NewUseCase(store.Transactions(), store.Workers(), reconcile.DefaultConfig())
	return store, uc, w.ID
}

func seedInventory(t *testing.T, store *memory.Store, workerID, txType, itemID string, qty int64, ts time.Time) {
	t.Helper()
	q := decimal.NewFromInt(qty)
	require.NoError(t, store.Transactions().Create(context.Background(), &entity.Transaction{
		WorkerID:  workerID,
		Type:      txType,
		Category:  entity.CategoryInventory,
		ItemID:    itemID,
		Quantity:  &q,
		Timestamp: ts,
	}))
}

func findCategory(resp *dto.AnalysisResponse, name string) *dto.CategoryLedgerDTO {
	for i := range resp.Categories {
		if resp.Categories[i].Category == name {
			return &resp.Categories[i]
		}
	}
	return nil
}

// Retira 50 sementes de milho (10x5) e devolve 40 milhos: eficiência 80%.
func TestAnalyze_SementesMilho_Oitenta(t *testing.T) {
	store, uc, workerID := buildFixture(t)
	ts := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		seedInventory(t, store, workerID, entity.TxTypeRemove, "corn_seed", 5, ts.Add(time.Duration(i)*time.Minute))
	}
	seedInventory(t, store, workerID, entity.TxTypeAdd, "corn", 40, ts.Add(time.Hour))

	resp, err := uc.Analyze(context.Background(), workerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Maria", resp.WorkerName)
	assert.Equal(t, 11, resp.TransactionCount)

	seeds := findCategory(resp, string(reconcile.BucketSementes))
	require.NotNil(t, seeds)
	assert.True(t, seeds.Efficiency.Equal(decimal.NewFromInt(80)),
		"eficiência deve ser 80, veio %s", seeds.Efficiency)
	assert.True(t, seeds.Withdrawn.Equal(decimal.NewFromInt(50)))
	assert.True(t, seeds.Returned.Equal(decimal.NewFromInt(40)))
}

// Três baldes retirados, um devolvido: falta 2, custo de reposição $4.00.
func TestAnalyze_Baldes_FaltaComCusto(t *testing.T) {
	store, uc, workerID := buildFixture(t)
	ts := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	seedInventory(t, store, workerID, entity.TxTypeRemove, "balde", 3, ts)
	seedInventory(t, store, workerID, entity.TxTypeAdd, "balde", 1, ts.Add(time.Hour))

	resp, err := uc.Analyze(context.Background(), workerID, nil, nil)
	require.NoError(t, err)

	tools := findCategory(resp, string(reconcile.BucketFerramentas))
	require.NotNil(t, tools)
	require.NotNil(t, tools.Shortfall, "tool_bucket expõe a falta")
	require.NotNil(t, tools.ShortfallCost)
	assert.True(t, tools.Shortfall.Equal(decimal.NewFromInt(2)))
	assert.True(t, tools.ShortfallCost.Equal(decimal.RequireFromString("4.00")),
		"custo deve ser 4.00, veio %s", tools.ShortfallCost)
}

// A janela de análise restringe o que entra na reconciliação.
func TestAnalyze_JanelaDeTempo(t *testing.T) {
	store, uc, workerID := buildFixture(t)
	dentro := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	fora := dentro.AddDate(0, -1, 0)
	seedInventory(t, store, workerID, entity.TxTypeRemove, "semente_trigo", 10, fora)
	seedInventory(t, store, workerID, entity.TxTypeRemove, "semente_trigo", 4, dentro)

	from := dentro.Add(-time.Hour)
	resp, err := uc.Analyze(context.Background(), workerID, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TransactionCount)

	seeds := findCategory(resp, string(reconcile.BucketSementes))
	require.NotNil(t, seeds)
	assert.True(t, seeds.Withdrawn.Equal(decimal.NewFromInt(4)))
}

func TestAnalyze_SemAtividade_ScoreCem(t *testing.T) {
	_, uc, workerID := buildFixture(t)

	resp, err := uc.Analyze(context.Background(), workerID, nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.HonestyScore.Equal(decimal.NewFromInt(100)))
	assert.False(t, resp.SuspiciousActivity)
	assert.Zero(t, resp.TransactionCount)
}

func TestAnalyze_TrabalhadorInexistente(t *testing.T) {
	_, uc, _ := buildFixture(t)
	_, err := uc.Analyze(context.Background(), "nao-existe", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
