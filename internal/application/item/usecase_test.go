package item_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/application/item"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
	"github.com/fazenda-rp/ledger-api/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store, itemID string, paid bool) *entity.Transaction {
	t.Helper()
	ctx := context.Background()
	q := decimal.NewFromInt(3)
	v := decimal.RequireFromString("1.50")
	txn := &entity.Transaction{
		WorkerID: "w1",
		Type:     entity.TxTypeRemove,
		Category: entity.CategoryInventory,
		ItemID:   itemID,
		Quantity: &q,
		Value:    &v,
	}
	require.NoError(t, store.Transactions().Create(ctx, txn))
	if paid {
		pid := "pag-" + txn.ID
		require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: pid, WorkerID: "w1"}))
		require.NoError(t, store.Transactions().SetPayment(ctx, txn.ID, &pid))
	}
	// Relê do store: o estado de pagamento esperado é o persistido.
	stored, err := store.Transactions().GetByID(ctx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	return stored
}

// O rename move todas as referências e preserva quantidade, valor e estado
// de pagamento de cada transação tocada.
func TestRename_MoveReferenciasPreservandoCampos(t *testing.T) {
	store := memory.NewStore()
	uc := item.NewUseCase(store.Transactions())
	ctx := context.Background()

	var seeded []*entity.Transaction
	for i := 0; i < 4; i++ {
		seeded = append(seeded, seed(t, store, "corn_seed", i%2 == 0))
	}
	seed(t, store, "wheat_seed", false) // não participa

	resp, err := uc.Rename(ctx, dto.GlobalItemUpdateRequest{
		OldID: "corn_seed", NewID: "semente_milho", NewDisplayName: "Semente de Milho",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, resp.UpdatedCount)

	for _, orig := range seeded {
		got, err := store.Transactions().GetByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, "semente_milho", got.ItemID)
		assert.Equal(t, "Semente de Milho", got.ItemDisplayName)
		assert.True(t, got.QuantityOrZero().Equal(orig.QuantityOrZero()), "quantidade intacta")
		assert.True(t, got.ValueOrZero().Equal(orig.ValueOrZero()), "valor intacto")
		assert.Equal(t, orig.Paid, got.Paid, "estado de pagamento intacto")
	}

	left, err := store.Transactions().List(ctx, repository.TransactionFilter{ItemID: "corn_seed"})
	require.NoError(t, err)
	assert.Empty(t, left, "nenhuma referência antiga pode sobrar")
}

func TestRename_SemReferencias_ContaZero(t *testing.T) {
	store := memory.NewStore()
	uc := item.NewUseCase(store.Transactions())

	resp, err := uc.Rename(context.Background(), dto.GlobalItemUpdateRequest{
		OldID: "fantasma", NewID: "outro",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.UpdatedCount)
}

func TestRename_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := item.NewUseCase(store.Transactions())
	ctx := context.Background()

	cases := []dto.GlobalItemUpdateRequest{
		{OldID: "", NewID: "x"},
		{OldID: "x", NewID: ""},
		{OldID: "x", NewID: "x"},
	}
	for _, in := range cases {
		_, err := uc.Rename(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
