package payment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-rp/ledger-api/internal/application/payment"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const testWorkerID = "00000000-0000-0000-0000-000000000001"

// buildFixture sobe o store em memória com o caso de uso de pagamentos.
func buildFixture(t *testing.T) (*memory.Store, *payment.UseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := payment.NewUseCase(memory.NewTxRunner(store), store.Payments())
	return store, uc
}

// seedTxn insere uma transação financeira não paga e devolve o id.
func seedTxn(t *testing.T, store *memory.Store, workerID, serviceType, value string) string {
	t.Helper()
	v := decimal.RequireFromString(value)
	txn := &entity.Transaction{
		WorkerID:    workerID,
		Type:        entity.TxTypeDeposit,
		Category:    entity.CategoryFinancial,
		Value:       &v,
		ServiceType: serviceType,
	}
	require.NoError(t, store.Transactions().Create(context.Background(), txn))
	return txn.ID
}

// assertPaidInvariant confere que paid == (payment_id aponta para um Payment
// existente que cobre a transação).
func assertPaidInvariant(t *testing.T, store *memory.Store, txnID string) {
	t.Helper()
	ctx := context.Background()
	txn, err := store.Transactions().GetByID(ctx, txnID)
	require.NoError(t, err)
	require.NotNil(t, txn)

	if !txn.Paid {
		assert.Nil(t, txn.PaymentID, "transação não paga não pode referenciar pagamento")
		return
	}
	require.NotNil(t, txn.PaymentID, "transação paga precisa referenciar um pagamento")
	p, err := store.Payments().GetByID(ctx, *txn.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, p, "o pagamento referenciado precisa existir")
	assert.Contains(t, p.TransactionIDs, txnID, "o pagamento precisa cobrir a transação")
}

// ──────────────────────────────────────────────────────────────────────────────
// payOne / unpayOne
// ──────────────────────────────────────────────────────────────────────────────

func TestPayOne_CriaPagamentoCobrindoUmaTransacao(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "plantacao", "4.25")

	resp, err := uc.PayOne(ctx, testWorkerID, "plantacao", id)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, resp.TransactionIDs)
	assert.True(t, resp.TotalValue.Equal(decimal.RequireFromString("4.25")))

	assertPaidInvariant(t, store, id)
}

func TestPayOne_JaPaga_RetornaAlreadyPaid(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "plantacao", "1.00")

	_, err := uc.PayOne(ctx, testWorkerID, "plantacao", id)
	require.NoError(t, err)

	_, err = uc.PayOne(ctx, testWorkerID, "plantacao", id)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestPayOne_TrabalhadorErrado_RetornaNotFound(t *testing.T) {
	store, uc := buildFixture(t)
	id := seedTxn(t, store, testWorkerID, "plantacao", "1.00")

	_, err := uc.PayOne(context.Background(), "outro-trabalhador", "plantacao", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// O serviço da rota precisa casar com o da transação; um payOne por outro
// serviço não pode registrar o pagamento com o tipo errado.
func TestPayOne_ServicoErrado_RetornaNotFound(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "pecuaria", "1.00")

	_, err := uc.PayOne(ctx, testWorkerID, "plantacao", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	txn, err := store.Transactions().GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, txn.Paid, "transação de outro serviço permanece intocada")
}

func TestUnpayOne_ServicoErrado_RetornaNotFound(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "pecuaria", "1.00")
	_, err := uc.PayOne(ctx, testWorkerID, "pecuaria", id)
	require.NoError(t, err)

	err = uc.UnpayOne(ctx, testWorkerID, "plantacao", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assertPaidInvariant(t, store, id)
}

func TestUnpayOne_NaoPaga_RetornaNotPaid(t *testing.T) {
	store, uc := buildFixture(t)
	id := seedTxn(t, store, testWorkerID, "plantacao", "1.00")

	err := uc.UnpayOne(context.Background(), testWorkerID, "plantacao", id)
	assert.ErrorIs(t, err, domain.ErrNotPaid)
}

// Ida e volta: pagar e despagar restaura o estado e apaga o pagamento vazio.
func TestPayUnpayRoundTrip_ApagaPagamentoVazio(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "plantacao", "3.00")

	resp, err := uc.PayOne(ctx, testWorkerID, "plantacao", id)
	require.NoError(t, err)

	require.NoError(t, uc.UnpayOne(ctx, testWorkerID, "plantacao", id))

	txn, err := store.Transactions().GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, txn.Paid)
	assert.Nil(t, txn.PaymentID)

	p, err := store.Payments().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Nil(t, p, "pagamento com conjunto coberto vazio deve ser apagado")
}

// ──────────────────────────────────────────────────────────────────────────────
// payAllOfType / unpayAll — Cenário: três pendências "plantacao" de 12.50
// ──────────────────────────────────────────────────────────────────────────────

func TestPayAllOfType_TresPendencias_UmPagamentoComTotal(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	ids := []string{
		seedTxn(t, store, testWorkerID, "plantacao", "5.00"),
		seedTxn(t, store, testWorkerID, "plantacao", "4.50"),
		seedTxn(t, store, testWorkerID, "plantacao", "3.00"),
	}
	// Serviço diferente não entra no lote.
	outro := seedTxn(t, store, testWorkerID, "pecuaria", "99.00")

	resp, err := uc.PayAllOfType(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentID)
	assert.Equal(t, 3, resp.PaidCount)
	assert.True(t, resp.TotalValue.Equal(decimal.RequireFromString("12.50")),
		"total deve ser 12.50, veio %s", resp.TotalValue)

	p, err := store.Payments().GetByID(ctx, *resp.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.ElementsMatch(t, ids, p.TransactionIDs)
	for _, id := range ids {
		assertPaidInvariant(t, store, id)
	}

	fora, err := store.Transactions().GetByID(ctx, outro)
	require.NoError(t, err)
	assert.False(t, fora.Paid, "outro serviço não pode ser pago pelo lote")
}

func TestPayAllOfType_SegundaChamada_PagaZero(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	seedTxn(t, store, testWorkerID, "plantacao", "5.00")
	seedTxn(t, store, testWorkerID, "plantacao", "2.00")

	first, err := uc.PayAllOfType(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)
	assert.Equal(t, 2, first.PaidCount)

	second, err := uc.PayAllOfType(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)
	assert.Equal(t, 0, second.PaidCount, "segunda chamada não tem o que pagar")
	assert.Nil(t, second.PaymentID, "sem pendências nenhum pagamento é criado")
}

func TestUnpayAll_RestauraPendenciasEApagaPagamento(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	ids := []string{
		seedTxn(t, store, testWorkerID, "plantacao", "5.00"),
		seedTxn(t, store, testWorkerID, "plantacao", "4.50"),
		seedTxn(t, store, testWorkerID, "plantacao", "3.00"),
	}

	paid, err := uc.PayAllOfType(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)

	resp, err := uc.UnpayAll(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.UnpaidCount)
	assert.Equal(t, []string{*paid.PaymentID}, resp.DeletedPayments)

	for _, id := range ids {
		txn, err := store.Transactions().GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, txn.Paid)
		assert.Nil(t, txn.PaymentID)
	}
	p, err := store.Payments().GetByID(ctx, *paid.PaymentID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// deletePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePayment_DespagaConjuntoCoberto(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	ids := []string{
		seedTxn(t, store, testWorkerID, "plantacao", "1.00"),
		seedTxn(t, store, testWorkerID, "plantacao", "2.00"),
	}
	paid, err := uc.PayAllOfType(ctx, testWorkerID, "plantacao")
	require.NoError(t, err)

	require.NoError(t, uc.DeletePayment(ctx, *paid.PaymentID))

	for _, id := range ids {
		txn, err := store.Transactions().GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, txn.Paid)
		assert.Nil(t, txn.PaymentID)
	}
	_, err = uc.GetPayment(ctx, *paid.PaymentID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePayment_Inexistente_RetornaNotFound(t *testing.T) {
	_, uc := buildFixture(t)
	err := uc.DeletePayment(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário concorrente: payOne e unpayOne disputando a mesma transação devem
// terminar em um estado final consistente (paga com pagamento válido, ou não
// paga sem referência pendurada).
// ──────────────────────────────────────────────────────────────────────────────

func TestConcurrentPayUnpay_EstadoFinalConsistente(t *testing.T) {
	store, uc := buildFixture(t)
	ctx := context.Background()
	id := seedTxn(t, store, testWorkerID, "plantacao", "7.00")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			// ErrAlreadyPaid é resultado esperado da disputa.
			_, _ = uc.PayOne(ctx, testWorkerID, "plantacao", id)
		}()
		go func() {
			defer wg.Done()
			// ErrNotPaid idem.
			_ = uc.UnpayOne(ctx, testWorkerID, "plantacao", id)
		}()
	}
	wg.Wait()

	assertPaidInvariant(t, store, id)

	// Nenhum pagamento órfão: todo pagamento existente cobre a transação.
	list, err := store.Payments().ListByWorker(ctx, testWorkerID)
	require.NoError(t, err)
	for _, p := range list {
		assert.Equal(t, []string{id}, p.TransactionIDs,
			"pagamento remanescente deve cobrir exatamente a transação disputada")
	}
	assert.LessOrEqual(t, len(list), 1, "no máximo um pagamento pode sobreviver à disputa")
}
