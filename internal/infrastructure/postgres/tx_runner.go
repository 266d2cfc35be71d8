package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fazenda-rp/ledger-api/internal/application/payment"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

var _ payment.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre a transação, executa fn com repositórios atados a ela e faz
// Commit ou Rollback. Conflitos de serialização saem como
// domain.ErrConcurrencyConflict para a retentativa do caso de uso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txns repository.TransactionRepository,
	payments repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txnRepo := NewTransactionRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(txnRepo, paymentRepo); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapConcurrencyError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
