package memory

import (
	"context"

	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// TxRunner implementa payment.TxRunner com commit copy-on-write: clona o
// dataset sob o mutex de escrita, roda a função sobre o clone e só troca o
// ponteiro quando ela retorna sem erro. Um erro descarta o clone inteiro,
// que é exatamente a semântica de ROLLBACK do adaptador SQL.
type TxRunner struct {
	s *Store
}

// NewTxRunner constrói o runner sobre o store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run executa fn dentro de uma transação do store. As transações são
// totalmente serializadas pelo mutex, então conflito de serialização nunca
// acontece aqui.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txns repository.TransactionRepository,
	payments repository.PaymentRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	staged := r.s.data.clone()
	err := fn(
		&TransactionRepo{staged: staged},
		&PaymentRepo{staged: staged},
	)
	if err != nil {
		return err
	}
	r.s.data = staged
	return nil
}
