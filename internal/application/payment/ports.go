package payment

import (
	"context"

	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação do store, passando
// repositórios atados a essa transação. Garante a atomicidade das cinco
// operações da máquina de estados de pagamento: ou tudo commita, ou nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error) error
}
