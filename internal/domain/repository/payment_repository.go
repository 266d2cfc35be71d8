package repository

import (
	"context"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// PaymentRepository define o porto de persistência de pagamentos.
// O conjunto coberto é derivado de transactions.payment_id; o repositório
// o materializa em Payment.TransactionIDs nas leituras.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// GetByID devolve nil, nil quando ausente; TransactionIDs vem preenchido.
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// GetForUpdate bloqueia a linha do pagamento (deletePayment serializado).
	GetForUpdate(ctx context.Context, id string) (*entity.Payment, error)
	Delete(ctx context.Context, id string) error
	ListByWorker(ctx context.Context, workerID string) ([]*entity.Payment, error)
}
