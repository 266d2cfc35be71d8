package payment

import (
	"context"

	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// ReceiptGenerator produz o comprovante de pagamento em PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, p *entity.Payment, w *entity.Worker, lines []*entity.Transaction) ([]byte, error)
}

// ReceiptUseCase monta o comprovante de um pagamento: carrega o pagamento,
// o trabalhador e as transações cobertas e delega a renderização.
type ReceiptUseCase struct {
	payments  repository.PaymentRepository
	txns      repository.TransactionRepository
	workers   repository.WorkerRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase constrói o caso de uso.
func NewReceiptUseCase(
	payments repository.PaymentRepository,
	txns repository.TransactionRepository,
	workers repository.WorkerRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{payments: payments, txns: txns, workers: workers, generator: generator}
}

// Generate devolve os bytes do PDF do comprovante.
func (uc *ReceiptUseCase) Generate(ctx context.Context, paymentID string) ([]byte, error) {
	p, err := uc.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	w, err := uc.workers.GetByID(ctx, p.WorkerID)
	if err != nil {
		return nil, err
	}

	lines := make([]*entity.Transaction, 0, len(p.TransactionIDs))
	for _, id := range p.TransactionIDs {
		t, err := uc.txns.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			lines = append(lines, t)
		}
	}
	return uc.generator.GenerateReceiptPDF(ctx, p, w, lines)
}
