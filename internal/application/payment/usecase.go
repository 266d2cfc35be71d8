// Package payment implementa a máquina de estados de pagamento do ledger:
//
//	Unpaid --pay--> Paid --unpay--> Unpaid
//
// As cinco operações (payOne, payAllOfType, unpayOne, unpayAll,
// deletePayment) rodam dentro de uma transação do store com as linhas
// afetadas bloqueadas, preservando o invariante
// paid == (payment_id aponta para um Payment existente que cobre o id).
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// UseCase operações do Payment Ledger.
type UseCase struct {
	txRunner TxRunner
	payments repository.PaymentRepository // leituras fora de transação (recibo)
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, payments repository.PaymentRepository) *UseCase {
	return &UseCase{txRunner: txRunner, payments: payments}
}

// PayOne paga uma única transação: cria um Payment cobrindo só ela.
// Transação de outro trabalhador ou de outro serviço é NotFound; já paga é
// ErrAlreadyPaid.
func (uc *UseCase) PayOne(ctx context.Context, workerID, serviceType, txnID string) (*dto.PaymentResponse, error) {
	var resp *dto.PaymentResponse
	err := uc.txRunner.Run(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		t, err := txns.GetForUpdate(ctx, txnID)
		if err != nil {
			return err
		}
		if t == nil || t.WorkerID != workerID || t.ServiceType != serviceType {
			return domain.ErrNotFound
		}
		if t.Paid {
			return domain.ErrAlreadyPaid
		}

		p := &entity.Payment{
			ID:             uuid.New().String(),
			WorkerID:       workerID,
			ServiceType:    serviceType,
			TotalValue:     t.ValueOrZero(),
			CreatedAt:      time.Now().UTC(),
			TransactionIDs: []string{t.ID},
		}
		if err := payments.Create(ctx, p); err != nil {
			return err
		}
		if err := txns.SetPayment(ctx, t.ID, &p.ID); err != nil {
			return err
		}
		resp = toPaymentResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// PayAllOfType paga de uma vez todas as transações não pagas do
// trabalhador/serviço, cobertas por um único Payment. Transações pagas
// concorrentemente por outro chamador ficam fora do lote (o Payment sai
// menor, nunca falha por isso). Sem nada a pagar, devolve PaidCount zero
// e não cria Payment.
func (uc *UseCase) PayAllOfType(ctx context.Context, workerID, serviceType string) (*dto.PayAllResponse, error) {
	var resp *dto.PayAllResponse
	err := uc.runBulk(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		resp = nil // a retentativa recomeça do zero

		unpaid, err := txns.ListUnpaidForUpdate(ctx, workerID, serviceType)
		if err != nil {
			return err
		}
		if len(unpaid) == 0 {
			resp = &dto.PayAllResponse{PaidCount: 0, TotalValue: decimal.Zero}
			return nil
		}

		total := decimal.Zero
		ids := make([]string, 0, len(unpaid))
		for _, t := range unpaid {
			total = total.Add(t.ValueOrZero())
			ids = append(ids, t.ID)
		}

		p := &entity.Payment{
			ID:             uuid.New().String(),
			WorkerID:       workerID,
			ServiceType:    serviceType,
			TotalValue:     total,
			CreatedAt:      time.Now().UTC(),
			TransactionIDs: ids,
		}
		if err := payments.Create(ctx, p); err != nil {
			return err
		}
		for _, id := range ids {
			if err := txns.SetPayment(ctx, id, &p.ID); err != nil {
				return err
			}
		}
		resp = &dto.PayAllResponse{PaymentID: &p.ID, PaidCount: len(ids), TotalValue: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UnpayOne reverte o pagamento de uma transação. Falha com ErrNotPaid se
// não estiver paga. Se o Payment dono ficar com o conjunto coberto vazio,
// ele é apagado.
func (uc *UseCase) UnpayOne(ctx context.Context, workerID, serviceType, txnID string) error {
	return uc.txRunner.Run(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		t, err := txns.GetForUpdate(ctx, txnID)
		if err != nil {
			return err
		}
		if t == nil || t.WorkerID != workerID || t.ServiceType != serviceType {
			return domain.ErrNotFound
		}
		if !t.Paid || t.PaymentID == nil {
			return domain.ErrNotPaid
		}
		return unpayLocked(ctx, txns, payments, t)
	})
}

// UnpayAll aplica unpayOne a todas as transações pagas do
// trabalhador/serviço, em uma única transação do store.
func (uc *UseCase) UnpayAll(ctx context.Context, workerID, serviceType string) (*dto.UnpayAllResponse, error) {
	var resp *dto.UnpayAllResponse
	err := uc.runBulk(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		resp = nil

		paid, err := txns.ListPaidForUpdate(ctx, workerID, serviceType)
		if err != nil {
			return err
		}
		out := &dto.UnpayAllResponse{}
		seen := map[string]bool{}
		for _, t := range paid {
			pid := *t.PaymentID
			if err := unpayLocked(ctx, txns, payments, t); err != nil {
				return err
			}
			out.UnpaidCount++
			if !seen[pid] {
				// unpayLocked apaga o Payment quando esvazia; registra uma vez.
				if p, err := payments.GetByID(ctx, pid); err != nil {
					return err
				} else if p == nil {
					out.DeletedPayments = append(out.DeletedPayments, pid)
					seen[pid] = true
				}
			}
		}
		resp = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeletePayment despaga todas as transações cobertas e então remove o
// Payment (exclusão total é a única mutação permitida em um pagamento).
func (uc *UseCase) DeletePayment(ctx context.Context, paymentID string) error {
	return uc.runBulk(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		p, err := payments.GetForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		for _, id := range p.TransactionIDs {
			t, err := txns.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if t == nil {
				continue
			}
			if err := txns.SetPayment(ctx, t.ID, nil); err != nil {
				return err
			}
		}
		return payments.Delete(ctx, paymentID)
	})
}

// GetPayment leitura simples (recibo).
func (uc *UseCase) GetPayment(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	p, err := uc.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(p), nil
}

// unpayLocked limpa paid/payment_id de uma transação já bloqueada e apaga o
// Payment dono quando o conjunto coberto esvazia.
func unpayLocked(
	ctx context.Context,
	txns repository.TransactionRepository,
	payments repository.PaymentRepository,
	t *entity.Transaction,
) error {
	pid := *t.PaymentID
	if err := txns.SetPayment(ctx, t.ID, nil); err != nil {
		return err
	}
	remaining, err := txns.CountByPayment(ctx, pid)
	if err != nil {
		return err
	}
	if remaining == 0 {
		if err := payments.Delete(ctx, pid); err != nil {
			return err
		}
	}
	return nil
}

// runBulk executa uma operação em lote com exatamente uma retentativa
// interna em conflito de serialização antes de devolver o erro ao chamador.
func (uc *UseCase) runBulk(ctx context.Context, fn func(
	txns repository.TransactionRepository,
	payments repository.PaymentRepository,
) error) error {
	err := uc.txRunner.Run(ctx, fn)
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		err = uc.txRunner.Run(ctx, fn)
	}
	return err
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		WorkerID:       p.WorkerID,
		Servico:        p.ServiceType,
		TotalValue:     p.TotalValue,
		Receipt:        p.Receipt,
		TransactionIDs: p.TransactionIDs,
		CreatedAt:      p.CreatedAt,
	}
}
