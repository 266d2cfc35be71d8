package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// TransactionRepo implementa repository.TransactionRepository. Atado a um
// Store ele tranca a cada chamada; atado a um dataset em preparação (via
// TxRunner) ele opera sem trava, pois o runner já detém o mutex.
type TransactionRepo struct {
	s      *Store
	staged *dataset
}

func (r *TransactionRepo) view(fn func(d *dataset)) {
	if r.staged != nil {
		fn(r.staged)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.data)
}

func (r *TransactionRepo) mut(fn func(d *dataset) error) error {
	if r.staged != nil {
		return fn(r.staged)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.data)
}

// Create insere a transação, gerando o id quando ausente.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	return r.mut(func(d *dataset) error {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		now := time.Now().UTC()
		t.CreatedAt = now
		t.UpdatedAt = now
		d.txns[t.ID] = cloneTxn(t)
		return nil
	})
}

// GetByID devolve (nil, nil) quando a transação não existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.view(func(d *dataset) {
		if t, ok := d.txns[id]; ok {
			out = cloneTxn(t)
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: no store em memória o mutex do runner já
// garante a exclusão que o FOR UPDATE dá no PostgreSQL.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

// List filtra, ordena por timestamp e pagina.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	r.view(func(d *dataset) {
		for _, t := range d.txns {
			if matchesFilter(t, f) {
				out = append(out, cloneTxn(t))
			}
		}
	})
	sortTxns(out, f.Descending)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

// Update substitui a transação inteira.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	return r.mut(func(d *dataset) error {
		if _, ok := d.txns[t.ID]; !ok {
			return nil
		}
		t.UpdatedAt = time.Now().UTC()
		d.txns[t.ID] = cloneTxn(t)
		return nil
	})
}

// Delete remove a transação; ausente é no-op.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	return r.mut(func(d *dataset) error {
		delete(d.txns, id)
		return nil
	})
}

// ListUnpaidForUpdate devolve as transações não pagas do trabalhador no
// serviço, em ordem de timestamp.
func (r *TransactionRepo) ListUnpaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error) {
	return r.listPaidState(workerID, serviceType, false), nil
}

// ListPaidForUpdate devolve as transações pagas do trabalhador no serviço.
func (r *TransactionRepo) ListPaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error) {
	return r.listPaidState(workerID, serviceType, true), nil
}

func (r *TransactionRepo) listPaidState(workerID, serviceType string, paid bool) []*entity.Transaction {
	var out []*entity.Transaction
	r.view(func(d *dataset) {
		for _, t := range d.txns {
			if t.WorkerID == workerID && t.ServiceType == serviceType && t.Paid == paid {
				out = append(out, cloneTxn(t))
			}
		}
	})
	sortTxns(out, false)
	return out
}

// SetPayment grava (ou limpa, com nil) o vínculo de pagamento, mantendo o
// flag paid coerente com payment_id.
func (r *TransactionRepo) SetPayment(ctx context.Context, id string, paymentID *string) error {
	return r.mut(func(d *dataset) error {
		t, ok := d.txns[id]
		if !ok {
			return nil
		}
		if paymentID == nil {
			t.Paid = false
			t.PaymentID = nil
		} else {
			pid := *paymentID
			t.Paid = true
			t.PaymentID = &pid
		}
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// CountByPayment conta quantas transações ainda apontam para o pagamento.
func (r *TransactionRepo) CountByPayment(ctx context.Context, paymentID string) (int, error) {
	n := 0
	r.view(func(d *dataset) {
		for _, t := range d.txns {
			if t.PaymentID != nil && *t.PaymentID == paymentID {
				n++
			}
		}
	})
	return n, nil
}

// RenameItem reescreve todas as referências de oldID para newID e devolve o
// total de linhas tocadas. Quantidade, valor e pagamento ficam intactos.
func (r *TransactionRepo) RenameItem(ctx context.Context, oldID, newID, newDisplayName string) (int64, error) {
	var n int64
	err := r.mut(func(d *dataset) error {
		now := time.Now().UTC()
		for _, t := range d.txns {
			if t.ItemID == oldID {
				t.ItemID = newID
				t.ItemDisplayName = newDisplayName
				t.UpdatedAt = now
				n++
			}
		}
		return nil
	})
	return n, err
}
