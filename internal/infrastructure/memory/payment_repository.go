package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// PaymentRepo implementa repository.PaymentRepository. O conjunto coberto
// (TransactionIDs) nunca é armazenado: é materializado das transações que
// apontam para o pagamento, a mesma fonte de verdade do adaptador SQL.
type PaymentRepo struct {
	s      *Store
	staged *dataset
}

func (r *PaymentRepo) view(fn func(d *dataset)) {
	if r.staged != nil {
		fn(r.staged)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.data)
}

func (r *PaymentRepo) mut(fn func(d *dataset) error) error {
	if r.staged != nil {
		return fn(r.staged)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.data)
}

// Create insere o pagamento, gerando o id quando ausente.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	return r.mut(func(d *dataset) error {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		d.payments[p.ID] = clonePayment(p)
		return nil
	})
}

// GetByID devolve (nil, nil) quando o pagamento não existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var out *entity.Payment
	r.view(func(d *dataset) {
		if p, ok := d.payments[id]; ok {
			out = materialize(d, p)
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID sob o mutex do runner.
func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

// Delete remove o pagamento; ausente é no-op.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	return r.mut(func(d *dataset) error {
		delete(d.payments, id)
		return nil
	})
}

// ListByWorker lista os pagamentos do trabalhador, mais recentes primeiro.
func (r *PaymentRepo) ListByWorker(ctx context.Context, workerID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	r.view(func(d *dataset) {
		for _, p := range d.payments {
			if p.WorkerID == workerID {
				out = append(out, materialize(d, p))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// materialize copia o pagamento e recompõe TransactionIDs a partir das
// transações que o referenciam.
func materialize(d *dataset, p *entity.Payment) *entity.Payment {
	c := clonePayment(p)
	c.TransactionIDs = c.TransactionIDs[:0]
	for _, t := range d.txns {
		if t.PaymentID != nil && *t.PaymentID == p.ID {
			c.TransactionIDs = append(c.TransactionIDs, t.ID)
		}
	}
	sort.Strings(c.TransactionIDs)
	return c
}
