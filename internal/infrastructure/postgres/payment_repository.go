package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementação sobre PostgreSQL (usável com pool ou tx).
// TransactionIDs é materializado de transactions.payment_id nas leituras,
// nunca armazenado no pagamento.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste o pagamento.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO payments (id, worker_id, service_type, total_value, receipt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.WorkerID, p.ServiceType, p.TotalValue, p.Receipt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", mapConcurrencyError(err))
	}
	return nil
}

// GetByID obtém um pagamento por id. Devolve nil, nil quando ausente.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `
		SELECT id, worker_id, service_type, total_value, receipt, created_at
		FROM payments WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtém e bloqueia a linha do pagamento.
func (r *PaymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	query := `
		SELECT id, worker_id, service_type, total_value, receipt, created_at
		FROM payments WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *PaymentRepo) getOne(ctx context.Context, query, id string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.WorkerID, &p.ServiceType, &p.TotalValue, &p.Receipt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", mapConcurrencyError(err))
	}
	if err := r.loadTransactionIDs(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete remove o pagamento.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment: %w", mapConcurrencyError(err))
	}
	return nil
}

// ListByWorker lista os pagamentos do trabalhador, mais recentes primeiro.
func (r *PaymentRepo) ListByWorker(ctx context.Context, workerID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, worker_id, service_type, total_value, receipt, created_at
		FROM payments WHERE worker_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.ServiceType, &p.TotalValue, &p.Receipt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := r.loadTransactionIDs(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PaymentRepo) loadTransactionIDs(ctx context.Context, p *entity.Payment) error {
	rows, err := r.q.Query(ctx,
		`SELECT id FROM transactions WHERE payment_id = $1 ORDER BY id`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("load covered transactions: %w", err)
	}
	defer rows.Close()
	p.TransactionIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan covered id: %w", err)
		}
		p.TransactionIDs = append(p.TransactionIDs, id)
	}
	return rows.Err()
}
