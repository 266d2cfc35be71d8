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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txnColumns = `id, worker_id, raw_author, timestamp, type, category, item_id, item_display_name, quantity, value, service_type, paid, payment_id, created_at, updated_at`

// TransactionRepo implementação sobre PostgreSQL (usável com pool ou tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste a transação do ledger.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	query := `
		INSERT INTO transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		t.ID, nullIfEmpty(t.WorkerID), t.RawAuthor, t.Timestamp, t.Type, t.Category,
		t.ItemID, t.ItemDisplayName, t.Quantity, t.Value, t.ServiceType,
		t.Paid, t.PaymentID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtém uma transação por id. Devolve nil, nil quando ausente.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtém e bloqueia a linha (SELECT ... FOR UPDATE).
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *TransactionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Transaction, error) {
	t, err := scanTxn(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", mapConcurrencyError(err))
	}
	return t, nil
}

// List filtra o ledger. Campos vazios do filtro não restringem.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE 1=1`
	var args []any
	pos := 1
	add := func(clause string, v any) {
		query += fmt.Sprintf(clause, pos)
		args = append(args, v)
		pos++
	}
	if f.WorkerID != "" {
		add(" AND worker_id = $%d", f.WorkerID)
	}
	if f.Category != "" {
		add(" AND category = $%d", f.Category)
	}
	if f.Type != "" {
		add(" AND type = $%d", f.Type)
	}
	if f.ItemID != "" {
		add(" AND item_id = $%d", f.ItemID)
	}
	if f.ServiceType != "" {
		add(" AND service_type = $%d", f.ServiceType)
	}
	if f.From != nil {
		add(" AND timestamp >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND timestamp <= $%d", *f.To)
	}
	if f.Descending {
		query += " ORDER BY timestamp DESC, id DESC"
	} else {
		query += " ORDER BY timestamp ASC, id ASC"
	}
	if f.Limit > 0 {
		add(" LIMIT $%d", f.Limit)
	}
	if f.Offset > 0 {
		add(" OFFSET $%d", f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return collectTxns(rows)
}

// Update substitui os campos editáveis da transação.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	t.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE transactions
		SET worker_id = $2, raw_author = $3, timestamp = $4, type = $5, category = $6,
		    item_id = $7, item_display_name = $8, quantity = $9, value = $10,
		    service_type = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, nullIfEmpty(t.WorkerID), t.RawAuthor, t.Timestamp, t.Type, t.Category,
		t.ItemID, t.ItemDisplayName, t.Quantity, t.Value, t.ServiceType, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", mapConcurrencyError(err))
	}
	return nil
}

// Delete remove a transação.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", mapConcurrencyError(err))
	}
	return nil
}

// ListUnpaidForUpdate seleciona e bloqueia as não pagas do trabalhador no
// serviço. Linhas pagas por outro chamador entre o snapshot e o lock ficam
// fora do lote graças ao WHERE reavaliado sob FOR UPDATE.
func (r *TransactionRepo) ListUnpaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + txnColumns + ` FROM transactions
		WHERE worker_id = $1 AND service_type = $2 AND paid = FALSE
		ORDER BY timestamp ASC, id ASC
		FOR UPDATE`
	return r.listLocked(ctx, query, workerID, serviceType)
}

// ListPaidForUpdate idem para as pagas (unpayAll).
func (r *TransactionRepo) ListPaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + txnColumns + ` FROM transactions
		WHERE worker_id = $1 AND service_type = $2 AND paid = TRUE
		ORDER BY timestamp ASC, id ASC
		FOR UPDATE`
	return r.listLocked(ctx, query, workerID, serviceType)
}

func (r *TransactionRepo) listLocked(ctx context.Context, query, workerID, serviceType string) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, workerID, serviceType)
	if err != nil {
		return nil, fmt.Errorf("list for update: %w", mapConcurrencyError(err))
	}
	defer rows.Close()
	return collectTxns(rows)
}

// SetPayment grava paid/payment_id de forma atômica; nil despaga.
func (r *TransactionRepo) SetPayment(ctx context.Context, id string, paymentID *string) error {
	query := `
		UPDATE transactions
		SET paid = $2, payment_id = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, paymentID != nil, paymentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set payment: %w", mapConcurrencyError(err))
	}
	return nil
}

// CountByPayment conta quantas transações ainda apontam para o pagamento.
func (r *TransactionRepo) CountByPayment(ctx context.Context, paymentID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE payment_id = $1`, paymentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by payment: %w", mapConcurrencyError(err))
	}
	return n, nil
}

// RenameItem reescreve item_id/item_display_name em um único UPDATE, que o
// PostgreSQL aplica de forma atômica. Devolve o total de linhas tocadas.
func (r *TransactionRepo) RenameItem(ctx context.Context, oldID, newID, newDisplayName string) (int64, error) {
	query := `
		UPDATE transactions
		SET item_id = $2, item_display_name = $3, updated_at = $4
		WHERE item_id = $1`
	tag, err := r.q.Exec(ctx, query, oldID, newID, newDisplayName, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("rename item: %w", mapConcurrencyError(err))
	}
	return tag.RowsAffected(), nil
}

func scanTxn(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var workerID *string
	err := row.Scan(
		&t.ID, &workerID, &t.RawAuthor, &t.Timestamp, &t.Type, &t.Category,
		&t.ItemID, &t.ItemDisplayName, &t.Quantity, &t.Value, &t.ServiceType,
		&t.Paid, &t.PaymentID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if workerID != nil {
		t.WorkerID = *workerID
	}
	return &t, nil
}

func collectTxns(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, mapConcurrencyError(rows.Err())
}

// nullIfEmpty mapeia string vazia para NULL (colunas opcionais).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
