package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

const workerColumns = `id, display_name, name_key, fixo_id, role, active, created_at`

// WorkerRepo implementação sobre PostgreSQL (usável com pool ou tx).
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

// Create persiste o trabalhador. name_key tem constraint única; a violação
// sai como ErrInvalidInput (cadastro duplicado).
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.DisplayName, w.NameKey, nullIfEmpty(w.FixoID), w.Role, w.Active, w.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create worker: %w", err)
	}
	return nil
}

// FindOrCreate procura por FIXO, depois por name_key, inserindo quando
// ausente. Quem perde a corrida de ingestão cai no ON CONFLICT DO NOTHING
// e relê o registro do vencedor; a ingestão nunca falha por isso.
func (r *WorkerRepo) FindOrCreate(ctx context.Context, w *entity.Worker) (*entity.Worker, error) {
	if w.FixoID != "" {
		if existing, err := r.GetByFixo(ctx, w.FixoID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name_key) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		w.ID, w.DisplayName, w.NameKey, nullIfEmpty(w.FixoID), w.Role, w.Active, w.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("find or create worker: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return w, nil
	}

	existing, err := r.GetByNameKey(ctx, w.NameKey)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("find or create worker: registro de %q desapareceu durante a corrida", w.NameKey)
	}
	// O FIXO pode chegar depois do primeiro evento do trabalhador.
	if w.FixoID != "" && existing.FixoID == "" {
		existing.FixoID = w.FixoID
		if err := r.Update(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// GetByID obtém um trabalhador por id. Devolve nil, nil quando ausente.
func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByFixo busca pelo registro do jogo.
func (r *WorkerRepo) GetByFixo(ctx context.Context, fixoID string) (*entity.Worker, error) {
	if fixoID == "" {
		return nil, nil
	}
	query := `SELECT ` + workerColumns + ` FROM workers WHERE fixo_id = $1`
	return r.getOne(ctx, query, fixoID)
}

// GetByNameKey busca pelo nome normalizado.
func (r *WorkerRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Worker, error) {
	if nameKey == "" {
		return nil, nil
	}
	query := `SELECT ` + workerColumns + ` FROM workers WHERE name_key = $1`
	return r.getOne(ctx, query, nameKey)
}

func (r *WorkerRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Worker, error) {
	w, err := scanWorker(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

// List devolve todos os trabalhadores por nome de exibição.
func (r *WorkerRepo) List(ctx context.Context) ([]*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY display_name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Update substitui os campos editáveis do trabalhador.
func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	query := `
		UPDATE workers
		SET display_name = $2, name_key = $3, fixo_id = $4, role = $5, active = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.DisplayName, w.NameKey, nullIfEmpty(w.FixoID), w.Role, w.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update worker: %w", err)
	}
	return nil
}

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var w entity.Worker
	var fixo *string
	err := row.Scan(&w.ID, &w.DisplayName, &w.NameKey, &fixo, &w.Role, &w.Active, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	if fixo != nil {
		w.FixoID = *fixo
	}
	return &w, nil
}
