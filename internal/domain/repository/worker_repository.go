package repository

import (
	"context"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// WorkerRepository define o porto de persistência do registro de trabalhadores.
type WorkerRepository interface {
	Create(ctx context.Context, w *entity.Worker) error
	// FindOrCreate resolve o trabalhador por FIXO e nome normalizado,
	// registrando-o quando ausente. Atômico: ingestões concorrentes do mesmo
	// autor nunca criam registro duplicado nem falham pela corrida.
	FindOrCreate(ctx context.Context, w *entity.Worker) (*entity.Worker, error)
	// GetByID devolve nil, nil quando ausente.
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	// GetByFixo busca pelo registro do jogo. Devolve nil, nil quando ausente.
	GetByFixo(ctx context.Context, fixoID string) (*entity.Worker, error)
	// GetByNameKey busca pelo nome normalizado. Devolve nil, nil quando ausente.
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Worker, error)
	List(ctx context.Context) ([]*entity.Worker, error)
	Update(ctx context.Context, w *entity.Worker) error
}
