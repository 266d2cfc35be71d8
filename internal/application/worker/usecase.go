// Package worker casos de uso CRUD do registro de trabalhadores. A maior
// parte dos cadastros acontece automaticamente na ingestão; aqui ficam as
// operações manuais do admin.
package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/identity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// UseCase CRUD de trabalhadores.
type UseCase struct {
	workers repository.WorkerRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(workers repository.WorkerRepository) *UseCase {
	return &UseCase{workers: workers}
}

// Create cadastra um trabalhador manualmente.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	key := identity.NormalizeKey(in.Nome)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleWorker
	}
	if role != entity.RoleWorker && role != entity.RoleManager {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.workers.GetByNameKey(ctx, key); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrInvalidInput
	}

	w := &entity.Worker{
		ID:          uuid.New().String(),
		DisplayName: in.Nome,
		NameKey:     key,
		FixoID:      in.FixoID,
		Role:        role,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.workers.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// GetByID obtém um trabalhador.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.WorkerResponse, error) {
	w, err := uc.workers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWorkerResponse(w), nil
}

// List lista todos os trabalhadores.
func (uc *UseCase) List(ctx context.Context) ([]*dto.WorkerResponse, error) {
	list, err := uc.workers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWorkerResponse(w))
	}
	return out, nil
}

// Update aplica edição parcial (nome, papel, ativo).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	w, err := uc.workers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nome != nil {
		key := identity.NormalizeKey(*in.Nome)
		if key == "" {
			return nil, domain.ErrInvalidInput
		}
		w.DisplayName = *in.Nome
		w.NameKey = key
	}
	if in.Role != nil {
		if *in.Role != entity.RoleWorker && *in.Role != entity.RoleManager {
			return nil, domain.ErrInvalidInput
		}
		w.Role = *in.Role
	}
	if in.Active != nil {
		w.Active = *in.Active
	}
	if err := uc.workers.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

func toWorkerResponse(w *entity.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:        w.ID,
		Nome:      w.DisplayName,
		FixoID:    w.FixoID,
		Role:      w.Role,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
	}
}
