package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// WorkerRepo implementa repository.WorkerRepository sobre o Store.
type WorkerRepo struct {
	s      *Store
	staged *dataset
}

func (r *WorkerRepo) view(fn func(d *dataset)) {
	if r.staged != nil {
		fn(r.staged)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.data)
}

func (r *WorkerRepo) mut(fn func(d *dataset) error) error {
	if r.staged != nil {
		return fn(r.staged)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.data)
}

// Create insere o trabalhador, gerando o id quando ausente. Chave de nome
// duplicada é rejeitada (mesma constraint do store persistente).
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	return r.mut(func(d *dataset) error {
		if w.NameKey != "" {
			for _, e := range d.workers {
				if e.NameKey == w.NameKey {
					return domain.ErrInvalidInput
				}
			}
		}
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = time.Now().UTC()
		}
		wc := *w
		d.workers[w.ID] = &wc
		return nil
	})
}

// FindOrCreate procura por FIXO, depois por nome normalizado, e registra o
// trabalhador quando ausente. Tudo em uma única seção crítica, para que
// ingestões simultâneas do mesmo autor resolvam para o mesmo registro.
func (r *WorkerRepo) FindOrCreate(ctx context.Context, w *entity.Worker) (*entity.Worker, error) {
	var out *entity.Worker
	err := r.mut(func(d *dataset) error {
		if w.FixoID != "" {
			for _, e := range d.workers {
				if e.FixoID == w.FixoID {
					ec := *e
					out = &ec
					return nil
				}
			}
		}
		if w.NameKey != "" {
			for _, e := range d.workers {
				if e.NameKey == w.NameKey {
					// O FIXO pode chegar depois do primeiro evento do trabalhador.
					if w.FixoID != "" && e.FixoID == "" {
						e.FixoID = w.FixoID
					}
					ec := *e
					out = &ec
					return nil
				}
			}
		}
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = time.Now().UTC()
		}
		wc := *w
		d.workers[wc.ID] = &wc
		out = w
		return nil
	})
	return out, err
}

// GetByID devolve (nil, nil) quando o trabalhador não existe.
func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	var out *entity.Worker
	r.view(func(d *dataset) {
		if w, ok := d.workers[id]; ok {
			wc := *w
			out = &wc
		}
	})
	return out, nil
}

// GetByFixo busca pelo identificador FIXO; vazio nunca casa.
func (r *WorkerRepo) GetByFixo(ctx context.Context, fixoID string) (*entity.Worker, error) {
	if fixoID == "" {
		return nil, nil
	}
	var out *entity.Worker
	r.view(func(d *dataset) {
		for _, w := range d.workers {
			if w.FixoID == fixoID {
				wc := *w
				out = &wc
				return
			}
		}
	})
	return out, nil
}

// GetByNameKey busca pela chave de nome normalizada.
func (r *WorkerRepo) GetByNameKey(ctx context.Context, key string) (*entity.Worker, error) {
	if key == "" {
		return nil, nil
	}
	var out *entity.Worker
	r.view(func(d *dataset) {
		for _, w := range d.workers {
			if w.NameKey == key {
				wc := *w
				out = &wc
				return
			}
		}
	})
	return out, nil
}

// List devolve todos os trabalhadores ordenados por nome de exibição.
func (r *WorkerRepo) List(ctx context.Context) ([]*entity.Worker, error) {
	var out []*entity.Worker
	r.view(func(d *dataset) {
		for _, w := range d.workers {
			wc := *w
			out = append(out, &wc)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update substitui o registro; ausente é no-op.
func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	return r.mut(func(d *dataset) error {
		if _, ok := d.workers[w.ID]; !ok {
			return nil
		}
		wc := *w
		d.workers[w.ID] = &wc
		return nil
	})
}
