// Package activity implementa os casos de uso do log de atividade:
// ingestão (append), leitura, edição parcial e exclusão de transações.
package activity

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/identity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação do store (mesmo contrato do
// runner do ledger de pagamentos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error) error
}

// UseCase casos de uso do Activity Store. O autor bruto é resolvido para a
// identidade canônica na ingestão; autores desconhecidos são registrados
// automaticamente como trabalhadores ativos.
type UseCase struct {
	txns     repository.TransactionRepository
	workers  repository.WorkerRepository
	resolver *identity.Resolver
	txRunner TxRunner
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	txns repository.TransactionRepository,
	workers repository.WorkerRepository,
	resolver *identity.Resolver,
	txRunner TxRunner,
) *UseCase {
	return &UseCase{txns: txns, workers: workers, resolver: resolver, txRunner: txRunner}
}

// Append valida, resolve o autor e persiste uma transação nova. O ID é
// sempre atribuído pelo store (ingestões concorrentes nunca colidem).
func (uc *UseCase) Append(ctx context.Context, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if !entity.ValidTxType(in.Tipo) || !entity.ValidCategory(in.Categoria) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantidade != nil && in.Quantidade.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Valor != nil && in.Valor.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Categoria == entity.CategoryInventory && in.Item == "" {
		return nil, domain.ErrInvalidInput
	}

	id := uc.resolver.Resolve(identity.RawAuthor{
		Name:    in.Autor,
		IDField: in.AutorID,
	})

	workerID := ""
	if !id.Reserved {
		w, err := uc.findOrCreateWorker(ctx, id)
		if err != nil {
			return nil, err
		}
		workerID = w.ID
	}

	ts := time.Now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	itemName := in.ItemNome
	if itemName == "" {
		itemName = in.Item
	}

	now := time.Now().UTC()
	t := &entity.Transaction{
		WorkerID:        workerID,
		RawAuthor:       in.Autor,
		Timestamp:       ts,
		Type:            in.Tipo,
		Category:        in.Categoria,
		ItemID:          in.Item,
		ItemDisplayName: itemName,
		Quantity:        in.Quantidade,
		Value:           in.Valor,
		ServiceType:     in.Servico,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.txns.Create(ctx, t); err != nil {
		return nil, err
	}
	return ToActivityResponse(t), nil
}

// findOrCreateWorker resolve a identidade para o registro canônico. O
// find-or-create é atômico no repositório: duas ingestões simultâneas do
// mesmo autor novo resolvem para o mesmo trabalhador.
func (uc *UseCase) findOrCreateWorker(ctx context.Context, id identity.Identity) (*entity.Worker, error) {
	return uc.workers.FindOrCreate(ctx, &entity.Worker{
		DisplayName: id.DisplayName,
		NameKey:     id.NameKey,
		FixoID:      id.FixoID,
		Role:        entity.RoleWorker,
		Active:      true,
	})
}

// GetByID obtém uma transação.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error) {
	t, err := uc.txns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return ToActivityResponse(t), nil
}

// List lista transações ordenadas por timestamp (ascendente por padrão).
func (uc *UseCase) List(ctx context.Context, f repository.TransactionFilter) ([]*dto.ActivityResponse, error) {
	list, err := uc.txns.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ActivityResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToActivityResponse(t))
	}
	return out, nil
}

// Update aplica edição parcial de campos (item, quantidade, valor,
// timestamp). Estado de pagamento nunca muda por aqui.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	t, err := uc.txns.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantidade != nil && in.Quantidade.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Valor != nil && in.Valor.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if in.Item != nil {
		t.ItemID = *in.Item
		if in.ItemNome == nil {
			t.ItemDisplayName = *in.Item
		}
	}
	if in.ItemNome != nil {
		t.ItemDisplayName = *in.ItemNome
	}
	if in.Quantidade != nil {
		q := *in.Quantidade
		t.Quantity = &q
	}
	if in.Valor != nil {
		v := *in.Valor
		t.Value = &v
	}
	if in.Timestamp != nil {
		t.Timestamp = in.Timestamp.UTC()
	}
	t.UpdatedAt = time.Now().UTC()

	if err := uc.txns.Update(ctx, t); err != nil {
		return nil, err
	}
	return ToActivityResponse(t), nil
}

// Delete remove uma transação (ação explícita de admin). Transação paga é
// despagada antes da remoção, e o Payment dono é apagado quando o conjunto
// coberto esvazia; um pagamento nunca fica sem transações cobertas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		txns repository.TransactionRepository,
		payments repository.PaymentRepository,
	) error {
		t, err := txns.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Paid && t.PaymentID != nil {
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
		}
		return txns.Delete(ctx, id)
	})
}

// ToActivityResponse converte a entidade para o DTO de resposta.
func ToActivityResponse(t *entity.Transaction) *dto.ActivityResponse {
	var q, v *decimal.Decimal
	if t.Quantity != nil {
		qc := *t.Quantity
		q = &qc
	}
	if t.Value != nil {
		vc := *t.Value
		v = &vc
	}
	return &dto.ActivityResponse{
		ID:         t.ID,
		WorkerID:   t.WorkerID,
		Autor:      t.RawAuthor,
		Tipo:       t.Type,
		Categoria:  t.Category,
		Item:       t.ItemID,
		ItemNome:   t.ItemDisplayName,
		Quantidade: q,
		Valor:      v,
		Servico:    t.ServiceType,
		Paid:       t.Paid,
		PaymentID:  t.PaymentID,
		Timestamp:  t.Timestamp,
	}
}
