// Package item implementa o rename global de identidade de item: reescreve
// item_id/item_display_name em todo o histórico como uma operação atômica.
package item

import (
	"context"
	"fmt"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// UseCase operador de rename global.
type UseCase struct {
	txns repository.TransactionRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txns repository.TransactionRepository) *UseCase {
	return &UseCase{txns: txns}
}

// Rename reescreve todas as referências de oldId para newId e devolve o
// total atualizado. Tudo-ou-nada: qualquer falha sai como ErrRenamePartial
// e o chamador repete o rename inteiro (nunca retoma). Quantidade, valor e
// estado de pagamento não são tocados; nenhum agregado fica em cache, então
// a próxima leitura de análise já reflete o novo id.
func (uc *UseCase) Rename(ctx context.Context, in dto.GlobalItemUpdateRequest) (*dto.GlobalItemUpdateResponse, error) {
	if in.OldID == "" || in.NewID == "" || in.OldID == in.NewID {
		return nil, domain.ErrInvalidInput
	}
	name := in.NewDisplayName
	if name == "" {
		name = in.NewID
	}

	count, err := uc.txns.RenameItem(ctx, in.OldID, in.NewID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenamePartial, err)
	}
	return &dto.GlobalItemUpdateResponse{UpdatedCount: count}, nil
}
