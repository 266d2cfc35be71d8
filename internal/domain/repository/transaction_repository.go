package repository

import (
	"context"
	"time"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
)

// TransactionFilter filtros do listing do ledger. Campos vazios não filtram.
type TransactionFilter struct {
	WorkerID    string
	Category    string
	Type        string
	ItemID      string
	ServiceType string
	From        *time.Time
	To          *time.Time
	Descending  bool // default: timestamp ascendente
	Limit       int  // 0 = sem limite
	Offset      int
}

// TransactionRepository define o porto de persistência do log de atividade
// (append-only, ids atribuídos pelo store).
type TransactionRepository interface {
	// Create persiste a transação atribuindo um ID novo quando vazio.
	Create(ctx context.Context, t *entity.Transaction) error
	// GetByID devolve nil, nil quando ausente.
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate bloqueia a linha da transação para mutação serializada
	// por id (SELECT FOR UPDATE no PostgreSQL). Devolve nil, nil se ausente.
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	// ListUnpaidForUpdate seleciona e bloqueia as transações não pagas do
	// trabalhador/serviço; linhas pagas concorrentemente ficam de fora.
	ListUnpaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error)
	// ListPaidForUpdate idem para as pagas (unpayAll).
	ListPaidForUpdate(ctx context.Context, workerID, serviceType string) ([]*entity.Transaction, error)
	// SetPayment grava paid/payment_id de forma atômica (paymentID nil despaga).
	SetPayment(ctx context.Context, id string, paymentID *string) error
	// CountByPayment conta quantas transações ainda cobrem o pagamento.
	CountByPayment(ctx context.Context, paymentID string) (int, error)

	// RenameItem reescreve item_id/item_display_name em todas as transações
	// que referenciam oldID, em uma única operação tudo-ou-nada. Devolve o
	// total de linhas atualizadas.
	RenameItem(ctx context.Context, oldID, newID, newDisplayName string) (int64, error)
}
