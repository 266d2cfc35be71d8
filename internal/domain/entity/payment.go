package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment agrupa transações compensadas juntas. Imutável depois de criado,
// exceto pela exclusão total, que despaga todas as transações cobertas.
// Invariante: TotalValue == soma dos valores das transações cobertas no
// momento da criação.
type Payment struct {
	ID             string
	WorkerID       string
	ServiceType    string
	TotalValue     decimal.Decimal
	Receipt        string // texto opcional do comprovante
	CreatedAt      time.Time
	TransactionIDs []string // conjunto coberto, nunca vazio enquanto o pagamento existir
}
