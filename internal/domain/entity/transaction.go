package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transação do ledger.
const (
	TxTypeAdd      = "add"      // devolução de item ao baú
	TxTypeRemove   = "remove"   // retirada de item do baú
	TxTypeDeposit  = "deposit"  // depósito financeiro/entrega
	TxTypeWithdraw = "withdraw" // saque financeiro/retirada
)

// Categorias de transação.
const (
	CategoryInventory = "inventory"
	CategoryFinancial = "financial"
)

// ValidTxType verifica se o tipo pertence ao conjunto aceito.
func ValidTxType(t string) bool {
	switch t {
	case TxTypeAdd, TxTypeRemove, TxTypeDeposit, TxTypeWithdraw:
		return true
	}
	return false
}

// ValidCategory verifica se a categoria pertence ao conjunto aceito.
func ValidCategory(c string) bool {
	return c == CategoryInventory || c == CategoryFinancial
}

// IsWithdrawal indica se o tipo representa saída (retirada/saque).
func IsWithdrawal(t string) bool {
	return t == TxTypeRemove || t == TxTypeWithdraw
}

// IsReturn indica se o tipo representa entrada (devolução/depósito).
func IsReturn(t string) bool {
	return t == TxTypeAdd || t == TxTypeDeposit
}

// Transaction é um registro append-only do ledger de atividade.
// Invariante: Paid == (PaymentID != nil) sob todas as operações.
type Transaction struct {
	ID              string
	WorkerID        string // vazio quando o autor resolve para identidade de sistema
	RawAuthor       string // token de autor original (legado), preservado para auditoria
	Timestamp       time.Time
	Type            string // add, remove, deposit, withdraw
	Category        string // inventory, financial
	ItemID          string
	ItemDisplayName string
	Quantity        *decimal.Decimal // nula para lançamentos puramente financeiros
	Value           *decimal.Decimal // nula para lançamentos puramente de inventário
	ServiceType     string           // agrupador de pagamento (ex.: "plantacao")
	Paid            bool
	PaymentID       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuantityOrZero devolve a quantidade ou zero quando nula.
func (t *Transaction) QuantityOrZero() decimal.Decimal {
	if t.Quantity == nil {
		return decimal.Zero
	}
	return *t.Quantity
}

// ValueOrZero devolve o valor ou zero quando nulo.
func (t *Transaction) ValueOrZero() decimal.Decimal {
	if t.Value == nil {
		return decimal.Zero
	}
	return *t.Value
}
