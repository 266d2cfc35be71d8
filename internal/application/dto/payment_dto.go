package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResponse pagamento serializado com o conjunto coberto.
type PaymentResponse struct {
	ID             string          `json:"id"`
	WorkerID       string          `json:"worker_id"`
	Servico        string          `json:"servico"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Receipt        string          `json:"receipt,omitempty"`
	TransactionIDs []string        `json:"transaction_ids"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PayAllResponse resultado de payAllOfType. PaidCount zero significa que
// não havia nada a pagar (não é erro) e nenhum pagamento foi criado.
type PayAllResponse struct {
	PaymentID  *string         `json:"payment_id,omitempty"`
	PaidCount  int             `json:"paid_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// UnpayAllResponse resultado de unpayAll.
type UnpayAllResponse struct {
	UnpaidCount     int      `json:"unpaid_count"`
	DeletedPayments []string `json:"deleted_payments,omitempty"`
}
