package dto

import "github.com/shopspring/decimal"

// CategoryLedgerDTO extrato derivado de um bucket da taxonomia.
type CategoryLedgerDTO struct {
	Category   string          `json:"category"`
	Withdrawn  decimal.Decimal `json:"withdrawn"`
	Returned   decimal.Decimal `json:"returned"`
	Net        decimal.Decimal `json:"net"`
	Efficiency decimal.Decimal `json:"efficiency"`

	// Somente tool_bucket.
	Shortfall     *decimal.Decimal `json:"shortfall,omitempty"`
	ShortfallCost *decimal.Decimal `json:"shortfall_cost,omitempty"`

	Notes []string `json:"notes,omitempty"`
}

// AnalysisResponse saída de GET /worker/:id/transactions-analysis.
type AnalysisResponse struct {
	WorkerID           string              `json:"worker_id"`
	WorkerName         string              `json:"worker_name"`
	Categories         []CategoryLedgerDTO `json:"categories"`
	HonestyScore       decimal.Decimal     `json:"honesty_score"`
	SuspiciousActivity bool                `json:"suspicious_activity"`
	Flags              []string            `json:"flags,omitempty"`
	TransactionCount   int                 `json:"transaction_count"`
}
