package dto

import "time"

// CreateWorkerRequest cadastro manual de trabalhador.
type CreateWorkerRequest struct {
	Nome   string `json:"nome"`
	FixoID string `json:"fixo_id"`
	Role   string `json:"role"` // worker (default), manager
}

// UpdateWorkerRequest atualização parcial de trabalhador.
type UpdateWorkerRequest struct {
	Nome   *string `json:"nome"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// WorkerResponse trabalhador serializado.
type WorkerResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	FixoID    string    `json:"fixo_id,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
