package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateActivityRequest payload de ingestão de atividade (importador de
// eventos do jogo/Discord ou lançamento manual do admin). Campos no formato
// legado do servidor: autor, tipo, item, quantidade, valor, categoria.
type CreateActivityRequest struct {
	Autor      string           `json:"autor"`
	AutorID    string           `json:"autor_id"` // id explícito de payload estruturado
	Tipo       string           `json:"tipo"`
	Item       string           `json:"item"`
	ItemNome   string           `json:"item_nome"`
	Quantidade *decimal.Decimal `json:"quantidade"`
	Valor      *decimal.Decimal `json:"valor"`
	Categoria  string           `json:"categoria"`
	Servico    string           `json:"servico"`
	Timestamp  *time.Time       `json:"timestamp"`
}

// UpdateActivityRequest atualização parcial de uma transação. Campos nulos
// não são tocados; paid/payment_id nunca mudam por aqui.
type UpdateActivityRequest struct {
	Item       *string          `json:"item"`
	ItemNome   *string          `json:"item_nome"`
	Quantidade *decimal.Decimal `json:"quantidade"`
	Valor      *decimal.Decimal `json:"valor"`
	Timestamp  *time.Time       `json:"timestamp"`
}

// ActivityResponse transação serializada para a camada de apresentação.
type ActivityResponse struct {
	ID         string           `json:"id"`
	WorkerID   string           `json:"worker_id,omitempty"`
	Autor      string           `json:"autor,omitempty"`
	Tipo       string           `json:"tipo"`
	Categoria  string           `json:"categoria"`
	Item       string           `json:"item,omitempty"`
	ItemNome   string           `json:"item_nome,omitempty"`
	Quantidade *decimal.Decimal `json:"quantidade,omitempty"`
	Valor      *decimal.Decimal `json:"valor,omitempty"`
	Servico    string           `json:"servico,omitempty"`
	Paid       bool             `json:"paid"`
	PaymentID  *string          `json:"payment_id,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// CreatedResponse resposta mínima de criação.
type CreatedResponse struct {
	ID string `json:"id"`
}
