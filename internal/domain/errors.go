package domain

import "errors"

// Erros de domínio (sem dependências externas). Os handlers HTTP traduzem
// cada um para o status e código de resposta correspondentes.
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// Máquina de estados de pagamento.
	ErrAlreadyPaid = errors.New("transação já paga")
	ErrNotPaid     = errors.New("transação não está paga")

	// Operação em lote colidiu com mutação concorrente; já houve uma
	// retentativa interna antes de chegar ao chamador.
	ErrConcurrencyConflict = errors.New("conflito de concorrência")

	// Falha durante o rename global de item. A operação é tudo-ou-nada:
	// o chamador deve repetir o rename inteiro, nunca retomá-lo.
	ErrRenamePartial = errors.New("falha no rename global de item")
)
