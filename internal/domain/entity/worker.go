package entity

import "time"

// Papéis de trabalhador.
const (
	RoleWorker  = "worker"
	RoleManager = "manager"
)

// Worker é a identidade canônica de um trabalhador da fazenda.
// Transações o referenciam por ID, mas podem carregar um autor legado
// em texto; o resolvedor de identidade colapsa ambos na mesma entidade.
type Worker struct {
	ID          string
	DisplayName string
	NameKey     string // nome normalizado (minúsculas, sem acento) para lookup
	FixoID      string // registro do jogo, extraído de tokens "Nome | FIXO: 123"
	Role        string // worker, manager
	Active      bool
	CreatedAt   time.Time
}
