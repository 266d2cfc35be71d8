// Package identity normaliza os tokens de autor heterogêneos que chegam
// do importador de eventos (logs do jogo e do bot do Discord) para uma
// identidade canônica de trabalhador.
//
// Formatos historicamente usados:
//
//	"Maria Silva"
//	"Maria Silva | FIXO: 123"
//	payload estruturado com campos autor/id explícitos
//
// A resolução é pura e determinística: mesma entrada, mesma versão de
// regras, mesma saída.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Nomes de sistema/bot que nunca resolvem para um trabalhador. A atividade
// permanece no ledger, mas fica fora das métricas por trabalhador.
var reservedNames = map[string]struct{}{
	"fazenda":      {},
	"sistema":      {},
	"system":       {},
	"bau":          {}, // baú compartilhado
	"admin":        {},
	"discord bot":  {},
	"fazenda bot":  {},
	"auto-sistema": {},
}

var fixoPattern = regexp.MustCompile(`(?i)fixo\s*[:#]?\s*(\d+)`)

// RawAuthor é a entrada bruta de autor tal como chega da ingestão.
// Name cobre os formatos em texto; AuthorField/IDField cobrem payloads
// estruturados com campos explícitos.
type RawAuthor struct {
	Name        string
	AuthorField string // campo autor explícito de payload estruturado
	IDField     string // campo id explícito de payload estruturado
}

// Identity é o resultado da resolução.
type Identity struct {
	DisplayName string
	NameKey     string // forma normalizada para lookup (minúsculas, sem acento)
	FixoID      string
	Reserved    bool // autor de sistema/bot: sem identidade de trabalhador
}

// Resolver aplica as regras de resolução em ordem fixa.
type Resolver struct {
	reserved map[string]struct{}
}

// NewResolver cria o resolvedor. extraReserved adiciona nomes reservados
// vindos de configuração ao conjunto fixo.
func NewResolver(extraReserved []string) *Resolver {
	r := &Resolver{reserved: make(map[string]struct{}, len(reservedNames)+len(extraReserved))}
	for name := range reservedNames {
		r.reserved[name] = struct{}{}
	}
	for _, name := range extraReserved {
		if key := NormalizeKey(name); key != "" {
			r.reserved[key] = struct{}{}
		}
	}
	return r
}

// Resolve aplica a ordem: campo estruturado explícito -> segmento primário
// do delimitador "|" -> token bruto. Tokens reservados devolvem
// Identity{Reserved: true}.
func (r *Resolver) Resolve(raw RawAuthor) Identity {
	name := raw.Name
	fixo := strings.TrimSpace(raw.IDField)

	// 1) Payload estruturado tem prioridade sobre qualquer parsing de texto.
	if raw.AuthorField != "" {
		name = raw.AuthorField
	}

	// 2) Segmento primário antes do "|"; o restante pode conter o FIXO.
	if idx := strings.Index(name, "|"); idx >= 0 {
		rest := name[idx+1:]
		name = name[:idx]
		if fixo == "" {
			if m := fixoPattern.FindStringSubmatch(rest); m != nil {
				fixo = m[1]
			}
		}
	}

	// 3) Token bruto como está.
	name = strings.TrimSpace(name)
	key := NormalizeKey(name)

	if key == "" {
		return Identity{Reserved: true}
	}
	if _, ok := r.reserved[key]; ok {
		return Identity{DisplayName: name, NameKey: key, Reserved: true}
	}

	return Identity{
		DisplayName: name,
		NameKey:     key,
		FixoID:      fixo,
	}
}

// NormalizeKey reduz um nome à forma de lookup: minúsculas, acentos
// removidos (NFD + remoção de marcas combinantes) e espaços colapsados.
func NormalizeKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}
