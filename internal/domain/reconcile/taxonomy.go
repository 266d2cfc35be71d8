package reconcile

import "strings"

// Bucket é a categoria de taxonomia usada na reconciliação.
type Bucket string

const (
	BucketSementes    Bucket = "seed_plant"
	BucketRacao       Bucket = "animal_feed"
	BucketFerramentas Bucket = "tool_bucket"
	BucketConsumiveis Bucket = "consumable"
)

// AllBuckets na ordem de apresentação.
var AllBuckets = []Bucket{BucketSementes, BucketRacao, BucketFerramentas, BucketConsumiveis}

// Kind diz em qual direção um item conta dentro do seu bucket.
type Kind int

const (
	// KindWithdrawal: o item só conta como retirada (ex.: semente, ração).
	KindWithdrawal Kind = iota
	// KindReturn: o item só conta como retorno (ex.: planta, animal).
	KindReturn
	// KindBoth: o mesmo item sai e volta (ex.: balde, consumível genérico).
	KindBoth
)

// Conjuntos de itens conhecidos do servidor. A classificação por afixo
// abaixo cobre variantes novas sem mudança de código.
var (
	plantItems = map[string]struct{}{
		"milho": {}, "trigo": {}, "junco": {}, "cana": {}, "mandioca": {},
		"corn": {}, "wheat": {}, "soja": {},
	}
	animalItems = map[string]struct{}{
		"vaca": {}, "porco": {}, "galinha": {}, "ovelha": {}, "cavalo": {},
		"bufalo": {}, "bode": {},
	}
)

// Classify mapeia um item_id para (bucket, direção). Regras, em ordem:
// afixo de semente -> sementes/retirada; planta conhecida -> sementes/retorno;
// ração -> animais/retirada; animal conhecido -> animais/retorno;
// balde -> ferramentas (ambas direções); resto -> consumível genérico.
func Classify(itemID string) (Bucket, Kind) {
	id := strings.ToLower(strings.TrimSpace(itemID))

	switch {
	case strings.HasPrefix(id, "semente_"), strings.HasPrefix(id, "seed_"),
		strings.HasSuffix(id, "_semente"), strings.HasSuffix(id, "_seed"):
		return BucketSementes, KindWithdrawal
	case isPlant(id):
		return BucketSementes, KindReturn
	case strings.Contains(id, "racao"), strings.Contains(id, "feed"):
		return BucketRacao, KindWithdrawal
	case isAnimal(id):
		return BucketRacao, KindReturn
	case strings.Contains(id, "balde"), strings.Contains(id, "bucket"):
		return BucketFerramentas, KindBoth
	}
	return BucketConsumiveis, KindBoth
}

func isPlant(id string) bool {
	if _, ok := plantItems[id]; ok {
		return true
	}
	return strings.HasPrefix(id, "planta_") || strings.HasPrefix(id, "plant_")
}

func isAnimal(id string) bool {
	if _, ok := animalItems[id]; ok {
		return true
	}
	return strings.HasPrefix(id, "animal_")
}

// CountsAsWithdrawal indica se um item deste kind soma em "withdrawn".
func (k Kind) CountsAsWithdrawal() bool { return k == KindWithdrawal || k == KindBoth }

// CountsAsReturn indica se um item deste kind soma em "returned".
func (k Kind) CountsAsReturn() bool { return k == KindReturn || k == KindBoth }
