// Package memory implementa os portos de persistência sobre mapas em
// memória protegidos por RWMutex, mais um TxRunner com commit
// copy-on-write. É o gêmeo transacional do adaptador PostgreSQL: serve o
// modo de desenvolvimento (sem DATABASE_URL) e os testes da camada de
// aplicação.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/fazenda-rp/ledger-api/internal/domain/entity"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// Store é o estado compartilhado. Leituras concorrem livremente; toda
// mutação (direta ou via TxRunner) serializa no mesmo mutex, o que cumpre
// a garantia de exclusão por id exigida pela máquina de pagamentos.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Transactions devolve o repositório de transações atado ao store.
func (s *Store) Transactions() repository.TransactionRepository {
	return &TransactionRepo{s: s}
}

// Payments devolve o repositório de pagamentos atado ao store.
func (s *Store) Payments() repository.PaymentRepository {
	return &PaymentRepo{s: s}
}

// Workers devolve o repositório de trabalhadores atado ao store.
func (s *Store) Workers() repository.WorkerRepository {
	return &WorkerRepo{s: s}
}

// dataset é o conteúdo versionado do store. O TxRunner clona o dataset,
// aplica a função nele e só então troca o ponteiro (commit) — um erro
// descarta o clone (rollback).
type dataset struct {
	txns     map[string]*entity.Transaction
	payments map[string]*entity.Payment
	workers  map[string]*entity.Worker
}

func newDataset() *dataset {
	return &dataset{
		txns:     make(map[string]*entity.Transaction),
		payments: make(map[string]*entity.Payment),
		workers:  make(map[string]*entity.Worker),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		txns:     make(map[string]*entity.Transaction, len(d.txns)),
		payments: make(map[string]*entity.Payment, len(d.payments)),
		workers:  make(map[string]*entity.Worker, len(d.workers)),
	}
	for id, t := range d.txns {
		c.txns[id] = cloneTxn(t)
	}
	for id, p := range d.payments {
		c.payments[id] = clonePayment(p)
	}
	for id, w := range d.workers {
		wc := *w
		c.workers[id] = &wc
	}
	return c
}

// cloneTxn copia a transação inclusive os campos ponteiro, para que o
// chamador nunca enxergue (nem mute) o estado interno do store.
func cloneTxn(t *entity.Transaction) *entity.Transaction {
	c := *t
	if t.Quantity != nil {
		q := *t.Quantity
		c.Quantity = &q
	}
	if t.Value != nil {
		v := *t.Value
		c.Value = &v
	}
	if t.PaymentID != nil {
		p := *t.PaymentID
		c.PaymentID = &p
	}
	return &c
}

func clonePayment(p *entity.Payment) *entity.Payment {
	c := *p
	c.TransactionIDs = append([]string(nil), p.TransactionIDs...)
	return &c
}

// matchesFilter aplica o filtro de listagem a uma transação.
func matchesFilter(t *entity.Transaction, f repository.TransactionFilter) bool {
	if f.WorkerID != "" && t.WorkerID != f.WorkerID {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.ItemID != "" && t.ItemID != f.ItemID {
		return false
	}
	if f.ServiceType != "" && t.ServiceType != f.ServiceType {
		return false
	}
	if f.From != nil && t.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// sortTxns ordena por timestamp (empate resolvido por id para estabilidade).
func sortTxns(list []*entity.Transaction, descending bool) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			if descending {
				return a.Timestamp.After(b.Timestamp)
			}
			return a.Timestamp.Before(b.Timestamp)
		}
		if descending {
			return strings.Compare(a.ID, b.ID) > 0
		}
		return strings.Compare(a.ID, b.ID) < 0
	})
}
