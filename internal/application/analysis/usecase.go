// Package analysis monta a visão de reconciliação + pontuação consumida
// pelo dashboard (GET /worker/:id/transactions-analysis). Leitura pura:
// tudo é recalculado das transações correntes a cada chamada.
package analysis

import (
	"context"
	"time"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
	"github.com/fazenda-rp/ledger-api/internal/domain/reconcile"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// UseCase visão de análise por trabalhador.
type UseCase struct {
	txns    repository.TransactionRepository
	workers repository.WorkerRepository
	cfg     reconcile.Config
}

// NewUseCase constrói o caso de uso com as constantes de reconciliação.
func NewUseCase(
	txns repository.TransactionRepository,
	workers repository.WorkerRepository,
	cfg reconcile.Config,
) *UseCase {
	return &UseCase{txns: txns, workers: workers, cfg: cfg}
}

// Analyze reconcilia a janela pedida e agrega a pontuação. Janela aberta
// (from/to nulos) cobre todo o histórico do trabalhador.
func (uc *UseCase) Analyze(ctx context.Context, workerID string, from, to *time.Time) (*dto.AnalysisResponse, error) {
	w, err := uc.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}

	txns, err := uc.txns.List(ctx, repository.TransactionFilter{
		WorkerID: workerID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}

	ledgers := reconcile.Reconcile(txns, uc.cfg)
	score := reconcile.ComputeScore(ledgers, txns, uc.cfg)

	resp := &dto.AnalysisResponse{
		WorkerID:           w.ID,
		WorkerName:         w.DisplayName,
		Categories:         make([]dto.CategoryLedgerDTO, 0, len(ledgers)),
		HonestyScore:       score.HonestyScore.Round(2),
		SuspiciousActivity: score.Suspicious,
		Flags:              score.Flags,
		TransactionCount:   len(txns),
	}
	for _, l := range ledgers {
		resp.Categories = append(resp.Categories, toLedgerDTO(l))
	}
	return resp, nil
}

func toLedgerDTO(l reconcile.CategoryLedger) dto.CategoryLedgerDTO {
	d := dto.CategoryLedgerDTO{
		Category:   string(l.Bucket),
		Withdrawn:  l.Withdrawn,
		Returned:   l.Returned,
		Net:        l.Net,
		Efficiency: l.Efficiency.Round(2),
		Notes:      l.Notes,
	}
	if l.Bucket == reconcile.BucketFerramentas {
		shortfall := l.Shortfall
		cost := l.ShortfallCost.Round(2)
		d.Shortfall = &shortfall
		d.ShortfallCost = &cost
	}
	return d
}
