package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/analysis"
)

// AnalysisHandler atende a visão de reconciliação + pontuação.
type AnalysisHandler struct {
	uc *analysis.UseCase
}

// NewAnalysisHandler constrói o handler.
func NewAnalysisHandler(uc *analysis.UseCase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Analyze devolve os extratos por categoria e a pontuação do trabalhador.
// Janela opcional via query ?de=&ate= (RFC3339 ou 2006-01-02).
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "de")
	if err != nil {
		return badBody(c)
	}
	to, err := parseTimeQuery(c, "ate")
	if err != nil {
		return badBody(c)
	}

	resp, err := h.uc.Analyze(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}
