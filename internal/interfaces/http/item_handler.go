package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/application/item"
)

// ItemHandler atende o rename global de itens.
type ItemHandler struct {
	uc *item.UseCase
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *item.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Rename reescreve todas as referências de um item no histórico.
func (h *ItemHandler) Rename(c *fiber.Ctx) error {
	var in dto.GlobalItemUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Rename(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}
