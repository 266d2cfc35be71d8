package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/application/worker"
)

// WorkerHandler atende o CRUD do registro de trabalhadores.
type WorkerHandler struct {
	uc *worker.UseCase
}

// NewWorkerHandler constrói o handler.
func NewWorkerHandler(uc *worker.UseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// Create cadastra um trabalhador manualmente.
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, resp)
}

// List lista os trabalhadores.
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// GetByID obtém um trabalhador.
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// Update edição parcial de um trabalhador.
func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}
