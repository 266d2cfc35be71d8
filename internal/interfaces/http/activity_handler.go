package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/activity"
	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
)

// ActivityHandler atende as rotas do log de atividade.
type ActivityHandler struct {
	uc *activity.UseCase
}

// NewActivityHandler constrói o handler.
func NewActivityHandler(uc *activity.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Append ingere uma transação nova.
func (h *ActivityHandler) Append(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Append(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, dto.CreatedResponse{ID: resp.ID})
}

// List lista transações com filtros de query.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	f := repository.TransactionFilter{
		WorkerID:    c.Query("worker_id"),
		Category:    c.Query("categoria"),
		Type:        c.Query("tipo"),
		ItemID:      c.Query("item"),
		ServiceType: c.Query("servico"),
		Descending:  c.Query("ordem") == "desc",
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}
	var err error
	if f.From, err = parseTimeQuery(c, "de"); err != nil {
		return badBody(c)
	}
	if f.To, err = parseTimeQuery(c, "ate"); err != nil {
		return badBody(c)
	}

	list, err := h.uc.List(c.Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// GetByID obtém uma transação.
func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// Update edição parcial de uma transação.
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// Delete remove uma transação.
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// parseTimeQuery lê um parâmetro RFC3339 ou data simples (2006-01-02).
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	ts = ts.UTC()
	return &ts, nil
}
