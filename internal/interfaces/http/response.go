package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/dto"
	"github.com/fazenda-rp/ledger-api/internal/domain"
)

// ok serializa o envelope de sucesso.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// fail traduz o erro de domínio para status + envelope de erro.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "recurso não encontrado"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "dados inválidos"))
	case errors.Is(err, domain.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("ALREADY_PAID", "transação já paga"))
	case errors.Is(err, domain.ErrNotPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("NOT_PAID", "transação não está paga"))
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CONFLICT", "conflito de concorrência, tente novamente"))
	case errors.Is(err, domain.ErrRenamePartial):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("RENAME_PARTIAL", "rename falhou; repita a operação inteira"))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// Prazo da requisição estourou no meio da operação: retentável.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("TIMEOUT", "tempo esgotado, tente novamente"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", err.Error()))
}

// badBody resposta padrão para corpo não parseável.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "corpo inválido"))
}
