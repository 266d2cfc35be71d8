package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/payment"
)

// PaymentHandler atende as cinco operações do ledger de pagamentos e o
// comprovante em PDF.
type PaymentHandler struct {
	uc      *payment.UseCase
	receipt *payment.ReceiptUseCase
}

// NewPaymentHandler constrói o handler.
func NewPaymentHandler(uc *payment.UseCase, receipt *payment.ReceiptUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc, receipt: receipt}
}

// PayAll paga todas as transações pendentes do trabalhador no serviço.
func (h *PaymentHandler) PayAll(c *fiber.Ctx) error {
	resp, err := h.uc.PayAllOfType(c.Context(), c.Params("id"), c.Params("service_type"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// PayOne paga uma única transação.
func (h *PaymentHandler) PayOne(c *fiber.Ctx) error {
	resp, err := h.uc.PayOne(c.Context(), c.Params("id"), c.Params("service_type"), c.Params("txn_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// UnpayOne reverte o pagamento de uma transação.
func (h *PaymentHandler) UnpayOne(c *fiber.Ctx) error {
	if err := h.uc.UnpayOne(c.Context(), c.Params("id"), c.Params("service_type"), c.Params("txn_id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"unpaid": true})
}

// UnpayAll reverte todos os pagamentos do trabalhador no serviço.
func (h *PaymentHandler) UnpayAll(c *fiber.Ctx) error {
	resp, err := h.uc.UnpayAll(c.Context(), c.Params("id"), c.Params("service_type"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// GetPayment leitura de um pagamento.
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	resp, err := h.uc.GetPayment(c.Context(), c.Params("payment_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, resp)
}

// DeletePayment despaga o conjunto coberto e remove o pagamento.
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	if err := h.uc.DeletePayment(c.Context(), c.Params("payment_id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// Receipt devolve o comprovante do pagamento em PDF.
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.Generate(c.Context(), c.Params("payment_id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprovante-`+c.Params("payment_id")+`.pdf"`)
	return c.Send(pdfBytes)
}
