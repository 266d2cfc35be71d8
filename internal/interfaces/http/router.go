package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fazenda-rp/ledger-api/internal/application/activity"
	"github.com/fazenda-rp/ledger-api/internal/application/analysis"
	"github.com/fazenda-rp/ledger-api/internal/application/item"
	"github.com/fazenda-rp/ledger-api/internal/application/payment"
	"github.com/fazenda-rp/ledger-api/internal/application/worker"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ActivityUC *activity.UseCase
	PaymentUC  *payment.UseCase
	ReceiptUC  *payment.ReceiptUseCase
	AnalysisUC *analysis.UseCase
	ItemUC     *item.UseCase
	WorkerUC   *worker.UseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Log de atividade
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities := api.Group("/activity")
	activities.Post("/", activityHandler.Append)
	activities.Get("/", activityHandler.List)
	activities.Get("/:id", activityHandler.GetByID)
	activities.Put("/:id", activityHandler.Update)
	activities.Delete("/:id", activityHandler.Delete)

	// Trabalhadores: pagamentos, análise e CRUD
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.ReceiptUC)
	analysisHandler := NewAnalysisHandler(deps.AnalysisUC)
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers := api.Group("/worker")
	workers.Post("/", workerHandler.Create)
	workers.Get("/", workerHandler.List)
	workers.Get("/:id", workerHandler.GetByID)
	workers.Put("/:id", workerHandler.Update)
	workers.Post("/:id/pay/:service_type", paymentHandler.PayAll)
	workers.Post("/:id/pay-transaction/:service_type/:txn_id", paymentHandler.PayOne)
	workers.Post("/:id/unpay/:service_type/:txn_id", paymentHandler.UnpayOne)
	workers.Post("/:id/unpay-all/:service_type", paymentHandler.UnpayAll)
	workers.Get("/:id/transactions-analysis", analysisHandler.Analyze)

	// Pagamentos
	payments := api.Group("/payment")
	payments.Get("/:payment_id", paymentHandler.GetPayment)
	payments.Delete("/:payment_id", paymentHandler.DeletePayment)
	payments.Get("/:payment_id/receipt", paymentHandler.Receipt)

	// Rename global de item
	itemHandler := NewItemHandler(deps.ItemUC)
	api.Put("/global-item-update", itemHandler.Rename)
}
