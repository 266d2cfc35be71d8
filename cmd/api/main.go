package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fazenda-rp/ledger-api/internal/application/activity"
	"github.com/fazenda-rp/ledger-api/internal/application/analysis"
	"github.com/fazenda-rp/ledger-api/internal/application/item"
	"github.com/fazenda-rp/ledger-api/internal/application/payment"
	"github.com/fazenda-rp/ledger-api/internal/application/worker"
	"github.com/fazenda-rp/ledger-api/internal/domain/identity"
	"github.com/fazenda-rp/ledger-api/internal/domain/reconcile"
	"github.com/fazenda-rp/ledger-api/internal/domain/repository"
	"github.com/fazenda-rp/ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/fazenda-rp/ledger-api/internal/infrastructure/pdf"
	"github.com/fazenda-rp/ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/fazenda-rp/ledger-api/internal/interfaces/http"
	"github.com/fazenda-rp/ledger-api/pkg/config"
	"github.com/fazenda-rp/ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()

	// Store: PostgreSQL quando configurado, memória para desenvolvimento.
	var (
		txnRepo     repository.TransactionRepository
		paymentRepo repository.PaymentRepository
		workerRepo  repository.WorkerRepository
		txRunner    payment.TxRunner
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão a PostgreSQL")
		}
		defer pool.Close()
		txnRepo = postgres.NewTransactionRepository(pool)
		paymentRepo = postgres.NewPaymentRepository(pool)
		workerRepo = postgres.NewWorkerRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		log.Info().Msg("store PostgreSQL pronto")
	} else {
		store := memory.NewStore()
		txnRepo = store.Transactions()
		paymentRepo = store.Payments()
		workerRepo = store.Workers()
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("DATABASE_URL ausente, usando store em memória (dados voláteis)")
	}

	resolver := identity.NewResolver(cfg.Ledger.AutoresReservados)
	reconcileCfg := reconcile.NewConfig(reconcile.Params{
		RatioSementePlanta:       cfg.Ledger.RatioSementePlanta,
		RatioRacaoAnimal:         cfg.Ledger.RatioRacaoAnimal,
		RatioConsumivel:          cfg.Ledger.RatioConsumivel,
		CustoReposicaoBalde:      cfg.Ledger.CustoReposicaoBalde,
		LimiarEficienciaBaixa:    cfg.Ledger.LimiarEficienciaBaixa,
		QuantidadeMaximaRazoavel: cfg.Ledger.QuantidadeMaximaRazoavel,
		PesoSementes:             cfg.Ledger.PesoSementes,
		PesoFerramentas:          cfg.Ledger.PesoFerramentas,
		PesoRacao:                cfg.Ledger.PesoRacao,
		PesoConsumiveis:          cfg.Ledger.PesoConsumiveis,
	})

	activityUC := activity.NewUseCase(txnRepo, workerRepo, resolver, txRunner)
	paymentUC := payment.NewUseCase(txRunner, paymentRepo)
	analysisUC := analysis.NewUseCase(txnRepo, workerRepo, reconcileCfg)
	itemUC := item.NewUseCase(txnRepo)
	workerUC := worker.NewUseCase(workerRepo)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := payment.NewReceiptUseCase(paymentRepo, txnRepo, workerRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ActivityUC: activityUC,
		PaymentUC:  paymentUC,
		ReceiptUC:  receiptUC,
		AnalysisUC: analysisUC,
		ItemUC:     itemUC,
		WorkerUC:   workerUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
