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
	"github.com/shopspring/decimal"

	appreports "github.com/nordkassa/kassa-api/internal/application/reports"
	appsaft "github.com/nordkassa/kassa-api/internal/application/saft"
	domainsaft "github.com/nordkassa/kassa-api/internal/domain/saft"
	infrapdf "github.com/nordkassa/kassa-api/internal/infrastructure/pdf"
	"github.com/nordkassa/kassa-api/internal/infrastructure/postgres"
	infrasaft "github.com/nordkassa/kassa-api/internal/infrastructure/saft"
	httpRouter "github.com/nordkassa/kassa-api/internal/interfaces/http"
	"github.com/nordkassa/kassa-api/pkg/config"
	"github.com/nordkassa/kassa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	exportRepo := postgres.NewExportRepository(pool)

	vat := domainsaft.StandardVATPolicy()
	if cfg.SAFT.VATRate != "" {
		rate, err := decimal.NewFromString(cfg.SAFT.VATRate)
		if err != nil {
			log.Fatal().Err(err).Str("rate", cfg.SAFT.VATRate).Msg("SAFT_VAT_RATE")
		}
		vat = domainsaft.NewVATPolicy(rate)
	}

	xmlBuilder := infrasaft.NewXMLBuilderService()
	generateSaftUC := appsaft.NewGenerateUseCase(
		storeRepo, sessionRepo, exportRepo, xmlBuilder,
		appsaft.Config{
			Software: infrasaft.SoftwareInfo{
				CompanyName: cfg.SAFT.SoftwareCompanyName,
				Name:        cfg.SAFT.SoftwareName,
				ID:          cfg.SAFT.SoftwareID,
				Version:     cfg.SAFT.SoftwareVersion,
			},
			VAT: vat,
		},
		nil,
	)

	reportUC := appreports.NewReportUseCase(storeRepo, sessionRepo, eventRepo, vat, nil)

	// PDF: printable rendition of the X/Z report
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nordkassa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreRepo:    storeRepo,
		SessionRepo:  sessionRepo,
		GenerateSaft: generateSaftUC,
		Reports:      reportUC,
		ReportPDF:    pdfGenerator,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
