package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nordkassa/kassa-api/internal/application/reports"
	appsaft "github.com/nordkassa/kassa-api/internal/application/saft"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	StoreRepo    repository.StoreRepository
	SessionRepo  repository.SessionRepository
	GenerateSaft *appsaft.GenerateUseCase
	Reports      *reports.ReportUseCase
	ReportPDF    reports.ReportPDFGenerator
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stores (read-only; stores are synced by the platform)
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreRepo, deps.SessionRepo)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Get("/:id/sessions", storeHandler.ListSessions)

	// SAF-T Cash Register export
	saftHandler := NewSaftHandler(deps.GenerateSaft)
	stores.Post("/:id/saft", saftHandler.Generate)
	stores.Get("/:id/saft/exports", saftHandler.ListExports)

	// X/Z reports per session
	sessions := api.Group("/sessions")
	reportHandler := NewReportHandler(deps.Reports, deps.ReportPDF)
	sessions.Get("/:id/reports/x", reportHandler.GenerateX)
	sessions.Post("/:id/reports/z", reportHandler.GenerateZ)
}
