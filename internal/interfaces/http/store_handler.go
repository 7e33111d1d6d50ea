package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nordkassa/kassa-api/internal/application/dto"
	"github.com/nordkassa/kassa-api/internal/domain/repository"
)

// StoreHandler serves the read-only store and session browsing endpoints.
type StoreHandler struct {
	storeRepo   repository.StoreRepository
	sessionRepo repository.SessionRepository
}

// NewStoreHandler builds the handler.
func NewStoreHandler(storeRepo repository.StoreRepository, sessionRepo repository.SessionRepository) *StoreHandler {
	return &StoreHandler{storeRepo: storeRepo, sessionRepo: sessionRepo}
}

// List returns all stores.
// GET /api/stores
func (h *StoreHandler) List(c *fiber.Ctx) error {
	stores, err := h.storeRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.NewStoreResponse(s))
	}
	return c.JSON(out)
}

// GetByID returns one store.
// GET /api/stores/:id
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid store id"})
	}
	store, err := h.storeRepo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if store == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "store not found"})
	}
	return c.JSON(dto.NewStoreResponse(store))
}

// ListSessions returns the closed sessions of a store in a date range.
// GET /api/stores/:id/sessions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *StoreHandler) ListSessions(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid store id"})
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid to date, expected YYYY-MM-DD"})
	}

	store, err := h.storeRepo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if store == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "store not found"})
	}

	sessions, err := h.sessionRepo.ListClosedInRange(id, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.NewSessionResponse(s))
	}
	return c.JSON(out)
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
