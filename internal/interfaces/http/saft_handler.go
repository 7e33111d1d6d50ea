package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nordkassa/kassa-api/internal/application/dto"
	appsaft "github.com/nordkassa/kassa-api/internal/application/saft"
	"github.com/nordkassa/kassa-api/internal/domain"
)

// SaftHandler serves the SAF-T Cash Register export endpoints.
type SaftHandler struct {
	uc *appsaft.GenerateUseCase
}

// NewSaftHandler builds the handler.
func NewSaftHandler(uc *appsaft.GenerateUseCase) *SaftHandler {
	return &SaftHandler{uc: uc}
}

// Generate builds the audit file and returns it as an XML attachment.
// POST /api/stores/:id/saft
func (h *SaftHandler) Generate(c *fiber.Ctx) error {
	storeID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid store id"})
	}
	var in dto.GenerateSaftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}

	result, err := h.uc.Generate(c.Context(), storeID, in.FromDate, in.ToDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "store not found"})
		}
		log.Error().Err(err).Int64("store_id", storeID).Msg("saft generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.Send(result.XML)
}

// ListExports returns the export history of a store.
// GET /api/stores/:id/saft/exports
func (h *SaftHandler) ListExports(c *fiber.Ctx) error {
	storeID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid store id"})
	}
	exports, err := h.uc.ListExports(c.Context(), storeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "store not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SaftExportResponse, 0, len(exports))
	for _, e := range exports {
		out = append(out, dto.NewSaftExportResponse(e))
	}
	return c.JSON(out)
}
