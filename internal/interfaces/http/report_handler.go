package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nordkassa/kassa-api/internal/application/dto"
	"github.com/nordkassa/kassa-api/internal/application/reports"
	"github.com/nordkassa/kassa-api/internal/domain"
)

// ReportHandler serves X and Z POS reports, on screen or as PDF.
type ReportHandler struct {
	uc  *reports.ReportUseCase
	pdf reports.ReportPDFGenerator
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.ReportUseCase, pdf reports.ReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// GenerateX builds an interim X-report for a session.
// GET /api/sessions/:id/reports/x[?format=pdf]
func (h *ReportHandler) GenerateX(c *fiber.Ctx) error {
	return h.generate(c, h.uc.GenerateX)
}

// GenerateZ builds the end-of-session Z-report. The session must be closed.
// POST /api/sessions/:id/reports/z[?format=pdf]
func (h *ReportHandler) GenerateZ(c *fiber.Ctx) error {
	return h.generate(c, h.uc.GenerateZ)
}

func (h *ReportHandler) generate(c *fiber.Ctx, fn func(context.Context, int64) (*reports.Report, error)) error {
	sessionID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid session id"})
	}

	report, err := fn(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "session not found"})
		}
		if errors.Is(err, domain.ErrSessionOpen) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_OPEN", Message: "session must be closed before generating a Z-report"})
		}
		log.Error().Err(err).Int64("session_id", sessionID).Msg("report generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	if c.Query("format") == "pdf" {
		pdfBytes, err := h.pdf.GenerateReportPDF(c.Context(), report)
		if err != nil {
			log.Error().Err(err).Int64("session_id", sessionID).Msg("report pdf rendering failed")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		filename := fmt.Sprintf("%s-rapport_%s.pdf", report.Type, report.SessionNumber)
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(pdfBytes)
	}
	return c.JSON(dto.NewReportResponse(report))
}
