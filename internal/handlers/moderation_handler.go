package handlers

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	reports *services.ReportService
	actions *services.ActionService
	stats   *services.StatsService
}

func NewModerationHandler(reports *services.ReportService, actions *services.ActionService, stats *services.StatsService) *ModerationHandler {
	return &ModerationHandler{reports: reports, actions: actions, stats: stats}
}

func (h *ModerationHandler) SubmitReport(c *fiber.Ctx) error {
	reporterID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "unauthorized", Message: "Unauthorized",
		})
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid request body",
		})
	}

	resp, err := h.reports.Submit(c.Context(), reporterID, &req)
	if err != nil {
		return moderationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := dto.QueueQuery{
		Status:      c.Query("status", ""),
		Priority:    c.Query("priority", ""),
		ContentType: c.Query("content_type", ""),
		Page:        page,
		Limit:       limit,
	}

	resp, err := h.reports.List(c.Context(), query)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) GetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid report ID",
		})
	}

	resp, err := h.reports.Get(c.Context(), reportID)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ReviewReport(c *fiber.Ctx) error {
	reviewerID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "unauthorized", Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid report ID",
		})
	}

	var req dto.ReviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid request body",
		})
	}

	resp, err := h.actions.Review(c.Context(), reviewerID, reportID, &req)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.stats.Overview(c.Context(), c.Query("timeframe", "7d"))
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(resp)
}

// moderationError maps service errors to stable machine-readable codes.
// Anything unrecognized is a persistence-level failure and stays opaque.
func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateReport):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "duplicate_report", Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyReviewed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Code: "already_reviewed", Message: err.Error(),
		})
	case errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: "not_found", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Code: "server_error", Message: "Internal server error",
		})
	}
}
