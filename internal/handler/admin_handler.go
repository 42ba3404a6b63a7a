package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/internal/service"
	"github.com/roundonehq/r1-interview-api/internal/utils"
)

// AdminHandler handles invites and the results dashboard.
type AdminHandler struct {
	invites   service.InviteService
	dashboard service.AdminDashboardService
	logger    zerolog.Logger
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(invites service.InviteService, dashboard service.AdminDashboardService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		invites:   invites,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires admin routes.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/invites", h.invite)
	router.Post("/invites/bulk", h.bulkInvite)
	router.Get("/dashboard", h.getDashboard)
	router.Get("/export", h.exportCSV)
}

func (h *AdminHandler) invite(c *fiber.Ctx) error {
	var payload dto.InviteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.invites.Invite(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("invite failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "invite failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "candidate invited", response)
}

func (h *AdminHandler) bulkInvite(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "csv file is required")
	}

	opened, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read csv file")
	}
	defer opened.Close()

	response, err := h.invites.BulkInvite(c.Context(), opened)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCSV) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid csv file")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("bulk invite failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "bulk invite failed")
	}

	return utils.SendSuccess(c, "bulk invite processed", response)
}

func (h *AdminHandler) getDashboard(c *fiber.Ctx) error {
	filter := repository.CandidateFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = &status
	}

	response, err := h.dashboard.GetDashboard(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", response)
}

func (h *AdminHandler) exportCSV(c *fiber.Ctx) error {
	payload, err := h.dashboard.ExportCSV(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export results")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export results")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.csv"`)
	return c.Send(payload)
}
