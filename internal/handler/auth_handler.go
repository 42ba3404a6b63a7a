package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/service"
	"github.com/roundonehq/r1-interview-api/internal/utils"
)

// AuthHandler handles candidate and admin authentication.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires authentication routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.candidateLogin)
	router.Post("/login/token", h.tokenLogin)
	router.Post("/admin/login", h.adminLogin)
}

func (h *AuthHandler) candidateLogin(c *fiber.Ctx) error {
	var payload dto.CandidateLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CandidateLogin(c.Context(), payload)
	if err != nil {
		return h.loginError(c, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) tokenLogin(c *fiber.Ctx) error {
	var payload dto.TokenLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	// Magic links arrive as ?token=... on the landing page; accept both forms.
	if payload.Token == "" {
		payload.Token = c.Query("token")
	}

	response, err := h.service.TokenLogin(c.Context(), payload)
	if err != nil {
		return h.loginError(c, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	var payload dto.AdminLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.AdminLogin(c.Context(), payload)
	if err != nil {
		return h.loginError(c, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) loginError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}
}
