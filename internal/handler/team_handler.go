package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/middleware"
	"github.com/prompt-arena/arena-api/internal/service"
	"github.com/prompt-arena/arena-api/internal/utils"
)

// TeamHandler manages team registration and authentication endpoints.
type TeamHandler struct {
	service service.TeamService
	logger  zerolog.Logger
}

// NewTeamHandler builds a team handler instance.
func NewTeamHandler(service service.TeamService, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		logger:  logger.With().Str("component", "team_handler").Logger(),
	}
}

// Register attaches the public routes to the provided router group.
func (h *TeamHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected attaches the authenticated routes.
func (h *TeamHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
}

func (h *TeamHandler) register(c *fiber.Ctx) error {
	var payload dto.TeamRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, err := h.service.Register(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "team registered", team)
}

func (h *TeamHandler) login(c *fiber.Ctx) error {
	var payload dto.TeamLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "login successful", session)
}

func (h *TeamHandler) me(c *fiber.Ctx) error {
	teamID, ok := middleware.TeamIDFromLocals(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	team, err := h.service.Get(c.Context(), teamID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team retrieved", team)
}

func (h *TeamHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTeamNameTaken):
		return utils.SendError(c, fiber.StatusConflict, "team name already taken")
	case errors.Is(err, service.ErrInvalidAccessCode):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid access code")
	case errors.Is(err, service.ErrTeamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "team not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
