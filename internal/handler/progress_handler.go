package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-api/internal/middleware"
	"github.com/prompt-arena/arena-api/internal/service"
	"github.com/prompt-arena/arena-api/internal/utils"
)

// ProgressHandler serves a team's derived round-unlock state.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler builds a progress handler instance.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *ProgressHandler) get(c *fiber.Ctx) error {
	teamID, ok := middleware.TeamIDFromLocals(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	progress, err := h.service.Get(c.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "team not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}
