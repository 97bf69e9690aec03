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

// SubmissionHandler manages the submit-and-score endpoints.
type SubmissionHandler struct {
	service service.ScoringService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.ScoringService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.submit)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	teamID, ok := middleware.TeamIDFromLocals(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Submit(c.Context(), teamID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission scored", submission)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	teamID, ok := middleware.TeamIDFromLocals(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var round *int
	if parsed, err := parseQueryInt(c, "round"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid round filter")
	} else if parsed > 0 {
		round = &parsed
	}

	submissions, err := h.service.List(c.Context(), teamID, round)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "team not found")
	case errors.Is(err, service.ErrChallengeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no active challenge for this round")
	case errors.Is(err, service.ErrRoundLocked):
		return utils.SendError(c, fiber.StatusForbidden, "round is not accessible")
	case errors.Is(err, service.ErrEmptyPrompt):
		return utils.SendError(c, fiber.StatusBadRequest, "prompt must not be empty")
	case errors.Is(err, service.ErrGenerationUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "generation service unavailable, submission not scored")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
