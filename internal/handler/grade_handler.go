package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/dto"
	"github.com/prompt-arena/arena-go-api/internal/service"
	"github.com/prompt-arena/arena-go-api/internal/utils"
	"github.com/prompt-arena/arena-go-api/pkg/ai"
)

// GradeHandler accepts prompt submissions and returns the grading outcome.
type GradeHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(service service.SubmissionService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register wires the grade route.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *GradeHandler) submit(c *fiber.Ctx) error {
	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return utils.SendError(c, fiber.StatusBadRequest, "name, email, category and prompt are required")
		case errors.Is(err, service.ErrUnknownCategory):
			return utils.SendError(c, fiber.StatusNotFound, "unknown category")
		case errors.Is(err, ai.ErrUpstreamTimeout):
			return utils.SendError(c, fiber.StatusGatewayTimeout, "model upstream timed out")
		default:
			h.logger.Error().Err(err).Str("category", payload.Category).Msg("failed to grade submission")
			return utils.SendError(c, fiber.StatusInternalServerError, "grading failed")
		}
	}

	return c.JSON(response)
}
