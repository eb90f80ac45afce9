package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/dto"
	"github.com/prompt-arena/arena-go-api/internal/service"
	"github.com/prompt-arena/arena-go-api/internal/utils"
)

// LeaderboardHandler serves the sorted submission leaderboard.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs a leaderboard handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register wires the leaderboard route.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *LeaderboardHandler) list(c *fiber.Ctx) error {
	filter := service.LeaderboardFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	entries, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read leaderboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read leaderboard")
	}

	if entries == nil {
		entries = []dto.LeaderboardEntry{}
	}

	return c.JSON(dto.LeaderboardResponse{Leaderboard: entries})
}
