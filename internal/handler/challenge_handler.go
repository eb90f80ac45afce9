package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/dto"
	"github.com/prompt-arena/arena-go-api/internal/repository"
)

// ChallengeHandler serves the category list and the public challenge views.
type ChallengeHandler struct {
	challenges repository.ChallengeRepository
	logger     zerolog.Logger
}

// NewChallengeHandler constructs a challenge handler.
func NewChallengeHandler(challenges repository.ChallengeRepository, logger zerolog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		challenges: challenges,
		logger:     logger.With().Str("component", "challenge_handler").Logger(),
	}
}

// Register wires challenge routes.
func (h *ChallengeHandler) Register(router fiber.Router) {
	router.Get("/categories", h.categories)
	router.Get("/challenges", h.list)
}

func (h *ChallengeHandler) categories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{Categories: h.challenges.Categories()})
}

func (h *ChallengeHandler) list(c *fiber.Ctx) error {
	categories := h.challenges.Categories()
	challenges := make(map[string]dto.ChallengePublic, len(categories))
	for _, category := range categories {
		if challenge, ok := h.challenges.Get(category); ok {
			challenges[category] = dto.NewChallengePublic(challenge)
		}
	}

	return c.JSON(dto.ChallengesResponse{Challenges: challenges})
}
