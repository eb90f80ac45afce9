package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/models"
)

// ChallengeRepository provides read access to the static challenge set.
// Challenges are loaded once at construction and never mutated afterwards.
type ChallengeRepository interface {
	// Categories returns the category names in their stored order.
	Categories() []string
	// Get looks up the challenge for a category.
	Get(category string) (models.Challenge, bool)
}

type challengeEntry struct {
	Category  string            `json:"category"`
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Task      string            `json:"task"`
	TestCases []models.TestCase `json:"test_cases"`
}

type challengeRepository struct {
	order      []string
	challenges map[string]models.Challenge
}

// NewChallengeRepository loads the challenge set from the given JSON file, or
// the built-in default set when path is empty. A malformed file fails fast
// here rather than surfacing missing fields deep inside the grading pipeline.
func NewChallengeRepository(path string, logger zerolog.Logger) (ChallengeRepository, error) {
	entries := defaultChallenges
	source := "builtin"

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read challenges file: %w", err)
		}

		var loaded []challengeEntry
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parse challenges file: %w", err)
		}

		entries = loaded
		source = path
	}

	repo := &challengeRepository{challenges: make(map[string]models.Challenge, len(entries))}
	for i, entry := range entries {
		if err := validateChallengeEntry(entry); err != nil {
			return nil, fmt.Errorf("challenge %d: %w", i+1, err)
		}
		if _, exists := repo.challenges[entry.Category]; exists {
			return nil, fmt.Errorf("challenge %d: duplicate category %q", i+1, entry.Category)
		}

		repo.order = append(repo.order, entry.Category)
		repo.challenges[entry.Category] = models.Challenge{
			ID:        entry.ID,
			Title:     entry.Title,
			Task:      entry.Task,
			TestCases: entry.TestCases,
		}
	}

	logger.Info().
		Str("component", "challenge_repository").
		Str("source", source).
		Int("categories", len(repo.order)).
		Msg("challenge set loaded")

	return repo, nil
}

func validateChallengeEntry(entry challengeEntry) error {
	if entry.Category == "" {
		return fmt.Errorf("category is required")
	}
	if entry.ID == "" {
		return fmt.Errorf("id is required")
	}
	if entry.Title == "" {
		return fmt.Errorf("title is required")
	}
	if entry.Task == "" {
		return fmt.Errorf("task is required")
	}

	for i, testCase := range entry.TestCases {
		if testCase.Input == "" {
			return fmt.Errorf("test case %d: input is required", i+1)
		}
		if testCase.Expected == "" {
			return fmt.Errorf("test case %d: expected output is required", i+1)
		}
	}

	return nil
}

func (r *challengeRepository) Categories() []string {
	categories := make([]string, len(r.order))
	copy(categories, r.order)
	return categories
}

func (r *challengeRepository) Get(category string) (models.Challenge, bool) {
	challenge, ok := r.challenges[category]
	return challenge, ok
}
