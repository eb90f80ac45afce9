package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/dto"
	"github.com/prompt-arena/arena-go-api/internal/models"
	"github.com/prompt-arena/arena-go-api/internal/repository"
)

const leaderboardCacheKey = "leaderboard:rows"

// LeaderboardFilter narrows the leaderboard to matching submissions.
type LeaderboardFilter struct {
	// Name matches as a case-insensitive substring of the submitter name.
	Name string
	// Category matches exactly.
	Category string
}

// LeaderboardService reads the submissions ledger and returns entries sorted
// by descending score, ties broken by ascending elapsed time with unknown
// elapsed time sorted last.
type LeaderboardService interface {
	List(ctx context.Context, filter LeaderboardFilter) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	ledger   repository.LedgerRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLeaderboardService constructs the leaderboard reader. A nil cache client
// disables caching.
func NewLeaderboardService(ledger repository.LedgerRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		ledger:   ledger,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) List(ctx context.Context, filter LeaderboardFilter) ([]dto.LeaderboardEntry, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []dto.LeaderboardEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				s.logger.Debug().Msg("leaderboard cache hit")
				return applyFilter(entries, filter), nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read leaderboard cache")
		}
	}

	rows, err := s.ledger.Submissions(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toLeaderboardEntry(row))
	}
	sortLeaderboard(entries)

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(entries); marshalErr == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
			}
		}
	}

	return applyFilter(entries, filter), nil
}

// toLeaderboardEntry coerces raw ledger fields: a malformed score counts as
// zero and a missing or malformed elapsed time stays unknown.
func toLeaderboardEntry(row models.SubmissionRow) dto.LeaderboardEntry {
	score := 0.0
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(row.OverallScore), 64); err == nil {
		score = parsed
	}

	var elapsed *int
	if trimmed := strings.TrimSpace(row.ElapsedSeconds); trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil {
			elapsed = &parsed
		}
	}

	return dto.LeaderboardEntry{
		Timestamp:      row.Timestamp,
		Name:           row.Name,
		Category:       row.Category,
		ChallengeID:    row.ChallengeID,
		Title:          row.Title,
		Score:          score,
		ElapsedSeconds: elapsed,
	}
}

func sortLeaderboard(entries []dto.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}

		left, right := entries[i].ElapsedSeconds, entries[j].ElapsedSeconds
		switch {
		case left == nil:
			return false
		case right == nil:
			return true
		default:
			return *left < *right
		}
	})
}

func applyFilter(entries []dto.LeaderboardEntry, filter LeaderboardFilter) []dto.LeaderboardEntry {
	if filter.Name == "" && filter.Category == "" {
		return entries
	}

	nameQuery := strings.ToLower(strings.TrimSpace(filter.Name))
	filtered := make([]dto.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		if nameQuery != "" && !strings.Contains(strings.ToLower(entry.Name), nameQuery) {
			continue
		}
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		filtered = append(filtered, entry)
	}

	return filtered
}
