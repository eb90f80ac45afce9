package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prompt-arena/arena-go-api/internal/models"
	"github.com/prompt-arena/arena-go-api/internal/repository"
)

// ErrUnknownCategory indicates the requested category has no challenge.
var ErrUnknownCategory = errors.New("unknown challenge category")

// GradingService runs the two-pass grading pipeline for one submitted prompt:
// generate a candidate output per test case, judge it against the expected
// output, and aggregate the per-case scores.
type GradingService interface {
	Grade(ctx context.Context, category, userPrompt string) (models.GradeResult, error)
}

type gradingService struct {
	challenges repository.ChallengeRepository
	generator  Generator
	judge      Judge
	logger     zerolog.Logger
}

// NewGradingService constructs the grading orchestrator.
func NewGradingService(challenges repository.ChallengeRepository, generator Generator, judge Judge, logger zerolog.Logger) GradingService {
	return &gradingService{
		challenges: challenges,
		generator:  generator,
		judge:      judge,
		logger:     logger.With().Str("component", "grading_service").Logger(),
	}
}

func (s *gradingService) Grade(ctx context.Context, category, userPrompt string) (models.GradeResult, error) {
	tracer := otel.Tracer("github.com/prompt-arena/arena-go-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.grade")
	span.SetAttributes(attribute.String("grading.category", category))
	defer span.End()

	challenge, ok := s.challenges.Get(category)
	if !ok {
		span.RecordError(ErrUnknownCategory)
		span.SetStatus(codes.Error, "unknown_category")
		return models.GradeResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	span.SetAttributes(
		attribute.String("grading.challenge_id", challenge.ID),
		attribute.Int("grading.cases", len(challenge.TestCases)),
	)

	// Test cases run sequentially in stored order; any failure aborts the
	// whole run so a submission never receives partial credit.
	cases := make([]models.CaseResult, 0, len(challenge.TestCases))
	total := 0
	for i, testCase := range challenge.TestCases {
		caseIndex := i + 1

		output, err := s.generator.Apply(ctx, userPrompt, testCase.Input)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generation_failed")
			return models.GradeResult{}, fmt.Errorf("generate case %d: %w", caseIndex, err)
		}

		verdict, err := s.judge.Judge(ctx, challenge.Task, testCase.Expected, output)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "judging_failed")
			return models.GradeResult{}, fmt.Errorf("judge case %d: %w", caseIndex, err)
		}

		total += verdict.Score
		cases = append(cases, models.CaseResult{
			CaseIndex:   caseIndex,
			Input:       testCase.Input,
			Expected:    testCase.Expected,
			ModelOutput: output,
			Verdict:     verdict,
		})
	}

	overall := 0.0
	if len(cases) > 0 {
		overall = math.Round(float64(total)/float64(len(cases))*100) / 100
	}

	span.SetAttributes(attribute.Float64("grading.overall_score", overall))
	s.logger.Info().
		Str("category", category).
		Str("challenge_id", challenge.ID).
		Int("cases", len(cases)).
		Float64("overall_score", overall).
		Msg("grading completed")

	return models.GradeResult{
		ChallengeID:  challenge.ID,
		Title:        challenge.Title,
		Task:         challenge.Task,
		OverallScore: overall,
		Cases:        cases,
	}, nil
}
