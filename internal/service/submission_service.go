package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prompt-arena/arena-go-api/internal/dto"
	"github.com/prompt-arena/arena-go-api/internal/repository"
)

// SubmissionService runs the full flow for one graded submission: validate the
// request, grade the prompt, and record the result to the ledger. A ledger
// failure aborts the request even though grading succeeded.
type SubmissionService interface {
	Submit(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error)
}

type submissionService struct {
	grading   GradingService
	ledger    repository.LedgerRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
}

// NewSubmissionService constructs the submission flow.
func NewSubmissionService(grading GradingService, ledger repository.LedgerRepository, validator *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		grading:   grading,
		ledger:    ledger,
		validator: validator,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "submission_service").Logger(),
	}
}

func (s *submissionService) Submit(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error) {
	tracer := otel.Tracer("github.com/prompt-arena/arena-go-api/internal/service/submission")
	ctx, span := tracer.Start(ctx, "submission.submit")
	span.SetAttributes(attribute.String("submission.category", req.Category))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradeResponse{}, err
	}

	// Submitter-supplied fields land verbatim in the ledger; strip any markup.
	name := s.sanitize(req.Name)
	email := s.sanitize(req.Email)
	prompt := s.sanitize(req.Prompt)

	result, err := s.grading.Grade(ctx, req.Category, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grading_failed")
		return dto.GradeResponse{}, err
	}

	entry := repository.SubmissionEntry{
		Name:           name,
		Email:          email,
		Category:       req.Category,
		Prompt:         prompt,
		ElapsedSeconds: req.ElapsedSeconds,
		Result:         result,
	}
	if err := s.ledger.Record(ctx, entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence_failed")
		return dto.GradeResponse{}, err
	}

	return dto.GradeResponse{
		OK:      true,
		Score:   result.OverallScore,
		Details: result,
	}, nil
}

func (s *submissionService) sanitize(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}
