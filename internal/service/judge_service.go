package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/models"
	"github.com/prompt-arena/arena-go-api/pkg/ai"
)

const judgeSystemPrompt = `You are a strict grader for a prompt-writing challenge. Score how well a candidate output matches the expected output for the given task, on a 0-100 scale:
- 100: matches the expected output in content and format.
- 70-90: mostly correct with minor omissions or formatting drift.
- 40-60: partially correct with significant gaps.
- 0-30: mostly or entirely incorrect.
Respond with a single line of strict JSON and nothing else: {"score": <integer>, "reason": "<short justification>"}`

const (
	unparseableReasonPrefix = "unparseable judge response: "
	defaultJudgeReason      = "could not parse judge reasoning"
	maxReasonExcerpt        = 200
)

// Judge scores one candidate output against the expected output for a task.
// A judge that ignores the requested response shape degrades to a zero-score
// verdict; it never fails the call.
type Judge interface {
	Judge(ctx context.Context, task, expected, candidate string) (models.Verdict, error)
}

type rubricJudge struct {
	client    ai.CompletionClient
	maxTokens int
	logger    zerolog.Logger
}

// NewJudge constructs the judging step on top of the completion gateway.
func NewJudge(client ai.CompletionClient, maxTokens int, logger zerolog.Logger) Judge {
	if maxTokens <= 0 {
		maxTokens = 300
	}

	return &rubricJudge{
		client:    client,
		maxTokens: maxTokens,
		logger:    logger.With().Str("component", "judging_step").Logger(),
	}
}

func (j *rubricJudge) Judge(ctx context.Context, task, expected, candidate string) (models.Verdict, error) {
	var user strings.Builder
	user.WriteString("## Task\n")
	user.WriteString(task)
	user.WriteString("\n\n## Expected Output\n")
	user.WriteString(expected)
	user.WriteString("\n\n## Candidate Output\n")
	user.WriteString(candidate)
	user.WriteString("\n\nReturn the JSON verdict.")

	raw, err := j.client.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: judgeSystemPrompt},
			{Role: ai.RoleUser, Content: user.String()},
		},
		Temperature: 0,
		MaxTokens:   j.maxTokens,
	})
	if err != nil {
		return models.Verdict{}, err
	}

	verdict := parseVerdict(raw)
	if strings.HasPrefix(verdict.Reason, unparseableReasonPrefix) {
		j.logger.Warn().Str("raw", excerpt(raw)).Msg("judge response did not contain a JSON verdict")
	}

	return verdict, nil
}

// verdictParser attempts one extraction strategy against raw judge output.
type verdictParser func(raw string) (models.Verdict, bool)

// parseVerdict runs the extraction strategies in order and falls back to a
// zero-score verdict carrying an excerpt of the raw response.
func parseVerdict(raw string) models.Verdict {
	for _, parse := range []verdictParser{parseWholeJSON, parseEmbeddedJSON} {
		if verdict, ok := parse(raw); ok {
			return normalizeVerdict(verdict)
		}
	}

	return models.Verdict{
		Score:  0,
		Reason: unparseableReasonPrefix + excerpt(raw),
	}
}

type verdictPayload struct {
	Score  any    `json:"score"`
	Reason string `json:"reason"`
}

func parseWholeJSON(raw string) (models.Verdict, bool) {
	return decodeVerdict(strings.TrimSpace(raw))
}

func parseEmbeddedJSON(raw string) (models.Verdict, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return models.Verdict{}, false
	}

	return decodeVerdict(raw[start : end+1])
}

func decodeVerdict(candidate string) (models.Verdict, bool) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return models.Verdict{}, false
	}

	return models.Verdict{
		Score:  coerceScore(payload.Score),
		Reason: payload.Reason,
	}, true
}

// coerceScore turns whatever the judge put in the score field into an integer.
// Anything non-numeric counts as zero.
func coerceScore(value any) int {
	switch score := value.(type) {
	case float64:
		return int(score)
	case json.Number:
		if parsed, err := score.Int64(); err == nil {
			return int(parsed)
		}
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(score), 64); err == nil {
			return int(parsed)
		}
	}

	return 0
}

func normalizeVerdict(verdict models.Verdict) models.Verdict {
	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 100 {
		verdict.Score = 100
	}
	if strings.TrimSpace(verdict.Reason) == "" {
		verdict.Reason = defaultJudgeReason
	}

	return verdict
}

func excerpt(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxReasonExcerpt {
		return fmt.Sprintf("%s...", trimmed[:maxReasonExcerpt])
	}

	return trimmed
}
