package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prompt-arena/arena-go-api/pkg/ai"
)

type stubCompletionClient struct {
	response    string
	err         error
	lastRequest ai.CompletionRequest
	calls       int
}

func (s *stubCompletionClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	s.calls++
	s.lastRequest = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestJudgeParsesStrictJSON(t *testing.T) {
	client := &stubCompletionClient{response: `{"score": 85, "reason": "ok"}`}
	judge := NewJudge(client, 0, testLogger())

	verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.NoError(t, err)
	require.Equal(t, 85, verdict.Score)
	require.Equal(t, "ok", verdict.Reason)
}

func TestJudgeExtractsEmbeddedJSON(t *testing.T) {
	client := &stubCompletionClient{response: `Sure! {"score": 42, "reason": "partial"} thanks`}
	judge := NewJudge(client, 0, testLogger())

	verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.NoError(t, err)
	require.Equal(t, 42, verdict.Score)
	require.Equal(t, "partial", verdict.Reason)
}

func TestJudgeFallsBackOnUnparseableResponse(t *testing.T) {
	client := &stubCompletionClient{response: "not json at all"}
	judge := NewJudge(client, 0, testLogger())

	verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.NoError(t, err)
	require.Equal(t, 0, verdict.Score)
	require.Contains(t, verdict.Reason, "not json at all")
	require.True(t, strings.HasPrefix(verdict.Reason, unparseableReasonPrefix))
}

func TestJudgeFallbackTruncatesLongResponses(t *testing.T) {
	client := &stubCompletionClient{response: strings.Repeat("x", 500)}
	judge := NewJudge(client, 0, testLogger())

	verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.NoError(t, err)
	require.Equal(t, 0, verdict.Score)
	require.LessOrEqual(t, len(verdict.Reason), len(unparseableReasonPrefix)+maxReasonExcerpt+3)
}

func TestJudgeClampsOutOfRangeScores(t *testing.T) {
	cases := map[string]struct {
		response string
		want     int
	}{
		"above range":   {`{"score": 150, "reason": "generous"}`, 100},
		"below range":   {`{"score": -5, "reason": "harsh"}`, 0},
		"non-numeric":   {`{"score": "excellent", "reason": "vague"}`, 0},
		"missing score": {`{"reason": "no score"}`, 0},
		"numeric text":  {`{"score": "85", "reason": "stringly"}`, 85},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client := &stubCompletionClient{response: tc.response}
			judge := NewJudge(client, 0, testLogger())

			verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
			require.NoError(t, err)
			require.Equal(t, tc.want, verdict.Score)
			require.GreaterOrEqual(t, verdict.Score, 0)
			require.LessOrEqual(t, verdict.Score, 100)
		})
	}
}

func TestJudgeDefaultsEmptyReason(t *testing.T) {
	client := &stubCompletionClient{response: `{"score": 70, "reason": "  "}`}
	judge := NewJudge(client, 0, testLogger())

	verdict, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.NoError(t, err)
	require.Equal(t, 70, verdict.Score)
	require.Equal(t, defaultJudgeReason, verdict.Reason)
}

func TestJudgeUsesZeroTemperature(t *testing.T) {
	client := &stubCompletionClient{response: `{"score": 100, "reason": "exact"}`}
	judge := NewJudge(client, 64, testLogger())

	_, err := judge.Judge(context.Background(), "task text", "expected text", "candidate text")
	require.NoError(t, err)
	require.Equal(t, float32(0), client.lastRequest.Temperature)
	require.Equal(t, 64, client.lastRequest.MaxTokens)
	require.Len(t, client.lastRequest.Messages, 2)
	require.Equal(t, ai.RoleSystem, client.lastRequest.Messages[0].Role)
	require.Contains(t, client.lastRequest.Messages[1].Content, "candidate text")
	require.Contains(t, client.lastRequest.Messages[1].Content, "expected text")
}

func TestJudgePropagatesGatewayErrors(t *testing.T) {
	upstream := errors.New("boom")
	client := &stubCompletionClient{err: upstream}
	judge := NewJudge(client, 0, testLogger())

	_, err := judge.Judge(context.Background(), "task", "expected", "candidate")
	require.ErrorIs(t, err, upstream)
}
