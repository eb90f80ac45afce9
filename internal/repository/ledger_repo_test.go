package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prompt-arena/arena-go-api/internal/models"
)

func newTestLedger(t *testing.T) (LedgerRepository, string, string) {
	t.Helper()
	dir := t.TempDir()
	submissions := filepath.Join(dir, "submissions.csv")
	cases := filepath.Join(dir, "cases.csv")
	return NewLedgerRepository(submissions, cases, testLogger()), submissions, cases
}

func sampleEntry() SubmissionEntry {
	elapsed := 120
	return SubmissionEntry{
		Name:           "Alice",
		Email:          "alice@example.com",
		Category:       "Technology",
		Prompt:         "classify this bug, with \"quotes\" and\nnewlines",
		ElapsedSeconds: &elapsed,
		Result: models.GradeResult{
			ChallengeID:  "tech-bug-triage",
			Title:        "Bug report triage",
			Task:         "triage bugs",
			OverallScore: 75.5,
			Cases: []models.CaseResult{
				{CaseIndex: 1, Input: "in one", Expected: "exp one", ModelOutput: "out one", Verdict: models.Verdict{Score: 80, Reason: "good"}},
				{CaseIndex: 2, Input: "in two", Expected: "exp two", ModelOutput: "out two", Verdict: models.Verdict{Score: 71, Reason: "close"}},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestLedgerRecordWritesSubmissionAndCaseRows(t *testing.T) {
	ledger, submissionsPath, casesPath := newTestLedger(t)

	require.NoError(t, ledger.Record(context.Background(), sampleEntry()))

	submissions := readCSV(t, submissionsPath)
	require.Len(t, submissions, 2)
	require.Equal(t, submissionHeader, submissions[0])
	require.Equal(t, "Alice", submissions[1][1])
	require.Equal(t, "75.50", submissions[1][6])
	require.Equal(t, "120", submissions[1][7])

	cases := readCSV(t, casesPath)
	require.Len(t, cases, 3)
	require.Equal(t, caseHeader, cases[0])
	require.Equal(t, "1", cases[1][5])
	require.Equal(t, "2", cases[2][5])
	require.Equal(t, "80", cases[1][9])
	require.Equal(t, "close", cases[2][10])
}

func TestLedgerRowsShareOneTimestamp(t *testing.T) {
	ledger, submissionsPath, casesPath := newTestLedger(t)

	require.NoError(t, ledger.Record(context.Background(), sampleEntry()))

	submissions := readCSV(t, submissionsPath)
	cases := readCSV(t, casesPath)
	timestamp := submissions[1][0]
	require.NotEmpty(t, timestamp)
	require.Equal(t, timestamp, cases[1][0])
	require.Equal(t, timestamp, cases[2][0])
}

func TestLedgerHeaderIsWrittenOnce(t *testing.T) {
	ledger, submissionsPath, _ := newTestLedger(t)

	require.NoError(t, ledger.Record(context.Background(), sampleEntry()))
	require.NoError(t, ledger.Record(context.Background(), sampleEntry()))

	records := readCSV(t, submissionsPath)
	require.Len(t, records, 3)
	headerCount := 0
	for _, record := range records {
		if record[0] == "timestamp" {
			headerCount++
		}
	}
	require.Equal(t, 1, headerCount)
}

func TestLedgerSubmissionsRoundTrip(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	entry := sampleEntry()
	require.NoError(t, ledger.Record(context.Background(), entry))

	rows, err := ledger.Submissions(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Alice", rows[0].Name)
	require.Equal(t, "Technology", rows[0].Category)
	require.Equal(t, "75.50", rows[0].OverallScore)
	require.Equal(t, "120", rows[0].ElapsedSeconds)
	require.Equal(t, entry.Prompt, rows[0].Prompt)
}

func TestLedgerMissingElapsedWritesEmptyField(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	entry := sampleEntry()
	entry.ElapsedSeconds = nil
	require.NoError(t, ledger.Record(context.Background(), entry))

	rows, err := ledger.Submissions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", rows[0].ElapsedSeconds)
}

func TestLedgerAbsentFileReadsAsEmpty(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	rows, err := ledger.Submissions(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestLedgerCorruptFileIsAnError(t *testing.T) {
	ledger, submissionsPath, _ := newTestLedger(t)

	require.NoError(t, os.WriteFile(submissionsPath, []byte("\"unclosed quote\nfield,field"), 0o644))

	_, err := ledger.Submissions(context.Background())
	require.ErrorIs(t, err, ErrLedgerCorrupt)
}

func TestLedgerWrongFieldCountIsCorrupt(t *testing.T) {
	ledger, submissionsPath, _ := newTestLedger(t)

	require.NoError(t, os.WriteFile(submissionsPath, []byte("only,three,fields\n"), 0o644))

	_, err := ledger.Submissions(context.Background())
	require.ErrorIs(t, err, ErrLedgerCorrupt)
}
