package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-go-api/internal/models"
)

var (
	// ErrPersistence indicates a write to the durable ledgers failed.
	ErrPersistence = errors.New("ledger write failed")
	// ErrLedgerCorrupt indicates the submissions log exists but cannot be parsed.
	// An absent log is not an error; it reads as empty.
	ErrLedgerCorrupt = errors.New("ledger file corrupt")
)

var (
	submissionHeader = []string{"timestamp", "name", "email", "category", "challenge_id", "title", "overall_score", "elapsed_seconds", "prompt"}
	caseHeader       = []string{"timestamp", "name", "email", "category", "challenge_id", "case_index", "input", "expected", "model_output", "judge_score", "judge_reason"}
)

// SubmissionEntry is everything the ledger needs to persist one graded submission.
type SubmissionEntry struct {
	Name           string
	Email          string
	Category       string
	Prompt         string
	ElapsedSeconds *int
	Result         models.GradeResult
}

// LedgerRepository appends graded submissions to the durable append-only logs
// and reads them back for the leaderboard. Rows are never rewritten or deleted.
type LedgerRepository interface {
	// Record appends one submission row and one case row per test case, all
	// sharing a single timestamp captured at the start of the operation.
	Record(ctx context.Context, entry SubmissionEntry) error
	// Submissions returns every recorded submission row in append order.
	Submissions(ctx context.Context) ([]models.SubmissionRow, error)
}

type csvLedger struct {
	submissionsPath string
	casesPath       string
	mu              sync.Mutex
	logger          zerolog.Logger
	now             func() time.Time
}

// NewLedgerRepository constructs the CSV-backed ledger.
func NewLedgerRepository(submissionsPath, casesPath string, logger zerolog.Logger) LedgerRepository {
	return &csvLedger{
		submissionsPath: submissionsPath,
		casesPath:       casesPath,
		logger:          logger.With().Str("component", "ledger_repository").Logger(),
		now:             time.Now,
	}
}

func (l *csvLedger) Record(_ context.Context, entry SubmissionEntry) error {
	// Appends from concurrent requests are serialized so case rows from one
	// submission are never interleaved with another's.
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ensureHeader(l.submissionsPath, submissionHeader); err != nil {
		return fmt.Errorf("%w: submissions header: %v", ErrPersistence, err)
	}
	if err := ensureHeader(l.casesPath, caseHeader); err != nil {
		return fmt.Errorf("%w: cases header: %v", ErrPersistence, err)
	}

	timestamp := l.now().UTC().Format(time.RFC3339)

	elapsed := ""
	if entry.ElapsedSeconds != nil {
		elapsed = strconv.Itoa(*entry.ElapsedSeconds)
	}

	submissionRow := []string{
		timestamp,
		entry.Name,
		entry.Email,
		entry.Category,
		entry.Result.ChallengeID,
		entry.Result.Title,
		strconv.FormatFloat(entry.Result.OverallScore, 'f', 2, 64),
		elapsed,
		entry.Prompt,
	}

	if err := appendRows(l.submissionsPath, [][]string{submissionRow}); err != nil {
		return fmt.Errorf("%w: submission row: %v", ErrPersistence, err)
	}

	caseRows := make([][]string, 0, len(entry.Result.Cases))
	for _, caseResult := range entry.Result.Cases {
		caseRows = append(caseRows, []string{
			timestamp,
			entry.Name,
			entry.Email,
			entry.Category,
			entry.Result.ChallengeID,
			strconv.Itoa(caseResult.CaseIndex),
			caseResult.Input,
			caseResult.Expected,
			caseResult.ModelOutput,
			strconv.Itoa(caseResult.Verdict.Score),
			caseResult.Verdict.Reason,
		})
	}

	if err := appendRows(l.casesPath, caseRows); err != nil {
		return fmt.Errorf("%w: case rows: %v", ErrPersistence, err)
	}

	l.logger.Info().
		Str("category", entry.Category).
		Float64("score", entry.Result.OverallScore).
		Int("cases", len(entry.Result.Cases)).
		Msg("submission recorded")

	return nil
}

func (l *csvLedger) Submissions(_ context.Context) ([]models.SubmissionRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.submissionsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open submissions log: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerCorrupt, err)
	}

	rows := make([]models.SubmissionRow, 0, len(records))
	for _, record := range records {
		if len(record) != len(submissionHeader) {
			return nil, fmt.Errorf("%w: row has %d fields, want %d", ErrLedgerCorrupt, len(record), len(submissionHeader))
		}
		if record[0] == submissionHeader[0] {
			continue
		}

		rows = append(rows, models.SubmissionRow{
			Timestamp:      record[0],
			Name:           record[1],
			Email:          record[2],
			Category:       record[3],
			ChallengeID:    record[4],
			Title:          record[5],
			OverallScore:   record[6],
			ElapsedSeconds: record[7],
			Prompt:         record[8],
		})
	}

	return rows, nil
}

// ensureHeader creates the log with its header row when it is missing or
// empty. Calling it repeatedly writes the header exactly once.
func ensureHeader(path string, header []string) error {
	info, err := os.Stat(path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return appendRows(path, [][]string{header})
}

func appendRows(path string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()

	return writer.Error()
}
