package models

// SubmissionRow is one raw row of the submissions ledger, fields exactly as
// written to disk. Numeric coercion is left to the read side so that a
// hand-edited or damaged row degrades instead of failing the whole read.
type SubmissionRow struct {
	Timestamp      string
	Name           string
	Email          string
	Category       string
	ChallengeID    string
	Title          string
	OverallScore   string
	ElapsedSeconds string
	Prompt         string
}
