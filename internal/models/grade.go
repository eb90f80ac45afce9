package models

// Verdict is a judge's numeric score and textual justification for one candidate output.
type Verdict struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// CaseResult captures the full grading detail for a single test case.
type CaseResult struct {
	CaseIndex   int     `json:"case_index"`
	Input       string  `json:"input"`
	Expected    string  `json:"expected"`
	ModelOutput string  `json:"model_output"`
	Verdict     Verdict `json:"verdict"`
}

// GradeResult is the outcome of grading one submitted prompt against every test
// case of a challenge. It is returned to the caller and flattened into ledger
// rows, never persisted as-is.
type GradeResult struct {
	ChallengeID  string       `json:"challenge_id"`
	Title        string       `json:"title"`
	Task         string       `json:"task"`
	OverallScore float64      `json:"overall_score"`
	Cases        []CaseResult `json:"cases"`
}
