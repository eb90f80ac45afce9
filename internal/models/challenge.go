package models

// TestCase pairs one challenge input with the output a perfect prompt should produce.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// Challenge is the task definition for one category: what to prompt for and the
// ordered test cases a submission is graded against.
type Challenge struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Task      string     `json:"task"`
	TestCases []TestCase `json:"test_cases"`
}
