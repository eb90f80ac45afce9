package dto

import "github.com/prompt-arena/arena-go-api/internal/models"

// ChallengeExample is the public view of a test case: the input only.
// Expected outputs are never exposed through the API.
type ChallengeExample struct {
	Input string `json:"input"`
}

// ChallengePublic is the challenge shape served to clients.
type ChallengePublic struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Task     string             `json:"task"`
	Examples []ChallengeExample `json:"examples"`
}

// CategoriesResponse lists the available grading categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ChallengesResponse maps each category to its public challenge definition.
type ChallengesResponse struct {
	Challenges map[string]ChallengePublic `json:"challenges"`
}

// NewChallengePublic strips a challenge down to its public view.
func NewChallengePublic(challenge models.Challenge) ChallengePublic {
	examples := make([]ChallengeExample, 0, len(challenge.TestCases))
	for _, testCase := range challenge.TestCases {
		examples = append(examples, ChallengeExample{Input: testCase.Input})
	}

	return ChallengePublic{
		ID:       challenge.ID,
		Title:    challenge.Title,
		Task:     challenge.Task,
		Examples: examples,
	}
}
