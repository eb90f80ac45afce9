package dto

import "github.com/prompt-arena/arena-go-api/internal/models"

// GradeRequest is the payload submitted to POST /api/grade.
type GradeRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Category       string `json:"category" validate:"required"`
	Prompt         string `json:"prompt" validate:"required"`
	ElapsedSeconds *int   `json:"elapsed_seconds,omitempty" validate:"omitempty,min=0"`
}

// GradeResponse is returned when a submission was graded and recorded.
type GradeResponse struct {
	OK      bool               `json:"ok"`
	Score   float64            `json:"score"`
	Details models.GradeResult `json:"details"`
}
