package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the envelope returned for any failed request. The API
// always answers with structured JSON carrying a machine-checkable ok flag.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{
		OK:    false,
		Error: message,
	})
}
