package middleware

import (
	"quiz-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalsTopicCounts is the Locals key holding the parsed domain.TopicCounts.
const LocalsTopicCounts = "validated_topic_counts"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validator,
	}
}

// ValidateQuizCounts parses totalHtml, totalJs and totalCss from the query.
func (vm *ValidationMiddleware) ValidateQuizCounts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, errs := vm.validator.ValidateTopicCounts(
			c.Query("totalHtml"),
			c.Query("totalJs"),
			c.Query("totalCss"),
		)
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler
		}

		c.Locals(LocalsTopicCounts, counts)
		return c.Next()
	}
}
