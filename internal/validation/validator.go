package validation

import (
	"strconv"
	"strings"

	"quiz-api/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	baseCount   int
	maxPerTopic int
}

// NewValidator creates a validator that defaults missing topic counts to
// baseCount and caps each topic at maxPerTopic.
func NewValidator(baseCount, maxPerTopic int) *Validator {
	return &Validator{
		baseCount:   baseCount,
		maxPerTopic: maxPerTopic,
	}
}

// ValidateTopicCounts parses the three per-topic counts of a quiz request.
// A missing or non-numeric value falls back to the base count; an explicit 0
// excludes the topic.
func (v *Validator) ValidateTopicCounts(html, js, css string) (domain.TopicCounts, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	parse := func(field, raw string) int {
		n, ok := v.parseCount(raw)
		if !ok {
			return v.baseCount
		}
		if n < 0 || n > v.maxPerTopic {
			errors = append(errors, domain.NewOutOfRangeError(field, n, 0, v.maxPerTopic))
		}
		return n
	}

	counts := domain.TopicCounts{
		HTML: parse("totalHtml", html),
		JS:   parse("totalJs", js),
		CSS:  parse("totalCss", css),
	}

	if len(errors) == 0 && counts.Total() < 1 {
		errors = append(errors, domain.ValidationError{
			Field:   "total",
			Message: "at least one question must be requested",
			Value:   0,
		})
	}

	return counts, errors
}

// ValidateCheckQuizRequest validates the answer submission for a quiz.
// Range checks on the index need the stored answer key and happen later.
func (v *Validator) ValidateCheckQuizRequest(quizID string, index *int, choices []int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quizId"))
	}

	if index == nil {
		errors = append(errors, domain.NewMissingFieldError("index"))
	}

	for _, c := range choices {
		if c < 0 || c >= domain.ChoicesPerQuestion {
			errors = append(errors, domain.NewOutOfRangeError("choices", c, 0, domain.ChoicesPerQuestion-1))
			break
		}
	}

	return errors
}

func (v *Validator) parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
