package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"quiz-api/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ParseBatch validates raw generator text and decodes it into a QuizBatch.
// Blank text yields an EMPTY_COMPLETION error; anything that is not a
// schema-conforming, index-aligned batch yields MALFORMED_BATCH.
func ParseBatch(text string) (*domain.QuizBatch, error) {
	payload := stripCodeFence(text)
	if payload == "" {
		return nil, domain.NewEmptyCompletionError()
	}

	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return nil, domain.NewMalformedBatchError("invalid JSON", err)
	}

	schema, err := batchSchema()
	if err != nil {
		return nil, domain.NewInternalError("quiz batch schema failed to compile", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, domain.NewMalformedBatchError("schema validation failed", err)
	}

	var batch domain.QuizBatch
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return nil, domain.NewMalformedBatchError("decode failed", err)
	}

	if !batch.Aligned() {
		return nil, domain.NewMalformedBatchError(
			fmt.Sprintf("%d questions but %d answers", len(batch.Questions), len(batch.Answers)), nil)
	}
	if len(batch.Questions) == 0 {
		return nil, domain.NewMalformedBatchError("batch contains no questions", nil)
	}

	return &batch, nil
}

// stripCodeFence trims whitespace and a surrounding ``` fence, which chat
// models add despite being asked for bare JSON.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
