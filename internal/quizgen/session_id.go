package quizgen

import (
	"strings"

	"quiz-api/internal/domain"
	"quiz-api/internal/util"
)

// OpenAICompletionPrefix is the prefix OpenAI puts on chat completion ids.
const OpenAICompletionPrefix = "chatcmpl-"

// PrefixStrategy derives session ids from provider completion ids by dropping
// a known prefix. Ids without the prefix are used unchanged; an id that is
// empty (or nothing but the prefix) gets a fresh ULID instead.
type PrefixStrategy struct {
	Prefix   string
	Fallback func() string
}

// NewPrefixStrategy returns a PrefixStrategy falling back to util.NewULID.
func NewPrefixStrategy(prefix string) *PrefixStrategy {
	return &PrefixStrategy{Prefix: prefix, Fallback: util.NewULID}
}

func (s *PrefixStrategy) SessionID(completionID string) string {
	id := strings.TrimSpace(completionID)
	if s.Prefix != "" {
		id = strings.TrimPrefix(id, s.Prefix)
	}
	if id == "" {
		return s.fallback()
	}
	return id
}

func (s *PrefixStrategy) fallback() string {
	if s.Fallback != nil {
		return s.Fallback()
	}
	return util.NewULID()
}

// ULIDStrategy ignores provider ids and always issues a new ULID.
type ULIDStrategy struct{}

func (ULIDStrategy) SessionID(string) string {
	return util.NewULID()
}

// NewSessionIDStrategy maps a config name ("provider" or "ulid") to a strategy.
func NewSessionIDStrategy(name, prefix string) domain.SessionIDStrategy {
	if name == "ulid" {
		return ULIDStrategy{}
	}
	return NewPrefixStrategy(prefix)
}

var (
	_ domain.SessionIDStrategy = (*PrefixStrategy)(nil)
	_ domain.SessionIDStrategy = ULIDStrategy{}
)
