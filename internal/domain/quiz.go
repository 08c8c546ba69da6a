package domain

import (
	"slices"
)

// ChoicesPerQuestion is the fixed number of options every question carries.
const ChoicesPerQuestion = 4

// Level is the difficulty of a generated question.
type Level string

const (
	LevelBeginner          Level = "Beginner"
	LevelElementary        Level = "Elementary"
	LevelIntermediate      Level = "Intermediate"
	LevelAboveIntermediate Level = "Above Intermediate"
	LevelAdvanced          Level = "Advanced"
	LevelProficient        Level = "Proficient"
)

// Levels lists the difficulty taxonomy from easiest to hardest.
var Levels = []Level{
	LevelBeginner,
	LevelElementary,
	LevelIntermediate,
	LevelAboveIntermediate,
	LevelAdvanced,
	LevelProficient,
}

// Valid reports whether l is part of the taxonomy.
func (l Level) Valid() bool {
	return slices.Contains(Levels, l)
}

// Topic names used in prompts and in the "type" field of generated questions.
const (
	TopicHTML = "HTML"
	TopicJS   = "Javascript"
	TopicCSS  = "CSS"
)

// Question is a generated multiple-choice question as handed to the client.
type Question struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Level    Level    `json:"level"`
	Topic    string   `json:"type"`
}

// AnswerKey holds the correct option indices and explanation for one question.
type AnswerKey struct {
	Correct     []int  `json:"correct"`
	Explanation string `json:"explanation"`
}

// QuizBatch is the output of a single generation call.
// Questions and Answers align by index.
type QuizBatch struct {
	Questions []Question  `json:"questions"`
	Answers   []AnswerKey `json:"answers"`
}

// Aligned reports whether every question has exactly one answer entry.
func (b *QuizBatch) Aligned() bool {
	return b != nil && len(b.Questions) == len(b.Answers)
}

// TopicCounts is the requested number of questions per topic.
type TopicCounts struct {
	HTML int
	JS   int
	CSS  int
}

// Total returns the number of questions requested across all topics.
func (c TopicCounts) Total() int {
	return c.HTML + c.JS + c.CSS
}

// Verification is the outcome of checking one submitted answer.
type Verification struct {
	Correct bool
	Answer  AnswerKey
	Choices []int
}

// MatchChoices reports whether submitted selects exactly the options in correct.
// Neither slice is modified; ordering does not matter.
func MatchChoices(correct, submitted []int) bool {
	if len(correct) != len(submitted) {
		return false
	}
	return slices.Equal(SortedChoices(correct), SortedChoices(submitted))
}

// SortedChoices returns an ascending copy of choices.
func SortedChoices(choices []int) []int {
	out := slices.Clone(choices)
	if out == nil {
		out = []int{}
	}
	slices.Sort(out)
	return out
}
