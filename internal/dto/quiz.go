package dto

import "quiz-api/internal/domain"

// QuizzesResponse is the body of GET /api/get-quizzes.
// Data is QuizzesData on success and an empty array when no quiz is available.
// @Description Generated quiz batch without answers
type QuizzesResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// QuizzesData carries the questions and the opaque handle used to check answers.
type QuizzesData struct {
	Questions []domain.Question `json:"questions"`
	QuizID    string            `json:"quizId"`
}

// CheckQuizRequest is the body of POST /api/check-quiz/:quizId.
// Index is a pointer so a missing index can be told apart from 0.
type CheckQuizRequest struct {
	Choices []int `json:"choices"`
	Index   *int  `json:"index"`
}

// RevealedAnswer is the stored answer merged with the client's submission.
type RevealedAnswer struct {
	Correct     []int  `json:"correct"`
	Explanation string `json:"explanation"`
	Choices     []int  `json:"choices"`
}

// CheckQuizResponse is the body of a successful answer check.
type CheckQuizResponse struct {
	Success bool            `json:"success"`
	Answer  *RevealedAnswer `json:"answer"`
}

// CheckQuizErrorResponse is returned when an answer cannot be checked.
type CheckQuizErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
