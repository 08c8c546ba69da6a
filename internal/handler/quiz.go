package handler

import (
	"quiz-api/internal/domain"
	"quiz-api/internal/dto"
	"quiz-api/internal/logger"
	"quiz-api/internal/middleware"
	"quiz-api/internal/service"
	"quiz-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	errQuizExpiredOrInvalid = "QUIZ_EXPIRED_OR_INVALID"
	errInvalidRequest       = "INVALID_REQUEST"
	errInternalServer       = "Internal Server Error"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GetQuizzes godoc
// @Summary Generate a quiz batch
// @Description Generates multiple choice questions per topic. Answers are kept server side under the returned quizId.
// @Tags quiz
// @Produce json
// @Param totalHtml query int false "Number of HTML questions" default(5)
// @Param totalJs query int false "Number of Javascript questions" default(5)
// @Param totalCss query int false "Number of CSS questions" default(5)
// @Success 200 {object} dto.QuizzesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /get-quizzes [get]
func (h *QuizHandler) GetQuizzes(c *fiber.Ctx) error {
	counts, ok := c.Locals(middleware.LocalsTopicCounts).(domain.TopicCounts)
	if !ok {
		logger.Get().Error("Topic counts missing from request context")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: errInternalServer,
			Code:  string(domain.ErrInternal),
		})
	}

	data, err := h.service.GetQuizzes(c.UserContext(), counts)
	if err != nil {
		code := domain.CodeOf(err)
		switch code {
		case domain.ErrEmptyCompletion:
			logger.Get().Warn("Generation returned no content", zap.Error(err))
			return c.JSON(dto.QuizzesResponse{
				Success: false,
				Data:    []interface{}{},
			})
		case domain.ErrInvalidInput:
			return err
		default:
			logger.Get().Error("Failed to generate quizzes",
				zap.Error(err),
				zap.String("code", string(code)),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: errInternalServer,
				Code:  string(code),
			})
		}
	}

	return c.JSON(dto.QuizzesResponse{
		Success: true,
		Data:    data,
	})
}

// CheckQuiz godoc
// @Summary Check an answer
// @Description Compares the submitted choices with the stored answer for one question and reveals the answer.
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param request body dto.CheckQuizRequest true "Submitted choices"
// @Success 200 {object} dto.CheckQuizResponse
// @Failure 400 {object} dto.CheckQuizErrorResponse
// @Failure 404 {object} dto.CheckQuizErrorResponse
// @Failure 500 {object} dto.CheckQuizErrorResponse
// @Router /check-quiz/{quizId} [post]
func (h *QuizHandler) CheckQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	var req dto.CheckQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Invalid check-quiz body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(dto.CheckQuizErrorResponse{
			Success: false,
			Error:   errInvalidRequest,
		})
	}

	if errs := h.validator.ValidateCheckQuizRequest(quizID, req.Index, req.Choices); len(errs) > 0 {
		logger.Get().Debug("Check-quiz validation failed", zap.Error(errs))
		return c.Status(fiber.StatusBadRequest).JSON(dto.CheckQuizErrorResponse{
			Success: false,
			Error:   errInvalidRequest,
		})
	}

	result, err := h.service.CheckQuiz(c.UserContext(), quizID, *req.Index, req.Choices)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.ErrSessionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.CheckQuizErrorResponse{
				Success: false,
				Error:   errQuizExpiredOrInvalid,
			})
		case domain.ErrInvalidQuestionIndex:
			return c.Status(fiber.StatusBadRequest).JSON(dto.CheckQuizErrorResponse{
				Success: false,
				Error:   string(domain.ErrInvalidQuestionIndex),
			})
		default:
			logger.Get().Error("Failed to check quiz",
				zap.Error(err),
				zap.String("quiz_id", quizID),
				zap.Int("index", *req.Index),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.CheckQuizErrorResponse{
				Success: false,
			})
		}
	}

	return c.JSON(result)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	if err := h.service.Health(c.UserContext()); err != nil {
		logger.Get().Warn("Answer store unreachable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status: "degraded",
			Cache:  "unavailable",
		})
	}
	return c.JSON(dto.HealthResponse{
		Status: "ok",
		Cache:  "ok",
	})
}
