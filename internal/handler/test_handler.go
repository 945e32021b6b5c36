package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/prepmitra/mocktest-backend/internal/response"
	"github.com/prepmitra/mocktest-backend/internal/service"
	"github.com/prepmitra/mocktest-backend/internal/validator"
	"github.com/rs/zerolog"
)

// TestHandler handles test management endpoints.
type TestHandler struct {
	testService *service.TestService
	log         zerolog.Logger
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService, log zerolog.Logger) *TestHandler {
	return &TestHandler{
		testService: testService,
		log:         log.With().Str("component", "test_handler").Logger(),
	}
}

// CreateTestWithQuestions godoc
// POST /admin/create-test-with-questions
// Validates, normalizes and persists a test together with its question
// batch; returns the confirmation payload with IST display times.
func (h *TestHandler) CreateTestWithQuestions(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailMessage(c, http.StatusBadRequest, validator.Summarize(fields))
		return
	}

	summary, err := h.testService.Create(c.Request.Context(), &req)
	if err != nil {
		h.failCreate(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"testId":         summary.TestID,
		"date":           summary.Date,
		"totalQuestions": summary.TotalQuestions,
		"testType":       summary.TestType,
		"phase":          summary.Phase,
		"startTimeIST":   summary.StartTimeIST,
		"endTimeIST":     summary.EndTimeIST,
		"message":        fmt.Sprintf("Test created with %d questions", summary.TotalQuestions),
	})
}

// ListTests godoc
// GET /admin/tests
// Returns all tests ordered by date descending, phase ascending.
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.testService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("List tests failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if tests == nil {
		tests = []model.TestSummary{}
	}

	response.OK(c, http.StatusOK, gin.H{"tests": tests})
}

// ListTestQuestions godoc
// GET /admin/tests/:testId/questions
// Returns all questions of one test ordered by question number.
func (h *TestHandler) ListTestQuestions(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.testService.ListQuestions(c.Request.Context(), testID)
	if err != nil {
		h.log.Error().Err(err).Str("test_id", testID.String()).Msg("List questions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.OK(c, http.StatusOK, gin.H{"questions": questions})
}

// DeleteTest godoc
// DELETE /admin/delete-test/:testId
// Deletes a test and every question belonging to it.
func (h *TestHandler) DeleteTest(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.testService.DeleteTest(c.Request.Context(), testID); err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Str("test_id", testID.String()).Msg("Delete test failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"message": "Test and its questions deleted",
	})
}

// DeleteQuestion godoc
// DELETE /admin/delete-question/:questionId
// Deletes a single question and decrements its test's question counter.
func (h *TestHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.testService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Str("question_id", questionID.String()).Msg("Delete question failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"message": "Question deleted",
	})
}

// failCreate maps a creation pipeline error to its HTTP response.
// Validation messages are returned verbatim; persistence detail is logged
// and replaced with a generic message.
func (h *TestHandler) failCreate(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.FailMessage(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, service.ErrDuplicateTest):
		response.FailMessage(c, http.StatusConflict, service.ErrDuplicateTest.Error())
	default:
		h.log.Error().Err(err).Msg("Create test failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
