package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prepmitra/mocktest-backend/internal/istime"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/prepmitra/mocktest-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ValidationError is a client-caused input failure. Its message is safe
// to return verbatim in a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Domain errors. The question-count message enumerates the only counts a
// test may have; each maps a count to its inferred phase.
var (
	ErrTitleRequired        = &ValidationError{Message: "title is required and must be a non-empty string"}
	ErrTitleTooLong         = &ValidationError{Message: "title must be at most 200 characters"}
	ErrDateRequired         = &ValidationError{Message: "date is required"}
	ErrInvalidDateFormat    = &ValidationError{Message: "date must be in YYYY-MM-DD format"}
	ErrInvalidDate          = &ValidationError{Message: "date is not a valid calendar date"}
	ErrInvalidTestType      = &ValidationError{Message: "testType must be either 'paid' or 'free'"}
	ErrInvalidQuestionCount = &ValidationError{Message: "questions must contain exactly 75 (daily), 100 (gs) or 80 (csat) entries"}
	ErrInvalidTimeRange     = &ValidationError{Message: "endTime must be strictly after startTime"}

	ErrDuplicateTest    = errors.New("a test already exists for this date, test type and phase")
	ErrTestNotFound     = errors.New("test not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// TestStore is the persistence contract for tests.
type TestStore interface {
	ExistsByKey(ctx context.Context, date time.Time, testType model.TestType, phase model.Phase) (bool, error)
	CreateWithQuestions(ctx context.Context, t *model.Test, questions []model.Question) error
	List(ctx context.Context) ([]model.Test, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error)
}

// QuestionStore is the persistence contract for single-question operations.
type QuestionStore interface {
	ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Question, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TestService implements the test creation pipeline (validation, IST
// normalization, phase inference, question batch building) plus listing
// and deletion.
type TestService struct {
	tests     TestStore
	questions QuestionStore
	cache     CatalogCache
	log       zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(tests TestStore, questions QuestionStore, cache CatalogCache, log zerolog.Logger) *TestService {
	return &TestService{
		tests:     tests,
		questions: questions,
		cache:     cache,
		log:       log.With().Str("component", "test_service").Logger(),
	}
}

// phaseForCount maps a question-array length to the test phase it implies.
func phaseForCount(n int) (model.Phase, bool) {
	switch n {
	case 75:
		return model.PhaseDaily, true
	case 100:
		return model.PhaseGS, true
	case 80:
		return model.PhaseCSAT, true
	}
	return "", false
}

// Create validates and normalizes a creation payload, infers the phase
// from the question count, and persists the test together with its full
// question batch in one transaction. Validation runs to completion before
// any write is attempted; an invalid payload never persists anything.
func (s *TestService) Create(ctx context.Context, req *model.CreateTestRequest) (*model.TestSummary, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > 200 {
		return nil, ErrTitleTooLong
	}

	date, err := istime.NormalizeDate(req.Date)
	if err != nil {
		switch {
		case errors.Is(err, istime.ErrEmptyDate):
			return nil, ErrDateRequired
		case errors.Is(err, istime.ErrBadPattern):
			return nil, ErrInvalidDateFormat
		default:
			return nil, ErrInvalidDate
		}
	}
	testDate, err := istime.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	testType := model.TestType(req.TestType)
	if !testType.Valid() {
		return nil, ErrInvalidTestType
	}

	phase, ok := phaseForCount(len(req.Questions))
	if !ok {
		return nil, ErrInvalidQuestionCount
	}

	exists, err := s.tests.ExistsByKey(ctx, testDate, testType, phase)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTest
	}

	startUTC, endUTC, err := s.resolveWindow(date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	questions, err := buildQuestions(req.Questions, phase.QuestionPhase())
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:          title,
		TestDate:       testDate,
		StartUTC:       startUTC,
		EndUTC:         endUTC,
		TotalQuestions: len(questions),
		TestType:       testType,
		Phase:          phase,
	}

	if err := s.tests.CreateWithQuestions(ctx, test, questions); err != nil {
		// Two concurrent creates can both pass the existence check; the
		// unique index settles the race.
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateTest
		}
		return nil, fmt.Errorf("persist test: %w", err)
	}

	s.cache.Invalidate(ctx)

	s.log.Info().
		Str("test_id", test.ID.String()).
		Str("date", date).
		Str("phase", string(phase)).
		Int("questions", len(questions)).
		Msg("Test created")

	summary := summarize(test)
	return &summary, nil
}

// resolveWindow computes the stored UTC window. Supplied times are
// wall-clock instants re-anchored to UTC+5:30; omitted ends default to
// the full calendar day in that offset.
func (s *TestService) resolveWindow(date, startRaw, endRaw string) (time.Time, time.Time, error) {
	defStart, defEnd, err := istime.DayWindow(date)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	startUTC := defStart
	if startRaw != "" {
		if startUTC, err = istime.ParseWallClock(startRaw); err != nil {
			return time.Time{}, time.Time{}, validationErrorf("startTime: %v", err)
		}
	}

	endUTC := defEnd
	if endRaw != "" {
		if endUTC, err = istime.ParseWallClock(endRaw); err != nil {
			return time.Time{}, time.Time{}, validationErrorf("endTime: %v", err)
		}
	}

	if !endUTC.After(startUTC) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return startUTC, endUTC, nil
}

// buildQuestions turns raw payload entries into persistable records.
// Question numbers fall back to the 1-based array position; the statement
// and the four options are trimmed. correctOption must name one of the
// four option slots but is not cross-checked against the option text.
func buildQuestions(inputs []model.QuestionInput, phase model.QuestionPhase) ([]model.Question, error) {
	questions := make([]model.Question, len(inputs))
	for i, in := range inputs {
		statement := strings.TrimSpace(in.QuestionStatement)
		if statement == "" {
			return nil, validationErrorf("questions[%d]: questionStatement is required", i)
		}
		if !model.ValidCorrectOption(in.CorrectOption) {
			return nil, validationErrorf("questions[%d]: correctOption must be one of option1, option2, option3, option4", i)
		}

		number := in.QuestionNumber
		if number <= 0 {
			number = i + 1
		}

		questions[i] = model.Question{
			QuestionNumber:    number,
			QuestionStatement: statement,
			Option1:           strings.TrimSpace(in.Option1),
			Option2:           strings.TrimSpace(in.Option2),
			Option3:           strings.TrimSpace(in.Option3),
			Option4:           strings.TrimSpace(in.Option4),
			CorrectOption:     in.CorrectOption,
			Phase:             phase,
		}
	}
	return questions, nil
}

// List returns all tests ordered by date descending, phase ascending,
// with display-only IST timestamps attached. Served from the catalog
// cache when warm; cache trouble degrades to a database read.
func (s *TestService) List(ctx context.Context) ([]model.TestSummary, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	summaries := make([]model.TestSummary, len(tests))
	for i := range tests {
		summaries[i] = summarize(&tests[i])
	}

	s.cache.Set(ctx, summaries)
	return summaries, nil
}

// ListQuestions returns all questions of one test ordered by question
// number. An unknown test yields an empty list, not an error.
func (s *TestService) ListQuestions(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	questions, err := s.questions.ListByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// DeleteTest removes a test and all of its questions.
func (s *TestService) DeleteTest(ctx context.Context, id uuid.UUID) error {
	found, err := s.tests.DeleteCascade(ctx, id)
	if err != nil {
		return fmt.Errorf("delete test: %w", err)
	}
	if !found {
		return ErrTestNotFound
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Str("test_id", id.String()).Msg("Test deleted with its questions")
	return nil
}

// DeleteQuestion removes one question and decrements the parent test's
// question counter.
func (s *TestService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	found, err := s.questions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !found {
		return ErrQuestionNotFound
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Str("question_id", id.String()).Msg("Question deleted")
	return nil
}

func summarize(t *model.Test) model.TestSummary {
	return model.TestSummary{
		TestID:         t.ID,
		Title:          t.Title,
		Date:           t.TestDate.In(istime.Location).Format("2006-01-02"),
		TotalQuestions: t.TotalQuestions,
		TestType:       t.TestType,
		Phase:          t.Phase,
		PhaseLabel:     t.Phase.Label(),
		IsActive:       t.IsActive,
		StartTimeIST:   istime.FormatIST(t.StartUTC),
		EndTimeIST:     istime.FormatIST(t.EndUTC),
	}
}
