package model

import (
	"time"

	"github.com/google/uuid"
)

// TestType classifies a test's monetization, independent of phase.
type TestType string

const (
	TestTypePaid TestType = "paid"
	TestTypeFree TestType = "free"
)

// Valid reports whether t is a known test type.
func (t TestType) Valid() bool {
	return t == TestTypePaid || t == TestTypeFree
}

// Phase classifies a test by its question count.
type Phase string

const (
	PhaseDaily Phase = "daily"
	PhaseGS    Phase = "gs"
	PhaseCSAT  Phase = "csat"
)

// Label returns the human-readable phase name used in listings.
func (p Phase) Label() string {
	switch p {
	case PhaseDaily:
		return "Daily"
	case PhaseGS:
		return "General Studies"
	case PhaseCSAT:
		return "CSAT"
	default:
		return string(p)
	}
}

// QuestionPhase returns the per-question phase inherited from a test phase.
// Daily and GS tests carry GS questions; CSAT tests carry CSAT questions.
func (p Phase) QuestionPhase() QuestionPhase {
	if p == PhaseCSAT {
		return QuestionPhaseCSAT
	}
	return QuestionPhaseGS
}

// Test represents a timed multiple-choice test scheduled for a calendar date.
type Test struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	TestDate       time.Time `json:"test_date"`
	StartUTC       time.Time `json:"start_utc"`
	EndUTC         time.Time `json:"end_utc"`
	TotalQuestions int       `json:"total_questions"`
	TestType       TestType  `json:"test_type"`
	Phase          Phase     `json:"phase"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTestRequest is the payload for creating a test with its questions.
// Field-level validation is deliberately not expressed as binding tags:
// the creation pipeline validates in a fixed order with specific error
// messages, which struct tags cannot express.
type CreateTestRequest struct {
	Title     string          `json:"title"`
	Date      string          `json:"date"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	TestType  string          `json:"testType"`
	Questions []QuestionInput `json:"questions"`
}

// TestSummary is the display shape of a test in listings and creation
// confirmations. Times are rendered in the +05:30 display offset.
type TestSummary struct {
	TestID         uuid.UUID `json:"testId"`
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	TotalQuestions int       `json:"totalQuestions"`
	TestType       TestType  `json:"testType"`
	Phase          Phase     `json:"phase"`
	PhaseLabel     string    `json:"phaseLabel"`
	IsActive       bool      `json:"isActive"`
	StartTimeIST   string    `json:"startTimeIST"`
	EndTimeIST     string    `json:"endTimeIST"`
}
