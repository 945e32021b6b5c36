package model

import "github.com/google/uuid"

// QuestionPhase is the per-question classification inherited from the
// parent test's phase.
type QuestionPhase string

const (
	QuestionPhaseGS   QuestionPhase = "GS"
	QuestionPhaseCSAT QuestionPhase = "CSAT"
)

// CorrectOption enumerates the four option slot names.
const (
	OptionName1 = "option1"
	OptionName2 = "option2"
	OptionName3 = "option3"
	OptionName4 = "option4"
)

// ValidCorrectOption reports whether s names one of the four option slots.
func ValidCorrectOption(s string) bool {
	switch s {
	case OptionName1, OptionName2, OptionName3, OptionName4:
		return true
	}
	return false
}

// Question represents a single multiple-choice item belonging to one test.
type Question struct {
	ID                uuid.UUID     `json:"id"`
	TestID            uuid.UUID     `json:"testId"`
	QuestionNumber    int           `json:"questionNumber"`
	QuestionStatement string        `json:"questionStatement"`
	Option1           string        `json:"option1"`
	Option2           string        `json:"option2"`
	Option3           string        `json:"option3"`
	Option4           string        `json:"option4"`
	CorrectOption     string        `json:"correctOption"`
	Phase             QuestionPhase `json:"phase"`
}

// QuestionInput is one entry of the questions array in a creation payload.
type QuestionInput struct {
	QuestionNumber    int    `json:"questionNumber"`
	QuestionStatement string `json:"questionStatement"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
	CorrectOption     string `json:"correctOption"`
}
