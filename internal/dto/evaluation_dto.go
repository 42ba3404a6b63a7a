package dto

import "github.com/roundonehq/r1-interview-api/pkg/ai"

// EvaluateSection1Request carries one spoken answer through the evaluation
// pipeline. Transcript is filled in by the interview flow after transcription.
type EvaluateSection1Request struct {
	CandidateID    string `validate:"required"`
	Transcript     string `validate:"required"`
	Question       string `validate:"required"`
	ExpectedAnswer string
	NonNegotiables string
}

// FinalResult is the immutable outcome of evaluating one answer.
type FinalResult struct {
	ai.EvaluationRecord
	FinalScore int    `json:"final_score"`
	Status     string `json:"status"`
}

// Section1AnswerResponse is returned to the candidate after submitting a
// recorded answer.
type Section1AnswerResponse struct {
	Transcript   string      `json:"transcript"`
	RecordingURL string      `json:"recording_url,omitempty"`
	Result       FinalResult `json:"result"`
}
