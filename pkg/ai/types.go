package ai

import "context"

// EvaluationInput carries one spoken answer and the grading context for it.
type EvaluationInput struct {
	CandidateID    string
	Question       string
	Transcript     string
	ExpectedAnswer string
	NonNegotiables string
}

// EvaluationRecord is the canonical result of scoring a single answer.
// The five sub-scores are always present and within [0,10] after coercion.
type EvaluationRecord struct {
	Fluency     int    `json:"fluency"`
	Grammar     int    `json:"grammar"`
	Vocabulary  int    `json:"vocabulary"`
	Coherence   int    `json:"coherence"`
	Relevance   int    `json:"relevance"`
	OverallPass bool   `json:"overall_pass"`
	Feedback    string `json:"feedback"`
}

// SubScores returns the five quality dimensions in a fixed order.
func (r EvaluationRecord) SubScores() [5]int {
	return [5]int{r.Fluency, r.Grammar, r.Vocabulary, r.Coherence, r.Relevance}
}

// FinalScore computes the headline metric: the truncated integer mean of the
// five sub-scores.
func (r EvaluationRecord) FinalScore() int {
	sum := 0
	for _, s := range r.SubScores() {
		sum += s
	}
	return sum / 5
}

// Status maps the model's overall judgment to the persisted status label.
func (r EvaluationRecord) Status() string {
	if r.OverallPass {
		return "pass"
	}
	return "fail"
}

// Evaluator describes an AI model capable of scoring a spoken interview answer.
type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluationInput) (EvaluationRecord, error)
}
