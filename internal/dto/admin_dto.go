package dto

import (
	"time"

	"github.com/roundonehq/r1-interview-api/internal/models"
)

// CandidateSummary is the dashboard view of one candidate.
type CandidateSummary struct {
	CandidateID  string    `json:"candidate_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	S1Score      *int      `json:"s1_score"`
	S2Score      *float64  `json:"s2_score"`
	RecordingURL string    `json:"recording_url,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCandidateSummary maps a candidate row to its dashboard view.
func NewCandidateSummary(candidate models.Candidate) CandidateSummary {
	return CandidateSummary{
		CandidateID:  candidate.CandidateID,
		Name:         candidate.Name,
		Email:        candidate.Email,
		Status:       candidate.Status,
		S1Score:      candidate.S1Score,
		S2Score:      candidate.S2Score,
		RecordingURL: candidate.S1RecordingURL,
		UpdatedAt:    candidate.UpdatedAt,
	}
}

// DashboardResponse aggregates the admin results listing.
type DashboardResponse struct {
	Total      int                `json:"total"`
	ByStatus   map[string]int     `json:"by_status"`
	Candidates []CandidateSummary `json:"candidates"`
}
