package models

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate status transitions: invited -> pass|fail -> s2_done -> submitted.
// Section 1 writes its evaluation verdict straight into the status column, so
// a candidate carries "pass" or "fail" until Section 2 moves them along.
const (
	CandidateStatusInvited   = "invited"
	CandidateStatusPass      = "pass"
	CandidateStatusFail      = "fail"
	CandidateStatusS2Done    = "s2_done"
	CandidateStatusSubmitted = "submitted"
)

// Candidate represents an invited interviewee and their interview results.
type Candidate struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CandidateID  string `gorm:"size:64;uniqueIndex;not null" json:"candidate_id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:64;not null" json:"-"`
	Token        string `gorm:"size:64;index" json:"-"`
	Status       string `gorm:"size:32;not null;default:invited" json:"status"`

	S1Transcript   string         `gorm:"type:text" json:"s1_transcript,omitempty"`
	S1Evaluation   datatypes.JSON `json:"s1_evaluation,omitempty"`
	S1Score        *int           `json:"s1_score,omitempty"`
	S1RecordingURL string         `gorm:"size:512" json:"s1_recording_url,omitempty"`

	S2QuestionID string   `gorm:"size:64" json:"s2_question_id,omitempty"`
	S2Answer     string   `gorm:"type:text" json:"s2_answer,omitempty"`
	S2Score      *float64 `json:"s2_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
