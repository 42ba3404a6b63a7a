package models

import "time"

// Question is a Section 1 voice-interview question. ExpectedAnswer and
// NonNegotiables feed the evaluator prompt and are never exposed to
// candidates.
type Question struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Prompt         string    `gorm:"type:text;not null" json:"question"`
	ExpectedAnswer string    `gorm:"type:text" json:"-"`
	NonNegotiables string    `gorm:"type:text" json:"-"`
	SkillsTested   string    `gorm:"size:512" json:"what_we_are_testing"`
	Position       int       `gorm:"not null;default:0" json:"position"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
