package dto

// InviteRequest provisions a single candidate account.
type InviteRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
}

// InviteResponse reports the provisioned account. The plaintext password is
// returned once so admins can re-send credentials manually if email fails.
type InviteResponse struct {
	CandidateID string `json:"candidate_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Token       string `json:"token"`
	EmailSent   bool   `json:"email_sent"`
}

// BulkInviteRowResult reports the outcome of one CSV row.
type BulkInviteRowResult struct {
	Row         int    `json:"row"`
	CandidateID string `json:"candidate_id,omitempty"`
	Email       string `json:"email,omitempty"`
	Error       string `json:"error,omitempty"`
	EmailSent   bool   `json:"email_sent"`
}

// BulkInviteResponse summarizes a CSV invite run.
type BulkInviteResponse struct {
	Invited int                   `json:"invited"`
	Failed  int                   `json:"failed"`
	Rows    []BulkInviteRowResult `json:"rows"`
}
