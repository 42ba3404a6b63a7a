package dto

// CandidateLoginRequest is the email/password login payload for candidates.
type CandidateLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AdminLoginRequest is the username/password login payload for admins.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenLoginRequest carries the magic-link token from the invite email.
type TokenLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse returns the bearer token and the authenticated identity.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	CandidateID string `json:"candidate_id,omitempty"`
	Name        string `json:"name,omitempty"`
}
