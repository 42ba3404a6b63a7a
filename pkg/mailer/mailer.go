// Package mailer delivers candidate invite emails over SMTP.
package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Invite holds everything needed to email a candidate their credentials.
type Invite struct {
	Name        string
	Email       string
	CandidateID string
	Password    string
	Token       string
}

// Mailer sends interview invites.
type Mailer interface {
	SendInvite(invite Invite) error
}

// Config contains SMTP connection settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	BaseURL   string
}

// SMTPMailer implements Mailer using a gomail dialer.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	logger  zerolog.Logger
}

// New constructs an SMTP mailer.
func New(cfg Config, logger zerolog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from address must be provided")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.FromEmail,
		baseURL: cfg.BaseURL,
		logger:  logger.With().Str("component", "smtp_mailer").Logger(),
	}, nil
}

// SendInvite emails the candidate their credentials and magic link.
func (m *SMTPMailer) SendInvite(invite Invite) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", invite.Email)
	message.SetHeader("Subject", "R1 Interview – Your Login Details")
	message.SetBody("text/plain", m.inviteBody(invite))

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send invite to %s: %w", invite.Email, err)
	}

	m.logger.Info().Str("candidate_id", invite.CandidateID).Msg("invite sent")
	return nil
}

func (m *SMTPMailer) inviteBody(invite Invite) string {
	link := fmt.Sprintf("%s/?token=%s", m.baseURL, invite.Token)

	return fmt.Sprintf(`Hello %s,

You are invited to complete your Round 1 Interview.

Login Details
- Candidate ID: %s
- Password: %s

Access your interview here:
%s

Please make sure:
- Open the interview in full screen.
- Allow microphone permission when prompted.
- Complete Section 1 (Voice) and Section 2 (Written).

Regards,
Interviewer Community
`, invite.Name, invite.CandidateID, invite.Password, link)
}
