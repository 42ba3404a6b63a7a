package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/models"
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/pkg/mailer"
)

// ErrInvalidCSV indicates the uploaded bulk-invite file could not be read.
var ErrInvalidCSV = errors.New("invalid csv file")

// InviteService provisions candidate accounts and sends credential emails.
type InviteService interface {
	Invite(ctx context.Context, payload dto.InviteRequest) (dto.InviteResponse, error)
	BulkInvite(ctx context.Context, reader io.Reader) (dto.BulkInviteResponse, error)
}

type inviteService struct {
	candidates repository.CandidateRepository
	mail       mailer.Mailer
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewInviteService constructs the invite service. The mailer may be nil in
// environments without SMTP; provisioning still happens and the response
// carries the credentials for manual delivery.
func NewInviteService(candidates repository.CandidateRepository, mail mailer.Mailer, validate *validator.Validate, logger zerolog.Logger) InviteService {
	return &inviteService{
		candidates: candidates,
		mail:       mail,
		validator:  validate,
		logger:     logger.With().Str("component", "invite_service").Logger(),
	}
}

// Invite creates or refreshes a candidate account and emails the credentials.
func (s *inviteService) Invite(ctx context.Context, payload dto.InviteRequest) (dto.InviteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InviteResponse{}, err
	}

	password, err := randomSecret(8)
	if err != nil {
		return dto.InviteResponse{}, fmt.Errorf("generate password: %w", err)
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	candidate := models.Candidate{
		CandidateID:  payload.CandidateID,
		Name:         payload.Name,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: HashPassword(password),
		Token:        token,
	}
	if err := s.candidates.UpsertInvite(ctx, &candidate); err != nil {
		return dto.InviteResponse{}, err
	}

	response := dto.InviteResponse{
		CandidateID: payload.CandidateID,
		Email:       candidate.Email,
		Password:    password,
		Token:       token,
	}

	if s.mail != nil {
		err := s.mail.SendInvite(mailer.Invite{
			Name:        payload.Name,
			Email:       candidate.Email,
			CandidateID: payload.CandidateID,
			Password:    password,
			Token:       token,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("candidate_id", payload.CandidateID).Msg("invite email failed")
		} else {
			response.EmailSent = true
		}
	}

	return response, nil
}

// BulkInvite processes a CSV of candidate_id,name,email rows. A header row is
// skipped when detected; row failures do not abort the run.
func (s *inviteService) BulkInvite(ctx context.Context, reader io.Reader) (dto.BulkInviteResponse, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return dto.BulkInviteResponse{}, ErrInvalidCSV
	}

	response := dto.BulkInviteResponse{}
	for i, record := range records {
		rowNumber := i + 1
		if i == 0 && looksLikeHeader(record) {
			continue
		}

		if len(record) < 3 {
			response.Failed++
			response.Rows = append(response.Rows, dto.BulkInviteRowResult{
				Row:   rowNumber,
				Error: "expected columns: candidate_id,name,email",
			})
			continue
		}

		payload := dto.InviteRequest{
			CandidateID: strings.TrimSpace(record[0]),
			Name:        strings.TrimSpace(record[1]),
			Email:       strings.TrimSpace(record[2]),
		}

		invited, err := s.Invite(ctx, payload)
		if err != nil {
			response.Failed++
			response.Rows = append(response.Rows, dto.BulkInviteRowResult{
				Row:         rowNumber,
				CandidateID: payload.CandidateID,
				Email:       payload.Email,
				Error:       err.Error(),
			})
			continue
		}

		response.Invited++
		response.Rows = append(response.Rows, dto.BulkInviteRowResult{
			Row:         rowNumber,
			CandidateID: invited.CandidateID,
			Email:       invited.Email,
			EmailSent:   invited.EmailSent,
		})
	}

	return response, nil
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "candidate_id" || first == "candidateid" || first == "id"
}

func randomSecret(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
