package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/roundonehq/r1-interview-api/internal/models"
)

// CandidateRepository defines data operations for candidates.
type CandidateRepository interface {
	GetByEmail(ctx context.Context, email string) (models.Candidate, error)
	GetByToken(ctx context.Context, token string) (models.Candidate, error)
	GetByCandidateID(ctx context.Context, candidateID string) (models.Candidate, error)
	UpsertInvite(ctx context.Context, candidate *models.Candidate) error
	SaveSection1(ctx context.Context, candidateID string, transcript string, evaluation datatypes.JSON, finalScore int, status string) error
	SetSection1Recording(ctx context.Context, candidateID string, url string) error
	SaveSection2(ctx context.Context, candidateID string, questionID string, answer string, score *float64) error
	UpdateStatus(ctx context.Context, candidateID string, status string) error
	List(ctx context.Context, filter CandidateFilter) ([]models.Candidate, error)
}

// CandidateFilter narrows candidate listings.
type CandidateFilter struct {
	Status *string
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository instantiates the repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&candidate).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) GetByToken(ctx context.Context, token string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&candidate).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) GetByCandidateID(ctx context.Context, candidateID string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

// UpsertInvite refreshes credentials for an existing email or inserts a new
// candidate row, mirroring the invite flow.
func (r *candidateRepository) UpsertInvite(ctx context.Context, candidate *models.Candidate) error {
	var existing models.Candidate
	err := r.db.WithContext(ctx).Where("email = ?", candidate.Email).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"candidate_id":  candidate.CandidateID,
			"name":          candidate.Name,
			"password_hash": candidate.PasswordHash,
			"token":         candidate.Token,
			"status":        models.CandidateStatusInvited,
		}
		return r.db.WithContext(ctx).Model(&models.Candidate{}).
			Where("email = ?", candidate.Email).
			Updates(updates).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		candidate.Status = models.CandidateStatusInvited
		return r.db.WithContext(ctx).Create(candidate).Error
	default:
		return err
	}
}

func (r *candidateRepository) SaveSection1(ctx context.Context, candidateID string, transcript string, evaluation datatypes.JSON, finalScore int, status string) error {
	return r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Updates(map[string]any{
			"s1_transcript": transcript,
			"s1_evaluation": evaluation,
			"s1_score":      finalScore,
			"status":        status,
		}).Error
}

// SetSection1Recording stores the playback URL for the archived answer clip.
func (r *candidateRepository) SetSection1Recording(ctx context.Context, candidateID string, url string) error {
	return r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Update("s1_recording_url", url).Error
}

func (r *candidateRepository) SaveSection2(ctx context.Context, candidateID string, questionID string, answer string, score *float64) error {
	updates := map[string]any{
		"s2_question_id": questionID,
		"s2_answer":      answer,
		"status":         models.CandidateStatusS2Done,
	}
	if score != nil {
		updates["s2_score"] = *score
	}

	return r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Updates(updates).Error
}

func (r *candidateRepository) UpdateStatus(ctx context.Context, candidateID string, status string) error {
	return r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Update("status", status).Error
}

func (r *candidateRepository) List(ctx context.Context, filter CandidateFilter) ([]models.Candidate, error) {
	query := r.db.WithContext(ctx).Model(&models.Candidate{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var candidates []models.Candidate
	if err := query.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}
