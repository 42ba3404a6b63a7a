package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/roundonehq/r1-interview-api/internal/models"
)

// QuestionRepository defines data operations for the Section 1 question bank.
type QuestionRepository interface {
	List(ctx context.Context) ([]models.Question, error)
	GetByID(ctx context.Context, id uint) (models.Question, error)
	ReplaceAll(ctx context.Context, questions []models.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository instantiates the repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) List(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// ReplaceAll swaps the question bank atomically; used when seeding from the
// bank file at startup.
func (r *questionRepository) ReplaceAll(ctx context.Context, questions []models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}
