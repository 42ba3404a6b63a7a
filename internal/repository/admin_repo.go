package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/roundonehq/r1-interview-api/internal/models"
)

// AdminRepository defines data operations for admin accounts.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}
