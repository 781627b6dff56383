package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fssotc/website/internal/model"
)

// AdminRepository back-office account data access.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo creates an AdminRepository.
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("admin_id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).Count(&n).Error
	return n, err
}
