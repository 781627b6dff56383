package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fssotc/website/internal/model"
)

// MemberFilter narrows List.
type MemberFilter struct {
	Query  string // matches name, family name, email or username
	Offset int
	Limit  int
}

// MemberRepository member data access.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]model.Member, int64, error)
	Update(ctx context.Context, member *model.Member) error
	// Delete removes the member and, with it, every inscription.
	Delete(ctx context.Context, id string) error
	// UsernameTaken compares case-insensitively and ignores excludeID.
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a MemberRepository.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func preloadInscriptions(db *gorm.DB) *gorm.DB {
	return db.Order("inscriptions.session ASC")
}

func (r *memberRepo) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("Inscriptions", preloadInscriptions).
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("Inscriptions", preloadInscriptions).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) List(ctx context.Context, filter MemberFilter) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Member{})
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(family_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(username) LIKE ?",
			like, like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := db.Preload("Inscriptions", preloadInscriptions).
		Order("family_name ASC, name ASC").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepo) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(member).Error
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the FK cascades too; deleting explicitly keeps SQLite without
		// foreign_keys=on consistent
		if err := tx.Where("member_id = ?", id).Delete(&model.Inscription{}).Error; err != nil {
			return err
		}
		res := tx.Where("member_id = ?", id).Delete(&model.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *memberRepo) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("LOWER(username) = ?", strings.ToLower(username))
	if excludeID != "" {
		db = db.Where("member_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
