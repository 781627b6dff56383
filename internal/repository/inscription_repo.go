package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fssotc/website/internal/model"
)

// SessionCount number of inscriptions stored for one session start date.
type SessionCount struct {
	Session   time.Time
	Count     int64
	Confirmed int64
}

// InscriptionRepository inscription data access.
type InscriptionRepository interface {
	Create(ctx context.Context, inscription *model.Inscription) error
	GetByID(ctx context.Context, id string) (*model.Inscription, error)
	GetByMemberAndSession(ctx context.Context, memberID string, session time.Time) (*model.Inscription, error)
	// ListBySession loads each inscription's member with all their inscriptions.
	ListBySession(ctx context.Context, session time.Time) ([]model.Inscription, error)
	ListByMember(ctx context.Context, memberID string) ([]model.Inscription, error)
	Update(ctx context.Context, inscription *model.Inscription) error
	Delete(ctx context.Context, id string) error
	CountBySession(ctx context.Context) ([]SessionCount, error)
}

type inscriptionRepo struct {
	db *gorm.DB
}

// NewInscriptionRepo creates an InscriptionRepository.
func NewInscriptionRepo(db *gorm.DB) InscriptionRepository {
	return &inscriptionRepo{db: db}
}

func (r *inscriptionRepo) Create(ctx context.Context, inscription *model.Inscription) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inscription).Error
}

func (r *inscriptionRepo) GetByID(ctx context.Context, id string) (*model.Inscription, error) {
	var ins model.Inscription
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("inscription_id = ?", id).
		First(&ins).Error
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *inscriptionRepo) GetByMemberAndSession(ctx context.Context, memberID string, session time.Time) (*model.Inscription, error) {
	var ins model.Inscription
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND session = ?", memberID, session).
		First(&ins).Error
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *inscriptionRepo) ListBySession(ctx context.Context, session time.Time) ([]model.Inscription, error) {
	var list []model.Inscription
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Member.Inscriptions").
		Joins("JOIN members ON members.member_id = inscriptions.member_id").
		Where("inscriptions.session = ?", session).
		Order("inscriptions.role DESC, members.family_name ASC, members.name ASC").
		Find(&list).Error
	return list, err
}

func (r *inscriptionRepo) ListByMember(ctx context.Context, memberID string) ([]model.Inscription, error) {
	var list []model.Inscription
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("session ASC").
		Find(&list).Error
	return list, err
}

func (r *inscriptionRepo) Update(ctx context.Context, inscription *model.Inscription) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inscription).Error
}

func (r *inscriptionRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("inscription_id = ?", id).
		Delete(&model.Inscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inscriptionRepo) CountBySession(ctx context.Context) ([]SessionCount, error) {
	var rows []SessionCount
	err := r.db.WithContext(ctx).
		Model(&model.Inscription{}).
		Select("session, COUNT(*) AS count, SUM(CASE WHEN confirmed THEN 1 ELSE 0 END) AS confirmed").
		Group("session").
		Order("session DESC").
		Scan(&rows).Error
	return rows, err
}
