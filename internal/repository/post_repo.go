package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fssotc/website/internal/model"
)

// PostRepository blog post data access.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context, offset, limit int) ([]model.Post, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo creates a PostRepository.
func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) ListPublished(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.Post{}).Where("published = ?", true), offset, limit)
}

func (r *postRepo) ListAll(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.Post{}), offset, limit)
}

func (r *postRepo) list(db *gorm.DB, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}
	if err := db.Order("published_at DESC, created_at DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepo) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("post_id = ?", id).Delete(&model.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
