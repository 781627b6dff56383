package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository over one connection or transaction.
type Repository struct {
	db *gorm.DB

	Member      MemberRepository
	Inscription InscriptionRepository
	Event       EventRepository
	Post        PostRepository
	Admin       AdminRepository
}

// NewRepository creates the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Member:      NewMemberRepo(db),
		Inscription: NewInscriptionRepo(db),
		Event:       NewEventRepo(db),
		Post:        NewPostRepo(db),
		Admin:       NewAdminRepo(db),
	}
}

// WithTx returns a Repository bound to tx, or r itself when tx is nil.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction runs fn inside a transaction, committing when it returns nil.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
