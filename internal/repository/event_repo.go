package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fssotc/website/internal/model"
	pkgerrors "github.com/fssotc/website/pkg/errors"
)

// EventRepository event data access.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// List returns every event with its links, oldest start first.
	List(ctx context.Context) ([]model.Event, error)
	// Update fails with ErrOptimisticLock when event.Version is stale.
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	AddLink(ctx context.Context, link *model.EventLink) error
	DeleteLink(ctx context.Context, eventID, linkID string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	if event.Version == 0 {
		event.Version = 1
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Links").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Preload("Links").
		Order("start_date ASC, title ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	oldVersion := event.Version
	result := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ? AND version = ?", event.EventID, oldVersion).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"event_type":  event.EventType,
			"place":       event.Place,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
			"is_ours":     event.IsOurs,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version = oldVersion + 1
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("event_id = ?", id).Delete(&model.Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *eventRepo) AddLink(ctx context.Context, link *model.EventLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *eventRepo) DeleteLink(ctx context.Context, eventID, linkID string) error {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND link_id = ?", eventID, linkID).
		Delete(&model.EventLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
