package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/repository"
	pkgerrors "github.com/fssotc/website/pkg/errors"
)

// ── event errors ──

var (
	// ErrEventNotFound reports no event with the given id.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventDateInvalid reports an event ending before it starts.
	ErrEventDateInvalid = errors.New("invalid event dates, the end must not be before the start")

	// ErrEventTypeInvalid reports an event type outside the known set.
	ErrEventTypeInvalid = errors.New("unknown event type")

	// ErrEventConflict reports a stale version on update.
	ErrEventConflict = errors.New("event was modified by someone else, reload and retry")

	// ErrEventLinkNotFound reports no link with the given id on the event.
	ErrEventLinkNotFound = errors.New("event link not found")
)

// defaultPlace is where events happen unless told otherwise.
const defaultPlace = "FSS"

// EventService club events.
type EventService interface {
	// ListUpcoming returns events that have not yet started or are still
	// running, soonest first.
	ListUpcoming(ctx context.Context) ([]dto.EventResponse, error)
	// ListAll returns every event, latest first.
	ListAll(ctx context.Context) ([]dto.EventResponse, error)
	Get(ctx context.Context, id string) (*dto.EventResponse, error)
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
	AddLink(ctx context.Context, eventID string, req *dto.AddEventLinkRequest) (*dto.EventLinkResponse, error)
	DeleteLink(ctx context.Context, eventID, linkID string) error
	// ExportICS renders every event as an iCalendar feed of all-day events.
	ExportICS(ctx context.Context) ([]byte, error)
}

type eventService struct {
	repo    *repository.Repository
	cal     Calendar
	site    *config.SiteConfig
	baseURL string
	logger  *zap.Logger
}

// NewEventService creates an EventService. baseURL names the host in
// calendar UIDs.
func NewEventService(repo *repository.Repository, cal Calendar, site *config.SiteConfig, baseURL string, logger *zap.Logger) EventService {
	return &eventService{repo: repo, cal: cal, site: site, baseURL: baseURL, logger: logger}
}

func (s *eventService) ListUpcoming(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	today := s.cal.Today()
	return toEventResponses(lifecycle.Upcoming(events, today), today), nil
}

func (s *eventService) ListAll(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.After(events[j].StartDate)
	})
	return toEventResponses(events, s.cal.Today()), nil
}

func (s *eventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEventResponse(event, s.cal.Today())
	return &resp, nil
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}
	end, err := dto.ParseDatePtr(req.EndDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}

	event := &model.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		EventType:   req.EventType,
		Place:       strings.TrimSpace(req.Place),
		StartDate:   start,
		EndDate:     end,
		IsOurs:      req.IsOurs,
	}
	if event.Place == "" {
		event.Place = defaultPlace
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("create event failed", zap.String("title", event.Title), zap.Error(err))
		return nil, err
	}
	resp := toEventResponse(event, s.cal.Today())
	return &resp, nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Version != req.Version {
		return nil, ErrEventConflict
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = strings.TrimSpace(*req.Description)
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Place != nil {
		event.Place = strings.TrimSpace(*req.Place)
		if event.Place == "" {
			event.Place = defaultPlace
		}
	}
	if req.StartDate != nil {
		start, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.StartDate = start
	}
	if req.ClearEnd {
		event.EndDate = nil
	} else if req.EndDate != nil {
		end, err := dto.ParseDatePtr(req.EndDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.EndDate = end
	}
	if req.IsOurs != nil {
		event.IsOurs = *req.IsOurs
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrEventConflict
		}
		s.logger.Error("update event failed", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	resp := toEventResponse(event, s.cal.Today())
	return &resp, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("delete event failed", zap.String("event_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *eventService) AddLink(ctx context.Context, eventID string, req *dto.AddEventLinkRequest) (*dto.EventLinkResponse, error) {
	if _, err := s.get(ctx, eventID); err != nil {
		return nil, err
	}

	link := &model.EventLink{
		EventID: eventID,
		Title:   strings.TrimSpace(req.Title),
		Link:    strings.TrimSpace(req.Link),
	}
	if err := s.repo.Event.AddLink(ctx, link); err != nil {
		s.logger.Error("add event link failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return &dto.EventLinkResponse{ID: link.LinkID, Title: link.Title, Link: link.Link}, nil
}

func (s *eventService) DeleteLink(ctx context.Context, eventID, linkID string) error {
	if err := s.repo.Event.DeleteLink(ctx, eventID, linkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventLinkNotFound
		}
		s.logger.Error("delete event link failed", zap.String("link_id", linkID), zap.Error(err))
		return err
	}
	return nil
}

func (s *eventService) ExportICS(ctx context.Context) ([]byte, error) {
	events, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	host := "localhost"
	if s.baseURL != "" {
		if u, err := url.Parse(s.baseURL); err == nil && u.Hostname() != "" {
			host = u.Hostname()
		}
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.site.Title + "//Events//EN")
	cal.SetXWRCalName(s.site.Title)
	cal.SetXWRCalDesc(s.site.Description)

	stamp := s.cal.Now().UTC()
	for i := range events {
		e := &events[i]
		ev := cal.AddEvent(fmt.Sprintf("%s@%s", e.EventID, host))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Title)
		ev.SetDescription(e.Description)
		ev.SetLocation(e.Place)
		ev.SetAllDayStartAt(e.StartDate)
		// DTEND of an all-day event is exclusive
		ev.SetAllDayEndAt(e.EventSpan().EffectiveEnd().AddDate(0, 0, 1))
		if name, ok := model.EventTypes[e.EventType]; ok {
			ev.AddProperty(ics.ComponentPropertyCategories, name)
		}
		if len(e.Links) > 0 {
			ev.SetURL(e.Links[0].Link)
		}
	}
	return []byte(cal.Serialize()), nil
}

func (s *eventService) list(ctx context.Context) ([]model.Event, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, err
	}
	return events, nil
}

func (s *eventService) get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("get event failed", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	return event, nil
}

func validateEvent(e *model.Event) error {
	if _, ok := model.EventTypes[e.EventType]; !ok {
		return ErrEventTypeInvalid
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return ErrEventDateInvalid
	}
	return nil
}

func toEventResponses(events []model.Event, ref time.Time) []dto.EventResponse {
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, toEventResponse(&events[i], ref))
	}
	return result
}
