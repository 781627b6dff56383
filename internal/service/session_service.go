package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/repository"
)

// ── session errors ──

// ErrInvalidSession reports a session label that is not two consecutive years.
var ErrInvalidSession = errors.New("invalid session, expected a label like 2023-2024")

// SessionService academic session queries.
type SessionService interface {
	Current(ctx context.Context) (*dto.SessionResponse, error)
	// List returns the sessions that have inscriptions, newest first.
	List(ctx context.Context) ([]dto.SessionStatsResponse, error)
	// Resolve parses label; an empty label is the current session.
	Resolve(label string) (lifecycle.Session, error)
}

type sessionService struct {
	repo   *repository.Repository
	cal    Calendar
	logger *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(repo *repository.Repository, cal Calendar, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, cal: cal, logger: logger}
}

func (s *sessionService) Current(_ context.Context) (*dto.SessionResponse, error) {
	current := s.cal.CurrentSession()
	resp := toSessionResponse(current, current)
	return &resp, nil
}

func (s *sessionService) List(ctx context.Context) ([]dto.SessionStatsResponse, error) {
	counts, err := s.repo.Inscription.CountBySession(ctx)
	if err != nil {
		s.logger.Error("count inscriptions by session failed", zap.Error(err))
		return nil, err
	}

	current := s.cal.CurrentSession()
	result := make([]dto.SessionStatsResponse, 0, len(counts))
	for _, c := range counts {
		result = append(result, dto.SessionStatsResponse{
			SessionResponse: toSessionResponse(lifecycle.SessionOf(c.Session), current),
			Inscriptions:    c.Count,
			Confirmed:       c.Confirmed,
		})
	}
	return result, nil
}

func (s *sessionService) Resolve(label string) (lifecycle.Session, error) {
	return resolveSession(s.cal, label)
}

func resolveSession(cal Calendar, label string) (lifecycle.Session, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return cal.CurrentSession(), nil
	}
	session, err := lifecycle.ParseLabel(label)
	if err != nil {
		return lifecycle.Session{}, ErrInvalidSession
	}
	return session, nil
}
