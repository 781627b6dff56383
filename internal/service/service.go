package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/notify"
	"github.com/fssotc/website/internal/repository"
	"github.com/fssotc/website/pkg/jwt"
)

// Service aggregates every service.
type Service struct {
	Session     SessionService
	Member      MemberService
	Inscription InscriptionService
	Event       EventService
	Post        PostService
	Auth        AuthService
	Export      ExportService
}

// NewService wires every service over repo. blacklist may be nil when
// Redis is unavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	publisher notify.Publisher,
	logger *zap.Logger,
) *Service {
	cal := NewCalendar(cfg.Site.Location())
	return &Service{
		Session:     NewSessionService(repo, cal, logger),
		Member:      NewMemberService(repo, cal, publisher, logger),
		Inscription: NewInscriptionService(repo, cal, publisher, logger),
		Event:       NewEventService(repo, cal, &cfg.Site, cfg.Server.BaseURL, logger),
		Post:        NewPostService(repo, cal, &cfg.Site, cfg.Server.BaseURL, logger),
		Auth:        NewAuthService(repo, jwtMgr, blacklist, &cfg.Auth, logger),
		Export:      NewExportService(repo, cal, logger),
	}
}

// Calendar supplies the reference date every derived field is computed
// against.
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

// NewCalendar returns a Calendar on the wall clock in loc.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Now: time.Now, Location: loc}
}

// Today is the current civil date in the site timezone, as UTC midnight.
func (c Calendar) Today() time.Time {
	return lifecycle.Today(c.Now(), c.Location)
}

// CurrentSession is the session containing Today.
func (c Calendar) CurrentSession() lifecycle.Session {
	return lifecycle.Current(c.Today())
}
