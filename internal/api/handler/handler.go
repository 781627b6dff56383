package handler

import "github.com/fssotc/website/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Session     *SessionHandler
	Member      *MemberHandler
	Inscription *InscriptionHandler
	Event       *EventHandler
	Post        *PostHandler
	Export      *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Session:     NewSessionHandler(svc.Session),
		Member:      NewMemberHandler(svc.Member),
		Inscription: NewInscriptionHandler(svc.Inscription),
		Event:       NewEventHandler(svc.Event),
		Post:        NewPostHandler(svc.Post),
		Export:      NewExportHandler(svc.Export),
	}
}
