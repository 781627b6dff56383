package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/response"
)

// SessionHandler academic sessions.
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Current the session today falls in
// GET /api/v1/sessions/current
func (h *SessionHandler) Current(c *gin.Context) {
	session, err := h.sessionSvc.Current(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, session)
}

// List sessions with inscription counts
// GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	list, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}
