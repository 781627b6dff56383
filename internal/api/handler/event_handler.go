package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/response"
)

// EventHandler club events and their calendar feed.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Upcoming events that are running or still to come
// GET /api/v1/events
func (h *EventHandler) Upcoming(c *gin.Context) {
	list, err := h.eventSvc.ListUpcoming(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// All events, latest first
// GET /api/v1/events/all
func (h *EventHandler) All(c *gin.Context) {
	list, err := h.eventSvc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Get one event with its links
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// Calendar iCalendar feed of every event
// GET /api/v1/events.ics
func (h *EventHandler) Calendar(c *gin.Context) {
	data, err := h.eventSvc.ExportICS(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	c.Header("Content-Disposition", "inline; filename=events.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// Create event
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// Update event, rejecting stale versions
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete event and its links
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

// AddLink attaches a link to the event
// POST /api/v1/events/:id/links
func (h *EventHandler) AddLink(c *gin.Context) {
	var req dto.AddEventLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	link, err := h.eventSvc.AddLink(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, link)
}

// DeleteLink removes one link
// DELETE /api/v1/events/:id/links/:linkId
func (h *EventHandler) DeleteLink(c *gin.Context) {
	if err := h.eventSvc.DeleteLink(c.Request.Context(), c.Param("id"), c.Param("linkId")); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 15001, "event not found")
	case errors.Is(err, service.ErrEventDateInvalid):
		response.BadRequest(c, 15002, "the end date must not be before the start date")
	case errors.Is(err, service.ErrEventTypeInvalid):
		response.BadRequest(c, 15003, "unknown event type")
	case errors.Is(err, service.ErrEventConflict):
		response.Conflict(c, 15004, "event was modified by someone else, reload and retry")
	case errors.Is(err, service.ErrEventLinkNotFound):
		response.NotFound(c, 15005, "event link not found")
	default:
		response.InternalError(c)
	}
}
