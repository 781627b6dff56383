package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/response"
)

// InscriptionHandler per-session membership records.
type InscriptionHandler struct {
	inscriptionSvc service.InscriptionService
}

// NewInscriptionHandler creates an InscriptionHandler.
func NewInscriptionHandler(inscriptionSvc service.InscriptionService) *InscriptionHandler {
	return &InscriptionHandler{inscriptionSvc: inscriptionSvc}
}

// Create inscribes an existing member
// POST /api/v1/inscriptions
func (h *InscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateInscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ins, err := h.inscriptionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleInscriptionError(c, err)
		return
	}

	response.Created(c, ins)
}

// Get one inscription
// GET /api/v1/inscriptions/:id
func (h *InscriptionHandler) Get(c *gin.Context) {
	ins, err := h.inscriptionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleInscriptionError(c, err)
		return
	}
	response.OK(c, ins)
}

// List inscriptions of ?session=YYYY-YYYY, the current session by default
// GET /api/v1/inscriptions
func (h *InscriptionHandler) List(c *gin.Context) {
	var req dto.InscriptionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	list, err := h.inscriptionSvc.ListBySession(c.Request.Context(), req.Session)
	if err != nil {
		h.handleInscriptionError(c, err)
		return
	}

	response.OK(c, list)
}

// Update inscription fields
// PUT /api/v1/inscriptions/:id
func (h *InscriptionHandler) Update(c *gin.Context) {
	var req dto.UpdateInscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ins, err := h.inscriptionSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleInscriptionError(c, err)
		return
	}

	response.OK(c, ins)
}

// Confirm marks the inscription as confirmed
// POST /api/v1/inscriptions/:id/confirm
func (h *InscriptionHandler) Confirm(c *gin.Context) {
	ins, err := h.inscriptionSvc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleInscriptionError(c, err)
		return
	}
	response.OK(c, ins)
}

// Delete one inscription
// DELETE /api/v1/inscriptions/:id
func (h *InscriptionHandler) Delete(c *gin.Context) {
	if err := h.inscriptionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleInscriptionError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *InscriptionHandler) handleInscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInscriptionNotFound):
		response.NotFound(c, 13001, "inscription not found")
	case errors.Is(err, service.ErrInscriptionExists):
		response.Conflict(c, 13002, "member is already inscribed for this session")
	case errors.Is(err, service.ErrInvalidChoice):
		response.BadRequest(c, 13003, "unknown role, university, education or year")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12001, "member not found")
	case errors.Is(err, service.ErrInvalidSession):
		response.BadRequest(c, 14001, "invalid session, expected a label like 2023-2024")
	default:
		response.InternalError(c)
	}
}
