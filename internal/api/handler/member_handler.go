package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/api/middleware"
	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/response"
)

// MemberHandler members and public registration.
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Register signs a visitor up for the current session
// POST /api/v1/register
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.memberSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleMemberError(c, err)
		return
	}

	response.Created(c, result)
}

// Create adds a member without an inscription
// POST /api/v1/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	member, err := h.memberSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleMemberError(c, err)
		return
	}

	response.Created(c, member)
}

// Get one member with every inscription
// GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// List members, optionally filtered with ?q=
// GET /api/v1/members
func (h *MemberHandler) List(c *gin.Context) {
	var req dto.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	list, total, err := h.memberSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update member profile
// PUT /api/v1/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	member, err := h.memberSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleMemberError(c, err)
		return
	}

	response.OK(c, member)
}

// Delete removes the member and their inscriptions
// DELETE /api/v1/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleMemberError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleMemberError also covers the inscription errors Register can return.
func handleMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12001, "member not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 12002, "email is already registered")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 12003, "username is already used by another member")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12004, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrInscriptionExists):
		response.Conflict(c, 13002, "already inscribed for this session")
	case errors.Is(err, service.ErrInvalidChoice):
		response.BadRequest(c, 13003, "unknown role, university, education or year")
	default:
		response.InternalError(c)
	}
}

// bindError answers a failed bind, telling oversized bodies apart.
func bindError(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid parameters", err.Error())
}
