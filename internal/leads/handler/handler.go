package handler

import (
	"context"
	"net/http"
	"strconv"

	"course_portal_backend/internal/leads/transport"
	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/platform/httpkit"
	"course_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest  = "invalid request"
	msgInvalidID       = "invalid lead ID"
	msgInvalidStatusID = "invalid status ID"
)

// LeadService is the lead management surface used by the handler.
type LeadService interface {
	Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error)
	GetByID(ctx context.Context, id int64) (transport.LeadResponse, error)
	Update(ctx context.Context, id int64, req transport.UpdateLeadRequest) (transport.LeadResponse, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error)
}

// BoardService builds the kanban board.
type BoardService interface {
	GetBoard(ctx context.Context, req transport.BoardRequest) (transport.BoardResponse, error)
}

// Handler handles HTTP requests for leads.
type Handler struct {
	leads LeadService
	board BoardService
	val   *validator.Validator
}

// New creates a new leads handler.
func New(leads LeadService, board BoardService, val *validator.Validator) *Handler {
	return &Handler{leads: leads, board: board, val: val}
}

// Create stores a public lead submission.
// POST /api/v1/lead
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.leads.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List returns a filtered page of leads.
// GET /api/v1/lead
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.leads.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Kanban returns the board with every column on its first page unless
// loadMoreStatusId selects one.
// GET /api/v1/lead/kanban
func (h *Handler) Kanban(c *gin.Context) {
	req, ok := h.bindBoard(c)
	if !ok {
		return
	}
	h.renderBoard(c, req)
}

// LoadMore returns the board with the column in the path advanced to statusPage.
// GET /api/v1/lead/kanban/load-more/:statusId
func (h *Handler) LoadMore(c *gin.Context) {
	statusID, err := strconv.ParseInt(c.Param("statusId"), 10, 64)
	if err != nil || statusID <= 0 {
		httpkit.BadRequest(c, msgInvalidStatusID)
		return
	}

	req, ok := h.bindBoard(c)
	if !ok {
		return
	}
	req.LoadMoreStatusID = &statusID
	h.renderBoard(c, req)
}

// GetByID returns a lead with its relations.
// GET /api/v1/lead/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.leads.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update edits a lead; statusId and courseId are required.
// PATCH /api/v1/lead/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.leads.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete soft-deletes a lead.
// DELETE /api/v1/lead/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.leads.Remove(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindBoard(c *gin.Context) (transport.BoardRequest, bool) {
	var req transport.BoardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return req, false
	}
	return req, h.validate(c, req)
}

func (h *Handler) renderBoard(c *gin.Context, req transport.BoardRequest) {
	result, err := h.board.GetBoard(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) validate(c *gin.Context, req interface{}) bool {
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, codes.ErrValidation(validator.FieldErrors(err)))
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.BadRequest(c, msgInvalidID)
		return 0, false
	}
	return id, true
}
