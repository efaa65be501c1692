package handler

import (
	"net/http"
	"strconv"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/service"
	"course_portal_backend/internal/statuses/transport"
	"course_portal_backend/platform/httpkit"
	"course_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for statuses.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid status ID"
)

// New creates a new statuses handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create adds a column to the board.
// POST /api/v1/status
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, codes.ErrValidation(validator.FieldErrors(err)))
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Reorder rewrites board positions from the submitted id sequence.
// PATCH /api/v1/status/reorder
func (h *Handler) Reorder(c *gin.Context) {
	var req transport.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, codes.ErrOrderFormatInvalid())
		return
	}

	ids, err := service.ParseOrder(req.Order)
	if httpkit.HandleError(c, err) {
		return
	}

	if httpkit.HandleError(c, h.svc.Reorder(c.Request.Context(), ids)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns a page of statuses or, with forKanban, every column.
// GET /api/v1/status
func (h *Handler) List(c *gin.Context) {
	var req transport.ListStatusesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, codes.ErrValidation(validator.FieldErrors(err)))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves a status by ID.
// GET /api/v1/status/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update renames, recolors or promotes a status.
// PATCH /api/v1/status/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, codes.ErrValidation(validator.FieldErrors(err)))
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a non-default status after moving its leads to the default.
// DELETE /api/v1/status/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Remove(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.BadRequest(c, msgInvalidID)
		return 0, false
	}
	return id, true
}
