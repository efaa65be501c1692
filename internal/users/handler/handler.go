package handler

import (
	"strconv"

	"course_portal_backend/internal/users/repository"
	"course_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves contact lookups.
type Handler struct {
	repo repository.Repository
}

// New creates a users handler.
func New(repo repository.Repository) *Handler {
	return &Handler{repo: repo}
}

// GetByID returns a contact with its lead and course counts.
// GET /api/v1/users/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.BadRequest(c, "invalid user ID")
		return
	}

	summary, err := h.repo.GetSummary(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}
