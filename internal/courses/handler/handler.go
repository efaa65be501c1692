package handler

import (
	"strconv"

	"course_portal_backend/internal/courses/repository"
	"course_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves read-only course endpoints.
type Handler struct {
	repo repository.Reader
}

// New creates a courses handler.
func New(repo repository.Reader) *Handler {
	return &Handler{repo: repo}
}

type listRequest struct {
	Name  string `form:"name"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type listResponse struct {
	Items []repository.Course `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// List returns active courses.
// GET /api/v1/courses
func (h *Handler) List(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, "invalid request")
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	items, total, err := h.repo.List(c.Request.Context(), repository.ListParams{
		Name:   req.Name,
		Offset: (req.Page - 1) * req.Limit,
		Limit:  req.Limit,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, listResponse{Items: items, Total: total, Page: req.Page, Limit: req.Limit})
}

// GetByID returns one active course.
// GET /api/v1/courses/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.BadRequest(c, "invalid course ID")
		return
	}

	course, err := h.repo.GetActive(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, course)
}
