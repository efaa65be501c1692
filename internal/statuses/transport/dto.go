package transport

import "encoding/json"

// CreateStatusRequest contains data for creating a new status.
type CreateStatusRequest struct {
	Name      string  `json:"name" validate:"required,notblank,max=100"`
	IsDefault *bool   `json:"isDefault,omitempty"`
	Color     *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// UpdateStatusRequest contains the fields an edit may change.
type UpdateStatusRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	IsDefault *bool   `json:"isDefault,omitempty"`
	Color     *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

// ReorderRequest carries the full board order. Elements are decoded loosely
// so non-integer entries can be reported with a stable code.
type ReorderRequest struct {
	Order []json.RawMessage `json:"order"`
}

// ListStatusesRequest contains query parameters for listing statuses.
type ListStatusesRequest struct {
	Page      int  `form:"page" validate:"omitempty,min=1"`
	Limit     int  `form:"limit" validate:"omitempty,min=1"`
	ForKanban bool `form:"forKanban"`
}

// StatusResponse represents a status in API responses.
type StatusResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"isDefault"`
	Color     *string `json:"color"`
	Order     int     `json:"order"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// StatusListResponse wraps a page of statuses.
type StatusListResponse struct {
	Items      []StatusResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}
