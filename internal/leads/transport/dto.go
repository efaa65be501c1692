package transport

// CreateLeadRequest is a public lead submission.
type CreateLeadRequest struct {
	FullName       string  `json:"fullName" validate:"required,notblank,max=200"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required,phone"`
	Job            *string `json:"job,omitempty" validate:"omitempty,max=200"`
	Position       *string `json:"position,omitempty" validate:"omitempty,max=200"`
	Employer       *string `json:"employer,omitempty" validate:"omitempty,max=200"`
	Region         string  `json:"region" validate:"required,notblank,max=100"`
	City           string  `json:"city" validate:"required,notblank,max=100"`
	CourseID       int64   `json:"courseId" validate:"required,gt=0"`
	TelegramUserID *string `json:"telegramUserId,omitempty" validate:"omitempty,max=64"`
}

// UpdateLeadRequest edits a lead. Status and course are required on every
// edit and are re-validated each time.
type UpdateLeadRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,notblank,max=200"`
	Job      *string `json:"job,omitempty" validate:"omitempty,max=200"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=200"`
	Employer *string `json:"employer,omitempty" validate:"omitempty,max=200"`
	Region   *string `json:"region,omitempty" validate:"omitempty,notblank,max=100"`
	City     *string `json:"city,omitempty" validate:"omitempty,notblank,max=100"`
	StatusID int64   `json:"statusId" validate:"required,gt=0"`
	CourseID int64   `json:"courseId" validate:"required,gt=0"`
}

// ListLeadsRequest filters the flat lead list.
type ListLeadsRequest struct {
	Page        int     `form:"page" validate:"omitempty,min=1"`
	Limit       int     `form:"limit" validate:"omitempty,min=1,max=100"`
	FullName    string  `form:"fullName" validate:"omitempty,max=200"`
	PhoneNumber string  `form:"phoneNumber" validate:"omitempty,max=32"`
	StatusIDs   []int64 `form:"statusId" validate:"omitempty,dive,gt=0"`
	CourseID    *int64  `form:"courseId" validate:"omitempty,gt=0"`
}

// BoardRequest filters the kanban board. LoadMoreStatusID selects the one
// column that is paged by StatusPage.
type BoardRequest struct {
	FullName         string `form:"fullName" validate:"omitempty,max=200"`
	PhoneNumber      string `form:"phoneNumber" validate:"omitempty,max=32"`
	CourseID         *int64 `form:"courseId" validate:"omitempty,gt=0"`
	LoadMoreStatusID *int64 `form:"loadMoreStatusId" validate:"omitempty,gt=0"`
	StatusPage       int    `form:"statusPage" validate:"omitempty,min=1"`
	StatusLimit      int    `form:"statusLimit" validate:"omitempty,min=1"`
}

// StatusRef is the status embedded in a lead.
type StatusRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// CourseRef is the course embedded in a lead.
type CourseRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRef is the contact embedded in a lead.
type UserRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Status   string `json:"status"`
}

// LeadResponse is a lead with its relations.
type LeadResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Job         *string   `json:"job,omitempty"`
	Position    *string   `json:"position,omitempty"`
	Employer    *string   `json:"employer,omitempty"`
	Region      string    `json:"region"`
	City        string    `json:"city"`
	Status      StatusRef `json:"status"`
	Course      CourseRef `json:"course"`
	User        UserRef   `json:"user"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// LeadListResponse is one page of the flat lead list.
type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// ColumnResponse is one board column with its page of leads.
type ColumnResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Color     *string        `json:"color"`
	IsDefault bool           `json:"isDefault"`
	Leads     []LeadResponse `json:"leads"`
	Total     int            `json:"total"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	HasMore   bool           `json:"hasMore"`
}

// BoardResponse is the kanban board.
type BoardResponse struct {
	Columns          []ColumnResponse `json:"columns"`
	LoadedMore       bool             `json:"loadedMore"`
	LoadMoreStatusID *int64           `json:"loadMoreStatusId,omitempty"`
}
