package transport

import (
	"time"

	"course_portal_backend/internal/leads/repository"
)

// ToLeadResponse maps a stored lead with relations to its response.
func ToLeadResponse(d repository.LeadDetails) LeadResponse {
	return LeadResponse{
		ID:          d.ID,
		FullName:    d.FullName,
		PhoneNumber: d.PhoneNumber,
		Job:         d.Job,
		Position:    d.Position,
		Employer:    d.Employer,
		Region:      d.Region,
		City:        d.City,
		Status:      StatusRef{ID: d.StatusID, Name: d.StatusName, Color: d.StatusColor},
		Course:      CourseRef{ID: d.CourseID, Name: d.CourseName},
		User:        UserRef{ID: d.UserID, FullName: d.UserFullName, Status: d.UserStatus},
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

// ToLeadResponses maps a page of leads, never returning nil.
func ToLeadResponses(items []repository.LeadDetails) []LeadResponse {
	out := make([]LeadResponse, len(items))
	for i, d := range items {
		out[i] = ToLeadResponse(d)
	}
	return out
}
