package adapters

import (
	"context"

	coursesrepo "course_portal_backend/internal/courses/repository"
	"course_portal_backend/internal/leads/ports"
)

// CourseReaderAdapter implements ports.CourseReader over the course catalog.
type CourseReaderAdapter struct {
	repo coursesrepo.Reader
}

func NewCourseReaderAdapter(repo coursesrepo.Reader) *CourseReaderAdapter {
	return &CourseReaderAdapter{repo: repo}
}

func (a *CourseReaderAdapter) GetActiveCourse(ctx context.Context, id int64) (ports.Course, error) {
	c, err := a.repo.GetActive(ctx, id)
	if err != nil {
		return ports.Course{}, err
	}
	return ports.Course{ID: c.ID, Name: c.Name}, nil
}

var _ ports.CourseReader = (*CourseReaderAdapter)(nil)
