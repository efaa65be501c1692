// Package board builds the kanban view: every status column with its own
// independently paged slice of leads.
package board

import (
	"context"
	"strings"

	"course_portal_backend/internal/leads/ports"
	"course_portal_backend/internal/leads/repository"
	"course_portal_backend/internal/leads/transport"

	"golang.org/x/sync/errgroup"
)

const (
	defaultColumnLimit = 10
	columnQueryWorkers = 4
)

// Service assembles the board.
type Service struct {
	statuses ports.StatusReader
	leads    repository.LeadReader
	maxLimit int
}

// New creates a board service. maxLimit caps statusLimit; zero disables the cap.
func New(statuses ports.StatusReader, leads repository.LeadReader, maxLimit int) *Service {
	return &Service{statuses: statuses, leads: leads, maxLimit: maxLimit}
}

// GetBoard returns every column in board order. Only the column named by
// LoadMoreStatusID is paged by StatusPage; all others stay on page 1.
func (s *Service) GetBoard(ctx context.Context, req transport.BoardRequest) (transport.BoardResponse, error) {
	columns, err := s.statuses.ListColumns(ctx)
	if err != nil {
		return transport.BoardResponse{}, err
	}

	resp := transport.BoardResponse{
		Columns:          make([]transport.ColumnResponse, len(columns)),
		LoadedMore:       req.LoadMoreStatusID != nil,
		LoadMoreStatusID: req.LoadMoreStatusID,
	}
	if len(columns) == 0 {
		return resp, nil
	}

	statusPage := req.StatusPage
	if statusPage < 1 {
		statusPage = 1
	}
	limit := s.columnLimit(req.StatusLimit)
	filter := repository.Filter{
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		CourseID:    req.CourseID,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(columnQueryWorkers)
	for i, col := range columns {
		page := 1
		if req.LoadMoreStatusID != nil && *req.LoadMoreStatusID == col.ID {
			page = statusPage
		}

		g.Go(func() error {
			columnFilter := filter
			columnFilter.StatusIDs = []int64{col.ID}

			items, total, err := s.leads.List(gctx, repository.ListParams{
				Filter: columnFilter,
				Offset: (page - 1) * limit,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			resp.Columns[i] = transport.ColumnResponse{
				ID:        col.ID,
				Name:      col.Name,
				Color:     col.Color,
				IsDefault: col.IsDefault,
				Leads:     transport.ToLeadResponses(items),
				Total:     total,
				Page:      page,
				Limit:     limit,
				HasMore:   total > page*limit,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.BoardResponse{}, err
	}

	return resp, nil
}

func (s *Service) columnLimit(requested int) int {
	if requested < 1 {
		requested = defaultColumnLimit
	}
	if s.maxLimit > 0 && requested > s.maxLimit {
		requested = s.maxLimit
	}
	return requested
}
