// Package service implements the status board: column CRUD, the single
// default status, ordering and the deletion cascade.
package service

import (
	"context"
	"strings"
	"time"

	"course_portal_backend/internal/events"
	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/repository"
	"course_portal_backend/internal/statuses/transport"
	"course_portal_backend/platform/apperr"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/sanitize"

	"golang.org/x/text/unicode/norm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service provides business logic for statuses.
type Service struct {
	repo        repository.Repository
	bus         events.Bus
	defaultName string
	log         *logger.Logger
}

// New creates a new statuses service. defaultName names the column created
// when the board has no default. bus may be nil.
func New(repo repository.Repository, bus events.Bus, defaultName string, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, defaultName: defaultName, log: log}
}

// Create adds a column at the end of the board. When the board has no
// default yet and the new column does not claim it, the configured default
// column is inserted first at position 0.
func (s *Service) Create(ctx context.Context, req transport.CreateStatusRequest) (transport.StatusResponse, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return transport.StatusResponse{}, codes.ErrValidation(map[string]string{"name": "required"})
	}
	wantDefault := req.IsDefault != nil && *req.IsDefault

	var created repository.Status
	var demoted int64
	err := s.repo.WithinTx(ctx, func(tx repository.Repository) error {
		hasDefault, err := hasDefaultStatus(ctx, tx)
		if err != nil {
			return err
		}
		if !hasDefault && !wantDefault {
			if name == normalizeName(s.defaultName) {
				wantDefault = true
			} else if _, err := s.insertDefault(ctx, tx); err != nil {
				return err
			}
		}

		taken, err := tx.NameTaken(ctx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return codes.ErrDuplicateName()
		}

		count, err := tx.Count(ctx)
		if err != nil {
			return err
		}

		if wantDefault {
			if demoted, err = tx.ClearDefault(ctx, 0); err != nil {
				return err
			}
		}

		created, err = tx.Create(ctx, repository.CreateParams{
			Name:      name,
			IsDefault: wantDefault,
			Color:     sanitize.TextPtr(req.Color),
			Order:     count,
		})
		return err
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.log.BoardChange(ctx, "create", created.ID, "name", created.Name, "isDefault", created.IsDefault, "order", created.Order)
	if created.IsDefault {
		s.publishDefaultChanged(ctx, created.ID, demoted)
	}
	return toResponse(created), nil
}

// List returns either one page of columns or, forKanban, the whole board.
// Both are sorted by board position.
func (s *Service) List(ctx context.Context, req transport.ListStatusesRequest) (transport.StatusListResponse, error) {
	if req.ForKanban {
		items, err := s.repo.ListOrdered(ctx)
		if err != nil {
			return transport.StatusListResponse{}, err
		}
		return toListResponse(items, len(items), 1, len(items)), nil
	}

	page, limit := normalizePaging(req.Page, req.Limit)
	items, total, err := s.repo.ListPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return transport.StatusListResponse{}, err
	}
	return toListResponse(items, total, page, limit), nil
}

// ListOrdered returns every column in board order.
func (s *Service) ListOrdered(ctx context.Context) ([]repository.Status, error) {
	return s.repo.ListOrdered(ctx)
}

// GetByID retrieves a status by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.StatusResponse, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.StatusResponse{}, err
	}
	return toResponse(st), nil
}

// Get returns the stored status.
func (s *Service) Get(ctx context.Context, id int64) (repository.Status, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDefault returns the default status or STATUS_NOT_FOUND.
func (s *Service) GetDefault(ctx context.Context) (repository.Status, error) {
	return s.repo.GetDefault(ctx)
}

// Update renames, recolors or promotes a status. Position is never changed.
// A blank color clears it; an absent color keeps the current one.
// Unsetting the flag on the current default is rejected: promote another
// status instead so the board always has exactly one default.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateStatusRequest) (transport.StatusResponse, error) {
	params := repository.UpdateParams{ID: id, Color: sanitize.TextPtr(req.Color)}
	params.ClearColor = req.Color != nil && params.Color == nil
	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return transport.StatusResponse{}, codes.ErrValidation(map[string]string{"name": "notblank"})
		}
		params.Name = &name
	}

	var updated repository.Status
	var demoted int64
	var promoted bool
	err := s.repo.WithinTx(ctx, func(tx repository.Repository) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if params.Name != nil && *params.Name != current.Name {
			taken, err := tx.NameTaken(ctx, *params.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return codes.ErrDuplicateName()
			}
		}

		if req.IsDefault != nil {
			switch {
			case *req.IsDefault && !current.IsDefault:
				if demoted, err = tx.ClearDefault(ctx, id); err != nil {
					return err
				}
				params.IsDefault = req.IsDefault
				promoted = true
			case !*req.IsDefault && current.IsDefault:
				return codes.ErrDefaultRequired()
			}
		}

		updated, err = tx.Update(ctx, params)
		return err
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.log.BoardChange(ctx, "update", updated.ID, "name", updated.Name, "isDefault", updated.IsDefault)
	if promoted {
		s.publishDefaultChanged(ctx, updated.ID, demoted)
	}
	return toResponse(updated), nil
}

func (s *Service) insertDefault(ctx context.Context, tx repository.Repository) (repository.Status, error) {
	name := normalizeName(s.defaultName)
	if name == "" {
		return repository.Status{}, apperr.Internal("default status name is not configured")
	}
	if err := tx.ShiftOrder(ctx, 0, 1); err != nil {
		return repository.Status{}, err
	}
	st, err := tx.Create(ctx, repository.CreateParams{Name: name, IsDefault: true, Order: 0})
	if err != nil {
		return repository.Status{}, err
	}
	s.log.WithContext(ctx).Info("default status created", "statusId", st.ID, "name", st.Name)
	return st, nil
}

func (s *Service) publishDefaultChanged(ctx context.Context, id, previous int64) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.DefaultStatusChanged{
		BaseEvent:        events.NewBaseEvent(),
		StatusID:         id,
		PreviousStatusID: previous,
	})
}

func hasDefaultStatus(ctx context.Context, repo repository.StatusReader) (bool, error) {
	_, err := repo.GetDefault(ctx)
	if err == nil {
		return true, nil
	}
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	return false, err
}

// normalizeName strips markup, collapses whitespace and applies NFC so
// visually identical names collide on the unique constraint.
func normalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(sanitize.Text(name)))
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func toResponse(st repository.Status) transport.StatusResponse {
	return transport.StatusResponse{
		ID:        st.ID,
		Name:      st.Name,
		IsDefault: st.IsDefault,
		Color:     st.Color,
		Order:     st.Order,
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
		UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
	}
}

func toListResponse(items []repository.Status, total, page, limit int) transport.StatusListResponse {
	resp := make([]transport.StatusResponse, len(items))
	for i, st := range items {
		resp[i] = toResponse(st)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return transport.StatusListResponse{
		Items:      resp,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
