package adapters

import (
	"context"

	"course_portal_backend/internal/leads/ports"
	statusrepo "course_portal_backend/internal/statuses/repository"
)

// StatusSource is the part of the statuses service the board reads.
type StatusSource interface {
	ListOrdered(ctx context.Context) ([]statusrepo.Status, error)
	GetDefault(ctx context.Context) (statusrepo.Status, error)
	Get(ctx context.Context, id int64) (statusrepo.Status, error)
}

// StatusReaderAdapter implements ports.StatusReader over the statuses service.
type StatusReaderAdapter struct {
	src StatusSource
}

func NewStatusReaderAdapter(src StatusSource) *StatusReaderAdapter {
	return &StatusReaderAdapter{src: src}
}

func (a *StatusReaderAdapter) ListColumns(ctx context.Context) ([]ports.Column, error) {
	statuses, err := a.src.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Column, len(statuses))
	for i, st := range statuses {
		out[i] = toColumn(st)
	}
	return out, nil
}

func (a *StatusReaderAdapter) GetDefaultColumn(ctx context.Context) (ports.Column, error) {
	st, err := a.src.GetDefault(ctx)
	if err != nil {
		return ports.Column{}, err
	}
	return toColumn(st), nil
}

func (a *StatusReaderAdapter) GetColumn(ctx context.Context, id int64) (ports.Column, error) {
	st, err := a.src.Get(ctx, id)
	if err != nil {
		return ports.Column{}, err
	}
	return toColumn(st), nil
}

func toColumn(st statusrepo.Status) ports.Column {
	return ports.Column{ID: st.ID, Name: st.Name, Color: st.Color, IsDefault: st.IsDefault, Order: st.Order}
}

var _ ports.StatusReader = (*StatusReaderAdapter)(nil)
