package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/repository"
)

// fakeRepo keeps statuses and lead→status links in memory. WithinTx
// snapshots state and restores it when fn fails.
type fakeRepo struct {
	nextID   int64
	statuses map[int64]repository.Status
	leads    map[int64]int64

	failReassign bool
	failDelete   bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, statuses: map[int64]repository.Status{}, leads: map[int64]int64{}}
}

var _ repository.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) WithinTx(_ context.Context, fn func(tx repository.Repository) error) error {
	statuses := make(map[int64]repository.Status, len(f.statuses))
	for k, v := range f.statuses {
		statuses[k] = v
	}
	leads := make(map[int64]int64, len(f.leads))
	for k, v := range f.leads {
		leads[k] = v
	}
	nextID := f.nextID

	if err := fn(f); err != nil {
		f.statuses, f.leads, f.nextID = statuses, leads, nextID
		return err
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (repository.Status, error) {
	st, ok := f.statuses[id]
	if !ok {
		return repository.Status{}, codes.ErrStatusNotFound()
	}
	return st, nil
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (repository.Status, error) {
	for _, st := range f.statuses {
		if st.Name == name {
			return st, nil
		}
	}
	return repository.Status{}, codes.ErrStatusNotFound()
}

func (f *fakeRepo) GetDefault(_ context.Context) (repository.Status, error) {
	for _, st := range f.statuses {
		if st.IsDefault {
			return st, nil
		}
	}
	return repository.Status{}, codes.ErrStatusNotFound()
}

func (f *fakeRepo) ListOrdered(_ context.Context) ([]repository.Status, error) {
	out := make([]repository.Status, 0, len(f.statuses))
	for _, st := range f.statuses {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) ListPage(ctx context.Context, offset, limit int) ([]repository.Status, int, error) {
	all, _ := f.ListOrdered(ctx)
	if offset >= len(all) {
		return []repository.Status{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (f *fakeRepo) NameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, st := range f.statuses {
		if st.Name == name && st.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) { return len(f.statuses), nil }

func (f *fakeRepo) CountByIDs(_ context.Context, ids []int64) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := f.statuses[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Status, error) {
	for _, st := range f.statuses {
		if st.Name == params.Name {
			return repository.Status{}, codes.ErrDuplicateName()
		}
		if st.IsDefault && params.IsDefault {
			return repository.Status{}, errors.New("unique violation: statuses_single_default_idx")
		}
	}
	now := time.Now()
	st := repository.Status{
		ID:        f.nextID,
		Name:      params.Name,
		IsDefault: params.IsDefault,
		Color:     params.Color,
		Order:     params.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.statuses[st.ID] = st
	f.nextID++
	return st, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Status, error) {
	st, ok := f.statuses[params.ID]
	if !ok {
		return repository.Status{}, codes.ErrStatusNotFound()
	}
	if params.Name != nil {
		st.Name = *params.Name
	}
	if params.ClearColor {
		st.Color = nil
	} else if params.Color != nil {
		st.Color = params.Color
	}
	if params.IsDefault != nil {
		if *params.IsDefault {
			for _, other := range f.statuses {
				if other.IsDefault && other.ID != st.ID {
					return repository.Status{}, errors.New("unique violation: statuses_single_default_idx")
				}
			}
		}
		st.IsDefault = *params.IsDefault
	}
	st.UpdatedAt = time.Now()
	f.statuses[st.ID] = st
	return st, nil
}

func (f *fakeRepo) ClearDefault(_ context.Context, exceptID int64) (int64, error) {
	var demoted int64
	for id, st := range f.statuses {
		if st.IsDefault && id != exceptID {
			st.IsDefault = false
			f.statuses[id] = st
			demoted = id
		}
	}
	return demoted, nil
}

func (f *fakeRepo) SetOrder(_ context.Context, items []repository.OrderItem) error {
	for _, item := range items {
		st := f.statuses[item.ID]
		st.Order = item.Order
		f.statuses[item.ID] = st
	}
	return nil
}

func (f *fakeRepo) ShiftOrder(_ context.Context, from, delta int) error {
	for id, st := range f.statuses {
		if st.Order >= from {
			st.Order += delta
			f.statuses[id] = st
		}
	}
	return nil
}

func (f *fakeRepo) CompactOrder(ctx context.Context) error {
	ordered, _ := f.ListOrdered(ctx)
	for i, st := range ordered {
		st.Order = i
		f.statuses[st.ID] = st
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.failDelete {
		return errors.New("connection lost")
	}
	if _, ok := f.statuses[id]; !ok {
		return codes.ErrStatusNotFound()
	}
	for _, statusID := range f.leads {
		if statusID == id {
			return errors.New("foreign key violation: leads_status_id_fkey")
		}
	}
	delete(f.statuses, id)
	return nil
}

func (f *fakeRepo) ReassignLeads(_ context.Context, from, to int64) ([]int64, error) {
	if f.failReassign {
		return nil, errors.New("connection lost")
	}
	moved := make([]int64, 0)
	for leadID, statusID := range f.leads {
		if statusID == from {
			f.leads[leadID] = to
			moved = append(moved, leadID)
		}
	}
	return moved, nil
}

// insert adds a status directly, bypassing service rules.
func (f *fakeRepo) insert(name string, isDefault bool, order int) repository.Status {
	st := repository.Status{ID: f.nextID, Name: name, IsDefault: isDefault, Order: order}
	f.statuses[st.ID] = st
	f.nextID++
	return st
}
