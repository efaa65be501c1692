package service

import (
	"context"

	"course_portal_backend/internal/events"
	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/repository"
	"course_portal_backend/platform/apperr"
	"course_portal_backend/platform/metrics"
)

// Remove deletes a non-default column. Its leads, soft-deleted ones
// included, are moved to the default column first; reassignment, deletion
// and order compaction commit together or not at all.
func (s *Service) Remove(ctx context.Context, id int64) error {
	var removed, target repository.Status
	var moved []int64

	err := s.repo.WithinTx(ctx, func(tx repository.Repository) error {
		st, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if st.IsDefault {
			return codes.ErrDefaultNotDeletable()
		}
		removed = st

		target, moved, err = s.cascadeToDefault(ctx, tx, st)
		if err != nil {
			return err
		}

		if err := tx.Delete(ctx, st.ID); err != nil {
			return err
		}
		return tx.CompactOrder(ctx)
	})
	if err != nil {
		if apperr.HasCode(err, codes.DefaultStatusMissing) || !isDomainError(err) {
			s.log.WithContext(ctx).Error("status deletion failed", "statusId", id, "error", err)
		}
		return err
	}

	metrics.RecordCascadeReassigned(len(moved))
	s.log.BoardChange(ctx, "delete", removed.ID,
		"name", removed.Name,
		"defaultStatusId", target.ID,
		"reassignedLeads", len(moved),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.StatusDeleted{
			BaseEvent:       events.NewBaseEvent(),
			StatusID:        removed.ID,
			Name:            removed.Name,
			DefaultStatusID: target.ID,
			ReassignedLeads: len(moved),
		})
	}
	return nil
}

// cascadeToDefault moves every lead of st to the default column.
func (s *Service) cascadeToDefault(ctx context.Context, tx repository.Repository, st repository.Status) (repository.Status, []int64, error) {
	if st.IsDefault {
		return repository.Status{}, nil, codes.ErrDefaultNotDeletable()
	}

	target, err := tx.GetDefault(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.Status{}, nil, codes.ErrDefaultStatusMissing().WithOp("statuses.cascade").WithCause(err)
		}
		return repository.Status{}, nil, err
	}
	if target.ID == st.ID {
		return repository.Status{}, nil, codes.ErrDefaultNotDeletable()
	}

	moved, err := tx.ReassignLeads(ctx, st.ID, target.ID)
	if err != nil {
		return repository.Status{}, nil, err
	}
	return target, moved, nil
}

func isDomainError(err error) bool {
	return apperr.GetKind(err) != apperr.KindUnknown
}
