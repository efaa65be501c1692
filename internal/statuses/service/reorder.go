package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/repository"
)

// ParseOrder turns the raw reorder payload into status ids. Every element
// must be a positive JSON integer.
func ParseOrder(raw []json.RawMessage) ([]int64, error) {
	if len(raw) == 0 {
		return nil, codes.ErrOrderFormatInvalid()
	}

	ids := make([]int64, len(raw))
	for i, item := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(string(item)), 10, 64)
		if err != nil || id <= 0 {
			return nil, codes.ErrOrderFormatInvalid().WithDetails(map[string]int{"index": i})
		}
		ids[i] = id
	}
	return ids, nil
}

// Reorder assigns order = index to every status in ids within one
// transaction. The submission must be the complete current set: unknown or
// repeated ids fail with STATUSES_NOT_FOUND and a strict subset fails with
// ORDER_INCOMPLETE, so positions stay a dense 0..N-1 permutation.
func (s *Service) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return codes.ErrOrderFormatInvalid()
	}

	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) != len(ids) {
		return codes.ErrStatusesNotFound().WithDetails(map[string]string{"reason": "duplicate ids"})
	}

	items := make([]repository.OrderItem, len(ids))
	for i, id := range ids {
		items[i] = repository.OrderItem{ID: id, Order: i}
	}

	err := s.repo.WithinTx(ctx, func(tx repository.Repository) error {
		matched, err := tx.CountByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if matched != len(ids) {
			return codes.ErrStatusesNotFound()
		}

		total, err := tx.Count(ctx)
		if err != nil {
			return err
		}
		if total != len(ids) {
			return codes.ErrOrderIncomplete().WithDetails(map[string]int{"expected": total, "received": len(ids)})
		}

		return tx.SetOrder(ctx, items)
	})
	if err != nil {
		return err
	}

	s.log.WithContext(ctx).Info("statuses reordered", "count", len(ids))
	return nil
}
