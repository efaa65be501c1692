package repository

import (
	"context"
	"errors"
	"fmt"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// boardLockKey serializes status mutations across API instances.
const boardLockKey int64 = 7_310_001

const statusNameConstraint = "statuses_name_key"

const statusColumns = `id, name, is_default, color, sort_order, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	q    db.Querier
}

// New creates a new statuses repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, q: pool}
}

var _ Repository = (*Repo)(nil)

// WithinTx opens a transaction, takes the board advisory lock and runs fn.
// Nested calls reuse the current transaction.
func (r *Repo) WithinTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, boardLockKey); err != nil {
			return fmt.Errorf("lock status board: %w", err)
		}
		return fn(&Repo{q: tx})
	})
}

// GetByID retrieves a status by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE id = $1`

	st, err := scanStatus(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Status{}, codes.ErrStatusNotFound()
		}
		return Status{}, fmt.Errorf("get status by id: %w", err)
	}
	return st, nil
}

// GetByName retrieves a status by exact name.
func (r *Repo) GetByName(ctx context.Context, name string) (Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE name = $1`

	st, err := scanStatus(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Status{}, codes.ErrStatusNotFound()
		}
		return Status{}, fmt.Errorf("get status by name: %w", err)
	}
	return st, nil
}

// GetDefault retrieves the status flagged as default.
func (r *Repo) GetDefault(ctx context.Context) (Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE is_default = true LIMIT 1`

	st, err := scanStatus(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Status{}, codes.ErrStatusNotFound()
		}
		return Status{}, fmt.Errorf("get default status: %w", err)
	}
	return st, nil
}

// ListOrdered returns every status sorted by board position.
func (r *Repo) ListOrdered(ctx context.Context) ([]Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses ORDER BY sort_order ASC, id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	return scanStatuses(rows)
}

// ListPage returns one page of statuses sorted by board position and the total count.
func (r *Repo) ListPage(ctx context.Context, offset, limit int) ([]Status, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + statusColumns + ` FROM statuses ORDER BY sort_order ASC, id ASC LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list status page: %w", err)
	}
	defer rows.Close()

	items, err := scanStatuses(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// NameTaken reports whether another status (not excludeID) owns name.
func (r *Repo) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM statuses WHERE name = $1 AND id <> $2)`

	var taken bool
	if err := r.q.QueryRow(ctx, query, name, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check status name: %w", err)
	}
	return taken, nil
}

// Count returns the number of statuses.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM statuses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count statuses: %w", err)
	}
	return total, nil
}

// CountByIDs returns how many of ids exist.
func (r *Repo) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM statuses WHERE id = ANY($1)`, ids).Scan(&total); err != nil {
		return 0, fmt.Errorf("count statuses by ids: %w", err)
	}
	return total, nil
}

// Create inserts a status.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Status, error) {
	query := `
		INSERT INTO statuses (name, is_default, color, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + statusColumns

	st, err := scanStatus(r.q.QueryRow(ctx, query, params.Name, params.IsDefault, params.Color, params.Order))
	if err != nil {
		if db.IsUniqueViolation(err, statusNameConstraint) {
			return Status{}, codes.ErrDuplicateName()
		}
		return Status{}, fmt.Errorf("create status: %w", err)
	}
	return st, nil
}

// Update applies the explicit field list in params.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Status, error) {
	query := `
		UPDATE statuses SET
			name = COALESCE($2, name),
			color = CASE WHEN $5 THEN NULL ELSE COALESCE($3, color) END,
			is_default = COALESCE($4, is_default),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + statusColumns

	st, err := scanStatus(r.q.QueryRow(ctx, query, params.ID, params.Name, params.Color, params.IsDefault, params.ClearColor))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Status{}, codes.ErrStatusNotFound()
		}
		if db.IsUniqueViolation(err, statusNameConstraint) {
			return Status{}, codes.ErrDuplicateName()
		}
		return Status{}, fmt.Errorf("update status: %w", err)
	}
	return st, nil
}

// ClearDefault demotes the current default unless it is exceptID.
func (r *Repo) ClearDefault(ctx context.Context, exceptID int64) (int64, error) {
	query := `
		UPDATE statuses SET is_default = false, updated_at = now()
		WHERE is_default = true AND id <> $1
		RETURNING id`

	var demoted int64
	err := r.q.QueryRow(ctx, query, exceptID).Scan(&demoted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("clear default status: %w", err)
	}
	return demoted, nil
}

// SetOrder writes all positions in a single statement.
func (r *Repo) SetOrder(ctx context.Context, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	orders := make([]int32, len(items))
	for i, item := range items {
		ids[i] = item.ID
		orders[i] = int32(item.Order)
	}

	query := `
		UPDATE statuses AS s SET sort_order = v.sort_order, updated_at = now()
		FROM unnest($1::bigint[], $2::int[]) AS v(id, sort_order)
		WHERE s.id = v.id`

	if _, err := r.q.Exec(ctx, query, ids, orders); err != nil {
		return fmt.Errorf("set status order: %w", err)
	}
	return nil
}

// ShiftOrder adds delta to every position >= from.
func (r *Repo) ShiftOrder(ctx context.Context, from, delta int) error {
	query := `UPDATE statuses SET sort_order = sort_order + $2 WHERE sort_order >= $1`
	if _, err := r.q.Exec(ctx, query, from, delta); err != nil {
		return fmt.Errorf("shift status order: %w", err)
	}
	return nil
}

// CompactOrder renumbers positions densely from zero.
func (r *Repo) CompactOrder(ctx context.Context) error {
	query := `
		UPDATE statuses AS s SET sort_order = ranked.pos
		FROM (
			SELECT id, (ROW_NUMBER() OVER (ORDER BY sort_order ASC, id ASC) - 1)::int AS pos
			FROM statuses
		) AS ranked
		WHERE s.id = ranked.id AND s.sort_order <> ranked.pos`

	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("compact status order: %w", err)
	}
	return nil
}

// Delete removes a status row (hard delete).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("delete status %d: leads still reference it: %w", id, err)
		}
		return fmt.Errorf("delete status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return codes.ErrStatusNotFound()
	}
	return nil
}

// ReassignLeads points every lead of fromStatusID at toStatusID in one
// statement and returns the moved lead ids.
func (r *Repo) ReassignLeads(ctx context.Context, fromStatusID, toStatusID int64) ([]int64, error) {
	query := `
		UPDATE leads SET status_id = $2, updated_at = now()
		WHERE status_id = $1
		RETURNING id`

	rows, err := r.q.Query(ctx, query, fromStatusID, toStatusID)
	if err != nil {
		return nil, fmt.Errorf("reassign leads: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reassigned lead: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reassigned leads: %w", err)
	}
	return ids, nil
}

func scanStatus(row pgx.Row) (Status, error) {
	var st Status
	err := row.Scan(&st.ID, &st.Name, &st.IsDefault, &st.Color, &st.Order, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

func scanStatuses(rows pgx.Rows) ([]Status, error) {
	results := make([]Status, 0)

	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		results = append(results, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statuses: %w", err)
	}

	return results, nil
}
