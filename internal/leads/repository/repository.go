// Package repository is the PostgreSQL lead store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	statusFKConstraint = "leads_status_id_fkey"
	courseFKConstraint = "leads_course_id_fkey"
)

const leadColumns = `l.id, l.full_name, l.phone_number, l.job, l.position, l.employer, l.region, l.city,
	l.status_id, l.course_id, l.user_id, l.is_deleted, l.created_at, l.updated_at`

const detailColumns = leadColumns + `, s.name, s.color, c.name, u.full_name, u.status`

const detailJoins = `
	JOIN statuses s ON s.id = l.status_id
	JOIN courses c ON c.id = l.course_id
	JOIN users u ON u.id = l.user_id`

const returningColumns = `id, full_name, phone_number, job, position, employer, region, city,
	status_id, course_id, user_id, is_deleted, created_at, updated_at`

// Repo implements Repository with PostgreSQL.
type Repo struct {
	q db.Querier
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{q: pool}
}

// NewWithQuerier binds a repository to q, usually an open transaction.
func NewWithQuerier(q db.Querier) *Repo {
	return &Repo{q: q}
}

var _ Repository = (*Repo)(nil)

// Create inserts a lead.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (full_name, phone_number, job, position, employer, region, city, status_id, course_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + returningColumns

	lead, err := scanLead(r.q.QueryRow(ctx, query,
		params.FullName, params.PhoneNumber, params.Job, params.Position, params.Employer,
		params.Region, params.City, params.StatusID, params.CourseID, params.UserID,
	))
	if err != nil {
		return Lead{}, mapWriteError("create lead", err)
	}
	return lead, nil
}

// GetByID returns a live lead with its relations or LEAD_NOT_FOUND.
func (r *Repo) GetByID(ctx context.Context, id int64) (LeadDetails, error) {
	query := `SELECT ` + detailColumns + ` FROM leads l` + detailJoins + `
		WHERE l.id = $1 AND l.is_deleted = false`

	d, err := scanDetails(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LeadDetails{}, codes.ErrLeadNotFound()
		}
		return LeadDetails{}, fmt.Errorf("get lead: %w", err)
	}
	return d, nil
}

// Update writes the listed fields of a live lead.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Lead, error) {
	query := `
		UPDATE leads SET
			full_name = COALESCE($2, full_name),
			job = COALESCE($3, job),
			position = COALESCE($4, position),
			employer = COALESCE($5, employer),
			region = COALESCE($6, region),
			city = COALESCE($7, city),
			status_id = $8,
			course_id = $9,
			updated_at = now()
		WHERE id = $1 AND is_deleted = false
		RETURNING ` + returningColumns

	lead, err := scanLead(r.q.QueryRow(ctx, query,
		params.ID, params.FullName, params.Job, params.Position, params.Employer,
		params.Region, params.City, params.StatusID, params.CourseID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, codes.ErrLeadNotFound()
		}
		return Lead{}, mapWriteError("update lead", err)
	}
	return lead, nil
}

// SoftDelete flags the lead as deleted. Repeating it on a deleted lead succeeds.
func (r *Repo) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `UPDATE leads SET is_deleted = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return codes.ErrLeadNotFound()
	}
	return nil
}

// List returns one page of live leads matching the filter and the total
// count ignoring pagination, most recently updated first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]LeadDetails, int, error) {
	whereClause, args, argIdx := buildLeadWhere(params.Filter)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads l JOIN courses c ON c.id = l.course_id WHERE %s", whereClause)
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads l
		%s
		WHERE %s
		ORDER BY l.updated_at DESC, l.id DESC
		LIMIT $%d OFFSET $%d
	`, detailColumns, detailJoins, whereClause, argIdx, argIdx+1)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]LeadDetails, 0)
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return items, total, nil
}

// buildLeadWhere renders the filter against aliases l (leads) and c (courses).
// It returns the clause, its arguments and the next placeholder index.
func buildLeadWhere(f Filter) (string, []interface{}, int) {
	whereClauses := []string{"l.is_deleted = false"}
	if f.LiveCoursesOnly {
		whereClauses = append(whereClauses, "c.is_deleted = false")
	}
	args := []interface{}{}
	argIdx := 1

	addILike := func(column, value string) {
		whereClauses = append(whereClauses, fmt.Sprintf("%s ILIKE $%d", column, argIdx))
		args = append(args, "%"+escapeLike(value)+"%")
		argIdx++
	}

	if v := strings.TrimSpace(f.FullName); v != "" {
		addILike("l.full_name", v)
	}
	if v := strings.TrimSpace(f.PhoneNumber); v != "" {
		addILike("l.phone_number", v)
	}
	switch len(f.StatusIDs) {
	case 0:
	case 1:
		whereClauses = append(whereClauses, fmt.Sprintf("l.status_id = $%d", argIdx))
		args = append(args, f.StatusIDs[0])
		argIdx++
	default:
		whereClauses = append(whereClauses, fmt.Sprintf("l.status_id = ANY($%d)", argIdx))
		args = append(args, f.StatusIDs)
		argIdx++
	}
	if f.CourseID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("l.course_id = $%d", argIdx))
		args = append(args, *f.CourseID)
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func mapWriteError(op string, err error) error {
	switch {
	case db.IsForeignKeyViolation(err, statusFKConstraint):
		return codes.ErrStatusNotFound()
	case db.IsForeignKeyViolation(err, courseFKConstraint):
		return codes.ErrCourseNotFound()
	case db.IsForeignKeyViolation(err, ""):
		return codes.ErrUserNotFound()
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.FullName, &l.PhoneNumber, &l.Job, &l.Position, &l.Employer, &l.Region, &l.City,
		&l.StatusID, &l.CourseID, &l.UserID, &l.IsDeleted, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func scanDetails(row pgx.Row) (LeadDetails, error) {
	var d LeadDetails
	err := row.Scan(
		&d.ID, &d.FullName, &d.PhoneNumber, &d.Job, &d.Position, &d.Employer, &d.Region, &d.City,
		&d.StatusID, &d.CourseID, &d.UserID, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
		&d.StatusName, &d.StatusColor, &d.CourseName, &d.UserFullName, &d.UserStatus,
	)
	return d, err
}
