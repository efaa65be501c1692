package adapters

import (
	"context"

	"course_portal_backend/internal/leads/management"
	"course_portal_backend/internal/leads/ports"
	leadsrepo "course_portal_backend/internal/leads/repository"
	usersrepo "course_portal_backend/internal/users/repository"
	"course_portal_backend/platform/db"

	"github.com/jackc/pgx/v5"
)

// IntakeTxAdapter runs lead intake in one PostgreSQL transaction spanning the
// contact store and the lead store.
type IntakeTxAdapter struct {
	conn db.TxStarter
}

func NewIntakeTxAdapter(conn db.TxStarter) *IntakeTxAdapter {
	return &IntakeTxAdapter{conn: conn}
}

func (a *IntakeTxAdapter) WithinIntake(ctx context.Context, fn func(users ports.UserDirectory, leads leadsrepo.LeadWriter) error) error {
	return db.WithTx(ctx, a.conn, func(tx pgx.Tx) error {
		return fn(NewUserDirectoryAdapter(usersrepo.NewWithConn(tx)), leadsrepo.NewWithQuerier(tx))
	})
}

var _ management.IntakeTx = (*IntakeTxAdapter)(nil)
