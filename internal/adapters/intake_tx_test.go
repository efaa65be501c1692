package adapters

import (
	"context"
	"errors"
	"testing"

	"course_portal_backend/internal/leads/ports"
	leadsrepo "course_portal_backend/internal/leads/repository"

	"github.com/jackc/pgx/v5"
)

type countingTx struct {
	pgx.Tx
	commits   int
	rollbacks int
}

func (t *countingTx) Commit(context.Context) error {
	t.commits++
	return nil
}

func (t *countingTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

type txStarter struct{ tx *countingTx }

func (s txStarter) Begin(context.Context) (pgx.Tx, error) { return s.tx, nil }

func TestIntakeTxCommitsOnSuccess(t *testing.T) {
	tx := &countingTx{}
	a := NewIntakeTxAdapter(txStarter{tx: tx})

	err := a.WithinIntake(context.Background(), func(users ports.UserDirectory, leads leadsrepo.LeadWriter) error {
		if users == nil || leads == nil {
			t.Fatalf("expected stores bound to the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	if tx.commits != 1 {
		t.Fatalf("expected one commit, got %d", tx.commits)
	}
}

func TestIntakeTxRollsBackOnFailure(t *testing.T) {
	tx := &countingTx{}
	a := NewIntakeTxAdapter(txStarter{tx: tx})
	boom := errors.New("lead insert failed")

	err := a.WithinIntake(context.Background(), func(ports.UserDirectory, leadsrepo.LeadWriter) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the intake error, got %v", err)
	}
	if tx.commits != 0 || tx.rollbacks != 1 {
		t.Fatalf("expected rollback without commit, commits=%d rollbacks=%d", tx.commits, tx.rollbacks)
	}
}
