package service

import (
	"context"
	"encoding/json"
	"testing"

	"course_portal_backend/internal/shared/codes"
	"course_portal_backend/internal/statuses/repository"
	"course_portal_backend/internal/statuses/transport"
	"course_portal_backend/platform/apperr"
	"course_portal_backend/platform/logger"
)

const testDefaultName = "NewLead"

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, nil, testDefaultName, logger.Discard()), repo
}

func boolPtr(v bool) *bool { return &v }
func strPtr(v string) *string { return &v }

func mustCreate(t *testing.T, svc *Service, name string, isDefault bool) transport.StatusResponse {
	t.Helper()
	req := transport.CreateStatusRequest{Name: name}
	if isDefault {
		req.IsDefault = boolPtr(true)
	}
	st, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return st
}

func assertSingleDefault(t *testing.T, repo *fakeRepo) repository.Status {
	t.Helper()
	var found []repository.Status
	for _, st := range repo.statuses {
		if st.IsDefault {
			found = append(found, st)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one default status, got %d", len(found))
	}
	return found[0]
}

func assertDenseOrder(t *testing.T, repo *fakeRepo) {
	t.Helper()
	seen := make(map[int]bool, len(repo.statuses))
	for _, st := range repo.statuses {
		if st.Order < 0 || st.Order >= len(repo.statuses) || seen[st.Order] {
			t.Fatalf("order values are not a permutation of 0..%d: %+v", len(repo.statuses)-1, repo.statuses)
		}
		seen[st.Order] = true
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !apperr.HasCode(err, code) {
		t.Fatalf("expected error code %s, got %v", code, err)
	}
}

func TestCreateOnEmptyBoardInsertsDefaultFirst(t *testing.T) {
	svc, repo := newTestService()

	created := mustCreate(t, svc, "Contacted", false)

	if len(repo.statuses) != 2 {
		t.Fatalf("expected bootstrap default plus new status, got %d", len(repo.statuses))
	}
	def := assertSingleDefault(t, repo)
	if def.Name != testDefaultName || def.Order != 0 {
		t.Fatalf("expected %s at order 0, got %+v", testDefaultName, def)
	}
	if created.Order != 1 || created.IsDefault {
		t.Fatalf("expected new status appended as non-default, got %+v", created)
	}
}

func TestCreateDefaultNamedStatusOnEmptyBoard(t *testing.T) {
	svc, repo := newTestService()

	created := mustCreate(t, svc, "  NewLead ", false)

	if len(repo.statuses) != 1 || !created.IsDefault || created.Order != 0 {
		t.Fatalf("expected a single default NewLead, got %+v", repo.statuses)
	}
}

func TestCreateWithDefaultDemotesPrevious(t *testing.T) {
	svc, repo := newTestService()
	a := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", true)

	def := assertSingleDefault(t, repo)
	if def.ID != b.ID {
		t.Fatalf("expected latest default %d to win, got %d", b.ID, def.ID)
	}
	if repo.statuses[a.ID].IsDefault {
		t.Fatalf("expected previous default to be demoted")
	}
	if b.Order != 1 {
		t.Fatalf("expected append position 1, got %d", b.Order)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "Contacted", true)

	_, err := svc.Create(context.Background(), transport.CreateStatusRequest{Name: "Contacted"})
	assertCode(t, err, codes.DuplicateName)
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %v", apperr.GetKind(err))
	}
}

func TestSingleDefaultHoldsAcrossMutations(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	a := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", true)
	assertSingleDefault(t, repo)

	if _, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{IsDefault: boolPtr(true)}); err != nil {
		t.Fatalf("promote b: %v", err)
	}
	assertSingleDefault(t, repo)

	if _, err := svc.Update(ctx, a.ID, transport.UpdateStatusRequest{IsDefault: boolPtr(true), Name: strPtr("A2")}); err != nil {
		t.Fatalf("promote a: %v", err)
	}
	def := assertSingleDefault(t, repo)
	if def.ID != a.ID || def.Name != "A2" {
		t.Fatalf("expected A2 to be default, got %+v", def)
	}

	if _, err := svc.Update(ctx, c.ID, transport.UpdateStatusRequest{IsDefault: boolPtr(false)}); err != nil {
		t.Fatalf("unsetting flag on a non-default is a no-op: %v", err)
	}
	assertSingleDefault(t, repo)
}

func TestUpdateRejectsUnsettingCurrentDefault(t *testing.T) {
	svc, repo := newTestService()
	a := mustCreate(t, svc, "A", true)

	_, err := svc.Update(context.Background(), a.ID, transport.UpdateStatusRequest{IsDefault: boolPtr(false)})
	assertCode(t, err, codes.DefaultRequired)
	if !repo.statuses[a.ID].IsDefault {
		t.Fatalf("default flag must be kept")
	}
}

func TestUpdateRenameChecksDuplicatesAndKeepsOrder(t *testing.T) {
	svc, repo := newTestService()
	mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	ctx := context.Background()

	_, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{Name: strPtr("A")})
	assertCode(t, err, codes.DuplicateName)

	updated, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{Name: strPtr("B"), Color: strPtr("#fff")})
	if err != nil {
		t.Fatalf("renaming to own name must succeed: %v", err)
	}
	if updated.Order != 1 || repo.statuses[b.ID].Order != 1 {
		t.Fatalf("update must not change order")
	}
	if updated.Color == nil || *updated.Color != "#fff" {
		t.Fatalf("expected color to be applied, got %v", updated.Color)
	}
}

func TestUpdateBlankColorClearsIt(t *testing.T) {
	svc, repo := newTestService()
	mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	ctx := context.Background()

	if _, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{Color: strPtr("#0af")}); err != nil {
		t.Fatalf("set color: %v", err)
	}

	kept, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{Name: strPtr("B2")})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if kept.Color == nil || *kept.Color != "#0af" {
		t.Fatalf("absent color must keep the current one, got %v", kept.Color)
	}

	cleared, err := svc.Update(ctx, b.ID, transport.UpdateStatusRequest{Color: strPtr("  ")})
	if err != nil {
		t.Fatalf("clear color: %v", err)
	}
	if cleared.Color != nil || repo.statuses[b.ID].Color != nil {
		t.Fatalf("blank color must clear it, got %v", cleared.Color)
	}
}

func TestUpdateMissingStatus(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), 42, transport.UpdateStatusRequest{Name: strPtr("X")})
	assertCode(t, err, codes.StatusNotFound)
}

func TestReorderScenario(t *testing.T) {
	svc, repo := newTestService()
	a := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", false)

	if err := svc.Reorder(context.Background(), []int64{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if repo.statuses[c.ID].Order != 0 || repo.statuses[a.ID].Order != 1 || repo.statuses[b.ID].Order != 2 {
		t.Fatalf("unexpected order: %+v", repo.statuses)
	}
	assertDenseOrder(t, repo)
}

func TestReorderRejections(t *testing.T) {
	svc, repo := newTestService()
	a := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", false)
	ctx := context.Background()

	cases := []struct {
		name string
		ids  []int64
		code string
	}{
		{name: "empty", ids: nil, code: codes.OrderFormatInvalid},
		{name: "unknown id", ids: []int64{a.ID, b.ID, 9999}, code: codes.StatusesNotFound},
		{name: "duplicate id", ids: []int64{a.ID, a.ID, b.ID}, code: codes.StatusesNotFound},
		{name: "strict subset", ids: []int64{c.ID, a.ID}, code: codes.OrderIncomplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Reorder(ctx, tc.ids)
			assertCode(t, err, tc.code)
			if repo.statuses[a.ID].Order != 0 || repo.statuses[b.ID].Order != 1 || repo.statuses[c.ID].Order != 2 {
				t.Fatalf("rejected reorder must not change positions")
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	raw := func(items ...string) []json.RawMessage {
		out := make([]json.RawMessage, len(items))
		for i, item := range items {
			out[i] = json.RawMessage(item)
		}
		return out
	}

	ids, err := ParseOrder(raw("3", " 1", "2"))
	if err != nil || len(ids) != 3 || ids[0] != 3 {
		t.Fatalf("expected [3 1 2], got %v (%v)", ids, err)
	}

	for _, bad := range [][]json.RawMessage{nil, raw(`"1"`), raw("1.5"), raw("0"), raw("-2"), raw("null"), raw("1", "{}")} {
		if _, err := ParseOrder(bad); !apperr.HasCode(err, codes.OrderFormatInvalid) {
			t.Fatalf("expected ORDER_FORMAT_INVALID for %s, got %v", bad, err)
		}
	}
}

func TestRemoveMissingStatus(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "A", true)

	err := svc.Remove(context.Background(), 9999)
	assertCode(t, err, codes.StatusNotFound)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found kind")
	}
}

func TestRemoveDefaultIsRejected(t *testing.T) {
	svc, repo := newTestService()
	a := mustCreate(t, svc, "A", true)
	repo.leads[1] = a.ID

	err := svc.Remove(context.Background(), a.ID)
	assertCode(t, err, codes.DefaultNotDeletable)
	if _, ok := repo.statuses[a.ID]; !ok {
		t.Fatalf("default status must survive")
	}
}

func TestRemoveCascadesLeadsToDefault(t *testing.T) {
	svc, repo := newTestService()
	def := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", false)
	repo.leads[10] = b.ID
	repo.leads[11] = b.ID
	repo.leads[12] = c.ID

	if err := svc.Remove(context.Background(), b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, ok := repo.statuses[b.ID]; ok {
		t.Fatalf("status must be deleted")
	}
	if repo.leads[10] != def.ID || repo.leads[11] != def.ID {
		t.Fatalf("leads must move to default, got %+v", repo.leads)
	}
	if repo.leads[12] != c.ID {
		t.Fatalf("unrelated lead must stay put")
	}
	if repo.statuses[c.ID].Order != 1 {
		t.Fatalf("expected order to be compacted, got %d", repo.statuses[c.ID].Order)
	}
	assertDenseOrder(t, repo)
}

func TestRemoveBothNonDefaults(t *testing.T) {
	svc, repo := newTestService()
	def := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", false)
	repo.leads[1] = b.ID
	repo.leads[2] = c.ID
	ctx := context.Background()

	if err := svc.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove b: %v", err)
	}
	if err := svc.Remove(ctx, c.ID); err != nil {
		t.Fatalf("remove c: %v", err)
	}

	if len(repo.statuses) != 1 {
		t.Fatalf("only the default must remain, got %+v", repo.statuses)
	}
	if repo.leads[1] != def.ID || repo.leads[2] != def.ID {
		t.Fatalf("both leads must reference the default, got %+v", repo.leads)
	}
}

func TestRemoveFailureRollsBackCascade(t *testing.T) {
	svc, repo := newTestService()
	mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	repo.leads[1] = b.ID
	repo.failDelete = true

	if err := svc.Remove(context.Background(), b.ID); err == nil {
		t.Fatalf("expected delete failure")
	}
	if _, ok := repo.statuses[b.ID]; !ok {
		t.Fatalf("status must still exist")
	}
	if repo.leads[1] != b.ID {
		t.Fatalf("lead reassignment must be rolled back")
	}
}

func TestRemoveWithoutDefaultFailsInternally(t *testing.T) {
	svc, repo := newTestService()
	b := repo.insert("B", false, 0)
	repo.leads[1] = b.ID

	err := svc.Remove(context.Background(), b.ID)
	assertCode(t, err, codes.DefaultStatusMissing)
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("missing default must be an internal error")
	}
	if _, ok := repo.statuses[b.ID]; !ok {
		t.Fatalf("status must not be deleted")
	}
}

func TestListForKanbanIgnoresPaging(t *testing.T) {
	svc, _ := newTestService()
	a := mustCreate(t, svc, "A", true)
	b := mustCreate(t, svc, "B", false)
	c := mustCreate(t, svc, "C", false)
	ctx := context.Background()
	if err := svc.Reorder(ctx, []int64{b.ID, c.ID, a.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	res, err := svc.List(ctx, transport.ListStatusesRequest{Page: 3, Limit: 1, ForKanban: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Items) != 3 || res.Items[0].ID != b.ID || res.Items[2].ID != a.ID {
		t.Fatalf("expected full board in order, got %+v", res.Items)
	}

	page, err := svc.List(ctx, transport.ListStatusesRequest{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Items[0].ID != a.ID || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestEnsureDefaultSeedsEmptyBoard(t *testing.T) {
	svc, repo := newTestService()
	seed, err := ParseSeed([]byte(`
statuses:
  - name: Fresh
    isDefault: true
  - name: Contacted
    color: "#f59e0b"
`))
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}

	if err := svc.EnsureDefault(context.Background(), seed); err != nil {
		t.Fatalf("ensure default: %v", err)
	}

	if len(repo.statuses) != 2 {
		t.Fatalf("expected seeded columns only, got %+v", repo.statuses)
	}
	def := assertSingleDefault(t, repo)
	if def.Name != "Fresh" {
		t.Fatalf("expected seeded default, got %s", def.Name)
	}
}

func TestEnsureDefaultPromotesExistingByName(t *testing.T) {
	svc, repo := newTestService()
	repo.insert("Other", false, 0)
	existing := repo.insert(testDefaultName, false, 1)

	if err := svc.EnsureDefault(context.Background(), nil); err != nil {
		t.Fatalf("ensure default: %v", err)
	}

	if def := assertSingleDefault(t, repo); def.ID != existing.ID {
		t.Fatalf("expected existing %s to be promoted", testDefaultName)
	}
	if len(repo.statuses) != 2 {
		t.Fatalf("no status must be created")
	}
}

func TestEnsureDefaultInsertsAtFront(t *testing.T) {
	svc, repo := newTestService()
	other := repo.insert("Other", false, 0)

	if err := svc.EnsureDefault(context.Background(), nil); err != nil {
		t.Fatalf("ensure default: %v", err)
	}

	def := assertSingleDefault(t, repo)
	if def.Name != testDefaultName || def.Order != 0 {
		t.Fatalf("expected default at order 0, got %+v", def)
	}
	if repo.statuses[other.ID].Order != 1 {
		t.Fatalf("existing column must shift right")
	}
	assertDenseOrder(t, repo)
}

func TestEnsureDefaultIsNoopWhenDefaultExists(t *testing.T) {
	svc, repo := newTestService()
	repo.insert("Mine", true, 0)

	if err := svc.EnsureDefault(context.Background(), []SeedStatus{{Name: "Ignored"}}); err != nil {
		t.Fatalf("ensure default: %v", err)
	}
	if len(repo.statuses) != 1 {
		t.Fatalf("seed must only apply to an empty board")
	}
}

func TestParseSeedRejectsDuplicates(t *testing.T) {
	_, err := ParseSeed([]byte("statuses:\n  - name: A\n  - name: ' A '\n"))
	if err == nil {
		t.Fatalf("expected duplicate names to be rejected")
	}
	if _, err := ParseSeed([]byte("statuses:\n  - color: red\n")); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
