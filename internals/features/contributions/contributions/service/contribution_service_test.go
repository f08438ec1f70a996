package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"
)

/* ================= fakes ================= */

type fakeStore struct {
	rows      map[uuid.UUID]*model.ContributionModel
	createErr error
	updates   int
}

func newFakeStore(rows ...model.ContributionModel) *fakeStore {
	s := &fakeStore{rows: map[uuid.UUID]*model.ContributionModel{}}
	for i := range rows {
		r := rows[i]
		s.rows[r.ID] = &r
	}
	return s
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*model.ContributionModel, error) {
	r, ok := s.rows[id]
	if !ok {
		return nil, constants.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.ContributionModel, error) {
	var out []model.ContributionModel
	for _, r := range s.rows {
		if r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateBatch(_ context.Context, rows []model.ContributionModel) error {
	if s.createErr != nil {
		return s.createErr
	}
	for i := range rows {
		r := rows[i]
		s.rows[r.ID] = &r
	}
	return nil
}

func (s *fakeStore) UpdateReview(_ context.Context, row *model.ContributionModel) error {
	cur, ok := s.rows[row.ID]
	if !ok || cur.Status != model.StatusPending || cur.IsLocked {
		return constants.ErrNotPending
	}
	cp := *row
	s.rows[row.ID] = &cp
	s.updates++
	return nil
}

func (s *fakeStore) DeletePending(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeStore) CountByImageURL(_ context.Context, imageURL string) (int64, error) {
	var n int64
	for _, r := range s.rows {
		if r.ImageURL == imageURL {
			n++
		}
	}
	return n, nil
}

// closedMonths key "bulan/tahun"
type closedMonths map[[2]int]bool

func (c closedMonths) Exists(_ context.Context, month, year int) (bool, error) {
	return c[[2]int{month, year}], nil
}

type recordingProofs struct {
	deleted []string
}

func (p *recordingProofs) DeleteByPublicURL(_ context.Context, url string) error {
	p.deleted = append(p.deleted, url)
	return nil
}

type fakeMembers map[uuid.UUID]memberModel.MemberModel

func (f fakeMembers) FindByID(_ context.Context, id uuid.UUID) (*memberModel.MemberModel, error) {
	m, ok := f[id]
	if !ok {
		return nil, constants.ErrNotFound
	}
	return &m, nil
}

type fixedAmount int64

func (a fixedAmount) WeeklyAmount(context.Context) (int64, error) { return int64(a), nil }

type recordingNotifier struct {
	approved, rejected int
	err                error
}

func (n *recordingNotifier) ContributionApproved(context.Context, memberModel.MemberModel, model.ContributionModel) error {
	n.approved++
	return n.err
}

func (n *recordingNotifier) ContributionRejected(context.Context, memberModel.MemberModel, model.ContributionModel) error {
	n.rejected++
	return n.err
}

/* ================= helpers ================= */

var fixedNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func setup(rows ...model.ContributionModel) (*ContributionService, *fakeStore, *recordingNotifier, memberModel.MemberModel) {
	m := memberModel.MemberModel{ID: uuid.New(), Name: "Linh", Email: "linh@example.com", Status: constants.MemberStatusActive, Role: constants.RoleMember}
	for i := range rows {
		if rows[i].MemberID == uuid.Nil {
			rows[i].MemberID = m.ID
		}
	}
	store := newFakeStore(rows...)
	n := &recordingNotifier{}
	svc := NewContributionService(store, fakeMembers{m.ID: m}, fixedAmount(50000), n)
	svc.Now = func() time.Time { return fixedNow }
	return svc, store, n, m
}

func pending(week int) model.ContributionModel {
	return model.ContributionModel{ID: uuid.New(), Year: 2026, WeekNumber: week, Week: weeks.Ref{Year: 2026, Number: week}.Label(), Amount: 50000, Status: model.StatusPending}
}

/* ================= tests ================= */

func TestApproveMovesPendingToApproved(t *testing.T) {
	c := pending(7)
	svc, store, n, _ := setup(c)
	reviewer := uuid.New()

	got, err := svc.Approve(context.Background(), c.ID, &reviewer)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got.Status != model.StatusApproved || got.ReviewedBy == nil || *got.ReviewedBy != reviewer {
		t.Fatalf("got %+v", got)
	}
	if !got.ReviewedAt.Equal(fixedNow) {
		t.Fatalf("reviewed_at = %v", got.ReviewedAt)
	}
	if store.rows[c.ID].Status != model.StatusApproved {
		t.Fatal("store not updated")
	}
	if n.approved != 1 {
		t.Fatalf("approved notifications = %d", n.approved)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	c := pending(7)
	svc, store, _, _ := setup(c)
	for _, reason := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Reject(context.Background(), c.ID, nil, reason); !errors.Is(err, constants.ErrMissingReason) {
			t.Errorf("reason %q: err = %v, want ErrMissingReason", reason, err)
		}
	}
	if store.rows[c.ID].Status != model.StatusPending {
		t.Fatal("status must stay PENDING")
	}
}

func TestRejectStoresTrimmedReason(t *testing.T) {
	c := pending(7)
	svc, _, n, _ := setup(c)
	got, err := svc.Reject(context.Background(), c.ID, nil, "  ảnh mờ  ")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if got.Status != model.StatusRejected || got.RejectReason == nil || *got.RejectReason != "ảnh mờ" {
		t.Fatalf("got %+v", got)
	}
	if n.rejected != 1 {
		t.Fatalf("rejected notifications = %d", n.rejected)
	}
}

func TestTransitionsOnNonPendingFail(t *testing.T) {
	approved := pending(3)
	approved.Status = model.StatusApproved
	rejected := pending(4)
	rejected.Status = model.StatusRejected
	svc, _, _, _ := setup(approved, rejected)

	for _, id := range []uuid.UUID{approved.ID, rejected.ID} {
		if _, err := svc.Approve(context.Background(), id, nil); !errors.Is(err, constants.ErrNotPending) {
			t.Errorf("approve %s: err = %v", id, err)
		}
		if _, err := svc.Reject(context.Background(), id, nil, "x"); !errors.Is(err, constants.ErrNotPending) {
			t.Errorf("reject %s: err = %v", id, err)
		}
	}
}

func TestTransitionsOnLockedOrMissing(t *testing.T) {
	locked := pending(2)
	locked.IsLocked = true
	svc, _, _, _ := setup(locked)

	if _, err := svc.Approve(context.Background(), locked.ID, nil); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if _, err := svc.Approve(context.Background(), uuid.New(), nil); !errors.Is(err, constants.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	c := pending(7)
	svc, store, n, _ := setup(c)
	n.err = errors.New("smtp down")

	if _, err := svc.Approve(context.Background(), c.ID, nil); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if store.rows[c.ID].Status != model.StatusApproved {
		t.Fatal("status change must survive notification failure")
	}
}

func TestSubmitUsesSettingsAmountAndSkipsLiveWeeks(t *testing.T) {
	approved := pending(6)
	approved.Status = model.StatusApproved
	svc, store, _, m := setup(approved)

	rows, err := svc.Submit(context.Background(), SubmitInput{
		MemberID:       m.ID,
		Start:          weeks.Ref{Year: 2026, Number: 5},
		WeeksRequested: 3,
		ImageURL:       "https://img/a.webp",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(rows) != 2 || rows[0].WeekNumber != 5 || rows[1].WeekNumber != 7 {
		t.Fatalf("rows = %+v", rows)
	}
	for _, r := range rows {
		if r.Amount != 50000 {
			t.Fatalf("amount = %d", r.Amount)
		}
	}
	if len(store.rows) != 3 {
		t.Fatalf("store rows = %d", len(store.rows))
	}
}

func TestSubmitAfterRejectionReopensWeek(t *testing.T) {
	rej := pending(9)
	rej.Status = model.StatusRejected
	svc, _, _, m := setup(rej)

	rows, err := svc.Submit(context.Background(), SubmitInput{MemberID: m.ID, Start: rej.WeekRef(), WeeksRequested: 1, ImageURL: "u"})
	if err != nil || len(rows) != 1 || rows[0].WeekNumber != 9 {
		t.Fatalf("rows = %+v, err = %v", rows, err)
	}
}

func TestSubmitGuards(t *testing.T) {
	svc, store, _, m := setup()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: weeks.Ref{Year: 2026, Number: 1}, WeeksRequested: 1}); !errors.Is(err, constants.ErrInvalidInput) {
		t.Fatalf("missing image: err = %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: weeks.Ref{Year: 2026, Number: 1}, WeeksRequested: 5, ImageURL: "u"}); !errors.Is(err, constants.ErrInvalidRange) {
		t.Fatalf("range: err = %v", err)
	}

	inactive := memberModel.MemberModel{ID: uuid.New(), Status: constants.MemberStatusPending}
	svc.Members = fakeMembers{inactive.ID: inactive}
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: inactive.ID, Start: weeks.Ref{Year: 2026, Number: 1}, WeeksRequested: 1, ImageURL: "u"}); !errors.Is(err, constants.ErrInactiveMember) {
		t.Fatalf("inactive: err = %v", err)
	}

	svc.Members = fakeMembers{m.ID: m}
	store.createErr = constants.ErrAlreadySubmitted
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: weeks.Ref{Year: 2026, Number: 1}, WeeksRequested: 1, ImageURL: "u"}); !errors.Is(err, constants.ErrAlreadySubmitted) {
		t.Fatalf("conflict: err = %v", err)
	}
}

func TestDeletePendingRules(t *testing.T) {
	own := pending(1)
	locked := pending(2)
	locked.IsLocked = true
	done := pending(3)
	done.Status = model.StatusApproved
	svc, store, _, m := setup(own, locked, done)
	ctx := context.Background()

	if err := svc.DeletePending(ctx, uuid.New(), own.ID); !errors.Is(err, constants.ErrForbidden) {
		t.Fatalf("other member: err = %v", err)
	}
	if err := svc.DeletePending(ctx, m.ID, locked.ID); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("locked: err = %v", err)
	}
	if err := svc.DeletePending(ctx, m.ID, done.ID); !errors.Is(err, constants.ErrNotPending) {
		t.Fatalf("approved: err = %v", err)
	}
	if err := svc.DeletePending(ctx, m.ID, own.ID); err != nil {
		t.Fatalf("own pending: %v", err)
	}
	if _, ok := store.rows[own.ID]; ok {
		t.Fatal("row not deleted")
	}
}

func TestClosedMonthRefusesNewWork(t *testing.T) {
	// Tuần 2/2026 mulai 4 Januari; Januari sudah tutup buku, Februari belum
	rejected := pending(2)
	rejected.Status = model.StatusRejected
	rejected.IsLocked = true
	janPending := pending(3)
	febPending := pending(7)
	svc, store, n, m := setup(rejected, janPending, febPending)
	svc.Closes = closedMonths{{1, 2026}: true}
	ctx := context.Background()
	reviewer := uuid.New()

	before := len(store.rows)
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: rejected.WeekRef(), WeeksRequested: 1, ImageURL: "u"}); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("submit into closed month: err = %v", err)
	}
	// rentang yang menyeberang ke bulan tertutup ditolak utuh
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: weeks.Ref{Year: 2026, Number: 5}, WeeksRequested: 2, ImageURL: "u"}); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("submit weeks 5-6 (25 Jan - 1 Feb): err = %v", err)
	}
	if len(store.rows) != before {
		t.Fatalf("rows stored in closed month: %d → %d", before, len(store.rows))
	}

	if _, err := svc.Approve(ctx, janPending.ID, &reviewer); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("approve in closed month: err = %v", err)
	}
	if _, err := svc.Reject(ctx, janPending.ID, &reviewer, "salah nominal"); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("reject in closed month: err = %v", err)
	}
	if err := svc.DeletePending(ctx, m.ID, janPending.ID); !errors.Is(err, constants.ErrLocked) {
		t.Fatalf("delete in closed month: err = %v", err)
	}
	if store.rows[janPending.ID].Status != model.StatusPending || store.updates != 0 || n.approved != 0 {
		t.Fatalf("closed month row changed: %+v", store.rows[janPending.ID])
	}

	if _, err := svc.Approve(ctx, febPending.ID, &reviewer); err != nil {
		t.Fatalf("approve in open month: %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{MemberID: m.ID, Start: weeks.Ref{Year: 2026, Number: 8}, WeeksRequested: 1, ImageURL: "u"}); err != nil {
		t.Fatalf("submit in open month: %v", err)
	}
}

func TestDeletePendingRemovesOrphanedProof(t *testing.T) {
	solo := pending(6)
	solo.ImageURL = "https://cdn.example.com/proofs/solo.webp"
	shared1 := pending(7)
	shared1.ImageURL = "https://cdn.example.com/proofs/shared.webp"
	shared2 := pending(8)
	shared2.ImageURL = shared1.ImageURL
	online := pending(9)
	svc, _, _, m := setup(solo, shared1, shared2, online)
	proofs := &recordingProofs{}
	svc.Proofs = proofs
	ctx := context.Background()

	for _, id := range []uuid.UUID{solo.ID, shared1.ID, online.ID} {
		if err := svc.DeletePending(ctx, m.ID, id); err != nil {
			t.Fatalf("DeletePending %s: %v", id, err)
		}
	}
	if len(proofs.deleted) != 1 || proofs.deleted[0] != solo.ImageURL {
		t.Fatalf("deleted = %v, want only %s", proofs.deleted, solo.ImageURL)
	}

	if err := svc.DeletePending(ctx, m.ID, shared2.ID); err != nil {
		t.Fatalf("DeletePending last shared: %v", err)
	}
	if len(proofs.deleted) != 2 || proofs.deleted[1] != shared1.ImageURL {
		t.Fatalf("deleted = %v, want shared proof removed after last row", proofs.deleted)
	}
}

func TestMyWeekStatus(t *testing.T) {
	a := pending(7)
	a.Status = model.StatusApproved
	b := pending(5)
	c := pending(8)
	c.Status = model.StatusRejected
	svc, _, _, m := setup(a, b, c)

	st, err := svc.MyWeekStatus(context.Background(), m.ID, weeks.Ref{Year: 2026, Number: 7})
	if err != nil {
		t.Fatalf("MyWeekStatus: %v", err)
	}
	if st.CurrentStatus != "APPROVED" {
		t.Fatalf("current status = %s", st.CurrentStatus)
	}
	if len(st.SubmittedWeek) != 2 || st.SubmittedWeek[0] != "Tuần 5" || st.SubmittedWeek[1] != "Tuần 7" {
		t.Fatalf("submitted = %v", st.SubmittedWeek)
	}
	if st.NextOpenWeek != (weeks.Ref{Year: 2026, Number: 8}) {
		t.Fatalf("next open = %v", st.NextOpenWeek)
	}
}
