package controller

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/contributions/service"
	memberModel "clubfund_backend/internals/features/users/members/model"
	helper "clubfund_backend/internals/helpers"
)

type memStore map[uuid.UUID]model.ContributionModel

func (s memStore) FindByID(_ context.Context, id uuid.UUID) (*model.ContributionModel, error) {
	r, ok := s[id]
	if !ok {
		return nil, constants.ErrNotFound
	}
	return &r, nil
}

func (s memStore) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.ContributionModel, error) {
	var out []model.ContributionModel
	for _, r := range s {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s memStore) CreateBatch(_ context.Context, rows []model.ContributionModel) error {
	for _, r := range rows {
		s[r.ID] = r
	}
	return nil
}

func (s memStore) UpdateReview(_ context.Context, row *model.ContributionModel) error {
	cur, ok := s[row.ID]
	if !ok || cur.Status != model.StatusPending {
		return constants.ErrNotPending
	}
	s[row.ID] = *row
	return nil
}

func (s memStore) DeletePending(_ context.Context, id uuid.UUID) error {
	delete(s, id)
	return nil
}

func (s memStore) CountByImageURL(_ context.Context, imageURL string) (int64, error) {
	var n int64
	for _, r := range s {
		if r.ImageURL == imageURL {
			n++
		}
	}
	return n, nil
}

type memMembers map[uuid.UUID]memberModel.MemberModel

func (m memMembers) FindByID(_ context.Context, id uuid.UUID) (*memberModel.MemberModel, error) {
	v, ok := m[id]
	if !ok {
		return nil, constants.ErrNotFound
	}
	return &v, nil
}

type fixedAmount int64

func (f fixedAmount) WeeklyAmount(context.Context) (int64, error) { return int64(f), nil }

func newTestApp(store memStore, members memMembers, caller uuid.UUID) *fiber.App {
	svc := service.NewContributionService(store, members, fixedAmount(50000), nil)
	ctrl := NewContributionController(svc, nil, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, caller.String())
		return c.Next()
	})
	app.Post("/contributions", ctrl.Submit)
	app.Post("/contributions/:id/approve", ctrl.Approve)
	app.Post("/contributions/:id/reject", ctrl.Reject)
	return app
}

func readBody(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestRejectBlankReason(t *testing.T) {
	pending := model.ContributionModel{ID: uuid.New(), MemberID: uuid.New(), Year: 2026, WeekNumber: 3, Week: "Tuần 3", Status: model.StatusPending}
	app := newTestApp(memStore{pending.ID: pending}, memMembers{}, uuid.New())

	req := httptest.NewRequest("POST", "/contributions/"+pending.ID.String()+"/reject", strings.NewReader(`{"reason":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp.Body)
	if resp.StatusCode != fiber.StatusUnprocessableEntity || !strings.Contains(body, "MISSING_REASON") {
		t.Fatalf("got %d %s", resp.StatusCode, body)
	}
}

func TestApproveTwiceConflicts(t *testing.T) {
	approved := model.ContributionModel{ID: uuid.New(), MemberID: uuid.New(), Year: 2026, WeekNumber: 3, Week: "Tuần 3", Status: model.StatusApproved}
	app := newTestApp(memStore{approved.ID: approved}, memMembers{}, uuid.New())

	resp, err := app.Test(httptest.NewRequest("POST", "/contributions/"+approved.ID.String()+"/approve", nil))
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, resp.Body)
	if resp.StatusCode != fiber.StatusConflict || !strings.Contains(body, "NOT_PENDING") {
		t.Fatalf("got %d %s", resp.StatusCode, body)
	}
}

func TestApproveUnknownID(t *testing.T) {
	app := newTestApp(memStore{}, memMembers{}, uuid.New())
	resp, err := app.Test(httptest.NewRequest("POST", "/contributions/"+uuid.NewString()+"/approve", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func multipartSubmit(t *testing.T, weeks string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("weeks", weeks); err != nil {
		t.Fatal(err)
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "proof.png")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte("not really a png"))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestSubmitRejectsOutOfRangeWeeks(t *testing.T) {
	app := newTestApp(memStore{}, memMembers{}, uuid.New())
	body, ct := multipartSubmit(t, "5", true)

	req := httptest.NewRequest("POST", "/contributions", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	got := readBody(t, resp.Body)
	if resp.StatusCode != fiber.StatusUnprocessableEntity || !strings.Contains(got, "INVALID_RANGE") {
		t.Fatalf("got %d %s", resp.StatusCode, got)
	}
}

func TestSubmitRequiresImage(t *testing.T) {
	app := newTestApp(memStore{}, memMembers{}, uuid.New())
	body, ct := multipartSubmit(t, "2", false)

	req := httptest.NewRequest("POST", "/contributions", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestSubmitWithoutStorageUnavailable(t *testing.T) {
	app := newTestApp(memStore{}, memMembers{}, uuid.New())
	body, ct := multipartSubmit(t, "1", true)

	req := httptest.NewRequest("POST", "/contributions", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", resp.StatusCode)
	}
}
