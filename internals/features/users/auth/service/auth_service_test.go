package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	authHelper "clubfund_backend/internals/features/users/auth/helper"
	memberModel "clubfund_backend/internals/features/users/members/model"
	helpersAuth "clubfund_backend/internals/helpers/auth"
)

type fakeMembers struct {
	rows map[uuid.UUID]*memberModel.MemberModel
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{rows: map[uuid.UUID]*memberModel.MemberModel{}}
}

func (f *fakeMembers) FindByEmail(_ context.Context, email string) (*memberModel.MemberModel, error) {
	for _, m := range f.rows {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, constants.ErrNotFound
}

func (f *fakeMembers) FindByGoogleID(_ context.Context, gid string) (*memberModel.MemberModel, error) {
	for _, m := range f.rows {
		if m.GoogleID != nil && *m.GoogleID == gid {
			cp := *m
			return &cp, nil
		}
	}
	return nil, constants.ErrNotFound
}

func (f *fakeMembers) Create(_ context.Context, m *memberModel.MemberModel) error {
	for _, r := range f.rows {
		if r.Email == m.Email {
			return constants.ErrEmailTaken
		}
	}
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

func (f *fakeMembers) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	m, ok := f.rows[id]
	if !ok {
		return constants.ErrNotFound
	}
	if v, ok := fields["member_google_id"].(string); ok {
		m.GoogleID = &v
	}
	return nil
}

type fakeGoogle struct {
	id  *GoogleIdentity
	err error
}

func (g fakeGoogle) Verify(string) (*GoogleIdentity, error) { return g.id, g.err }

type fakeRevoker struct {
	tokens map[string]time.Time
}

func (r *fakeRevoker) Revoke(_ context.Context, raw string, exp time.Time) error {
	r.tokens[raw] = exp
	return nil
}

func newTestService(g GoogleVerifier) (*AuthService, *fakeMembers, *fakeRevoker) {
	members := newFakeMembers()
	rev := &fakeRevoker{tokens: map[string]time.Time{}}
	svc := NewAuthService(members, g, rev, "test-secret", time.Hour)
	return svc, members, rev
}

func TestRegister(t *testing.T) {
	svc, members, _ := newTestService(nil)
	ctx := context.Background()

	m, err := svc.Register(ctx, RegisterInput{Name: " Linh ", Email: " Linh@Club.VN ", Password: "rahasia123", Department: constants.DepartmentDance})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if m.Email != "linh@club.vn" || m.Name != "Linh" {
		t.Fatalf("normalisasi gagal: %q %q", m.Email, m.Name)
	}
	if m.Status != constants.MemberStatusPending || m.Role != constants.RoleMember {
		t.Fatalf("status/role = %s/%s", m.Status, m.Role)
	}
	stored := members.rows[m.ID]
	if stored.Password == nil || authHelper.CheckPasswordHash(*stored.Password, "rahasia123") != nil {
		t.Fatal("password tidak di-hash dengan benar")
	}

	_, err = svc.Register(ctx, RegisterInput{Name: "Dup", Email: "linh@club.vn", Password: "rahasia123", Department: constants.DepartmentRap})
	if !errors.Is(err, constants.ErrEmailTaken) {
		t.Fatalf("duplicate err = %v", err)
	}

	bad := []RegisterInput{
		{Name: "A", Email: "bukan-email", Password: "rahasia123", Department: constants.DepartmentRap},
		{Name: "A", Email: "a@b.vn", Password: "pendek1", Department: constants.DepartmentRap},
		{Name: "A", Email: "a@b.vn", Password: "tanpaangka", Department: constants.DepartmentRap},
		{Name: "A", Email: "a@b.vn", Password: "rahasia123", Department: "DRUM"},
	}
	for _, in := range bad {
		if _, err := svc.Register(ctx, in); !errors.Is(err, constants.ErrInvalidInput) {
			t.Fatalf("register %+v err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, members, _ := newTestService(nil)
	ctx := context.Background()

	m, err := svc.Register(ctx, RegisterInput{Name: "Minh", Email: "minh@club.vn", Password: "rahasia123", Department: constants.DepartmentSinging})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, "MINH@club.vn", "rahasia123")
	if err != nil {
		t.Fatalf("login pending member: %v", err)
	}
	claims, err := helpersAuth.ParseAccessToken("test-secret", res.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if uid, _ := claims.UserID(); uid != m.ID {
		t.Fatalf("token user = %s, want %s", uid, m.ID)
	}

	if _, err := svc.Login(ctx, "minh@club.vn", "salah12345"); !errors.Is(err, constants.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "tidakada@club.vn", "rahasia123"); !errors.Is(err, constants.ErrUnauthorized) {
		t.Fatalf("unknown email err = %v", err)
	}

	members.rows[m.ID].Status = constants.MemberStatusRejected
	if _, err := svc.Login(ctx, "minh@club.vn", "rahasia123"); !errors.Is(err, constants.ErrInactiveMember) {
		t.Fatalf("rejected err = %v", err)
	}
}

func TestLoginGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending member", func(t *testing.T) {
		svc, members, _ := newTestService(fakeGoogle{id: &GoogleIdentity{Sub: "g-1", Email: "an@gmail.com", Name: "An"}})
		res, err := svc.LoginGoogle(ctx, "tok", constants.DepartmentRap)
		if err != nil {
			t.Fatalf("google login: %v", err)
		}
		if res.Member.Status != constants.MemberStatusPending || res.Member.Department != constants.DepartmentRap {
			t.Fatalf("member = %+v", res.Member)
		}
		if len(members.rows) != 1 {
			t.Fatalf("rows = %d", len(members.rows))
		}
		// login kedua memakai akun yang sama
		if _, err := svc.LoginGoogle(ctx, "tok", ""); err != nil {
			t.Fatalf("second login: %v", err)
		}
		if len(members.rows) != 1 {
			t.Fatalf("akun terduplikasi: %d", len(members.rows))
		}
	})

	t.Run("links existing email", func(t *testing.T) {
		svc, members, _ := newTestService(fakeGoogle{id: &GoogleIdentity{Sub: "g-2", Email: "Binh@club.vn"}})
		m, err := svc.Register(ctx, RegisterInput{Name: "Binh", Email: "binh@club.vn", Password: "rahasia123", Department: constants.DepartmentDance})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		res, err := svc.LoginGoogle(ctx, "tok", "")
		if err != nil {
			t.Fatalf("google login: %v", err)
		}
		if res.Member.ID != m.ID {
			t.Fatalf("linked member = %s, want %s", res.Member.ID, m.ID)
		}
		if gid := members.rows[m.ID].GoogleID; gid == nil || *gid != "g-2" {
			t.Fatalf("google id tidak tersimpan: %v", gid)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, _, _ := newTestService(fakeGoogle{err: errors.New("expired")})
		if _, err := svc.LoginGoogle(ctx, "tok", ""); !errors.Is(err, constants.ErrUnauthorized) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestLogoutRevokesUntilExpiry(t *testing.T) {
	svc, _, rev := newTestService(nil)
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	tok, exp, err := helpersAuth.SignAccessToken("test-secret", uuid.New(), constants.RoleMember, "x@club.vn", now, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := svc.Logout(context.Background(), tok); err != nil {
		t.Fatalf("logout: %v", err)
	}
	got, ok := rev.tokens[tok]
	if !ok {
		t.Fatal("token tidak di-blacklist")
	}
	if got.Before(exp) {
		t.Fatalf("blacklist exp %s sebelum token exp %s", got, exp)
	}

	if err := svc.Logout(context.Background(), "  "); err != nil {
		t.Fatalf("empty logout: %v", err)
	}
	if len(rev.tokens) != 1 {
		t.Fatalf("tokens = %d", len(rev.tokens))
	}
}
