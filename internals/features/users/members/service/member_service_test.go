package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/features/users/members/repository"
)

type fakeRepo struct {
	members map[uuid.UUID]*model.MemberModel
	deleted []uuid.UUID
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MemberModel, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, constants.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) error {
	m, ok := f.members[id]
	if !ok {
		return constants.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "member_status":
			m.Status = v.(string)
		case "member_role":
			m.Role = v.(string)
		case "member_department":
			m.Department = v.(string)
		case "member_name":
			m.Name = v.(string)
		case "member_bio":
			s := v.(string)
			m.Bio = &s
		case "member_avatar_url":
			s := v.(string)
			m.AvatarURL = &s
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.members[id]; !ok {
		return constants.ErrNotFound
	}
	delete(f.members, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) List(context.Context, repository.ListFilter) ([]model.MemberModel, int64, error) {
	out := make([]model.MemberModel, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) ApplicationApproved(context.Context, model.MemberModel) error {
	n.calls++
	return n.err
}

func newFixture() (*MemberService, *fakeRepo, *countingNotifier, *model.MemberModel) {
	m := &model.MemberModel{ID: uuid.New(), Name: "An", Email: "an@example.com", Status: constants.MemberStatusPending, Role: constants.RoleMember, Department: constants.DepartmentDance}
	repo := &fakeRepo{members: map[uuid.UUID]*model.MemberModel{m.ID: m}}
	n := &countingNotifier{}
	return NewMemberService(repo, n), repo, n, m
}

func TestReviewApplicationApproveSendsEmailOnce(t *testing.T) {
	svc, _, n, m := newFixture()
	ctx := context.Background()
	admin := uuid.New()

	got, err := svc.ReviewApplication(ctx, admin, m.ID, constants.MemberStatusActive)
	if err != nil || got.Status != constants.MemberStatusActive {
		t.Fatalf("got %+v, err %v", got, err)
	}
	if _, err := svc.ReviewApplication(ctx, admin, m.ID, constants.MemberStatusActive); !errors.Is(err, constants.ErrNotPending) {
		t.Fatalf("second approve: err = %v, want ErrNotPending", err)
	}
	if n.calls != 1 {
		t.Fatalf("emails = %d, want 1", n.calls)
	}
}

func TestReviewApplicationEmailFailureIsSoft(t *testing.T) {
	svc, repo, n, m := newFixture()
	n.err = errors.New("smtp down")
	if _, err := svc.ReviewApplication(context.Background(), uuid.New(), m.ID, constants.MemberStatusActive); err != nil {
		t.Fatalf("ReviewApplication: %v", err)
	}
	if repo.members[m.ID].Status != constants.MemberStatusActive {
		t.Fatal("status not persisted")
	}
}

func TestReviewApplicationRejectsUnknownStatus(t *testing.T) {
	svc, _, _, m := newFixture()
	if _, err := svc.ReviewApplication(context.Background(), uuid.New(), m.ID, "BANNED"); !errors.Is(err, constants.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestReviewApplicationOnlyTouchesPendingApplicants(t *testing.T) {
	svc, repo, _, _ := newFixture()
	ctx := context.Background()
	super := &model.MemberModel{ID: uuid.New(), Name: "Owner", Status: constants.MemberStatusActive, Role: constants.RoleSuperAdmin}
	active := &model.MemberModel{ID: uuid.New(), Name: "Bao", Status: constants.MemberStatusActive, Role: constants.RoleMember}
	rejected := &model.MemberModel{ID: uuid.New(), Name: "Cuong", Status: constants.MemberStatusRejected, Role: constants.RoleMember}
	admin := &model.MemberModel{ID: uuid.New(), Name: "Dung", Status: constants.MemberStatusActive, Role: constants.RoleAdmin}
	for _, m := range []*model.MemberModel{super, active, rejected, admin} {
		repo.members[m.ID] = m
	}

	cases := []struct {
		name   string
		target uuid.UUID
		status string
	}{
		{"super admin", super.ID, constants.MemberStatusRejected},
		{"active member", active.ID, constants.MemberStatusRejected},
		{"rejected applicant", rejected.ID, constants.MemberStatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := repo.members[tc.target].Status
			if _, err := svc.ReviewApplication(ctx, admin.ID, tc.target, tc.status); !errors.Is(err, constants.ErrNotPending) {
				t.Fatalf("err = %v, want ErrNotPending", err)
			}
			if repo.members[tc.target].Status != before {
				t.Fatalf("status berubah: %s → %s", before, repo.members[tc.target].Status)
			}
		})
	}

	if _, err := svc.ReviewApplication(ctx, admin.ID, admin.ID, constants.MemberStatusRejected); !errors.Is(err, constants.ErrForbidden) {
		t.Fatalf("self review: err = %v, want ErrForbidden", err)
	}
	if repo.members[super.ID].Status != constants.MemberStatusActive {
		t.Fatal("super admin terkunci")
	}
}

func TestUpdateRole(t *testing.T) {
	svc, _, _, m := newFixture()
	ctx := context.Background()

	if _, err := svc.UpdateRole(ctx, m.ID, m.ID, constants.RoleAdmin); !errors.Is(err, constants.ErrForbidden) {
		t.Fatalf("self: err = %v", err)
	}
	if _, err := svc.UpdateRole(ctx, uuid.New(), m.ID, "OWNER"); !errors.Is(err, constants.ErrInvalidInput) {
		t.Fatalf("invalid role: err = %v", err)
	}
	got, err := svc.UpdateRole(ctx, uuid.New(), m.ID, constants.RoleAdmin)
	if err != nil || got.Role != constants.RoleAdmin {
		t.Fatalf("got %+v, err %v", got, err)
	}
}

func TestUpdateDepartment(t *testing.T) {
	svc, _, _, m := newFixture()
	if _, err := svc.UpdateDepartment(context.Background(), m.ID, "COOKING"); !errors.Is(err, constants.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	got, err := svc.UpdateDepartment(context.Background(), m.ID, constants.DepartmentRap)
	if err != nil || got.Department != constants.DepartmentRap {
		t.Fatalf("got %+v, err %v", got, err)
	}
}

func TestDeleteMember(t *testing.T) {
	svc, repo, _, m := newFixture()
	if err := svc.DeleteMember(context.Background(), m.ID, m.ID); !errors.Is(err, constants.ErrForbidden) {
		t.Fatalf("self delete: err = %v", err)
	}
	if err := svc.DeleteMember(context.Background(), uuid.New(), m.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatal("member not deleted")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, m := newFixture()
	blank := "   "
	if _, err := svc.UpdateProfile(context.Background(), m.ID, ProfileUpdate{Name: &blank}); !errors.Is(err, constants.ErrInvalidInput) {
		t.Fatalf("blank name: err = %v", err)
	}
	name, bio := " Bình ", "rap & dance"
	got, err := svc.UpdateProfile(context.Background(), m.ID, ProfileUpdate{Name: &name, Bio: &bio})
	if err != nil || got.Name != "Bình" || got.Bio == nil || *got.Bio != bio {
		t.Fatalf("got %+v, err %v", got, err)
	}
}
