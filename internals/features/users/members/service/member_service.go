package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/features/users/members/repository"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.MemberModel, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repository.ListFilter) ([]model.MemberModel, int64, error)
}

type Notifier interface {
	ApplicationApproved(ctx context.Context, m model.MemberModel) error
}

type MemberService struct {
	Repo     Repository
	Notifier Notifier
}

func NewMemberService(repo Repository, notifier Notifier) *MemberService {
	return &MemberService{Repo: repo, Notifier: notifier}
}

func (s *MemberService) List(ctx context.Context, f repository.ListFilter) ([]model.MemberModel, int64, error) {
	if f.Status != "" && f.Status != constants.MemberStatusPending && f.Status != constants.MemberStatusActive && f.Status != constants.MemberStatusRejected {
		return nil, 0, fmt.Errorf("status %q: %w", f.Status, constants.ErrInvalidInput)
	}
	if f.Department != "" && !constants.IsValidDepartment(f.Department) {
		return nil, 0, fmt.Errorf("department %q: %w", f.Department, constants.ErrInvalidInput)
	}
	if f.Role != "" && !constants.IsValidRole(f.Role) {
		return nil, 0, fmt.Errorf("role %q: %w", f.Role, constants.ErrInvalidInput)
	}
	return s.Repo.List(ctx, f)
}

// ReviewApplication hanya untuk pendaftar PENDING → ACTIVE/REJECTED; email ke member kalau diterima.
// Member yang sudah diproses (termasuk admin/super admin ACTIVE) tidak bisa diubah lewat jalur ini.
func (s *MemberService) ReviewApplication(ctx context.Context, callerID, memberID uuid.UUID, status string) (*model.MemberModel, error) {
	if status != constants.MemberStatusActive && status != constants.MemberStatusRejected {
		return nil, fmt.Errorf("status %q: %w", status, constants.ErrInvalidInput)
	}
	if callerID == memberID {
		return nil, fmt.Errorf("review self: %w", constants.ErrForbidden)
	}
	m, err := s.Repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.Status != constants.MemberStatusPending {
		return nil, fmt.Errorf("member %s is %s: %w", m.ID, m.Status, constants.ErrNotPending)
	}
	if err := s.Repo.UpdateFields(ctx, memberID, map[string]any{"member_status": status}); err != nil {
		return nil, err
	}
	m.Status = status

	if status == constants.MemberStatusActive && s.Notifier != nil {
		if err := s.Notifier.ApplicationApproved(ctx, *m); err != nil {
			log.Printf("[WARN] email penerimaan member=%s gagal: %v", m.ID, err)
		}
	}
	return m, nil
}

// UpdateRole hanya SUPER_ADMIN (dicek guard); tidak boleh mengubah role sendiri.
func (s *MemberService) UpdateRole(ctx context.Context, callerID, memberID uuid.UUID, role string) (*model.MemberModel, error) {
	if callerID == memberID {
		return nil, fmt.Errorf("change own role: %w", constants.ErrForbidden)
	}
	if !constants.IsValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, constants.ErrInvalidInput)
	}
	if err := s.Repo.UpdateFields(ctx, memberID, map[string]any{"member_role": role}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, memberID)
}

func (s *MemberService) UpdateDepartment(ctx context.Context, memberID uuid.UUID, department string) (*model.MemberModel, error) {
	if !constants.IsValidDepartment(department) {
		return nil, fmt.Errorf("department %q: %w", department, constants.ErrInvalidInput)
	}
	if err := s.Repo.UpdateFields(ctx, memberID, map[string]any{"member_department": department}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, memberID)
}

// DeleteMember ikut menghapus kontribusinya; tidak bisa hapus diri sendiri.
func (s *MemberService) DeleteMember(ctx context.Context, callerID, memberID uuid.UUID) error {
	if callerID == memberID {
		return fmt.Errorf("delete self: %w", constants.ErrForbidden)
	}
	return s.Repo.Delete(ctx, memberID)
}

type ProfileUpdate struct {
	Name *string
	Bio  *string
}

func (s *MemberService) UpdateProfile(ctx context.Context, callerID uuid.UUID, in ProfileUpdate) (*model.MemberModel, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name: %w", constants.ErrInvalidInput)
		}
		fields["member_name"] = name
	}
	if in.Bio != nil {
		fields["member_bio"] = strings.TrimSpace(*in.Bio)
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(ctx, callerID, fields); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(ctx, callerID)
}

func (s *MemberService) SetAvatar(ctx context.Context, callerID uuid.UUID, url string) (*model.MemberModel, error) {
	if err := s.Repo.UpdateFields(ctx, callerID, map[string]any{"member_avatar_url": url}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, callerID)
}
