package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"clubfund_backend/internals/constants"
	contributionModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/users/members/model"
)

type MemberRepository struct {
	DB *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{DB: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, constants.ErrNotFound)
	}
	return err
}

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MemberModel, error) {
	var m model.MemberModel
	if err := r.DB.WithContext(ctx).First(&m, "member_id = ?", id).Error; err != nil {
		return nil, notFound(err, "member "+id.String())
	}
	return &m, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.MemberModel, error) {
	var m model.MemberModel
	if err := r.DB.WithContext(ctx).First(&m, "LOWER(member_email) = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		return nil, notFound(err, "member "+email)
	}
	return &m, nil
}

func (r *MemberRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.MemberModel, error) {
	var m model.MemberModel
	if err := r.DB.WithContext(ctx).First(&m, "member_google_id = ?", googleID).Error; err != nil {
		return nil, notFound(err, "member google")
	}
	return &m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *model.MemberModel) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if err != nil && isDuplicate(err) {
		return fmt.Errorf("member %s: %w", m.Email, constants.ErrEmailTaken)
	}
	return err
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// UpdateFields update kolom tertentu; 0 row → ErrNotFound
func (r *MemberRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.MemberModel{}).Where("member_id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("member %s: %w", id, constants.ErrNotFound)
	}
	return nil
}

// Delete member + semua kontribusinya dalam satu transaksi.
func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contribution_member_id = ?", id).Delete(&contributionModel.ContributionModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("member_id = ?", id).Delete(&model.MemberModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("member %s: %w", id, constants.ErrNotFound)
		}
		return nil
	})
}

type ListFilter struct {
	Status     string
	Department string
	Role       string
	Search     string
	Limit      int
	Offset     int
}

func (r *MemberRepository) List(ctx context.Context, f ListFilter) ([]model.MemberModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.MemberModel{})
	if f.Status != "" {
		q = q.Where("member_status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("member_department = ?", f.Department)
	}
	if f.Role != "" {
		q = q.Where("member_role = ?", f.Role)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(member_name) LIKE ? OR LOWER(member_email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.MemberModel
	err := q.Order("member_department ASC, member_name ASC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error
	return rows, total, err
}

// ListAll semua member (statistik, matrix, laporan)
func (r *MemberRepository) ListAll(ctx context.Context) ([]model.MemberModel, error) {
	var rows []model.MemberModel
	err := r.DB.WithContext(ctx).Order("member_department ASC, member_name ASC").Find(&rows).Error
	return rows, err
}
