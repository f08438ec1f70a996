package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/model"
)

type ContributionRepository struct {
	DB *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{DB: db}
}

// isUniqueViolation: 23505 dari pgx, fallback cek pesan (driver lain / simple protocol)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "sqlstate 23505")
}

func (r *ContributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContributionModel, error) {
	var row model.ContributionModel
	if err := r.DB.WithContext(ctx).First(&row, "contribution_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contribution %s: %w", id, constants.ErrNotFound)
		}
		return nil, err
	}
	return &row, nil
}

func (r *ContributionRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.ContributionModel, error) {
	var rows []model.ContributionModel
	err := r.DB.WithContext(ctx).
		Where("contribution_member_id = ?", memberID).
		Order("contribution_year ASC, contribution_week_number ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CreateBatch semua minggu dalam satu transaksi.
func (r *ContributionRepository) CreateBatch(ctx context.Context, rows []model.ContributionModel) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("create contributions: %w", constants.ErrAlreadySubmitted)
	}
	return err
}

func (r *ContributionRepository) UpdateReview(ctx context.Context, row *model.ContributionModel) error {
	res := r.DB.WithContext(ctx).
		Model(&model.ContributionModel{}).
		Where("contribution_id = ? AND contribution_status = ? AND contribution_is_locked = false", row.ID, model.StatusPending).
		Updates(map[string]any{
			"contribution_status":        row.Status,
			"contribution_reject_reason": row.RejectReason,
			"contribution_reviewed_by":   row.ReviewedBy,
			"contribution_reviewed_at":   row.ReviewedAt,
			"updated_at":                 time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contribution %s: %w", row.ID, constants.ErrNotPending)
	}
	return nil
}

func (r *ContributionRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("contribution_id = ? AND contribution_status = ? AND contribution_is_locked = false", id, model.StatusPending).
		Delete(&model.ContributionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contribution %s: %w", id, constants.ErrNotPending)
	}
	return nil
}

// CountByImageURL berapa baris yang masih memakai bukti transfer ini
func (r *ContributionRepository) CountByImageURL(ctx context.Context, imageURL string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.ContributionModel{}).
		Where("contribution_image_url = ?", imageURL).
		Count(&n).Error
	return n, err
}

// DeletePendingByOrder buang record online yang gagal dapat token
func (r *ContributionRepository) DeletePendingByOrder(ctx context.Context, orderID string) error {
	return r.DB.WithContext(ctx).
		Where("contribution_payment_order_id = ? AND contribution_status = ?", orderID, model.StatusPending).
		Delete(&model.ContributionModel{}).Error
}

// ListAll semua kontribusi (statistik, matrix, laporan). Data klub kecil.
func (r *ContributionRepository) ListAll(ctx context.Context) ([]model.ContributionModel, error) {
	var rows []model.ContributionModel
	err := r.DB.WithContext(ctx).
		Order("contribution_year ASC, contribution_week_number ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ContributionRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.ContributionModel, error) {
	var rows []model.ContributionModel
	err := r.DB.WithContext(ctx).
		Where("contribution_payment_order_id = ?", orderID).
		Order("contribution_year ASC, contribution_week_number ASC").
		Find(&rows).Error
	return rows, err
}

/* =========================================================
   Listing (paged)
========================================================= */

type ListFilter struct {
	MemberID   *uuid.UUID
	Status     string
	Department string
	Year       int
	WeekNumber int
	Limit      int
	Offset     int
}

// ContributionRow kontribusi + info member untuk list admin
type ContributionRow struct {
	model.ContributionModel
	MemberName       string `gorm:"column:member_name" json:"member_name"`
	MemberEmail      string `gorm:"column:member_email" json:"member_email"`
	MemberDepartment string `gorm:"column:member_department" json:"member_department"`
}

func (r *ContributionRepository) List(ctx context.Context, f ListFilter) ([]ContributionRow, int64, error) {
	q := r.DB.WithContext(ctx).
		Table("contributions AS c").
		Joins("JOIN members AS m ON m.member_id = c.contribution_member_id")

	if f.MemberID != nil {
		q = q.Where("c.contribution_member_id = ?", *f.MemberID)
	}
	if f.Status != "" {
		q = q.Where("c.contribution_status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("m.member_department = ?", f.Department)
	}
	if f.Year > 0 {
		q = q.Where("c.contribution_year = ?", f.Year)
	}
	if f.WeekNumber > 0 {
		q = q.Where("c.contribution_week_number = ?", f.WeekNumber)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ContributionRow
	err := q.Select("c.*, m.member_name, m.member_email, m.member_department").
		Order("c.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&rows).Error
	return rows, total, err
}
