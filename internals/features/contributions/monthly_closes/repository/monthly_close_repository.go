package repository

import (
	"context"
	"errors"
	"fmt"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/monthly_closes/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonthlyCloseRepository struct {
	DB *gorm.DB
}

func NewMonthlyCloseRepository(db *gorm.DB) *MonthlyCloseRepository {
	return &MonthlyCloseRepository{DB: db}
}

func (r *MonthlyCloseRepository) Exists(ctx context.Context, month, year int) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.MonthlyCloseModel{}).
		Where("monthly_close_month = ? AND monthly_close_year = ?", month, year).
		Count(&n).Error
	return n > 0, err
}

func weekNumbers(refs []weeks.Ref) []int {
	out := make([]int, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Number)
	}
	return out
}

// ContributionsInWeeks semua kontribusi di minggu-minggu (satu tahun) tsb
func (r *MonthlyCloseRepository) ContributionsInWeeks(ctx context.Context, year int, refs []weeks.Ref) ([]contribModel.ContributionModel, error) {
	var rows []contribModel.ContributionModel
	if len(refs) == 0 {
		return rows, nil
	}
	err := r.DB.WithContext(ctx).
		Where("contribution_year = ? AND contribution_week_number IN ?", year, weekNumbers(refs)).
		Find(&rows).Error
	return rows, err
}

// CreateAndLock satu transaksi: kunci baris, cek pending ulang, simpan close, set is_locked.
func (r *MonthlyCloseRepository) CreateAndLock(ctx context.Context, row *model.MonthlyCloseModel, refs []weeks.Ref) error {
	nums := weekNumbers(refs)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []contribModel.ContributionModel
		if len(nums) > 0 {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("contribution_id", "contribution_status").
				Where("contribution_year = ? AND contribution_week_number IN ?", row.Year, nums).
				Find(&locked).Error; err != nil {
				return err
			}
		}
		for _, c := range locked {
			if c.Status == contribModel.StatusPending {
				return fmt.Errorf("%02d/%d: %w", row.Month, row.Year, constants.ErrPendingInMonth)
			}
		}

		if err := tx.Create(row).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%02d/%d: %w", row.Month, row.Year, constants.ErrAlreadyClosed)
			}
			return err
		}

		if len(nums) == 0 {
			return nil
		}
		return tx.Model(&contribModel.ContributionModel{}).
			Where("contribution_year = ? AND contribution_week_number IN ?", row.Year, nums).
			Update("contribution_is_locked", true).Error
	})
}

func (r *MonthlyCloseRepository) List(ctx context.Context, year int) ([]model.MonthlyCloseModel, error) {
	q := r.DB.WithContext(ctx).Model(&model.MonthlyCloseModel{})
	if year > 0 {
		q = q.Where("monthly_close_year = ?", year)
	}
	var rows []model.MonthlyCloseModel
	err := q.Order("monthly_close_year DESC, monthly_close_month DESC").Find(&rows).Error
	return rows, err
}
