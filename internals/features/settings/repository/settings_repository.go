package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clubfund_backend/internals/features/settings/model"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get baris singleton; dibuat dengan default kalau belum ada.
func (r *SettingsRepository) Get(ctx context.Context) (*model.SettingsModel, error) {
	var s model.SettingsModel
	err := r.DB.WithContext(ctx).First(&s, "settings_id = ?", model.SettingsID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := model.Default()
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&def).Error; err != nil {
		return nil, err
	}
	// baca ulang: bisa saja request lain yang menang insert
	if err := r.DB.WithContext(ctx).First(&s, "settings_id = ?", model.SettingsID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *model.SettingsModel) error {
	s.ID = model.SettingsID
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "settings_id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}

// WeeklyAmount nominal per minggu untuk splitter
func (r *SettingsRepository) WeeklyAmount(ctx context.Context) (int64, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return 0, err
	}
	if s.WeeklyAmount <= 0 {
		return model.DefaultWeeklyAmount, nil
	}
	return s.WeeklyAmount, nil
}

// ClubName dipakai template email
func (r *SettingsRepository) ClubName(ctx context.Context) string {
	s, err := r.Get(ctx)
	if err != nil || s.ClubName == "" {
		return model.DefaultClubName
	}
	return s.ClubName
}
