package model

import "time"

const (
	SettingsID          = "club-settings"
	DefaultWeeklyAmount = int64(50000)
	DefaultClubName     = "CLB"
)

// SettingsModel singleton (satu baris, id tetap)
type SettingsModel struct {
	ID           string    `gorm:"column:settings_id;primaryKey;size:40" json:"settings_id"`
	WeeklyAmount int64     `gorm:"column:settings_weekly_amount;not null;default:50000" json:"settings_weekly_amount"`
	ClubName     string    `gorm:"column:settings_club_name;size:120" json:"settings_club_name"`
	BankAccount  string    `gorm:"column:settings_bank_account;size:60" json:"settings_bank_account"`
	BankName     string    `gorm:"column:settings_bank_name;size:120" json:"settings_bank_name"`
	AccountOwner string    `gorm:"column:settings_account_owner;size:120" json:"settings_account_owner"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SettingsModel) TableName() string {
	return "settings"
}

func Default() SettingsModel {
	return SettingsModel{
		ID:           SettingsID,
		WeeklyAmount: DefaultWeeklyAmount,
		ClubName:     DefaultClubName,
	}
}
