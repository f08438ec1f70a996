package dto

import (
	"strings"

	"clubfund_backend/internals/features/settings/model"
)

// ====================
// Request DTO
// ====================

type UpdateSettingsRequest struct {
	WeeklyAmount int64  `json:"settings_weekly_amount" validate:"required,gt=0"`
	ClubName     string `json:"settings_club_name" validate:"omitempty,max=120"`
	BankAccount  string `json:"settings_bank_account" validate:"omitempty,max=60"`
	BankName     string `json:"settings_bank_name" validate:"omitempty,max=120"`
	AccountOwner string `json:"settings_account_owner" validate:"omitempty,max=120"`
}

func (r UpdateSettingsRequest) ApplyTo(m *model.SettingsModel) {
	m.WeeklyAmount = r.WeeklyAmount
	if v := strings.TrimSpace(r.ClubName); v != "" {
		m.ClubName = v
	}
	m.BankAccount = strings.TrimSpace(r.BankAccount)
	m.BankName = strings.TrimSpace(r.BankName)
	m.AccountOwner = strings.TrimSpace(r.AccountOwner)
}
