package dto

import (
	"encoding/json"
	"time"

	"clubfund_backend/internals/features/contributions/monthly_closes/model"

	"github.com/google/uuid"
)

type CloseMonthRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
}

type MonthlyCloseDTO struct {
	ID       uuid.UUID       `json:"monthly_close_id"`
	Month    int             `json:"monthly_close_month"`
	Year     int             `json:"monthly_close_year"`
	ClosedBy uuid.UUID       `json:"monthly_close_closed_by"`
	ClosedAt time.Time       `json:"monthly_close_closed_at"`
	Weeks    []int64         `json:"monthly_close_weeks"`
	Summary  json.RawMessage `json:"monthly_close_summary"`
}

func FromModel(m model.MonthlyCloseModel) MonthlyCloseDTO {
	weeks := []int64(m.Weeks)
	if weeks == nil {
		weeks = []int64{}
	}
	summary := json.RawMessage(m.Summary)
	if len(summary) == 0 {
		summary = json.RawMessage("{}")
	}
	return MonthlyCloseDTO{
		ID:       m.ID,
		Month:    m.Month,
		Year:     m.Year,
		ClosedBy: m.ClosedBy,
		ClosedAt: m.ClosedAt,
		Weeks:    weeks,
		Summary:  summary,
	}
}

func FromModels(rows []model.MonthlyCloseModel) []MonthlyCloseDTO {
	out := make([]MonthlyCloseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
