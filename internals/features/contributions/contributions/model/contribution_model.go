package model

import (
	"time"

	"github.com/google/uuid"

	"clubfund_backend/internals/helpers/weeks"
)

type ContributionStatus string

const (
	StatusPending  ContributionStatus = "PENDING"
	StatusApproved ContributionStatus = "APPROVED"
	StatusRejected ContributionStatus = "REJECTED"
)

func (s ContributionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Live: PENDING atau APPROVED menempati minggunya; REJECTED tidak.
func (s ContributionStatus) Live() bool {
	return s == StatusPending || s == StatusApproved
}

type ContributionModel struct {
	ID             uuid.UUID          `gorm:"column:contribution_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"contribution_id"`
	MemberID       uuid.UUID          `gorm:"column:contribution_member_id;type:uuid;not null;index" json:"contribution_member_id"`
	Week           string             `gorm:"column:contribution_week;size:20;not null" json:"contribution_week"`
	WeekNumber     int                `gorm:"column:contribution_week_number;not null;index:idx_contributions_year_week,priority:2" json:"contribution_week_number"`
	Year           int                `gorm:"column:contribution_year;not null;index:idx_contributions_year_week,priority:1" json:"contribution_year"`
	Amount         int64              `gorm:"column:contribution_amount;not null" json:"contribution_amount"`
	ImageURL       string             `gorm:"column:contribution_image_url" json:"contribution_image_url"`
	Status         ContributionStatus `gorm:"column:contribution_status;size:20;not null;default:PENDING;index" json:"contribution_status"`
	RejectReason   *string            `gorm:"column:contribution_reject_reason" json:"contribution_reject_reason,omitempty"`
	IsLocked       bool               `gorm:"column:contribution_is_locked;not null;default:false" json:"contribution_is_locked"`
	ReviewedBy     *uuid.UUID         `gorm:"column:contribution_reviewed_by;type:uuid" json:"contribution_reviewed_by,omitempty"`
	ReviewedAt     *time.Time         `gorm:"column:contribution_reviewed_at" json:"contribution_reviewed_at,omitempty"`
	PaymentOrderID *string            `gorm:"column:contribution_payment_order_id;size:64;index" json:"contribution_payment_order_id,omitempty"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContributionModel) TableName() string {
	return "contributions"
}

// WeekRef bucket minggu (tahun, nomor)
func (c ContributionModel) WeekRef() weeks.Ref {
	return weeks.Ref{Year: c.Year, Number: c.WeekNumber}
}

// IsLive pendek untuk c.Status.Live()
func (c ContributionModel) IsLive() bool {
	return c.Status.Live()
}
