package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// MonthlyCloseModel tutup buku per bulan (unik per bulan+tahun)
type MonthlyCloseModel struct {
	ID        uuid.UUID      `gorm:"column:monthly_close_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"monthly_close_id"`
	Month     int            `gorm:"column:monthly_close_month;not null;uniqueIndex:uq_monthly_close_period,priority:2" json:"monthly_close_month"`
	Year      int            `gorm:"column:monthly_close_year;not null;uniqueIndex:uq_monthly_close_period,priority:1" json:"monthly_close_year"`
	ClosedBy  uuid.UUID      `gorm:"column:monthly_close_closed_by;type:uuid;not null" json:"monthly_close_closed_by"`
	ClosedAt  time.Time      `gorm:"column:monthly_close_closed_at;not null" json:"monthly_close_closed_at"`
	Weeks     pq.Int64Array  `gorm:"column:monthly_close_weeks;type:int[]" json:"monthly_close_weeks"`
	Summary   datatypes.JSON `gorm:"column:monthly_close_summary;type:jsonb" json:"monthly_close_summary"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MonthlyCloseModel) TableName() string {
	return "monthly_closes"
}

// Summary snapshot saat tutup buku
type Summary struct {
	ApprovedTotal int64            `json:"approved_total"`
	RecordCount   int              `json:"record_count"`
	Departments   map[string]int64 `json:"departments"`
}
