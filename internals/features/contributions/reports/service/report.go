package service

import (
	"fmt"
	"sort"
	"time"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"

	"github.com/google/uuid"
)

type DetailRow struct {
	ContributionID uuid.UUID `json:"contribution_id"`
	MemberName     string    `json:"member_name"`
	MemberEmail    string    `json:"member_email"`
	Department     string    `json:"department"`
	DepartmentName string    `json:"department_name"`
	Week           string    `json:"week"`
	WeekNumber     int       `json:"week_number"`
	Year           int       `json:"year"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	RejectReason   string    `json:"reject_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type MonthlyRow struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Label         string `json:"label"`
	ApprovedTotal int64  `json:"approved_total"`
	ApprovedCount int    `json:"approved_count"`
	PendingCount  int    `json:"pending_count"`
	RejectedCount int    `json:"rejected_count"`
}

type DepartmentRow struct {
	Department    string `json:"department"`
	Name          string `json:"name"`
	ApprovedTotal int64  `json:"approved_total"`
	RecordCount   int    `json:"record_count"`
	MemberCount   int    `json:"member_count"`
}

type Report struct {
	TotalApproved int64           `json:"total_approved"`
	Details       []DetailRow     `json:"details"`
	Monthly       []MonthlyRow    `json:"monthly"`
	Departments   []DepartmentRow `json:"departments"`
}

type monthKey struct{ year, month int }

// BuildReport proyeksi laporan; bulan = bulan hari pertama minggu.
func BuildReport(members []memberModel.MemberModel, contributions []contribModel.ContributionModel, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}
	byID := make(map[uuid.UUID]memberModel.MemberModel, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	deptIdx := make(map[string]int, len(constants.Departments))
	out := Report{
		Details:     make([]DetailRow, 0, len(contributions)),
		Monthly:     []MonthlyRow{},
		Departments: make([]DepartmentRow, len(constants.Departments)),
	}
	for i, d := range constants.Departments {
		deptIdx[d] = i
		out.Departments[i] = DepartmentRow{Department: d, Name: constants.DepartmentName(d)}
	}
	for _, m := range members {
		if i, ok := deptIdx[m.Department]; ok && m.Status == constants.MemberStatusActive {
			out.Departments[i].MemberCount++
		}
	}

	months := map[monthKey]*MonthlyRow{}
	for _, c := range contributions {
		m := byID[c.MemberID]
		row := DetailRow{
			ContributionID: c.ID,
			MemberName:     m.Name,
			MemberEmail:    m.Email,
			Department:     m.Department,
			DepartmentName: constants.DepartmentName(m.Department),
			Week:           c.Week,
			WeekNumber:     c.WeekNumber,
			Year:           c.Year,
			Amount:         c.Amount,
			Status:         string(c.Status),
			CreatedAt:      c.CreatedAt,
		}
		if c.RejectReason != nil {
			row.RejectReason = *c.RejectReason
		}
		out.Details = append(out.Details, row)

		start := c.WeekRef().StartDate(loc)
		k := monthKey{year: start.Year(), month: int(start.Month())}
		mr, ok := months[k]
		if !ok {
			mr = &MonthlyRow{Year: k.year, Month: k.month, Label: fmt.Sprintf("%02d/%d", k.month, k.year)}
			months[k] = mr
		}

		di, hasDept := deptIdx[m.Department]
		if hasDept {
			out.Departments[di].RecordCount++
		}
		switch c.Status {
		case contribModel.StatusApproved:
			out.TotalApproved += c.Amount
			mr.ApprovedTotal += c.Amount
			mr.ApprovedCount++
			if hasDept {
				out.Departments[di].ApprovedTotal += c.Amount
			}
		case contribModel.StatusPending:
			mr.PendingCount++
		case contribModel.StatusRejected:
			mr.RejectedCount++
		}
	}

	sort.SliceStable(out.Details, func(i, j int) bool {
		a, b := out.Details[i], out.Details[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.WeekNumber > b.WeekNumber
	})

	for _, mr := range months {
		out.Monthly = append(out.Monthly, *mr)
	}
	sort.Slice(out.Monthly, func(i, j int) bool {
		if out.Monthly[i].Year != out.Monthly[j].Year {
			return out.Monthly[i].Year < out.Monthly[j].Year
		}
		return out.Monthly[i].Month < out.Monthly[j].Month
	})
	return out
}
