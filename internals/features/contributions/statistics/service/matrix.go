package service

import (
	"sort"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/google/uuid"
)

const (
	DefaultMatrixWeeks = 8
	MaxMatrixWeeks     = 26
)

// Status sel matrix
const (
	CellApproved      = "APPROVED"
	CellPendingReview = "PENDING_REVIEW"
	CellRejected      = "REJECTED"
	CellNotSubmitted  = "NOT_SUBMITTED"
)

// ClampWindow 0 → default, lalu dibatasi [1, 26]
func ClampWindow(size int) int {
	if size == 0 {
		return DefaultMatrixWeeks
	}
	if size < 1 {
		return 1
	}
	if size > MaxMatrixWeeks {
		return MaxMatrixWeeks
	}
	return size
}

type WeekColumn struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Year   int    `json:"year"`
	Number int    `json:"number"`
}

type Cell struct {
	Week           string     `json:"week"`
	Status         string     `json:"status"`
	Amount         int64      `json:"amount,omitempty"`
	ContributionID *uuid.UUID `json:"contribution_id,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
}

type MatrixRow struct {
	MemberID       uuid.UUID `json:"member_id"`
	Name           string    `json:"member_name"`
	Department     string    `json:"department"`
	DepartmentName string    `json:"department_name"`
	Cells          []Cell    `json:"cells"`
}

type Matrix struct {
	ReferenceWeek string       `json:"reference_week"`
	Weeks         []WeekColumn `json:"weeks"`
	Rows          []MatrixRow  `json:"rows"`
}

type cellKey struct {
	member uuid.UUID
	week   weeks.Ref
}

// rank: record live menang atas REJECTED; APPROVED di atas PENDING
func rank(s contribModel.ContributionStatus) int {
	switch s {
	case contribModel.StatusApproved:
		return 3
	case contribModel.StatusPending:
		return 2
	case contribModel.StatusRejected:
		return 1
	}
	return 0
}

func cellFrom(w weeks.Ref, c *contribModel.ContributionModel) Cell {
	cell := Cell{Week: w.Key(), Status: CellNotSubmitted}
	if c == nil {
		return cell
	}
	switch c.Status {
	case contribModel.StatusApproved:
		cell.Status = CellApproved
		cell.Amount = c.Amount
	case contribModel.StatusPending:
		id := c.ID
		cell.Status = CellPendingReview
		cell.Amount = c.Amount
		cell.ContributionID = &id
		cell.ImageURL = c.ImageURL
	case contribModel.StatusRejected:
		cell.Status = CellRejected
	}
	return cell
}

func departmentOrder(d string) int {
	for i, x := range constants.Departments {
		if x == d {
			return i
		}
	}
	return len(constants.Departments)
}

// BuildMatrix proyeksi minggu × member ACTIVE (urut ban lalu nama).
func BuildMatrix(members []memberModel.MemberModel, contributions []contribModel.ContributionModel, windowSize int, ref weeks.Ref) Matrix {
	cols := weeks.Window(ref, ClampWindow(windowSize))
	inWindow := make(map[weeks.Ref]bool, len(cols))
	out := Matrix{
		ReferenceWeek: ref.Key(),
		Weeks:         make([]WeekColumn, 0, len(cols)),
		Rows:          []MatrixRow{},
	}
	for _, w := range cols {
		inWindow[w] = true
		out.Weeks = append(out.Weeks, WeekColumn{Key: w.Key(), Label: w.Label(), Year: w.Year, Number: w.Number})
	}

	best := make(map[cellKey]*contribModel.ContributionModel)
	for i := range contributions {
		c := &contributions[i]
		w := c.WeekRef()
		if !inWindow[w] {
			continue
		}
		k := cellKey{member: c.MemberID, week: w}
		if cur, ok := best[k]; !ok || rank(c.Status) > rank(cur.Status) {
			best[k] = c
		}
	}

	rows := make([]memberModel.MemberModel, 0, len(members))
	for _, m := range members {
		if m.Status == constants.MemberStatusActive {
			rows = append(rows, m)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := departmentOrder(rows[i].Department), departmentOrder(rows[j].Department)
		if di != dj {
			return di < dj
		}
		return rows[i].Name < rows[j].Name
	})

	for _, m := range rows {
		r := MatrixRow{
			MemberID:       m.ID,
			Name:           m.Name,
			Department:     m.Department,
			DepartmentName: constants.DepartmentName(m.Department),
			Cells:          make([]Cell, 0, len(cols)),
		}
		for _, w := range cols {
			r.Cells = append(r.Cells, cellFrom(w, best[cellKey{member: m.ID, week: w}]))
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}
