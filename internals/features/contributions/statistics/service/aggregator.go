package service

import (
	"math"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/google/uuid"
)

const TrendWeeks = 4

type TrendPoint struct {
	Week   string `json:"week"`
	Label  string `json:"label"`
	Year   int    `json:"year"`
	Number int    `json:"number"`
	Amount int64  `json:"amount"`
}

type DepartmentStat struct {
	Department     string `json:"department"`
	Name           string `json:"name"`
	ApprovedAmount int64  `json:"approved_amount"`
	PendingCount   int    `json:"pending_count"`
	MemberCount    int    `json:"member_count"`
}

type Snapshot struct {
	ReferenceWeek      string           `json:"reference_week"`
	TotalApprovedFunds int64            `json:"total_approved_funds"`
	PendingThisWeek    int              `json:"pending_this_week"`
	TotalPending       int              `json:"total_pending"`
	CompletionRate     int              `json:"completion_rate"`
	ActiveMembers      int              `json:"active_members"`
	WeeklyTrends       []TrendPoint     `json:"weekly_trends"`
	Departments        []DepartmentStat `json:"departments"`
}

func isActiveMember(m memberModel.MemberModel) bool {
	return m.Role == constants.RoleMember && m.Status == constants.MemberStatusActive
}

// ComputeStatistics murni: input sama → output sama.
func ComputeStatistics(contributions []contribModel.ContributionModel, members []memberModel.MemberModel, ref weeks.Ref) Snapshot {
	out := Snapshot{ReferenceWeek: ref.Key()}

	trendWeeks := weeks.Window(ref, TrendWeeks)
	trendIdx := make(map[weeks.Ref]int, len(trendWeeks))
	out.WeeklyTrends = make([]TrendPoint, len(trendWeeks))
	for i, w := range trendWeeks {
		trendIdx[w] = i
		out.WeeklyTrends[i] = TrendPoint{Week: w.Key(), Label: w.Label(), Year: w.Year, Number: w.Number}
	}

	deptOf := make(map[uuid.UUID]string, len(members))
	deptIdx := make(map[string]int, len(constants.Departments))
	out.Departments = make([]DepartmentStat, len(constants.Departments))
	for i, d := range constants.Departments {
		deptIdx[d] = i
		out.Departments[i] = DepartmentStat{Department: d, Name: constants.DepartmentName(d)}
	}

	eligible := make(map[uuid.UUID]bool)
	for _, m := range members {
		deptOf[m.ID] = m.Department
		if m.Status == constants.MemberStatusActive {
			if i, ok := deptIdx[m.Department]; ok {
				out.Departments[i].MemberCount++
			}
		}
		if isActiveMember(m) {
			eligible[m.ID] = true
		}
	}
	out.ActiveMembers = len(eligible)

	covered := make(map[uuid.UUID]bool)
	for _, c := range contributions {
		w := c.WeekRef()
		di, hasDept := deptIdx[deptOf[c.MemberID]]

		switch c.Status {
		case contribModel.StatusApproved:
			out.TotalApprovedFunds += c.Amount
			if i, ok := trendIdx[w]; ok {
				out.WeeklyTrends[i].Amount += c.Amount
			}
			if hasDept {
				out.Departments[di].ApprovedAmount += c.Amount
			}
		case contribModel.StatusPending:
			out.TotalPending++
			if w == ref {
				out.PendingThisWeek++
			}
			if hasDept {
				out.Departments[di].PendingCount++
			}
		}

		if c.IsLive() && w == ref && eligible[c.MemberID] {
			covered[c.MemberID] = true
		}
	}

	out.CompletionRate = completionRate(len(covered), len(eligible))
	return out
}

func completionRate(covered, total int) int {
	if total <= 0 {
		return 0
	}
	rate := int(math.Round(100 * float64(covered) / float64(total)))
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
