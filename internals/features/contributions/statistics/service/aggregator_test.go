package service

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"
)

func mkMember(name, dept, role, status string) memberModel.MemberModel {
	return memberModel.MemberModel{ID: uuid.New(), Name: name, Department: dept, Role: role, Status: status}
}

func mkContribution(memberID uuid.UUID, w weeks.Ref, status contribModel.ContributionStatus, amount int64) contribModel.ContributionModel {
	return contribModel.ContributionModel{
		ID:         uuid.New(),
		MemberID:   memberID,
		Week:       w.Label(),
		WeekNumber: w.Number,
		Year:       w.Year,
		Amount:     amount,
		Status:     status,
	}
}

func TestComputeStatistics_TotalApproved(t *testing.T) {
	m := mkMember("An", constants.DepartmentSinging, constants.RoleMember, constants.MemberStatusActive)
	ref := weeks.Ref{Year: 2026, Number: 10}
	rows := []contribModel.ContributionModel{
		mkContribution(m.ID, weeks.Ref{Year: 2026, Number: 8}, contribModel.StatusApproved, 100),
		mkContribution(m.ID, weeks.Ref{Year: 2026, Number: 9}, contribModel.StatusPending, 50),
		mkContribution(m.ID, weeks.Ref{Year: 2026, Number: 10}, contribModel.StatusApproved, 200),
	}

	s := ComputeStatistics(rows, []memberModel.MemberModel{m}, ref)
	if s.TotalApprovedFunds != 300 {
		t.Fatalf("total approved = %d, want 300", s.TotalApprovedFunds)
	}
	if s.TotalPending != 1 || s.PendingThisWeek != 0 {
		t.Errorf("pending total=%d this week=%d, want 1/0", s.TotalPending, s.PendingThisWeek)
	}
	if s.CompletionRate != 100 {
		t.Errorf("completion = %d, want 100", s.CompletionRate)
	}
}

func TestComputeStatistics_CompletionRate(t *testing.T) {
	ref := weeks.Ref{Year: 2026, Number: 5}

	if got := ComputeStatistics(nil, nil, ref).CompletionRate; got != 0 {
		t.Fatalf("no members: completion = %d, want 0", got)
	}

	a := mkMember("An", constants.DepartmentDance, constants.RoleMember, constants.MemberStatusActive)
	b := mkMember("Bình", constants.DepartmentDance, constants.RoleMember, constants.MemberStatusActive)
	c := mkMember("Chi", constants.DepartmentRap, constants.RoleMember, constants.MemberStatusActive)
	admin := mkMember("Dũng", constants.DepartmentRap, constants.RoleAdmin, constants.MemberStatusActive)
	pending := mkMember("Em", constants.DepartmentRap, constants.RoleMember, constants.MemberStatusPending)
	members := []memberModel.MemberModel{a, b, c, admin, pending}

	rows := []contribModel.ContributionModel{
		mkContribution(a.ID, ref, contribModel.StatusApproved, 50000),
		mkContribution(b.ID, ref, contribModel.StatusRejected, 50000),
		mkContribution(admin.ID, ref, contribModel.StatusApproved, 50000),
		mkContribution(pending.ID, ref, contribModel.StatusPending, 50000),
		// duplikat (live) tidak dihitung dua kali
		mkContribution(a.ID, ref, contribModel.StatusPending, 50000),
	}

	s := ComputeStatistics(rows, members, ref)
	// 1 dari 3 member aktif → 33
	if s.CompletionRate != 33 {
		t.Fatalf("completion = %d, want 33", s.CompletionRate)
	}
	if s.CompletionRate < 0 || s.CompletionRate > 100 {
		t.Fatalf("completion out of range: %d", s.CompletionRate)
	}
	if s.ActiveMembers != 3 {
		t.Errorf("active members = %d, want 3", s.ActiveMembers)
	}
	if s.PendingThisWeek != 2 {
		t.Errorf("pending this week = %d, want 2", s.PendingThisWeek)
	}
}

func TestComputeStatistics_TrendsAcrossYear(t *testing.T) {
	ref := weeks.Ref{Year: 2026, Number: 1}
	m := mkMember("An", constants.DepartmentSinging, constants.RoleMember, constants.MemberStatusActive)
	last := weeks.LastWeek(2025)

	rows := []contribModel.ContributionModel{
		mkContribution(m.ID, weeks.Ref{Year: 2025, Number: last}, contribModel.StatusApproved, 70),
		mkContribution(m.ID, ref, contribModel.StatusApproved, 30),
		mkContribution(m.ID, weeks.Ref{Year: 2025, Number: last - 10}, contribModel.StatusApproved, 999),
	}
	s := ComputeStatistics(rows, []memberModel.MemberModel{m}, ref)

	if len(s.WeeklyTrends) != 4 {
		t.Fatalf("trends len = %d, want 4", len(s.WeeklyTrends))
	}
	first, end := s.WeeklyTrends[0], s.WeeklyTrends[3]
	if first.Year != 2025 || first.Number != last-2 {
		t.Errorf("first trend = %d/%d, want 2025/%d", first.Year, first.Number, last-2)
	}
	if end.Year != ref.Year || end.Number != ref.Number {
		t.Errorf("last trend = %d/%d, want %v", end.Year, end.Number, ref)
	}
	if s.WeeklyTrends[2].Amount != 70 || end.Amount != 30 {
		t.Errorf("unexpected trend amounts: %+v", s.WeeklyTrends)
	}
}

func TestComputeStatistics_Departments(t *testing.T) {
	ref := weeks.Ref{Year: 2026, Number: 12}
	rap := mkMember("An", constants.DepartmentRap, constants.RoleMember, constants.MemberStatusActive)
	dance := mkMember("Bình", constants.DepartmentDance, constants.RoleMember, constants.MemberStatusActive)
	rows := []contribModel.ContributionModel{
		mkContribution(rap.ID, ref, contribModel.StatusApproved, 40),
		mkContribution(dance.ID, ref, contribModel.StatusPending, 40),
	}
	s := ComputeStatistics(rows, []memberModel.MemberModel{rap, dance}, ref)

	var order []string
	for _, d := range s.Departments {
		order = append(order, d.Department)
	}
	if !reflect.DeepEqual(order, constants.Departments) {
		t.Fatalf("department order = %v", order)
	}
	if s.Departments[2].ApprovedAmount != 40 || s.Departments[2].MemberCount != 1 {
		t.Errorf("rap = %+v", s.Departments[2])
	}
	if s.Departments[1].PendingCount != 1 {
		t.Errorf("dance = %+v", s.Departments[1])
	}
}

func TestComputeStatistics_Deterministic(t *testing.T) {
	ref := weeks.Ref{Year: 2026, Number: 20}
	a := mkMember("An", constants.DepartmentSinging, constants.RoleMember, constants.MemberStatusActive)
	b := mkMember("Bình", constants.DepartmentInstrument, constants.RoleMember, constants.MemberStatusActive)
	rows := []contribModel.ContributionModel{
		mkContribution(a.ID, ref, contribModel.StatusApproved, 10),
		mkContribution(b.ID, ref.Prev(), contribModel.StatusPending, 20),
		mkContribution(b.ID, ref, contribModel.StatusRejected, 20),
	}
	members := []memberModel.MemberModel{a, b}

	first := ComputeStatistics(rows, members, ref)
	second := ComputeStatistics(rows, members, ref)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("not deterministic:\n%+v\n%+v", first, second)
	}
}
