package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
)

func fixture() ([]memberModel.MemberModel, []contribModel.ContributionModel) {
	an := memberModel.MemberModel{ID: uuid.New(), Name: "An", Email: "an@club.vn", Department: constants.DepartmentSinging, Role: constants.RoleMember, Status: constants.MemberStatusActive}
	binh := memberModel.MemberModel{ID: uuid.New(), Name: "Bình", Email: "binh@club.vn", Department: constants.DepartmentRap, Role: constants.RoleMember, Status: constants.MemberStatusActive}

	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	reason := "Sai số tiền"
	rows := []contribModel.ContributionModel{
		// Tuần 5/2026 mulai 25 Jan → Januari
		{ID: uuid.New(), MemberID: an.ID, Year: 2026, WeekNumber: 5, Week: "Tuần 5", Amount: 50000, Status: contribModel.StatusApproved, CreatedAt: base},
		// Tuần 6/2026 mulai 1 Feb → Februari
		{ID: uuid.New(), MemberID: an.ID, Year: 2026, WeekNumber: 6, Week: "Tuần 6", Amount: 50000, Status: contribModel.StatusPending, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), MemberID: binh.ID, Year: 2026, WeekNumber: 6, Week: "Tuần 6", Amount: 50000, Status: contribModel.StatusRejected, RejectReason: &reason, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), MemberID: binh.ID, Year: 2026, WeekNumber: 1, Week: "Tuần 1", Amount: 50000, Status: contribModel.StatusApproved, CreatedAt: base.Add(-time.Hour)},
	}
	return []memberModel.MemberModel{an, binh}, rows
}

func TestBuildReport(t *testing.T) {
	members, rows := fixture()
	r := BuildReport(members, rows, time.UTC)

	if r.TotalApproved != 100000 {
		t.Fatalf("total approved = %d, want 100000", r.TotalApproved)
	}

	if len(r.Details) != 4 {
		t.Fatalf("details = %d, want 4", len(r.Details))
	}
	for i := 1; i < len(r.Details); i++ {
		if r.Details[i].CreatedAt.After(r.Details[i-1].CreatedAt) {
			t.Fatalf("details not newest first at %d", i)
		}
	}
	if r.Details[1].RejectReason != "Sai số tiền" || r.Details[1].MemberName != "Bình" {
		t.Errorf("unexpected second detail row: %+v", r.Details[1])
	}

	if len(r.Monthly) != 2 {
		t.Fatalf("monthly = %+v", r.Monthly)
	}
	jan, feb := r.Monthly[0], r.Monthly[1]
	if jan.Month != 1 || jan.ApprovedTotal != 100000 || jan.ApprovedCount != 2 {
		t.Errorf("january = %+v", jan)
	}
	if feb.Month != 2 || feb.PendingCount != 1 || feb.RejectedCount != 1 || feb.ApprovedTotal != 0 {
		t.Errorf("february = %+v", feb)
	}

	singing, rap := r.Departments[0], r.Departments[2]
	if singing.ApprovedTotal != 50000 || singing.RecordCount != 2 || singing.MemberCount != 1 {
		t.Errorf("singing = %+v", singing)
	}
	if rap.ApprovedTotal != 50000 || rap.RecordCount != 2 {
		t.Errorf("rap = %+v", rap)
	}
}

func TestWriteWorkbook(t *testing.T) {
	members, rows := fixture()
	data, err := WriteWorkbook(BuildReport(members, rows, time.UTC))
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetDetails || sheets[1] != SheetSummary {
		t.Fatalf("sheets = %v", sheets)
	}

	detail, err := f.GetRows(SheetDetails)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail) != 5 {
		t.Fatalf("detail rows = %d, want header + 4", len(detail))
	}
	if detail[0][0] != "Thành viên" || detail[1][0] != "An" {
		t.Errorf("unexpected detail rows: %v", detail[:2])
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatal(err)
	}
	if summary[0][0] != "Theo tháng" || summary[2][0] != "01/2026" || summary[3][0] != "02/2026" {
		t.Errorf("unexpected monthly table: %v", summary[:4])
	}
}
