package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetDetails = "Chi tiết"
	SheetSummary = "Tổng hợp"
)

var detailHeader = []any{"Thành viên", "Email", "Ban", "Tuần", "Năm", "Số tiền", "Trạng thái", "Lý do từ chối", "Ngày gửi"}

var statusLabel = map[string]string{
	"APPROVED": "Đã duyệt",
	"PENDING":  "Chờ duyệt",
	"REJECTED": "Từ chối",
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// WriteWorkbook encode laporan ke xlsx (2 sheet).
func WriteWorkbook(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetDetails); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, err
	}

	/* ---------- Chi tiết ---------- */
	if err := f.SetSheetRow(SheetDetails, "A1", &detailHeader); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetDetails, "A1", cell(len(detailHeader), 1), bold)
	for i, d := range r.Details {
		status := statusLabel[d.Status]
		if status == "" {
			status = d.Status
		}
		row := []any{
			d.MemberName, d.MemberEmail, d.DepartmentName, d.Week, d.Year,
			d.Amount, status, d.RejectReason, d.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(SheetDetails, cell(1, i+2), &row); err != nil {
			return nil, err
		}
	}
	if n := len(r.Details); n > 0 {
		_ = f.SetCellStyle(SheetDetails, cell(6, 2), cell(6, n+1), money)
	}
	_ = f.SetColWidth(SheetDetails, "A", "B", 26)
	_ = f.SetColWidth(SheetDetails, "C", "I", 14)

	/* ---------- Tổng hợp: bulan lalu ban ---------- */
	rowNo := 1
	_ = f.SetCellValue(SheetSummary, cell(1, rowNo), "Theo tháng")
	_ = f.SetCellStyle(SheetSummary, cell(1, rowNo), cell(1, rowNo), bold)
	rowNo++
	monthHeader := []any{"Tháng", "Tổng đã duyệt", "Số khoản duyệt", "Chờ duyệt", "Từ chối"}
	if err := f.SetSheetRow(SheetSummary, cell(1, rowNo), &monthHeader); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSummary, cell(1, rowNo), cell(len(monthHeader), rowNo), bold)
	for _, m := range r.Monthly {
		rowNo++
		row := []any{m.Label, m.ApprovedTotal, m.ApprovedCount, m.PendingCount, m.RejectedCount}
		if err := f.SetSheetRow(SheetSummary, cell(1, rowNo), &row); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(SheetSummary, cell(2, rowNo), cell(2, rowNo), money)
	}

	rowNo += 2
	_ = f.SetCellValue(SheetSummary, cell(1, rowNo), "Theo ban")
	_ = f.SetCellStyle(SheetSummary, cell(1, rowNo), cell(1, rowNo), bold)
	rowNo++
	deptHeader := []any{"Ban", "Tổng đã duyệt", "Số khoản", "Thành viên"}
	if err := f.SetSheetRow(SheetSummary, cell(1, rowNo), &deptHeader); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSummary, cell(1, rowNo), cell(len(deptHeader), rowNo), bold)
	for _, d := range r.Departments {
		rowNo++
		row := []any{d.Name, d.ApprovedTotal, d.RecordCount, d.MemberCount}
		if err := f.SetSheetRow(SheetSummary, cell(1, rowNo), &row); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(SheetSummary, cell(2, rowNo), cell(2, rowNo), money)
	}

	rowNo += 2
	_ = f.SetCellValue(SheetSummary, cell(1, rowNo), "Tổng quỹ")
	_ = f.SetCellValue(SheetSummary, cell(2, rowNo), r.TotalApproved)
	_ = f.SetCellStyle(SheetSummary, cell(1, rowNo), cell(2, rowNo), bold)
	_ = f.SetColWidth(SheetSummary, "A", "A", 20)
	_ = f.SetColWidth(SheetSummary, "B", "E", 16)

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
