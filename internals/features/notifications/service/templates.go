package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

const (
	TplContributionApproved = "contribution_approved"
	TplContributionRejected = "contribution_rejected"
	TplApplicationApproved  = "application_approved"
	TplWeeklyReminder       = "weekly_reminder"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var mailSubjects = map[string]string{
	TplContributionApproved: "[%s] Đóng góp %s đã được duyệt",
	TplContributionRejected: "[%s] Đóng góp %s bị từ chối",
	TplApplicationApproved:  "[%s] Chào mừng bạn gia nhập CLB",
	TplWeeklyReminder:       "[%s] Nhắc nộp quỹ %s",
}

// MailData data untuk semua template email
type MailData struct {
	ClubName       string
	MemberName     string
	WeekLabel      string
	WeekNumber     int
	Year           int
	DepartmentName string
	Amount         string
	Reason         string
	BankName       string
	BankAccount    string
	AccountOwner   string
}

func (d MailData) subject(name string) string {
	format, ok := mailSubjects[name]
	if !ok {
		return d.ClubName
	}
	if strings.Count(format, "%s") == 1 {
		return fmt.Sprintf(format, d.ClubName)
	}
	return fmt.Sprintf(format, d.ClubName, d.WeekLabel)
}

// Render → (subject, html)
func Render(name string, data MailData) (string, string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", name, err)
	}
	return data.subject(name), buf.String(), nil
}

// FormatAmount 50000 → "50.000 ₫"
func FormatAmount(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}

	out := b.String() + " ₫"
	if neg {
		return "-" + out
	}
	return out
}
