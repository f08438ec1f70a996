package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/notifications/model"
	settingsModel "clubfund_backend/internals/features/settings/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/google/uuid"
)

const DefaultReminderDelay = 100 * time.Millisecond

type SettingsReader interface {
	Get(ctx context.Context) (*settingsModel.SettingsModel, error)
}

// RecipientFinder member ACTIVE tanpa kontribusi live di minggu tsb
type RecipientFinder interface {
	ReminderRecipients(ctx context.Context, week weeks.Ref) ([]memberModel.MemberModel, error)
}

// LogStore opsional (nil → tidak dicatat)
type LogStore interface {
	Create(ctx context.Context, n *model.NotificationModel) error
}

type NotificationService struct {
	Mailer     Mailer
	Settings   SettingsReader
	Recipients RecipientFinder
	Logs       LogStore
	Delay      time.Duration
	Sleep      func(time.Duration)
}

func NewNotificationService(m Mailer, s SettingsReader, r RecipientFinder, logs LogStore, delay time.Duration) *NotificationService {
	if m == nil {
		m = DisabledMailer{}
	}
	return &NotificationService{
		Mailer:     m,
		Settings:   s,
		Recipients: r,
		Logs:       logs,
		Delay:      delay,
		Sleep:      time.Sleep,
	}
}

func (s *NotificationService) baseData(ctx context.Context, m memberModel.MemberModel) MailData {
	d := MailData{
		ClubName:       settingsModel.DefaultClubName,
		MemberName:     m.Name,
		DepartmentName: constants.DepartmentName(m.Department),
		Amount:         FormatAmount(settingsModel.DefaultWeeklyAmount),
	}
	if s.Settings == nil {
		return d
	}
	st, err := s.Settings.Get(ctx)
	if err != nil {
		log.Printf("[MAIL] gagal baca settings: %v", err)
		return d
	}
	if st.ClubName != "" {
		d.ClubName = st.ClubName
	}
	if st.WeeklyAmount > 0 {
		d.Amount = FormatAmount(st.WeeklyAmount)
	}
	d.BankName = st.BankName
	d.BankAccount = st.BankAccount
	d.AccountOwner = st.AccountOwner
	return d
}

func withContribution(d MailData, c contribModel.ContributionModel) MailData {
	ref := c.WeekRef()
	d.WeekLabel = ref.Label()
	d.WeekNumber = ref.Number
	d.Year = ref.Year
	d.Amount = FormatAmount(c.Amount)
	if c.RejectReason != nil {
		d.Reason = *c.RejectReason
	}
	return d
}

func (s *NotificationService) send(ctx context.Context, m memberModel.MemberModel, tpl string, data MailData, tags ...string) error {
	subject, body, err := Render(tpl, data)
	if err != nil {
		return err
	}
	sendErr := s.Mailer.Send(ctx, Message{
		To:      m.Email,
		ToName:  m.Name,
		Subject: subject,
		HTML:    body,
	})
	s.record(ctx, m, tpl, subject, sendErr, tags)
	if sendErr != nil {
		return fmt.Errorf("kirim %s ke %s: %w", tpl, m.Email, sendErr)
	}
	return nil
}

func (s *NotificationService) record(ctx context.Context, m memberModel.MemberModel, tpl, subject string, sendErr error, tags []string) {
	if s.Logs == nil {
		return
	}
	row := &model.NotificationModel{
		NotificationEmail:    m.Email,
		NotificationTemplate: tpl,
		NotificationSubject:  subject,
		NotificationStatus:   model.NotificationSent,
		NotificationTags:     tags,
	}
	if m.ID != uuid.Nil {
		id := m.ID
		row.NotificationMemberID = &id
	}
	if sendErr != nil {
		msg := sendErr.Error()
		row.NotificationStatus = model.NotificationFailed
		row.NotificationError = &msg
	}
	if err := s.Logs.Create(ctx, row); err != nil {
		log.Printf("[MAIL] gagal simpan log notifikasi: %v", err)
	}
}

/* =========================================================
   Transaksional
========================================================= */

func (s *NotificationService) ContributionApproved(ctx context.Context, m memberModel.MemberModel, c contribModel.ContributionModel) error {
	data := withContribution(s.baseData(ctx, m), c)
	return s.send(ctx, m, TplContributionApproved, data, "week:"+c.WeekRef().Key())
}

func (s *NotificationService) ContributionRejected(ctx context.Context, m memberModel.MemberModel, c contribModel.ContributionModel) error {
	data := withContribution(s.baseData(ctx, m), c)
	return s.send(ctx, m, TplContributionRejected, data, "week:"+c.WeekRef().Key())
}

func (s *NotificationService) ApplicationApproved(ctx context.Context, m memberModel.MemberModel) error {
	return s.send(ctx, m, TplApplicationApproved, s.baseData(ctx, m))
}

/* =========================================================
   Bulk reminder
========================================================= */

type BulkFailure struct {
	MemberID uuid.UUID `json:"member_id"`
	Email    string    `json:"email"`
	Error    string    `json:"error"`
}

type BulkResult struct {
	Week     string        `json:"week"`
	Sent     int           `json:"sent"`
	Total    int           `json:"total"`
	Failures []BulkFailure `json:"failures"`
}

// SendBulkReminder kirim berurutan dengan jeda tetap; gagal per penerima dikumpulkan.
func (s *NotificationService) SendBulkReminder(ctx context.Context, week weeks.Ref) (*BulkResult, error) {
	if !week.Valid() {
		return nil, fmt.Errorf("minggu %s: %w", week.Key(), constants.ErrInvalidInput)
	}
	if s.Recipients == nil {
		return nil, errors.New("penerima reminder tidak tersedia")
	}
	recipients, err := s.Recipients.ReminderRecipients(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("ambil penerima reminder: %w", err)
	}

	res := &BulkResult{
		Week:     week.Key(),
		Total:    len(recipients),
		Failures: []BulkFailure{},
	}
	for i, m := range recipients {
		if i > 0 && s.Delay > 0 && s.Sleep != nil {
			s.Sleep(s.Delay)
		}
		data := s.baseData(ctx, m)
		data.WeekLabel = week.Label()
		data.WeekNumber = week.Number
		data.Year = week.Year

		if err := s.send(ctx, m, TplWeeklyReminder, data, "week:"+week.Key(), "reminder"); err != nil {
			res.Failures = append(res.Failures, BulkFailure{
				MemberID: m.ID,
				Email:    m.Email,
				Error:    err.Error(),
			})
			continue
		}
		res.Sent++
	}

	log.Printf("[REMINDER] %s: terkirim %d/%d", week.Key(), res.Sent, res.Total)
	return res, nil
}
