package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"
)

/* =========================================================
   Ports
========================================================= */

// Store persistence kontribusi (implementasi GORM di repository).
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContributionModel, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.ContributionModel, error)
	// CreateBatch satu transaksi; unique violation → ErrAlreadySubmitted
	CreateBatch(ctx context.Context, rows []model.ContributionModel) error
	// UpdateReview update bersyarat (masih PENDING & belum dikunci), 0 row → ErrNotPending
	UpdateReview(ctx context.Context, row *model.ContributionModel) error
	DeletePending(ctx context.Context, id uuid.UUID) error
	// CountByImageURL jumlah baris (status apa pun) yang masih merujuk bukti tsb
	CountByImageURL(ctx context.Context, imageURL string) (int64, error)
}

type MemberFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*memberModel.MemberModel, error)
}

type SettingsReader interface {
	WeeklyAmount(ctx context.Context) (int64, error)
}

// Notifier email approve/reject; gagal kirim tidak membatalkan status.
type Notifier interface {
	ContributionApproved(ctx context.Context, m memberModel.MemberModel, c model.ContributionModel) error
	ContributionRejected(ctx context.Context, m memberModel.MemberModel, c model.ContributionModel) error
}

// ClosedPeriods bulan yang sudah tutup buku (monthly_closes)
type ClosedPeriods interface {
	Exists(ctx context.Context, month, year int) (bool, error)
}

// ProofRemover hapus objek bukti transfer di storage
type ProofRemover interface {
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type ContributionService struct {
	Store    Store
	Members  MemberFinder
	Settings SettingsReader
	Notifier Notifier
	Closes   ClosedPeriods // opsional; nil = tidak ada tutup buku
	Proofs   ProofRemover  // opsional; nil = bukti tidak dibersihkan
	Now      func() time.Time
}

func NewContributionService(store Store, members MemberFinder, settings SettingsReader, notifier Notifier) *ContributionService {
	return &ContributionService{
		Store:    store,
		Members:  members,
		Settings: settings,
		Notifier: notifier,
		Now:      time.Now,
	}
}

/* =========================================================
   Tutup buku
========================================================= */

// periodOf bulan tutup buku sebuah minggu: bulan dari hari pertamanya (sama dengan weeks.WeeksInMonth)
func periodOf(ref weeks.Ref) (int, int) {
	return int(ref.StartDate(time.UTC).Month()), ref.Year
}

// ensureOpen ErrLocked kalau bulan minggu tsb sudah ditutup
func (s *ContributionService) ensureOpen(ctx context.Context, ref weeks.Ref) error {
	if s.Closes == nil {
		return nil
	}
	month, year := periodOf(ref)
	closed, err := s.Closes.Exists(ctx, month, year)
	if err != nil {
		return fmt.Errorf("monthly close %02d/%d: %w", month, year, err)
	}
	if closed {
		return fmt.Errorf("%s (%02d/%d): %w", ref, month, year, constants.ErrLocked)
	}
	return nil
}

/* =========================================================
   Submit (multi-week)
========================================================= */

type SubmitInput struct {
	MemberID       uuid.UUID
	Start          weeks.Ref
	WeeksRequested int
	ImageURL       string
	PaymentOrderID *string
}

// PrepareSubmission validasi member + pecah minggu, belum menyimpan.
// Dipakai juga oleh pembayaran online.
func (s *ContributionService) PrepareSubmission(ctx context.Context, in SubmitInput) ([]model.ContributionModel, error) {
	if in.WeeksRequested < MinWeeksPerSubmission || in.WeeksRequested > MaxWeeksPerSubmission {
		return nil, fmt.Errorf("weeks=%d: %w", in.WeeksRequested, constants.ErrInvalidRange)
	}
	m, err := s.Members.FindByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}
	if m.Status != constants.MemberStatusActive {
		return nil, fmt.Errorf("member %s: %w", m.ID, constants.ErrInactiveMember)
	}

	amount, err := s.Settings.WeeklyAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("weekly amount: %w", err)
	}

	existing, err := s.Store.ListByMember(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("list member contributions: %w", err)
	}

	rows, err := SplitSubmission(in.MemberID, LiveWeekSet(existing), in.Start, in.WeeksRequested, in.ImageURL, amount)
	if err != nil {
		return nil, err
	}
	checked := map[[2]int]bool{}
	for i := range rows {
		month, year := periodOf(rows[i].WeekRef())
		if !checked[[2]int{month, year}] {
			if err := s.ensureOpen(ctx, rows[i].WeekRef()); err != nil {
				return nil, err
			}
			checked[[2]int{month, year}] = true
		}
		rows[i].PaymentOrderID = in.PaymentOrderID
	}
	return rows, nil
}

func (s *ContributionService) Submit(ctx context.Context, in SubmitInput) ([]model.ContributionModel, error) {
	if strings.TrimSpace(in.ImageURL) == "" && in.PaymentOrderID == nil {
		return nil, fmt.Errorf("proof image: %w", constants.ErrInvalidInput)
	}
	rows, err := s.PrepareSubmission(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Store.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	log.Printf("[INFO] member=%s submit %d minggu mulai %s", in.MemberID, len(rows), in.Start)
	return rows, nil
}

/* =========================================================
   Approve / Reject
========================================================= */

func (s *ContributionService) loadReviewable(ctx context.Context, id uuid.UUID) (*model.ContributionModel, error) {
	c, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsLocked {
		return nil, fmt.Errorf("contribution %s: %w", id, constants.ErrLocked)
	}
	if c.Status != model.StatusPending {
		return nil, fmt.Errorf("contribution %s is %s: %w", id, c.Status, constants.ErrNotPending)
	}
	if err := s.ensureOpen(ctx, c.WeekRef()); err != nil {
		return nil, err
	}
	return c, nil
}

// Approve PENDING → APPROVED. reviewerID nil = sistem (pembayaran online).
func (s *ContributionService) Approve(ctx context.Context, id uuid.UUID, reviewerID *uuid.UUID) (*model.ContributionModel, error) {
	c, err := s.loadReviewable(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	c.Status = model.StatusApproved
	c.RejectReason = nil
	c.ReviewedBy = reviewerID
	c.ReviewedAt = &now
	if err := s.Store.UpdateReview(ctx, c); err != nil {
		return nil, err
	}
	s.notify(ctx, *c)
	return c, nil
}

// Reject PENDING → REJECTED; alasan wajib (setelah trim).
func (s *ContributionService) Reject(ctx context.Context, id uuid.UUID, reviewerID *uuid.UUID, reason string) (*model.ContributionModel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, constants.ErrMissingReason
	}
	c, err := s.loadReviewable(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	c.Status = model.StatusRejected
	c.RejectReason = &reason
	c.ReviewedBy = reviewerID
	c.ReviewedAt = &now
	if err := s.Store.UpdateReview(ctx, c); err != nil {
		return nil, err
	}
	s.notify(ctx, *c)
	return c, nil
}

// notify best-effort setelah commit
func (s *ContributionService) notify(ctx context.Context, c model.ContributionModel) {
	if s.Notifier == nil {
		return
	}
	m, err := s.Members.FindByID(ctx, c.MemberID)
	if err != nil {
		log.Printf("[WARN] notify: member %s tidak ditemukan: %v", c.MemberID, err)
		return
	}
	switch c.Status {
	case model.StatusApproved:
		err = s.Notifier.ContributionApproved(ctx, *m, c)
	case model.StatusRejected:
		err = s.Notifier.ContributionRejected(ctx, *m, c)
	}
	if err != nil {
		log.Printf("[WARN] notify contribution=%s status=%s: %v", c.ID, c.Status, err)
	}
}

/* =========================================================
   Member side
========================================================= */

// DeletePending hanya milik sendiri, masih PENDING, belum dikunci.
func (s *ContributionService) DeletePending(ctx context.Context, callerID, id uuid.UUID) error {
	c, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.MemberID != callerID {
		return fmt.Errorf("contribution %s: %w", id, constants.ErrForbidden)
	}
	if c.IsLocked {
		return fmt.Errorf("contribution %s: %w", id, constants.ErrLocked)
	}
	if c.Status != model.StatusPending {
		return fmt.Errorf("contribution %s: %w", id, constants.ErrNotPending)
	}
	if err := s.ensureOpen(ctx, c.WeekRef()); err != nil {
		return err
	}
	if err := s.Store.DeletePending(ctx, id); err != nil {
		return err
	}
	s.cleanupProof(ctx, c.ImageURL)
	return nil
}

// cleanupProof best-effort: hapus objek bukti kalau sudah tidak dirujuk baris mana pun
func (s *ContributionService) cleanupProof(ctx context.Context, imageURL string) {
	if s.Proofs == nil || strings.TrimSpace(imageURL) == "" {
		return
	}
	n, err := s.Store.CountByImageURL(ctx, imageURL)
	if err != nil {
		log.Printf("[WARN] cek rujukan bukti %s: %v", imageURL, err)
		return
	}
	if n > 0 {
		return
	}
	if err := s.Proofs.DeleteByPublicURL(ctx, imageURL); err != nil {
		log.Printf("[WARN] gagal hapus bukti %s: %v", imageURL, err)
	}
}

type WeekStatus struct {
	CurrentWeek   weeks.Ref `json:"current_week"`
	CurrentLabel  string    `json:"current_label"`
	CurrentStatus string    `json:"current_status"` // APPROVED | PENDING | NOT_SUBMITTED
	SubmittedWeek []string  `json:"submitted_weeks"`
	NextOpenWeek  weeks.Ref `json:"next_open_week"`
}

// MyWeekStatus status minggu berjalan + label minggu live tahun ini.
func (s *ContributionService) MyWeekStatus(ctx context.Context, memberID uuid.UUID, current weeks.Ref) (*WeekStatus, error) {
	rows, err := s.Store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := &WeekStatus{
		CurrentWeek:   current,
		CurrentLabel:  current.Label(),
		CurrentStatus: "NOT_SUBMITTED",
		SubmittedWeek: []string{},
	}
	nums := make([]int, 0, len(rows))
	for _, r := range rows {
		if !r.IsLive() {
			continue
		}
		if r.Year == current.Year {
			nums = append(nums, r.WeekNumber)
		}
		if r.WeekRef() == current {
			out.CurrentStatus = string(r.Status)
		}
	}
	sort.Ints(nums)
	for _, n := range nums {
		out.SubmittedWeek = append(out.SubmittedWeek, weeks.Ref{Year: current.Year, Number: n}.Label())
	}
	live := LiveWeekSet(rows)
	next := current
	for i := 0; i < 60 && live.Has(next); i++ {
		next = next.Next()
	}
	out.NextOpenWeek = next
	return out, nil
}
