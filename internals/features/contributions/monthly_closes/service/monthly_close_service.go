package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/monthly_closes/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Store interface {
	Exists(ctx context.Context, month, year int) (bool, error)
	ContributionsInWeeks(ctx context.Context, year int, refs []weeks.Ref) ([]contribModel.ContributionModel, error)
	// CreateAndLock satu transaksi; sudah ada → ErrAlreadyClosed, ada pending → ErrPendingInMonth
	CreateAndLock(ctx context.Context, row *model.MonthlyCloseModel, refs []weeks.Ref) error
	List(ctx context.Context, year int) ([]model.MonthlyCloseModel, error)
}

type MemberSource interface {
	ListAll(ctx context.Context) ([]memberModel.MemberModel, error)
}

type MonthlyCloseService struct {
	Store   Store
	Members MemberSource
	Now     func() time.Time
}

func NewMonthlyCloseService(store Store, members MemberSource) *MonthlyCloseService {
	return &MonthlyCloseService{Store: store, Members: members, Now: time.Now}
}

// Summarize snapshot dari kontribusi bulan tsb
func Summarize(rows []contribModel.ContributionModel, members []memberModel.MemberModel) model.Summary {
	dept := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		dept[m.ID] = m.Department
	}
	s := model.Summary{Departments: make(map[string]int64, len(constants.Departments))}
	for _, d := range constants.Departments {
		s.Departments[d] = 0
	}
	for _, c := range rows {
		s.RecordCount++
		if c.Status != contribModel.StatusApproved {
			continue
		}
		s.ApprovedTotal += c.Amount
		if d, ok := dept[c.MemberID]; ok {
			s.Departments[d] += c.Amount
		}
	}
	return s
}

func (s *MonthlyCloseService) CloseMonth(ctx context.Context, month, year int, callerID uuid.UUID) (*model.MonthlyCloseModel, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, fmt.Errorf("periode %d/%d: %w", month, year, constants.ErrInvalidInput)
	}

	exists, err := s.Store.Exists(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%02d/%d: %w", month, year, constants.ErrAlreadyClosed)
	}

	refs := weeks.WeeksInMonth(year, time.Month(month))
	rows, err := s.Store.ContributionsInWeeks(ctx, year, refs)
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		if c.Status == contribModel.StatusPending {
			return nil, fmt.Errorf("%02d/%d: %w", month, year, constants.ErrPendingInMonth)
		}
	}

	members, err := s.Members.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(Summarize(rows, members))
	if err != nil {
		return nil, err
	}

	nums := make([]int64, 0, len(refs))
	for _, r := range refs {
		nums = append(nums, int64(r.Number))
	}
	row := &model.MonthlyCloseModel{
		ID:       uuid.New(),
		Month:    month,
		Year:     year,
		ClosedBy: callerID,
		ClosedAt: s.Now(),
		Weeks:    nums,
		Summary:  datatypes.JSON(raw),
	}
	if err := s.Store.CreateAndLock(ctx, row, refs); err != nil {
		return nil, err
	}
	log.Printf("[INFO] tutup buku %02d/%d oleh %s (%d minggu, %d kontribusi)", month, year, callerID, len(refs), len(rows))
	return row, nil
}

func (s *MonthlyCloseService) List(ctx context.Context, year int) ([]model.MonthlyCloseModel, error) {
	return s.Store.List(ctx, year)
}
