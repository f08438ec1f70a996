package service

import (
	"fmt"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/helpers/weeks"
)

const (
	MinWeeksPerSubmission = 1
	MaxWeeksPerSubmission = 4
)

// WeekSet minggu yang sudah terisi (key = weeks.Ref.Key()).
type WeekSet map[string]struct{}

// LiveWeekSet dari kontribusi PENDING/APPROVED; REJECTED tidak menempati minggu.
func LiveWeekSet(rows []model.ContributionModel) WeekSet {
	set := make(WeekSet, len(rows))
	for _, r := range rows {
		if r.IsLive() {
			set[r.WeekRef().Key()] = struct{}{}
		}
	}
	return set
}

func (s WeekSet) Has(r weeks.Ref) bool {
	_, ok := s[r.Key()]
	return ok
}

// SplitSubmission memecah satu bukti transfer menjadi beberapa kontribusi mingguan.
// Jalan maju tepat weeksRequested minggu dari start; minggu yang sudah ada dilewati
// dan tidak diganti minggu sesudahnya.
func SplitSubmission(
	memberID uuid.UUID,
	existing WeekSet,
	start weeks.Ref,
	weeksRequested int,
	imageURL string,
	amountPerWeek int64,
) ([]model.ContributionModel, error) {
	if weeksRequested < MinWeeksPerSubmission || weeksRequested > MaxWeeksPerSubmission {
		return nil, fmt.Errorf("weeks=%d: %w", weeksRequested, constants.ErrInvalidRange)
	}
	if !start.Valid() {
		return nil, fmt.Errorf("start week %s: %w", start, constants.ErrInvalidInput)
	}

	out := make([]model.ContributionModel, 0, weeksRequested)
	cur := start
	for i := 0; i < weeksRequested; i++ {
		if !existing.Has(cur) {
			out = append(out, model.ContributionModel{
				ID:         uuid.New(),
				MemberID:   memberID,
				Week:       cur.Label(),
				WeekNumber: cur.Number,
				Year:       cur.Year,
				Amount:     amountPerWeek,
				ImageURL:   imageURL,
				Status:     model.StatusPending,
			})
		}
		cur = cur.Next()
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s +%d: %w", start, weeksRequested, constants.ErrAlreadySubmitted)
	}
	return out, nil
}
