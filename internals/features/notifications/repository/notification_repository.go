package repository

import (
	"context"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/notifications/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

type ListFilter struct {
	Template string
	Status   string
	Limit    int
	Offset   int
}

func (r *NotificationRepository) List(ctx context.Context, f ListFilter) ([]model.NotificationModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.NotificationModel{})
	if f.Template != "" {
		q = q.Where("notification_template = ?", f.Template)
	}
	if f.Status != "" {
		q = q.Where("notification_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ReminderRecipients member ACTIVE yang belum punya kontribusi live (PENDING/APPROVED) di minggu tsb
func (r *NotificationRepository) ReminderRecipients(ctx context.Context, week weeks.Ref) ([]memberModel.MemberModel, error) {
	var members []memberModel.MemberModel
	err := r.DB.WithContext(ctx).
		Where("member_status = ?", constants.MemberStatusActive).
		Where(`NOT EXISTS (
			SELECT 1 FROM contributions c
			WHERE c.contribution_member_id = members.member_id
			  AND c.contribution_year = ?
			  AND c.contribution_week_number = ?
			  AND c.contribution_status <> 'REJECTED'
		)`, week.Year, week.Number).
		Order("member_department ASC, member_name ASC").
		Find(&members).Error
	return members, err
}
