package dto

import (
	"time"

	"clubfund_backend/internals/features/notifications/model"

	"github.com/google/uuid"
)

// SendReminderRequest kosong → minggu berjalan
type SendReminderRequest struct {
	WeekNumber int `json:"week_number" validate:"omitempty,min=1,max=54"`
	Year       int `json:"year" validate:"omitempty,min=2000,max=2100"`
}

type NotificationResponse struct {
	ID        uuid.UUID  `json:"notification_id"`
	MemberID  *uuid.UUID `json:"notification_member_id,omitempty"`
	Email     string     `json:"notification_email"`
	Template  string     `json:"notification_template"`
	Subject   string     `json:"notification_subject"`
	Status    string     `json:"notification_status"`
	Error     *string    `json:"notification_error,omitempty"`
	Tags      []string   `json:"notification_tags"`
	CreatedAt time.Time  `json:"notification_created_at"`
}

func ToNotificationResponse(m model.NotificationModel) NotificationResponse {
	tags := []string(m.NotificationTags)
	if tags == nil {
		tags = []string{}
	}
	return NotificationResponse{
		ID:        m.NotificationID,
		MemberID:  m.NotificationMemberID,
		Email:     m.NotificationEmail,
		Template:  m.NotificationTemplate,
		Subject:   m.NotificationSubject,
		Status:    m.NotificationStatus,
		Error:     m.NotificationError,
		Tags:      tags,
		CreatedAt: m.NotificationCreatedAt,
	}
}

func ToNotificationResponses(rows []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToNotificationResponse(r))
	}
	return out
}
