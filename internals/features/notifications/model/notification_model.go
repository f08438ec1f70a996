package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	NotificationSent   = "SENT"
	NotificationFailed = "FAILED"
)

// NotificationModel log email transaksional yang dikirim ke member
type NotificationModel struct {
	NotificationID        uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationMemberID  *uuid.UUID     `gorm:"column:notification_member_id;type:uuid;index" json:"notification_member_id"`
	NotificationEmail     string         `gorm:"column:notification_email;type:varchar(191);not null" json:"notification_email"`
	NotificationTemplate  string         `gorm:"column:notification_template;type:varchar(60);not null" json:"notification_template"`
	NotificationSubject   string         `gorm:"column:notification_subject;type:varchar(255)" json:"notification_subject"`
	NotificationStatus    string         `gorm:"column:notification_status;type:varchar(10);not null" json:"notification_status"`
	NotificationError     *string        `gorm:"column:notification_error;type:text" json:"notification_error,omitempty"`
	NotificationTags      pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
