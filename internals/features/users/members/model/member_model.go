package model

import (
	"time"

	"github.com/google/uuid"
)

type MemberModel struct {
	ID         uuid.UUID `gorm:"column:member_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	Name       string    `gorm:"column:member_name;size:120;not null" json:"member_name"`
	Email      string    `gorm:"column:member_email;size:191;not null;uniqueIndex:uq_members_email" json:"member_email"`
	Password   *string   `gorm:"column:member_password" json:"-"`
	GoogleID   *string   `gorm:"column:member_google_id;size:64;uniqueIndex:uq_members_google_id" json:"-"`
	Department string    `gorm:"column:member_department;size:20;not null;default:SINGING;index" json:"member_department"`
	Role       string    `gorm:"column:member_role;size:20;not null;default:MEMBER" json:"member_role"`
	Status     string    `gorm:"column:member_status;size:20;not null;default:PENDING;index" json:"member_status"`
	AvatarURL  *string   `gorm:"column:member_avatar_url" json:"member_avatar_url,omitempty"`
	Bio        *string   `gorm:"column:member_bio;size:500" json:"member_bio,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MemberModel) TableName() string {
	return "members"
}
