package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
)

const (
	NotificationTypeRelocation     = "relocation_status"
	NotificationTypeScheduleChange = "schedule_change"
)

type Notification struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Type    string `gorm:"type:text;not null" json:"type"`
	Title   string `gorm:"type:text;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"type:text;not null;default:'pending';check:status IN ('pending','sent');index" json:"status"`

	RelocationID *uuid.UUID `gorm:"type:uuid;index" json:"relocation_id"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`

	Relocation *RoomRelocation `gorm:"foreignKey:RelocationID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"relocation,omitempty"`
}

func (Notification) TableName() string { return "notifications" }
