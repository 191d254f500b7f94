package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ScheduleChangeStatusScheduled = "scheduled"
	ScheduleChangeStatusActive    = "active"
	ScheduleChangeStatusCompleted = "completed"
	ScheduleChangeStatusCancelled = "cancelled"
)

// ScheduleChange records a court part's temporary reassignment. Its
// status mirrors the parent relocation and is kept in sync by the
// relocation transition cascade.
type ScheduleChange struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RelocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"relocation_id"`

	OriginalCourtPart   string `gorm:"type:text;not null" json:"original_court_part"`
	TemporaryAssignment string `gorm:"type:text;not null" json:"temporary_assignment"`

	Status    string     `gorm:"type:text;not null;default:'scheduled';check:status IN ('scheduled','active','completed','cancelled');index" json:"status"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Relocation *RoomRelocation `gorm:"foreignKey:RelocationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"relocation,omitempty"`
}

func (ScheduleChange) TableName() string { return "schedule_changes" }
