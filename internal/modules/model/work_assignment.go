package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkStatusScheduled  = "scheduled"
	WorkStatusInProgress = "in_progress"
	WorkStatusCompleted  = "completed"
	WorkStatusCancelled  = "cancelled"
)

// WorkAssignment is a task scheduled inside a relocation's temporary
// occupancy window. Start/end times are "HH:MM" within work_date.
type WorkAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RelocationID uuid.UUID `gorm:"type:uuid;not null;index:ix_work_assignments_relocation;index:ix_work_assignments_relocation_date,priority:1" json:"relocation_id"`

	Task   string  `gorm:"type:text;not null" json:"task"`
	Worker *string `gorm:"type:text" json:"worker"`
	Crew   *string `gorm:"type:text" json:"crew"`

	WorkDate  time.Time `gorm:"type:date;not null;index:ix_work_assignments_relocation_date,priority:2" json:"work_date"`
	StartTime string    `gorm:"type:text;not null" json:"start_time"`
	EndTime   string    `gorm:"type:text;not null" json:"end_time"`

	Status          string     `gorm:"type:text;not null;default:'scheduled';check:status IN ('scheduled','in_progress','completed','cancelled');index" json:"status"`
	CompletionNotes *string    `gorm:"type:text" json:"completion_notes"`
	CompletedAt     *time.Time `json:"completed_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Relocation *RoomRelocation `gorm:"foreignKey:RelocationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"relocation,omitempty"`
}

func (WorkAssignment) TableName() string { return "relocation_work_assignments" }
