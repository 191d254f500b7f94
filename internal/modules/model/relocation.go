package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RelocationStatusScheduled = "scheduled"
	RelocationStatusActive    = "active"
	RelocationStatusCompleted = "completed"
	RelocationStatusCancelled = "cancelled"
)

const (
	RelocationTypeEmergency    = "emergency"
	RelocationTypeMaintenance  = "maintenance"
	RelocationTypeConstruction = "construction"
	RelocationTypeOther        = "other"
)

// RoomRelocation temporarily moves a courtroom's function into another
// physical room. Its children are normalized rows, not an embedded
// metadata blob, so availability queries can filter server-side.
type RoomRelocation struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OriginalRoomID  uuid.UUID `gorm:"type:uuid;not null;index" json:"original_room_id"`
	TemporaryRoomID uuid.UUID `gorm:"type:uuid;not null;index" json:"temporary_room_id"`

	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date"`
	ActualEndDate *time.Time `gorm:"type:date" json:"actual_end_date"`

	Status         string  `gorm:"type:text;not null;default:'scheduled';check:status IN ('scheduled','active','completed','cancelled');index" json:"status"`
	RelocationType string  `gorm:"type:text;not null;default:'maintenance';check:relocation_type IN ('emergency','maintenance','construction','other')" json:"relocation_type"`
	Reason         *string `gorm:"type:text" json:"reason"`

	TermID *uuid.UUID `gorm:"type:uuid;index" json:"term_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	OriginalRoom  *Room      `gorm:"foreignKey:OriginalRoomID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"original_room,omitempty"`
	TemporaryRoom *Room      `gorm:"foreignKey:TemporaryRoomID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"temporary_room,omitempty"`
	Term          *CourtTerm `gorm:"foreignKey:TermID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"term,omitempty"`

	WorkAssignments []WorkAssignment `gorm:"foreignKey:RelocationID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"work_assignments,omitempty"`
	CourtSessions   []CourtSession   `gorm:"foreignKey:RelocationID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"court_sessions,omitempty"`
	ScheduleChanges []ScheduleChange `gorm:"foreignKey:RelocationID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"schedule_changes,omitempty"`
}

func (RoomRelocation) TableName() string { return "room_relocations" }
