package model

import (
	"time"

	"github.com/google/uuid"
)

// CourtSession is a blackout window: while the relocated courtroom is
// in session, the temporary room is unavailable for work. Sessions are
// only created and deleted, never transitioned.
type CourtSession struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RelocationID uuid.UUID `gorm:"type:uuid;not null;index:ix_court_sessions_relocation;index:ix_court_sessions_relocation_date,priority:1" json:"relocation_id"`

	SessionDate time.Time `gorm:"type:date;not null;index:ix_court_sessions_relocation_date,priority:2" json:"session_date"`
	StartTime   string    `gorm:"type:text;not null" json:"start_time"`
	EndTime     string    `gorm:"type:text;not null" json:"end_time"`

	SessionType string  `gorm:"type:text;not null;default:'session'" json:"session_type"`
	Judge       *string `gorm:"type:text" json:"judge"`
	Notes       *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Relocation *RoomRelocation `gorm:"foreignKey:RelocationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"relocation,omitempty"`
}

func (CourtSession) TableName() string { return "relocation_court_sessions" }
