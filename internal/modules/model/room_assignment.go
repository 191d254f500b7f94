package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OccupantID uuid.UUID `gorm:"type:uuid;not null;index:ix_room_assignments_occupant;index:ix_room_assignments_occupant_type,priority:1;uniqueIndex:ux_room_assignments_primary,priority:1" json:"occupant_id"`
	PersonKind string    `gorm:"type:text;not null;default:'occupant';check:person_kind IN ('occupant','profile','personnel')" json:"person_kind"`
	RoomID     uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`

	// At most one primary per (occupant, assignment_type); writers must
	// demote the existing primary in the same transaction that inserts
	// a new one. The partial unique index backstops that contract.
	IsPrimary      bool    `gorm:"not null;default:false" json:"is_primary"`
	AssignmentType string  `gorm:"type:text;not null;default:'work_location';index:ix_room_assignments_occupant_type,priority:2;uniqueIndex:ux_room_assignments_primary,priority:2,where:is_primary" json:"assignment_type"`
	Schedule       *string `gorm:"type:text" json:"schedule"`
	Notes          *string `gorm:"type:text" json:"notes"`

	AssignedAt time.Time `gorm:"not null;autoCreateTime" json:"assigned_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Occupant *Occupant `gorm:"foreignKey:OccupantID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"occupant,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"room,omitempty"`
}

func (RoomAssignment) TableName() string { return "occupant_room_assignments" }
