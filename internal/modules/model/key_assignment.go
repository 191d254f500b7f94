package model

import (
	"time"

	"github.com/google/uuid"
)

// KeyAssignment is active while returned_at is null. A second active
// assignment of the same key to the same occupant must be a spare with
// a recorded reason.
type KeyAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	KeyID      uuid.UUID `gorm:"type:uuid;not null;index" json:"key_id"`
	OccupantID uuid.UUID `gorm:"type:uuid;not null;index" json:"occupant_id"`

	AssignedAt time.Time  `gorm:"not null;autoCreateTime" json:"assigned_at"`
	ReturnedAt *time.Time `gorm:"index" json:"returned_at"`

	IsSpare      bool    `gorm:"not null;default:false" json:"is_spare"`
	SpareReason  *string `gorm:"type:text" json:"spare_reason"`
	ReturnReason *string `gorm:"type:text" json:"return_reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Key      *Key      `gorm:"foreignKey:KeyID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"key,omitempty"`
	Occupant *Occupant `gorm:"foreignKey:OccupantID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"occupant,omitempty"`
}

func (KeyAssignment) TableName() string { return "key_assignments" }
