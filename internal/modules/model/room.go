package model

import (
	"time"

	"github.com/google/uuid"
)

// Room is owned by the spaces side of the system; this service only
// reads rooms and attaches assignments and relocations to them.
type Room struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	RoomNumber string    `gorm:"type:text;not null" json:"room_number"`
	Building   string    `gorm:"type:text;not null;index" json:"building"`
	Floor      *string   `gorm:"type:text" json:"floor"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Room <-> RoomAssignment
	Assignments []RoomAssignment `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"assignments,omitempty"`
}

func (Room) TableName() string { return "rooms" }
