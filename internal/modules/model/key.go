package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	KeyStatusAvailable = "available"
	KeyStatusAssigned  = "assigned"
)

type Key struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Type      string    `gorm:"type:text;not null" json:"type"`
	IsPasskey bool      `gorm:"not null;default:false" json:"is_passkey"`

	Status            string `gorm:"type:text;not null;default:'available';check:status IN ('available','assigned')" json:"status"`
	TotalQuantity     int    `gorm:"not null;default:1" json:"total_quantity"`
	AvailableQuantity int    `gorm:"not null;default:1" json:"available_quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Key <-> KeyAssignment
	Assignments []KeyAssignment `gorm:"foreignKey:KeyID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"assignments,omitempty"`
}

func (Key) TableName() string { return "keys" }
