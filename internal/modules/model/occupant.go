package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	OccupantStatusActive     = "active"
	OccupantStatusInactive   = "inactive"
	OccupantStatusOnLeave    = "on_leave"
	OccupantStatusTerminated = "terminated"
)

const (
	AccessLevelStandard   = "standard"
	AccessLevelRestricted = "restricted"
	AccessLevelElevated   = "elevated"
)

// Person reference kinds. Assignment rows can point at people coming
// from three different source tables; the kind column records which
// one so a single join table serves all of them.
const (
	PersonKindOccupant  = "occupant"
	PersonKindProfile   = "profile"
	PersonKindPersonnel = "personnel"
)

type Occupant struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName string    `gorm:"type:text;not null" json:"first_name"`
	LastName  string    `gorm:"type:text;not null" json:"last_name"`
	Email     *string   `gorm:"type:text" json:"email"`
	Phone     *string   `gorm:"type:text" json:"phone"`

	Department *string `gorm:"type:text;index" json:"department"`
	Title      *string `gorm:"type:text" json:"title"`

	Status      string `gorm:"type:text;not null;default:'active';check:status IN ('active','inactive','on_leave','terminated');index" json:"status"`
	AccessLevel string `gorm:"type:text;not null;default:'standard';check:access_level IN ('standard','restricted','elevated')" json:"access_level"`

	EmergencyContactName  *string `gorm:"type:text" json:"emergency_contact_name"`
	EmergencyContactPhone *string `gorm:"type:text" json:"emergency_contact_phone"`
	Notes                 *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Occupant <-> RoomAssignment
	RoomAssignments []RoomAssignment `gorm:"foreignKey:OccupantID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"room_assignments,omitempty"`

	// Occupant <-> KeyAssignment
	KeyAssignments []KeyAssignment `gorm:"foreignKey:OccupantID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"key_assignments,omitempty"`
}

func (Occupant) TableName() string { return "occupants" }
