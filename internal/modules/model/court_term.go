package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourtTerm is an imported term schedule; rows come from the
// extraction service, never from manual entry.
type CourtTerm struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TermNumber string    `gorm:"type:text;not null;uniqueIndex" json:"term_number"`
	TermName   string    `gorm:"type:text;not null" json:"term_name"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Location  string    `gorm:"type:text" json:"location"`

	// S3 key of the archived source PDF.
	SourceKey *string `gorm:"type:text" json:"source_key"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Assignments []TermAssignment `gorm:"foreignKey:TermID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"assignments,omitempty"`
}

func (CourtTerm) TableName() string { return "court_terms" }

type TermAssignment struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TermID uuid.UUID `gorm:"type:uuid;not null;index" json:"term_id"`

	Part       string         `gorm:"type:text;not null" json:"part"`
	Justice    string         `gorm:"type:text;not null" json:"justice"`
	RoomNumber string         `gorm:"type:text;not null" json:"room_number"`
	Clerks     datatypes.JSON `gorm:"type:jsonb" swaggertype:"array,string" json:"clerks"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Term *CourtTerm `gorm:"foreignKey:TermID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"term,omitempty"`
}

func (TermAssignment) TableName() string { return "court_term_assignments" }
