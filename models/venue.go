package models

import "time"

// Conference represents the conferences master lookup table.
type Conference struct {
	ConferenceID   uint       `gorm:"primaryKey;column:conference_id" json:"conference_id"`
	ConferenceName string     `gorm:"column:conference_name" json:"conference_name"`
	Organizer      *string    `gorm:"column:organizer" json:"organizer,omitempty"`
	Location       *string    `gorm:"column:location" json:"location,omitempty"`
	Website        *string    `gorm:"column:website" json:"website,omitempty"`
	IsActive       bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Conference
func (Conference) TableName() string {
	return "conferences"
}

// Journal represents the journals master lookup table.
type Journal struct {
	JournalID   uint       `gorm:"primaryKey;column:journal_id" json:"journal_id"`
	JournalName string     `gorm:"column:journal_name" json:"journal_name"`
	Publisher   *string    `gorm:"column:publisher" json:"publisher,omitempty"`
	ISSN        *string    `gorm:"column:issn" json:"issn,omitempty"`
	Website     *string    `gorm:"column:website" json:"website,omitempty"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for Journal
func (Journal) TableName() string {
	return "journals"
}
