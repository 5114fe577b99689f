package models

import "time"

// Venue application statuses. The status column is free-form so historical
// values survive imports, but "accepted" is the one the list-view aggregates
// specifically count.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
)

// PublicationConferenceApplication represents the
// publication_conference_applications table: one submission attempt of an
// in-publication entry to a conference. An entry may hold many of these,
// for the same or different conferences, concurrently.
type PublicationConferenceApplication struct {
	ApplicationID      uint       `gorm:"primaryKey;column:application_id" json:"application_id"`
	PublicationID      uint       `gorm:"column:publication_id;index" json:"publication_id"`
	ConferenceID       uint       `gorm:"column:conference_id" json:"conference_id"`
	ApplicationDate    time.Time  `gorm:"column:application_date" json:"application_date"`
	SubmissionDeadline *time.Time `gorm:"column:submission_deadline" json:"submission_deadline,omitempty"`
	SubmissionLink     *string    `gorm:"column:submission_link" json:"submission_link,omitempty"`
	Status             string     `gorm:"column:status;default:submitted" json:"status"`
	Feedback           *string    `gorm:"column:feedback" json:"feedback,omitempty"`
	ResponseDate       *time.Time `gorm:"column:response_date" json:"response_date,omitempty"`
	Notes              *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Conference Conference `gorm:"foreignKey:ConferenceID;references:ConferenceID" json:"conference"`
}

// TableName overrides the table name for PublicationConferenceApplication
func (PublicationConferenceApplication) TableName() string {
	return "publication_conference_applications"
}

// PublicationJournalApplication represents the
// publication_journal_applications table. Journals additionally track the
// manuscript id assigned by the journal's submission system.
type PublicationJournalApplication struct {
	ApplicationID      uint       `gorm:"primaryKey;column:application_id" json:"application_id"`
	PublicationID      uint       `gorm:"column:publication_id;index" json:"publication_id"`
	JournalID          uint       `gorm:"column:journal_id" json:"journal_id"`
	ManuscriptID       *string    `gorm:"column:manuscript_id" json:"manuscript_id,omitempty"`
	ApplicationDate    time.Time  `gorm:"column:application_date" json:"application_date"`
	SubmissionDeadline *time.Time `gorm:"column:submission_deadline" json:"submission_deadline,omitempty"`
	SubmissionLink     *string    `gorm:"column:submission_link" json:"submission_link,omitempty"`
	Status             string     `gorm:"column:status;default:submitted" json:"status"`
	Feedback           *string    `gorm:"column:feedback" json:"feedback,omitempty"`
	ResponseDate       *time.Time `gorm:"column:response_date" json:"response_date,omitempty"`
	Notes              *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Journal Journal `gorm:"foreignKey:JournalID;references:JournalID" json:"journal"`
}

// TableName overrides the table name for PublicationJournalApplication
func (PublicationJournalApplication) TableName() string {
	return "publication_journal_applications"
}
