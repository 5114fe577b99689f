package models

import "time"

// InPublication represents the in_publication table: an approved publication
// actively being submitted to conferences and journals. Entries are only ever
// created by promoting a ready-for-publication entry; the unique index on
// ReadyPublicationID enforces that a given entry is promoted exactly once.
type InPublication struct {
	PublicationID        uint       `gorm:"primaryKey;column:publication_id" json:"publication_id"`
	ReadyPublicationID   uint       `gorm:"column:ready_publication_id;uniqueIndex" json:"ready_publication_id"`
	ProjectID            uint       `gorm:"column:project_id;index" json:"project_id"`
	ReferenceCode        string     `gorm:"column:reference_code;unique" json:"reference_code"`
	PaperTitle           string     `gorm:"column:paper_title" json:"paper_title"`
	MentorAffiliation    string     `gorm:"column:mentor_affiliation" json:"mentor_affiliation"`
	FirstDraftLink       string     `gorm:"column:first_draft_link" json:"first_draft_link"`
	PlagiarismReportLink string     `gorm:"column:plagiarism_report_link" json:"plagiarism_report_link"`
	FinalPaperLink       string     `gorm:"column:final_paper_link" json:"final_paper_link"`
	AIDetectionLink      string     `gorm:"column:ai_detection_link" json:"ai_detection_link"`
	Notes                *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt            time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Project                Project                            `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project"`
	ReadyEntry             *ReadyForPublication               `gorm:"foreignKey:ReadyPublicationID;references:ReadyPublicationID" json:"ready_entry,omitempty"`
	Authors                []InPublicationStudent             `gorm:"foreignKey:PublicationID;references:PublicationID" json:"authors,omitempty"`
	ConferenceApplications []PublicationConferenceApplication `gorm:"foreignKey:PublicationID;references:PublicationID" json:"conference_applications,omitempty"`
	JournalApplications    []PublicationJournalApplication    `gorm:"foreignKey:PublicationID;references:PublicationID" json:"journal_applications,omitempty"`
}

// TableName overrides the table name for InPublication
func (InPublication) TableName() string {
	return "in_publication"
}

// InPublicationStudent represents the in_publication_students table. Rows are
// duplicated from the source ready entry at promotion time; later edits to
// either side do not propagate to the other.
type InPublicationStudent struct {
	RecordID      uint       `gorm:"primaryKey;column:record_id" json:"record_id"`
	PublicationID uint       `gorm:"column:publication_id;index" json:"publication_id"`
	StudentID     uint       `gorm:"column:student_id" json:"student_id"`
	Affiliation   string     `gorm:"column:affiliation" json:"affiliation"`
	Address       *string    `gorm:"column:address" json:"address,omitempty"`
	AuthorOrder   int        `gorm:"column:author_order" json:"author_order"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student"`
}

// TableName overrides the table name for InPublicationStudent
func (InPublicationStudent) TableName() string {
	return "in_publication_students"
}
