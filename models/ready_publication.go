package models

import "time"

// PublicationStatus is the reviewer-facing status of a ready-for-publication
// entry. Stored as a plain string; validated at the service boundary so typos
// like "Pending" never reach a filter.
type PublicationStatus string

const (
	StatusPending  PublicationStatus = "pending"
	StatusApproved PublicationStatus = "approved"
	StatusRejected PublicationStatus = "rejected"
)

// IsValid reports whether the value is one of the known statuses.
func (s PublicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// WorkflowStatus is the lifecycle marker of a ready-for-publication entry.
// It is not user-facing and only ever moves forward.
type WorkflowStatus string

const (
	WorkflowActive             WorkflowStatus = "active"
	WorkflowMovedToPublication WorkflowStatus = "moved_to_publication"
)

// IsValid reports whether the value is one of the known workflow markers.
func (s WorkflowStatus) IsValid() bool {
	switch s {
	case WorkflowActive, WorkflowMovedToPublication:
		return true
	}
	return false
}

// ReadyForPublication represents the ready_for_publication table: a draft
// publication entry derived from a project, pending internal approval.
//
// ActiveProjectID mirrors ProjectID while WorkflowStatus is active and is
// nulled when the entry is promoted. Its unique index is what makes the
// "at most one active entry per project" rule hold under concurrent requests;
// the service-level existence check alone is not race-free.
type ReadyForPublication struct {
	ReadyPublicationID   uint              `gorm:"primaryKey;column:ready_publication_id" json:"ready_publication_id"`
	ProjectID            uint              `gorm:"column:project_id;index" json:"project_id"`
	ActiveProjectID      *uint             `gorm:"column:active_project_id;uniqueIndex" json:"-"`
	PaperTitle           string            `gorm:"column:paper_title" json:"paper_title"`
	MentorAffiliation    string            `gorm:"column:mentor_affiliation" json:"mentor_affiliation"`
	FirstDraftLink       string            `gorm:"column:first_draft_link" json:"first_draft_link"`
	PlagiarismReportLink string            `gorm:"column:plagiarism_report_link" json:"plagiarism_report_link"`
	AIDetectionLink      string            `gorm:"column:ai_detection_link" json:"ai_detection_link"`
	Status               PublicationStatus `gorm:"column:status;default:pending" json:"status"`
	WorkflowStatus       WorkflowStatus    `gorm:"column:workflow_status;default:active" json:"workflow_status"`
	Notes                *string           `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt            time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            *time.Time        `gorm:"column:updated_at" json:"updated_at"`

	Project Project                      `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project"`
	Authors []ReadyForPublicationStudent `gorm:"foreignKey:ReadyPublicationID;references:ReadyPublicationID" json:"authors,omitempty"`
}

// TableName overrides the table name for ReadyForPublication
func (ReadyForPublication) TableName() string {
	return "ready_for_publication"
}

// HasRequiredDocuments reports whether the entry carries the documents the
// approval gate demands.
func (r ReadyForPublication) HasRequiredDocuments() bool {
	return r.FirstDraftLink != "" && r.AIDetectionLink != ""
}

// ReadyForPublicationStudent represents the ready_for_publication_students
// table: one author's claim on a draft entry, with affiliation and address
// captured at the time of writing rather than joined live from the student.
type ReadyForPublicationStudent struct {
	RecordID           uint       `gorm:"primaryKey;column:record_id" json:"record_id"`
	ReadyPublicationID uint       `gorm:"column:ready_publication_id;index" json:"ready_publication_id"`
	StudentID          uint       `gorm:"column:student_id" json:"student_id"`
	Affiliation        string     `gorm:"column:affiliation" json:"affiliation"`
	Address            *string    `gorm:"column:address" json:"address,omitempty"`
	AuthorOrder        int        `gorm:"column:author_order" json:"author_order"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student"`
}

// TableName overrides the table name for ReadyForPublicationStudent
func (ReadyForPublicationStudent) TableName() string {
	return "ready_for_publication_students"
}
