package models

import "time"

// Project represents the projects table (the project registry the
// publication workflow sources titles, mentors and author lists from).
type Project struct {
	ProjectID    uint       `gorm:"primaryKey;column:project_id" json:"project_id"`
	ProjectCode  string     `gorm:"column:project_code" json:"project_code"`
	ProjectName  string     `gorm:"column:project_name" json:"project_name"`
	StatusID     uint       `gorm:"column:status_id" json:"status_id"`
	LeadMentorID *int       `gorm:"column:lead_mentor_id" json:"lead_mentor_id,omitempty"`
	Notes        *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Status     ProjectStatus    `gorm:"foreignKey:StatusID;references:StatusID" json:"status"`
	LeadMentor *User            `gorm:"foreignKey:LeadMentorID;references:UserID" json:"lead_mentor,omitempty"`
	Students   []ProjectStudent `gorm:"foreignKey:ProjectID;references:ProjectID" json:"students,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectStatus represents the project_statuses table
type ProjectStatus struct {
	StatusID     uint   `gorm:"primaryKey;column:status_id" json:"status_id"`
	StatusName   string `gorm:"column:status_name" json:"status_name"`
	DisplayOrder int    `gorm:"column:display_order" json:"display_order"`
	IsActive     bool   `gorm:"column:is_active" json:"is_active"`
}

// TableName overrides the table name for ProjectStatus
func (ProjectStatus) TableName() string {
	return "project_statuses"
}

// ProjectStudent represents the project_students table. DisplayOrder is the
// assignment order the publication workflow snapshots author_order from.
type ProjectStudent struct {
	AssignmentID uint       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ProjectID    uint       `gorm:"column:project_id" json:"project_id"`
	StudentID    uint       `gorm:"column:student_id" json:"student_id"`
	DisplayOrder int        `gorm:"column:display_order" json:"display_order"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student"`
}

// TableName overrides the table name for ProjectStudent
func (ProjectStudent) TableName() string {
	return "project_students"
}
