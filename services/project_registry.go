package services

import (
	"errors"

	"research-program-api/config"
	"research-program-api/models"

	"gorm.io/gorm"
)

// ProjectRegistry is the read-side boundary to the project and student
// records the publication workflow is derived from. The workflow never
// mutates projects or students through it.
type ProjectRegistry struct {
	db *gorm.DB
}

func NewProjectRegistry(db *gorm.DB) *ProjectRegistry {
	if db == nil {
		db = config.DB
	}
	return &ProjectRegistry{db: db}
}

// AssignedStudent is one (student, affiliation) pair in assignment order.
type AssignedStudent struct {
	StudentID   uint   `gorm:"column:student_id" json:"student_id"`
	Affiliation string `gorm:"column:affiliation" json:"affiliation"`
}

// GetProjectByID returns the bare project row.
func (r *ProjectRegistry) GetProjectByID(projectID uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "project", ID: projectID}
		}
		return nil, storageErr("load project", err)
	}
	return &project, nil
}

// GetAssignedStudents returns the students currently assigned to the project
// in assignment order, each with their current affiliation.
func (r *ProjectRegistry) GetAssignedStudents(projectID uint) ([]AssignedStudent, error) {
	var assigned []AssignedStudent
	err := r.db.Table("project_students").
		Select("project_students.student_id, students.affiliation").
		Joins("JOIN students ON students.student_id = project_students.student_id").
		Where("project_students.project_id = ?", projectID).
		Order("project_students.display_order ASC, project_students.assignment_id ASC").
		Scan(&assigned).Error
	if err != nil {
		return nil, storageErr("load assigned students", err)
	}
	return assigned, nil
}

// GetLeadMentor returns the project's lead mentor, or nil when the project
// has none assigned.
func (r *ProjectRegistry) GetLeadMentor(projectID uint) (*models.User, error) {
	var mentor models.User
	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN projects ON projects.lead_mentor_id = users.user_id").
		Where("projects.project_id = ? AND users.delete_at IS NULL", projectID).
		First(&mentor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("load lead mentor", err)
	}
	return &mentor, nil
}
