package services

import (
	"errors"
	"time"

	"research-program-api/config"
	"research-program-api/models"
	"research-program-api/utils"

	"gorm.io/gorm"
)

// ReadyPublicationService owns the draft side of the publication workflow:
// entries derived from projects that are edited and approved before being
// promoted into the in-publication pipeline.
type ReadyPublicationService struct {
	db       *gorm.DB
	registry *ProjectRegistry
}

func NewReadyPublicationService(db *gorm.DB) *ReadyPublicationService {
	if db == nil {
		db = config.DB
	}
	return &ReadyPublicationService{db: db, registry: NewProjectRegistry(db)}
}

// ReadyPublicationFilter narrows ListActive. Search matches the paper title
// or the project name; Status filters on the exact status value;
// ProjectStatus filters on the project's status_name as shown in the UI
// dropdown.
type ReadyPublicationFilter struct {
	Search        string
	Status        models.PublicationStatus
	ProjectStatus string
}

// ReadyPublicationUpdate carries the fields Update may change. Nil pointers
// mean "leave the stored value alone"; the approval gate is evaluated against
// the row as it would be stored after the merge, not against the submitted
// fields in isolation.
type ReadyPublicationUpdate struct {
	PaperTitle           *string                   `json:"paper_title"`
	MentorAffiliation    *string                   `json:"mentor_affiliation"`
	FirstDraftLink       *string                   `json:"first_draft_link"`
	PlagiarismReportLink *string                   `json:"plagiarism_report_link"`
	AIDetectionLink      *string                   `json:"ai_detection_link"`
	Status               *models.PublicationStatus `json:"status"`
	Notes                *string                   `json:"notes"`
}

// ManualAuthorInput is one caller-supplied author row for CreateManual.
type ManualAuthorInput struct {
	StudentID   uint    `json:"student_id" binding:"required"`
	Affiliation string  `json:"affiliation"`
	Address     *string `json:"address"`
	AuthorOrder int     `json:"author_order"`
}

// ReadyPublicationCreate carries the fields for a manually created entry.
type ReadyPublicationCreate struct {
	ProjectID            uint                     `json:"project_id" binding:"required"`
	PaperTitle           string                   `json:"paper_title" binding:"required"`
	MentorAffiliation    string                   `json:"mentor_affiliation"`
	FirstDraftLink       string                   `json:"first_draft_link"`
	PlagiarismReportLink string                   `json:"plagiarism_report_link"`
	AIDetectionLink      string                   `json:"ai_detection_link"`
	Status               models.PublicationStatus `json:"status"`
	Notes                *string                  `json:"notes"`
	Authors              []ManualAuthorInput      `json:"authors"`
}

// ReadyPublicationStatistics is the count breakdown for dashboards.
type ReadyPublicationStatistics struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// validateDocumentLinks rejects supplied document links that are not
// absolute http(s) URLs. Nil and empty values pass; the approval gate
// decides when a link is required.
func validateDocumentLinks(firstDraft, plagiarismReport, aiDetection *string) error {
	check := func(name string, link *string) error {
		if link != nil && !utils.ValidateLink(*link) {
			return &ValidationError{Reason: name + " must be an absolute http(s) URL"}
		}
		return nil
	}
	if err := check("first_draft_link", firstDraft); err != nil {
		return err
	}
	if err := check("plagiarism_report_link", plagiarismReport); err != nil {
		return err
	}
	return check("ai_detection_link", aiDetection)
}

// ListActive returns all entries still in the draft workflow, newest first.
func (s *ReadyPublicationService) ListActive(filter ReadyPublicationFilter) ([]models.ReadyForPublication, error) {
	query := s.db.Model(&models.ReadyForPublication{}).
		Select("ready_for_publication.*").
		Joins("JOIN projects ON projects.project_id = ready_for_publication.project_id").
		Where("ready_for_publication.workflow_status = ?", models.WorkflowActive).
		Preload("Project.Status").
		Preload("Project.LeadMentor")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("ready_for_publication.paper_title LIKE ? OR projects.project_name LIKE ?", like, like)
	}
	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, &ValidationError{Reason: "unknown status filter: " + string(filter.Status)}
		}
		query = query.Where("ready_for_publication.status = ?", filter.Status)
	}
	if filter.ProjectStatus != "" {
		status, err := GetProjectStatusByName(filter.ProjectStatus)
		if err != nil {
			return nil, &ValidationError{Reason: "unknown project status filter: " + filter.ProjectStatus}
		}
		query = query.Where("projects.status_id = ?", status.StatusID)
	}

	var entries []models.ReadyForPublication
	if err := query.Order("ready_for_publication.created_at DESC").Find(&entries).Error; err != nil {
		return nil, storageErr("list active entries", err)
	}
	return entries, nil
}

// GetByID returns one entry joined with its project, mentor and status
// context.
func (s *ReadyPublicationService) GetByID(id uint) (*models.ReadyForPublication, error) {
	var entry models.ReadyForPublication
	err := s.db.Preload("Project.Status").
		Preload("Project.LeadMentor").
		Where("ready_publication_id = ?", id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "ready-for-publication entry", ID: id}
		}
		return nil, storageErr("load entry", err)
	}
	return &entry, nil
}

// GetAuthors returns the entry's author records with current student identity
// joined in, ordered by author_order and then student name.
func (s *ReadyPublicationService) GetAuthors(entryID uint) ([]models.ReadyForPublicationStudent, error) {
	var authors []models.ReadyForPublicationStudent
	err := s.db.Model(&models.ReadyForPublicationStudent{}).
		Select("ready_for_publication_students.*").
		Joins("JOIN students ON students.student_id = ready_for_publication_students.student_id").
		Where("ready_for_publication_students.ready_publication_id = ?", entryID).
		Order("ready_for_publication_students.author_order ASC, students.first_name ASC, students.last_name ASC").
		Preload("Student").
		Find(&authors).Error
	if err != nil {
		return nil, storageErr("load authors", err)
	}
	return authors, nil
}

// CreateFromProject derives a new draft entry from a project: the paper title
// defaults to the project name, the mentor affiliation to the lead mentor's
// specialization, and every assigned student becomes an author row in
// assignment order. The whole derivation is one transaction.
func (s *ReadyPublicationService) CreateFromProject(projectID uint) (*models.ReadyForPublication, error) {
	var existing models.ReadyForPublication
	err := s.db.Where("project_id = ? AND workflow_status = ?", projectID, models.WorkflowActive).
		First(&existing).Error
	if err == nil {
		return nil, &ConflictError{
			Reason:         "project already has an active ready-for-publication entry",
			ExistingID:     existing.ReadyPublicationID,
			Status:         existing.Status,
			WorkflowStatus: existing.WorkflowStatus,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("check existing entry", err)
	}

	project, err := s.registry.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	mentor, err := s.registry.GetLeadMentor(projectID)
	if err != nil {
		return nil, err
	}
	mentorAffiliation := ""
	if mentor != nil && mentor.Specialization != nil {
		mentorAffiliation = *mentor.Specialization
	}

	assigned, err := s.registry.GetAssignedStudents(projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := models.ReadyForPublication{
		ProjectID:         projectID,
		ActiveProjectID:   &projectID,
		PaperTitle:        project.ProjectName,
		MentorAffiliation: mentorAffiliation,
		Status:            models.StatusPending,
		WorkflowStatus:    models.WorkflowActive,
		CreatedAt:         now,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return storageErr("insert entry", err)
		}

		if len(assigned) == 0 {
			return nil
		}
		authors := make([]models.ReadyForPublicationStudent, 0, len(assigned))
		for i, student := range assigned {
			authors = append(authors, models.ReadyForPublicationStudent{
				ReadyPublicationID: entry.ReadyPublicationID,
				StudentID:          student.StudentID,
				Affiliation:        student.Affiliation,
				AuthorOrder:        i + 1,
				CreatedAt:          now,
			})
		}
		if err := tx.Create(&authors).Error; err != nil {
			return storageErr("insert authors", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &entry, nil
}

// Update applies the supplied fields to an entry and refreshes updated_at.
// Moving status to approved is gated: the resulting stored row must carry a
// first draft link and an AI detection link, whether they come from this
// update or were stored before it.
func (s *ReadyPublicationService) Update(id uint, input ReadyPublicationUpdate) (*models.ReadyForPublication, error) {
	var entry models.ReadyForPublication
	if err := s.db.Where("ready_publication_id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "ready-for-publication entry", ID: id}
		}
		return nil, storageErr("load entry", err)
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, &ValidationError{Reason: "unknown status: " + string(*input.Status)}
	}
	if err := validateDocumentLinks(input.FirstDraftLink, input.PlagiarismReportLink, input.AIDetectionLink); err != nil {
		return nil, err
	}

	effectiveStatus := entry.Status
	if input.Status != nil {
		effectiveStatus = *input.Status
	}
	effectiveFirstDraft := entry.FirstDraftLink
	if input.FirstDraftLink != nil {
		effectiveFirstDraft = *input.FirstDraftLink
	}
	effectiveAIDetection := entry.AIDetectionLink
	if input.AIDetectionLink != nil {
		effectiveAIDetection = *input.AIDetectionLink
	}
	if effectiveStatus == models.StatusApproved && (effectiveFirstDraft == "" || effectiveAIDetection == "") {
		return nil, &ValidationError{
			Reason: "cannot approve: first draft link and AI detection link are both required",
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.PaperTitle != nil {
		updates["paper_title"] = *input.PaperTitle
	}
	if input.MentorAffiliation != nil {
		updates["mentor_affiliation"] = *input.MentorAffiliation
	}
	if input.FirstDraftLink != nil {
		updates["first_draft_link"] = *input.FirstDraftLink
	}
	if input.PlagiarismReportLink != nil {
		updates["plagiarism_report_link"] = *input.PlagiarismReportLink
	}
	if input.AIDetectionLink != nil {
		updates["ai_detection_link"] = *input.AIDetectionLink
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, storageErr("update entry", err)
	}

	if err := s.db.Where("ready_publication_id = ?", id).First(&entry).Error; err != nil {
		return nil, storageErr("reload entry", err)
	}
	return &entry, nil
}

// UpdateAuthorDetail edits one author's affiliation and address in place.
// Author order is never touched here.
func (s *ReadyPublicationService) UpdateAuthorDetail(recordID uint, affiliation string, address *string) (*models.ReadyForPublicationStudent, error) {
	var author models.ReadyForPublicationStudent
	if err := s.db.Where("record_id = ?", recordID).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "author record", ID: recordID}
		}
		return nil, storageErr("load author record", err)
	}

	updates := map[string]interface{}{
		"affiliation": affiliation,
		"address":     address,
		"updated_at":  time.Now(),
	}
	if err := s.db.Model(&author).Updates(updates).Error; err != nil {
		return nil, storageErr("update author record", err)
	}

	if err := s.db.Where("record_id = ?", recordID).First(&author).Error; err != nil {
		return nil, storageErr("reload author record", err)
	}
	return &author, nil
}

// CreateManual inserts an entry with a caller-supplied author list in one
// transaction. The same approval gate as Update applies to the initial
// status.
func (s *ReadyPublicationService) CreateManual(input ReadyPublicationCreate) (*models.ReadyForPublication, error) {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.IsValid() {
		return nil, &ValidationError{Reason: "unknown status: " + string(status)}
	}
	if err := validateDocumentLinks(&input.FirstDraftLink, &input.PlagiarismReportLink, &input.AIDetectionLink); err != nil {
		return nil, err
	}
	if status == models.StatusApproved && (input.FirstDraftLink == "" || input.AIDetectionLink == "") {
		return nil, &ValidationError{
			Reason: "cannot approve: first draft link and AI detection link are both required",
		}
	}

	var existing models.ReadyForPublication
	err := s.db.Where("project_id = ? AND workflow_status = ?", input.ProjectID, models.WorkflowActive).
		First(&existing).Error
	if err == nil {
		return nil, &ConflictError{
			Reason:         "project already has an active ready-for-publication entry",
			ExistingID:     existing.ReadyPublicationID,
			Status:         existing.Status,
			WorkflowStatus: existing.WorkflowStatus,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("check existing entry", err)
	}

	if _, err := s.registry.GetProjectByID(input.ProjectID); err != nil {
		return nil, err
	}

	projectID := input.ProjectID
	now := time.Now()
	entry := models.ReadyForPublication{
		ProjectID:            projectID,
		ActiveProjectID:      &projectID,
		PaperTitle:           input.PaperTitle,
		MentorAffiliation:    input.MentorAffiliation,
		FirstDraftLink:       input.FirstDraftLink,
		PlagiarismReportLink: input.PlagiarismReportLink,
		AIDetectionLink:      input.AIDetectionLink,
		Status:               status,
		WorkflowStatus:       models.WorkflowActive,
		Notes:                input.Notes,
		CreatedAt:            now,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return storageErr("insert entry", err)
		}

		if len(input.Authors) == 0 {
			return nil
		}
		authors := make([]models.ReadyForPublicationStudent, 0, len(input.Authors))
		for i, a := range input.Authors {
			order := a.AuthorOrder
			if order == 0 {
				order = i + 1
			}
			authors = append(authors, models.ReadyForPublicationStudent{
				ReadyPublicationID: entry.ReadyPublicationID,
				StudentID:          a.StudentID,
				Affiliation:        a.Affiliation,
				Address:            a.Address,
				AuthorOrder:        order,
				CreatedAt:          now,
			})
		}
		if err := tx.Create(&authors).Error; err != nil {
			return storageErr("insert authors", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &entry, nil
}

// Delete hard-deletes an entry and its author rows.
func (s *ReadyPublicationService) Delete(id uint) error {
	var entry models.ReadyForPublication
	if err := s.db.Where("ready_publication_id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "ready-for-publication entry", ID: id}
		}
		return storageErr("load entry", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ready_publication_id = ?", id).
			Delete(&models.ReadyForPublicationStudent{}).Error; err != nil {
			return storageErr("delete authors", err)
		}
		if err := tx.Where("ready_publication_id = ?", id).
			Delete(&models.ReadyForPublication{}).Error; err != nil {
			return storageErr("delete entry", err)
		}
		return nil
	})
}

// ListPromotionCandidates returns projects with no active draft entry, for
// populating the create-entry picker.
func (s *ReadyPublicationService) ListPromotionCandidates() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Preload("Status").
		Preload("LeadMentor").
		Where("project_id NOT IN (?)",
			s.db.Model(&models.ReadyForPublication{}).
				Select("project_id").
				Where("workflow_status = ?", models.WorkflowActive)).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, storageErr("list promotion candidates", err)
	}
	return projects, nil
}

// Statistics returns the total entry count and a per-status breakdown.
func (s *ReadyPublicationService) Statistics() (*ReadyPublicationStatistics, error) {
	stats := &ReadyPublicationStatistics{ByStatus: make(map[string]int64)}

	if err := s.db.Model(&models.ReadyForPublication{}).Count(&stats.Total).Error; err != nil {
		return nil, storageErr("count entries", err)
	}

	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}
	err := s.db.Model(&models.ReadyForPublication{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("count entries by status", err)
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}
	return stats, nil
}
