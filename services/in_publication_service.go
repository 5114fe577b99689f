package services

import (
	"errors"
	"time"

	"research-program-api/config"
	"research-program-api/models"
	"research-program-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InPublicationService owns the post-approval side of the workflow: entries
// promoted out of the draft pipeline and their conference/journal
// applications.
type InPublicationService struct {
	db *gorm.DB
}

func NewInPublicationService(db *gorm.DB) *InPublicationService {
	if db == nil {
		db = config.DB
	}
	return &InPublicationService{db: db}
}

// InPublicationFilter narrows ListAll by free-text match on the paper title
// or project name.
type InPublicationFilter struct {
	Search string
}

// InPublicationSummary is one list-view row: entry context plus the derived
// per-venue application counts. The counts are computed by correlated
// subqueries, never stored.
type InPublicationSummary struct {
	PublicationID      uint      `gorm:"column:publication_id" json:"publication_id"`
	ReadyPublicationID uint      `gorm:"column:ready_publication_id" json:"ready_publication_id"`
	ProjectID          uint      `gorm:"column:project_id" json:"project_id"`
	ReferenceCode      string    `gorm:"column:reference_code" json:"reference_code"`
	PaperTitle         string    `gorm:"column:paper_title" json:"paper_title"`
	MentorAffiliation  string    `gorm:"column:mentor_affiliation" json:"mentor_affiliation"`
	FinalPaperLink     string    `gorm:"column:final_paper_link" json:"final_paper_link"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
	ProjectName        string    `gorm:"column:project_name" json:"project_name"`
	ProjectCode        string    `gorm:"column:project_code" json:"project_code"`
	StatusName         string    `gorm:"column:status_name" json:"status_name"`
	MentorFname        string    `gorm:"column:user_fname" json:"mentor_fname"`
	MentorLname        string    `gorm:"column:user_lname" json:"mentor_lname"`
	ConferenceTotal    int64     `gorm:"column:conference_total" json:"conference_total"`
	ConferenceAccepted int64     `gorm:"column:conference_accepted" json:"conference_accepted"`
	JournalTotal       int64     `gorm:"column:journal_total" json:"journal_total"`
	JournalAccepted    int64     `gorm:"column:journal_accepted" json:"journal_accepted"`
}

// InPublicationUpdate carries the fields Update may change. There is no
// approval gate here; the entry already passed it to exist.
type InPublicationUpdate struct {
	PaperTitle           *string `json:"paper_title"`
	MentorAffiliation    *string `json:"mentor_affiliation"`
	FirstDraftLink       *string `json:"first_draft_link"`
	PlagiarismReportLink *string `json:"plagiarism_report_link"`
	FinalPaperLink       *string `json:"final_paper_link"`
	AIDetectionLink      *string `json:"ai_detection_link"`
	Notes                *string `json:"notes"`
}

// ConferenceApplicationInput is the payload for ApplyToConference.
type ConferenceApplicationInput struct {
	ConferenceID       uint       `json:"conference_id" binding:"required"`
	ApplicationDate    *time.Time `json:"application_date"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	SubmissionLink     *string    `json:"submission_link"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes"`
}

// JournalApplicationInput is the payload for ApplyToJournal.
type JournalApplicationInput struct {
	JournalID          uint       `json:"journal_id" binding:"required"`
	ManuscriptID       *string    `json:"manuscript_id"`
	ApplicationDate    *time.Time `json:"application_date"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	SubmissionLink     *string    `json:"submission_link"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes"`
}

// VenueApplicationStatusUpdate records a submission outcome in place. Any
// status value is accepted; acceptance is reporting, not gating.
type VenueApplicationStatusUpdate struct {
	Status       string     `json:"status" binding:"required"`
	Feedback     *string    `json:"feedback"`
	ResponseDate *time.Time `json:"response_date"`
}

// VenueStatusCount is one (status, count) pair in the statistics breakdown.
type VenueStatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// InPublicationStatistics is the dashboard aggregate for the in-publication
// pipeline.
type InPublicationStatistics struct {
	Total             int64              `json:"total"`
	ConferenceByState []VenueStatusCount `json:"conference_by_status"`
	JournalByState    []VenueStatusCount `json:"journal_by_status"`
}

const (
	conferenceTotalSub    = "(SELECT COUNT(*) FROM publication_conference_applications ca WHERE ca.publication_id = in_publication.publication_id)"
	conferenceAcceptedSub = "(SELECT COUNT(*) FROM publication_conference_applications ca WHERE ca.publication_id = in_publication.publication_id AND ca.status = 'accepted')"
	journalTotalSub       = "(SELECT COUNT(*) FROM publication_journal_applications ja WHERE ja.publication_id = in_publication.publication_id)"
	journalAcceptedSub    = "(SELECT COUNT(*) FROM publication_journal_applications ja WHERE ja.publication_id = in_publication.publication_id AND ja.status = 'accepted')"
)

// ListAll returns every in-publication entry joined with project, mentor and
// status context plus the venue application aggregates, newest first.
func (s *InPublicationService) ListAll(filter InPublicationFilter) ([]InPublicationSummary, error) {
	query := s.db.Model(&models.InPublication{}).
		Select("in_publication.publication_id, in_publication.ready_publication_id, in_publication.project_id, "+
			"in_publication.reference_code, in_publication.paper_title, in_publication.mentor_affiliation, "+
			"in_publication.final_paper_link, in_publication.created_at, "+
			"projects.project_name, projects.project_code, project_statuses.status_name, "+
			"users.user_fname, users.user_lname, "+
			conferenceTotalSub+" AS conference_total, "+
			conferenceAcceptedSub+" AS conference_accepted, "+
			journalTotalSub+" AS journal_total, "+
			journalAcceptedSub+" AS journal_accepted").
		Joins("JOIN projects ON projects.project_id = in_publication.project_id").
		Joins("LEFT JOIN project_statuses ON project_statuses.status_id = projects.status_id").
		Joins("LEFT JOIN users ON users.user_id = projects.lead_mentor_id")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("in_publication.paper_title LIKE ? OR projects.project_name LIKE ?", like, like)
	}

	var rows []InPublicationSummary
	if err := query.Order("in_publication.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, storageErr("list publications", err)
	}
	return rows, nil
}

// GetByID returns one entry joined with project, mentor and status context.
func (s *InPublicationService) GetByID(id uint) (*models.InPublication, error) {
	var entry models.InPublication
	err := s.db.Preload("Project.Status").
		Preload("Project.LeadMentor").
		Where("publication_id = ?", id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "publication", ID: id}
		}
		return nil, storageErr("load publication", err)
	}
	return &entry, nil
}

// GetAuthors returns the entry's author records, ordered by author_order and
// then student name.
func (s *InPublicationService) GetAuthors(id uint) ([]models.InPublicationStudent, error) {
	var authors []models.InPublicationStudent
	err := s.db.Model(&models.InPublicationStudent{}).
		Select("in_publication_students.*").
		Joins("JOIN students ON students.student_id = in_publication_students.student_id").
		Where("in_publication_students.publication_id = ?", id).
		Order("in_publication_students.author_order ASC, students.first_name ASC, students.last_name ASC").
		Preload("Student").
		Find(&authors).Error
	if err != nil {
		return nil, storageErr("load authors", err)
	}
	return authors, nil
}

// Promote moves an approved draft entry into the in-publication pipeline:
// entry metadata and author rows are copied verbatim, and the source entry's
// workflow marker flips to moved_to_publication. The approval status, the
// document links and the single-promotion rule are all re-checked here
// against the stored row; nothing is assumed from earlier updates. Every step
// runs in one transaction, so a failed promotion leaves the draft entry
// active and untouched.
func (s *InPublicationService) Promote(readyEntryID uint) (*models.InPublication, error) {
	var ready models.ReadyForPublication
	if err := s.db.Where("ready_publication_id = ?", readyEntryID).First(&ready).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "ready-for-publication entry", ID: readyEntryID}
		}
		return nil, storageErr("load entry", err)
	}

	if ready.Status != models.StatusApproved {
		return nil, &ValidationError{Reason: "entry is not approved for publication"}
	}
	if !ready.HasRequiredDocuments() {
		return nil, &ValidationError{
			Reason: "cannot promote: first draft link and AI detection link are both required",
		}
	}

	var moved models.InPublication
	err := s.db.Where("ready_publication_id = ?", readyEntryID).First(&moved).Error
	if err == nil {
		return nil, &ConflictError{
			Reason:         "entry was already moved to publication",
			ExistingID:     moved.PublicationID,
			Status:         ready.Status,
			WorkflowStatus: models.WorkflowMovedToPublication,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("check existing publication", err)
	}

	var authors []models.ReadyForPublicationStudent
	if err := s.db.Where("ready_publication_id = ?", readyEntryID).
		Order("author_order ASC").
		Find(&authors).Error; err != nil {
		return nil, storageErr("load authors", err)
	}

	now := time.Now()
	publication := models.InPublication{
		ReadyPublicationID:   ready.ReadyPublicationID,
		ProjectID:            ready.ProjectID,
		ReferenceCode:        uuid.NewString(),
		PaperTitle:           ready.PaperTitle,
		MentorAffiliation:    ready.MentorAffiliation,
		FirstDraftLink:       ready.FirstDraftLink,
		PlagiarismReportLink: ready.PlagiarismReportLink,
		AIDetectionLink:      ready.AIDetectionLink,
		Notes:                ready.Notes,
		CreatedAt:            now,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&publication).Error; err != nil {
			return storageErr("insert publication", err)
		}

		if len(authors) > 0 {
			copied := make([]models.InPublicationStudent, 0, len(authors))
			for _, a := range authors {
				copied = append(copied, models.InPublicationStudent{
					PublicationID: publication.PublicationID,
					StudentID:     a.StudentID,
					Affiliation:   a.Affiliation,
					Address:       a.Address,
					AuthorOrder:   a.AuthorOrder,
					CreatedAt:     now,
				})
			}
			if err := tx.Create(&copied).Error; err != nil {
				return storageErr("copy authors", err)
			}
		}

		flip := map[string]interface{}{
			"workflow_status":   models.WorkflowMovedToPublication,
			"active_project_id": nil,
			"updated_at":        now,
		}
		if err := tx.Model(&models.ReadyForPublication{}).
			Where("ready_publication_id = ?", readyEntryID).
			Updates(flip).Error; err != nil {
			return storageErr("flip workflow status", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &publication, nil
}

// Update applies the supplied fields and refreshes updated_at.
func (s *InPublicationService) Update(id uint, input InPublicationUpdate) (*models.InPublication, error) {
	var entry models.InPublication
	if err := s.db.Where("publication_id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "publication", ID: id}
		}
		return nil, storageErr("load publication", err)
	}

	if err := validateDocumentLinks(input.FirstDraftLink, input.PlagiarismReportLink, input.AIDetectionLink); err != nil {
		return nil, err
	}
	if input.FinalPaperLink != nil && !utils.ValidateLink(*input.FinalPaperLink) {
		return nil, &ValidationError{Reason: "final_paper_link must be an absolute http(s) URL"}
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
	if input.FinalPaperLink != nil {
		updates["final_paper_link"] = *input.FinalPaperLink
	}
	if input.AIDetectionLink != nil {
		updates["ai_detection_link"] = *input.AIDetectionLink
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, storageErr("update publication", err)
	}

	if err := s.db.Where("publication_id = ?", id).First(&entry).Error; err != nil {
		return nil, storageErr("reload publication", err)
	}
	return &entry, nil
}

// ListVenueCatalog returns the active conference lookup rows for UI pickers.
func (s *InPublicationService) ListVenueCatalog() ([]models.Conference, error) {
	var conferences []models.Conference
	err := s.db.Where("is_active = ?", true).
		Order("conference_name ASC").
		Find(&conferences).Error
	if err != nil {
		return nil, storageErr("list conferences", err)
	}
	return conferences, nil
}

// ListJournalCatalog returns the active journal lookup rows for UI pickers.
func (s *InPublicationService) ListJournalCatalog() ([]models.Journal, error) {
	var journals []models.Journal
	err := s.db.Where("is_active = ?", true).
		Order("journal_name ASC").
		Find(&journals).Error
	if err != nil {
		return nil, storageErr("list journals", err)
	}
	return journals, nil
}

// ApplyToConference records one submission attempt to a conference. Repeat
// applications for the same entry, to the same or different conferences, are
// permitted.
func (s *InPublicationService) ApplyToConference(entryID uint, input ConferenceApplicationInput) (*models.PublicationConferenceApplication, error) {
	if _, err := s.GetByID(entryID); err != nil {
		return nil, err
	}

	var conference models.Conference
	if err := s.db.Where("conference_id = ?", input.ConferenceID).First(&conference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conference", ID: input.ConferenceID}
		}
		return nil, storageErr("load conference", err)
	}

	now := time.Now()
	applicationDate := now
	if input.ApplicationDate != nil {
		applicationDate = *input.ApplicationDate
	}
	status := input.Status
	if status == "" {
		status = models.ApplicationStatusSubmitted
	}

	application := models.PublicationConferenceApplication{
		PublicationID:      entryID,
		ConferenceID:       input.ConferenceID,
		ApplicationDate:    applicationDate,
		SubmissionDeadline: input.SubmissionDeadline,
		SubmissionLink:     input.SubmissionLink,
		Status:             status,
		Notes:              input.Notes,
		CreatedAt:          now,
	}
	if err := s.db.Create(&application).Error; err != nil {
		return nil, storageErr("insert conference application", err)
	}

	application.Conference = conference
	return &application, nil
}

// ApplyToJournal records one submission attempt to a journal.
func (s *InPublicationService) ApplyToJournal(entryID uint, input JournalApplicationInput) (*models.PublicationJournalApplication, error) {
	if _, err := s.GetByID(entryID); err != nil {
		return nil, err
	}

	var journal models.Journal
	if err := s.db.Where("journal_id = ?", input.JournalID).First(&journal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "journal", ID: input.JournalID}
		}
		return nil, storageErr("load journal", err)
	}

	now := time.Now()
	applicationDate := now
	if input.ApplicationDate != nil {
		applicationDate = *input.ApplicationDate
	}
	status := input.Status
	if status == "" {
		status = models.ApplicationStatusSubmitted
	}

	application := models.PublicationJournalApplication{
		PublicationID:      entryID,
		JournalID:          input.JournalID,
		ManuscriptID:       input.ManuscriptID,
		ApplicationDate:    applicationDate,
		SubmissionDeadline: input.SubmissionDeadline,
		SubmissionLink:     input.SubmissionLink,
		Status:             status,
		Notes:              input.Notes,
		CreatedAt:          now,
	}
	if err := s.db.Create(&application).Error; err != nil {
		return nil, storageErr("insert journal application", err)
	}

	application.Journal = journal
	return &application, nil
}

// ListConferenceApplications returns an entry's conference applications with
// venue master data, newest application first.
func (s *InPublicationService) ListConferenceApplications(entryID uint) ([]models.PublicationConferenceApplication, error) {
	var applications []models.PublicationConferenceApplication
	err := s.db.Preload("Conference").
		Where("publication_id = ?", entryID).
		Order("application_date DESC, application_id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, storageErr("list conference applications", err)
	}
	return applications, nil
}

// ListJournalApplications returns an entry's journal applications with venue
// master data, newest application first.
func (s *InPublicationService) ListJournalApplications(entryID uint) ([]models.PublicationJournalApplication, error) {
	var applications []models.PublicationJournalApplication
	err := s.db.Preload("Journal").
		Where("publication_id = ?", entryID).
		Order("application_date DESC, application_id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, storageErr("list journal applications", err)
	}
	return applications, nil
}

// UpdateConferenceApplicationStatus records the outcome of one conference
// submission in place.
func (s *InPublicationService) UpdateConferenceApplicationStatus(applicationID uint, input VenueApplicationStatusUpdate) (*models.PublicationConferenceApplication, error) {
	var application models.PublicationConferenceApplication
	if err := s.db.Where("application_id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conference application", ID: applicationID}
		}
		return nil, storageErr("load conference application", err)
	}

	updates := map[string]interface{}{
		"status":     input.Status,
		"updated_at": time.Now(),
	}
	if input.Feedback != nil {
		updates["feedback"] = *input.Feedback
	}
	if input.ResponseDate != nil {
		updates["response_date"] = *input.ResponseDate
	}
	if err := s.db.Model(&application).Updates(updates).Error; err != nil {
		return nil, storageErr("update conference application", err)
	}

	if err := s.db.Preload("Conference").
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		return nil, storageErr("reload conference application", err)
	}
	return &application, nil
}

// UpdateJournalApplicationStatus records the outcome of one journal
// submission in place.
func (s *InPublicationService) UpdateJournalApplicationStatus(applicationID uint, input VenueApplicationStatusUpdate) (*models.PublicationJournalApplication, error) {
	var application models.PublicationJournalApplication
	if err := s.db.Where("application_id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "journal application", ID: applicationID}
		}
		return nil, storageErr("load journal application", err)
	}

	updates := map[string]interface{}{
		"status":     input.Status,
		"updated_at": time.Now(),
	}
	if input.Feedback != nil {
		updates["feedback"] = *input.Feedback
	}
	if input.ResponseDate != nil {
		updates["response_date"] = *input.ResponseDate
	}
	if err := s.db.Model(&application).Updates(updates).Error; err != nil {
		return nil, storageErr("update journal application", err)
	}

	if err := s.db.Preload("Journal").
		Where("application_id = ?", applicationID).
		First(&application).Error; err != nil {
		return nil, storageErr("reload journal application", err)
	}
	return &application, nil
}

// Statistics returns the total entry count plus status-grouped counts for
// conference and journal applications.
func (s *InPublicationService) Statistics() (*InPublicationStatistics, error) {
	stats := &InPublicationStatistics{}

	if err := s.db.Model(&models.InPublication{}).Count(&stats.Total).Error; err != nil {
		return nil, storageErr("count publications", err)
	}

	err := s.db.Model(&models.PublicationConferenceApplication{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.ConferenceByState).Error
	if err != nil {
		return nil, storageErr("count conference applications", err)
	}

	err = s.db.Model(&models.PublicationJournalApplication{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.JournalByState).Error
	if err != nil {
		return nil, storageErr("count journal applications", err)
	}

	return stats, nil
}
