package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"research-program-api/models"
)

var (
	loadReadyPattern   = regexp.MustCompile("SELECT \\* FROM `ready_for_publication` WHERE ready_publication_id = \\?")
	checkMovedPattern  = regexp.MustCompile("SELECT \\* FROM `in_publication` WHERE ready_publication_id = \\?")
	readyColumns       = []string{"ready_publication_id", "project_id", "paper_title", "mentor_affiliation", "first_draft_link", "plagiarism_report_link", "ai_detection_link", "status", "workflow_status", "notes"}
	approvedReadyRow   = []driver.Value{int64(8), int64(5), "Crop Disease Detection with Drones", "Machine Learning", "http://docs.example.org/draft", "http://docs.example.org/plagiarism", "http://docs.example.org/ai", "approved", "active", nil}
	readyAuthorColumns = []string{"record_id", "ready_publication_id", "student_id", "affiliation", "address", "author_order"}
)

func TestPromoteCopiesEntryAndAuthorsAndFlipsWorkflow(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadReadyPattern,
			columns: readyColumns,
			rows:    [][]driver.Value{approvedReadyRow},
		},
		{
			kind:    kindQuery,
			pattern: checkMovedPattern,
			columns: []string{"publication_id"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `ready_for_publication_students` WHERE ready_publication_id = \\? ORDER BY author_order ASC"),
			args:    []driver.Value{int64(8)},
			columns: readyAuthorColumns,
			rows: [][]driver.Value{
				{int64(11), int64(8), int64(21), "Science Faculty", nil, int64(1)},
				{int64(12), int64(8), int64(22), "Engineering Faculty", "12 Hill Road", int64(2)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `in_publication`"),
			result:  scriptedResult{lastInsertID: 30, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `in_publication_students`"),
			result:  scriptedResult{lastInsertID: 60, rowsAffected: 2},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `ready_for_publication` SET `active_project_id`=\\?,`updated_at`=\\?,`workflow_status`=\\? WHERE ready_publication_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	publication, err := svc.Promote(8)
	if err != nil {
		t.Fatalf("Promote returned error: %v", err)
	}

	if publication.PublicationID != 30 {
		t.Fatalf("expected publication id 30, got %d", publication.PublicationID)
	}
	if publication.ReadyPublicationID != 8 {
		t.Fatalf("expected back-reference to ready entry 8, got %d", publication.ReadyPublicationID)
	}
	if publication.PaperTitle != "Crop Disease Detection with Drones" {
		t.Fatalf("paper title not copied: %q", publication.PaperTitle)
	}
	if publication.FirstDraftLink != "http://docs.example.org/draft" ||
		publication.AIDetectionLink != "http://docs.example.org/ai" {
		t.Fatalf("document links not copied verbatim: %+v", publication)
	}
	if publication.ReferenceCode == "" {
		t.Fatalf("expected a reference code to be assigned")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPromoteRejectsUnapprovedEntry(t *testing.T) {
	pendingRow := []driver.Value{int64(8), int64(5), "Crop Disease Detection with Drones", "Machine Learning", "http://docs.example.org/draft", "", "http://docs.example.org/ai", "pending", "active", nil}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadReadyPattern,
			columns: readyColumns,
			rows:    [][]driver.Value{pendingRow},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	_, err := svc.Promote(8)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for unapproved entry, got %v", err)
	}

	// No publication row may have been inserted.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestPromoteRejectsMissingDocuments(t *testing.T) {
	// Approved but the AI detection link is gone; promotion re-checks the
	// stored row instead of trusting the earlier approval.
	brokenRow := []driver.Value{int64(8), int64(5), "Crop Disease Detection with Drones", "Machine Learning", "http://docs.example.org/draft", "", "", "approved", "active", nil}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadReadyPattern,
			columns: readyColumns,
			rows:    [][]driver.Value{brokenRow},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	_, err := svc.Promote(8)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for missing documents, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestPromoteRejectsSecondPromotion(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadReadyPattern,
			columns: readyColumns,
			rows:    [][]driver.Value{approvedReadyRow},
		},
		{
			kind:    kindQuery,
			pattern: checkMovedPattern,
			columns: []string{"publication_id", "ready_publication_id"},
			rows: [][]driver.Value{
				{int64(9), int64(8)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	_, err := svc.Promote(8)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.ExistingID != 9 {
		t.Fatalf("conflict should carry the existing publication id 9, got %d", conflict.ExistingID)
	}
	if conflict.WorkflowStatus != models.WorkflowMovedToPublication {
		t.Fatalf("conflict should report moved workflow status, got %q", conflict.WorkflowStatus)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateConferenceApplicationStatusRecordsOutcome(t *testing.T) {
	loadPattern := regexp.MustCompile("SELECT \\* FROM `publication_conference_applications` WHERE application_id = \\?")
	appColumns := []string{"application_id", "publication_id", "conference_id", "status", "feedback"}

	responseDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadPattern,
			columns: appColumns,
			rows: [][]driver.Value{
				{int64(15), int64(30), int64(2), "submitted", nil},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `publication_conference_applications` SET `feedback`=\\?,`response_date`=\\?,`status`=\\?,`updated_at`=\\? WHERE"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: loadPattern,
			columns: appColumns,
			rows: [][]driver.Value{
				{int64(15), int64(30), int64(2), "accepted", "Strong reviews"},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `conferences` WHERE `conferences`\\.`conference_id` = \\?"),
			columns: []string{"conference_id", "conference_name"},
			rows: [][]driver.Value{
				{int64(2), "Intl. Conference on Agricultural Informatics"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	feedback := "Strong reviews"
	application, err := svc.UpdateConferenceApplicationStatus(15, VenueApplicationStatusUpdate{
		Status:       models.ApplicationStatusAccepted,
		Feedback:     &feedback,
		ResponseDate: &responseDate,
	})
	if err != nil {
		t.Fatalf("UpdateConferenceApplicationStatus returned error: %v", err)
	}
	if application.Status != models.ApplicationStatusAccepted {
		t.Fatalf("expected accepted status, got %q", application.Status)
	}
	if application.Conference.ConferenceName == "" {
		t.Fatalf("expected conference master data to be joined in")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllComputesVenueAggregates(t *testing.T) {
	listPattern := regexp.MustCompile("(?s)SELECT in_publication\\.publication_id.*SELECT COUNT\\(\\*\\) FROM publication_conference_applications.*ca\\.status = 'accepted'.*SELECT COUNT\\(\\*\\) FROM publication_journal_applications.*JOIN projects ON projects\\.project_id = in_publication\\.project_id.*ORDER BY in_publication\\.created_at DESC")

	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: listPattern,
			columns: []string{"publication_id", "ready_publication_id", "project_id", "reference_code", "paper_title", "mentor_affiliation", "final_paper_link", "created_at", "project_name", "project_code", "status_name", "user_fname", "user_lname", "conference_total", "conference_accepted", "journal_total", "journal_accepted"},
			rows: [][]driver.Value{
				{int64(30), int64(8), int64(5), "ref-1", "Crop Disease Detection with Drones", "Machine Learning", "", created, "Crop Disease Detection with Drones", "PRJ-2025-005", "Ongoing", "Piyali", "Sen", int64(3), int64(1), int64(2), int64(0)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	rows, err := svc.ListAll(InPublicationFilter{})
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.ConferenceTotal != 3 || row.ConferenceAccepted != 1 {
		t.Fatalf("unexpected conference aggregates: %+v", row)
	}
	if row.JournalTotal != 2 || row.JournalAccepted != 0 {
		t.Fatalf("unexpected journal aggregates: %+v", row)
	}
	if row.ProjectName == "" || row.StatusName == "" {
		t.Fatalf("expected project context joined in: %+v", row)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListConferenceApplicationsNewestFirst(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `publication_conference_applications` WHERE publication_id = \\? ORDER BY application_date DESC, application_id DESC"),
			args:    []driver.Value{int64(30)},
			columns: []string{"application_id", "publication_id", "conference_id", "application_date", "status"},
			rows: [][]driver.Value{
				{int64(16), int64(30), int64(3), newer, "submitted"},
				{int64(15), int64(30), int64(2), older, "submitted"},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `conferences` WHERE `conferences`\\.`conference_id` IN \\(\\?,\\?\\)"),
			columns: []string{"conference_id", "conference_name"},
			rows: [][]driver.Value{
				{int64(3), "Conference B"},
				{int64(2), "Conference A"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewInPublicationService(db)

	applications, err := svc.ListConferenceApplications(30)
	if err != nil {
		t.Fatalf("ListConferenceApplications returned error: %v", err)
	}
	if len(applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(applications))
	}
	if !applications[0].ApplicationDate.After(applications[1].ApplicationDate) {
		t.Fatalf("applications not ordered newest first")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
