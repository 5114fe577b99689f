package services

import (
	"database/sql/driver"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestDeadlineReminderMailsOneDigest(t *testing.T) {
	t.Setenv("DEADLINE_REMINDER_TO", "research-office@example.org")

	conferencePattern := regexp.MustCompile("(?s)SELECT in_publication\\.paper_title, conferences\\.conference_name AS venue_name.*FROM `publication_conference_applications`.*submission_deadline BETWEEN \\? AND \\?.*status NOT IN \\(\\?, \\?\\)")
	journalPattern := regexp.MustCompile("(?s)SELECT in_publication\\.paper_title, journals\\.journal_name AS venue_name.*FROM `publication_journal_applications`.*submission_deadline BETWEEN \\? AND \\?.*status NOT IN \\(\\?, \\?\\)")

	deadline := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: conferencePattern,
			columns: []string{"paper_title", "venue_name", "status", "submission_deadline"},
			rows: [][]driver.Value{
				{"Crop Disease Detection with Drones", "Intl. Conference on Agricultural Informatics", "submitted", deadline},
			},
		},
		{
			kind:    kindQuery,
			pattern: journalPattern,
			columns: []string{"paper_title", "venue_name", "status", "submission_deadline"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	var sentTo []string
	var sentBody string
	svc := &DeadlineReminderService{
		db:  db,
		now: func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) },
		send: func(to []string, subject, html string) error {
			sentTo = to
			sentBody = html
			return nil
		},
	}

	summary, err := svc.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.ConferenceCount != 1 || summary.JournalCount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !summary.MailSent {
		t.Fatalf("expected a mail to be sent")
	}
	if len(sentTo) != 1 || sentTo[0] != "research-office@example.org" {
		t.Fatalf("unexpected recipients: %v", sentTo)
	}
	if !strings.Contains(sentBody, "Crop Disease Detection with Drones") ||
		!strings.Contains(sentBody, "2025-03-05") {
		t.Fatalf("digest body missing entry details: %s", sentBody)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeadlineReminderSkipsMailWhenNothingDue(t *testing.T) {
	t.Setenv("DEADLINE_REMINDER_TO", "research-office@example.org")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("FROM `publication_conference_applications`"),
			columns: []string{"paper_title", "venue_name", "status", "submission_deadline"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("FROM `publication_journal_applications`"),
			columns: []string{"paper_title", "venue_name", "status", "submission_deadline"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := &DeadlineReminderService{
		db:  db,
		now: time.Now,
		send: func(to []string, subject, html string) error {
			t.Fatalf("no mail should be sent for an empty digest")
			return nil
		},
	}

	summary, err := svc.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.MailSent {
		t.Fatalf("expected no mail for empty digest")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
