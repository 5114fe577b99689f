package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"research-program-api/config"

	"gorm.io/gorm"
)

// upcomingDeadline is one venue application whose submission deadline falls
// inside the reminder window.
type upcomingDeadline struct {
	PaperTitle         string    `gorm:"column:paper_title"`
	VenueName          string    `gorm:"column:venue_name"`
	Status             string    `gorm:"column:status"`
	SubmissionDeadline time.Time `gorm:"column:submission_deadline"`
}

// DeadlineReminderSummary reports what one reminder run found and sent.
type DeadlineReminderSummary struct {
	ConferenceCount int  `json:"conference_count"`
	JournalCount    int  `json:"journal_count"`
	MailSent        bool `json:"mail_sent"`
}

// DeadlineReminderService mails the research office a digest of conference
// and journal applications whose submission deadlines are close. It is run
// from the cron scheduler in main, but can be triggered ad hoc.
type DeadlineReminderService struct {
	db   *gorm.DB
	now  func() time.Time
	send func(to []string, subject, html string) error
}

func NewDeadlineReminderService(db *gorm.DB) *DeadlineReminderService {
	if db == nil {
		db = config.DB
	}
	return &DeadlineReminderService{
		db:   db,
		now:  time.Now,
		send: config.SendMail,
	}
}

// reminderWindowDays reads DEADLINE_REMINDER_DAYS, defaulting to 7.
func reminderWindowDays() int {
	if v, err := strconv.Atoi(os.Getenv("DEADLINE_REMINDER_DAYS")); err == nil && v > 0 {
		return v
	}
	return 7
}

// Run collects the open venue applications due within the reminder window and
// mails one digest to DEADLINE_REMINDER_TO. Applications already accepted or
// rejected are skipped; their deadline no longer matters.
func (s *DeadlineReminderService) Run() (*DeadlineReminderSummary, error) {
	from := s.now()
	to := from.AddDate(0, 0, reminderWindowDays())

	var conferences []upcomingDeadline
	err := s.db.Table("publication_conference_applications").
		Select("in_publication.paper_title, conferences.conference_name AS venue_name, "+
			"publication_conference_applications.status, publication_conference_applications.submission_deadline").
		Joins("JOIN in_publication ON in_publication.publication_id = publication_conference_applications.publication_id").
		Joins("JOIN conferences ON conferences.conference_id = publication_conference_applications.conference_id").
		Where("publication_conference_applications.submission_deadline BETWEEN ? AND ?", from, to).
		Where("publication_conference_applications.status NOT IN (?, ?)", "accepted", "rejected").
		Order("publication_conference_applications.submission_deadline ASC").
		Scan(&conferences).Error
	if err != nil {
		return nil, storageErr("load conference deadlines", err)
	}

	var journals []upcomingDeadline
	err = s.db.Table("publication_journal_applications").
		Select("in_publication.paper_title, journals.journal_name AS venue_name, "+
			"publication_journal_applications.status, publication_journal_applications.submission_deadline").
		Joins("JOIN in_publication ON in_publication.publication_id = publication_journal_applications.publication_id").
		Joins("JOIN journals ON journals.journal_id = publication_journal_applications.journal_id").
		Where("publication_journal_applications.submission_deadline BETWEEN ? AND ?", from, to).
		Where("publication_journal_applications.status NOT IN (?, ?)", "accepted", "rejected").
		Order("publication_journal_applications.submission_deadline ASC").
		Scan(&journals).Error
	if err != nil {
		return nil, storageErr("load journal deadlines", err)
	}

	summary := &DeadlineReminderSummary{
		ConferenceCount: len(conferences),
		JournalCount:    len(journals),
	}
	if len(conferences) == 0 && len(journals) == 0 {
		return summary, nil
	}

	recipient := os.Getenv("DEADLINE_REMINDER_TO")
	if recipient == "" {
		log.Println("Deadline reminder: DEADLINE_REMINDER_TO not set, skipping mail")
		return summary, nil
	}

	subject := fmt.Sprintf("Submission deadlines in the next %d days", reminderWindowDays())
	if err := s.send([]string{recipient}, subject, renderDeadlineDigest(conferences, journals)); err != nil {
		return summary, fmt.Errorf("send reminder mail: %w", err)
	}
	summary.MailSent = true
	return summary, nil
}

func renderDeadlineDigest(conferences, journals []upcomingDeadline) string {
	var b strings.Builder
	b.WriteString("<h3>Upcoming submission deadlines</h3>")

	writeSection := func(title string, rows []upcomingDeadline) {
		if len(rows) == 0 {
			return
		}
		b.WriteString("<h4>" + title + "</h4><ul>")
		for _, row := range rows {
			fmt.Fprintf(&b, "<li><b>%s</b> — %s (%s), due %s</li>",
				row.PaperTitle, row.VenueName, row.Status,
				row.SubmissionDeadline.Format("2006-01-02"))
		}
		b.WriteString("</ul>")
	}

	writeSection("Conferences", conferences)
	writeSection("Journals", journals)
	return b.String()
}
