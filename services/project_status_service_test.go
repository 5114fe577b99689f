package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"research-program-api/config"
)

var projectStatusLoadPattern = regexp.MustCompile("SELECT \\* FROM `project_statuses` WHERE is_active = \\? ORDER BY display_order ASC")

var projectStatusColumns = []string{"status_id", "status_name", "display_order", "is_active"}

func projectStatusRows() [][]driver.Value {
	return [][]driver.Value{
		{int64(1), "Ongoing", int64(1), true},
		{int64(2), "Completed", int64(2), true},
	}
}

// swapGlobalDB points the package-level connection at the scripted store for
// the duration of one test; the status cache reads through config.DB.
func swapGlobalDB(t *testing.T, steps []*queryStep) (*scriptedDB, func()) {
	t.Helper()
	db, state, cleanup := newScriptedGormDB(t, steps)
	previous := config.DB
	config.DB = db
	ClearProjectStatusCache()
	return state, func() {
		config.DB = previous
		ClearProjectStatusCache()
		cleanup()
	}
}

func TestGetProjectStatusByNameCachesLookups(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: projectStatusLoadPattern,
			columns: projectStatusColumns,
			rows:    projectStatusRows(),
		},
	}

	state, restore := swapGlobalDB(t, steps)
	defer restore()

	status, err := GetProjectStatusByName("Ongoing")
	if err != nil {
		t.Fatalf("GetProjectStatusByName returned error: %v", err)
	}
	if status.StatusID != 1 {
		t.Fatalf("expected status id 1, got %d", status.StatusID)
	}

	// Second lookup is served from the cache; no further query may run.
	status, err = GetProjectStatusByName("Completed")
	if err != nil {
		t.Fatalf("cached lookup returned error: %v", err)
	}
	if status.StatusID != 2 {
		t.Fatalf("expected status id 2, got %d", status.StatusID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListActiveFiltersByProjectStatusName(t *testing.T) {
	listPattern := regexp.MustCompile("SELECT ready_for_publication\\.\\* FROM `ready_for_publication` JOIN projects ON projects\\.project_id = ready_for_publication\\.project_id WHERE ready_for_publication\\.workflow_status = \\? AND projects\\.status_id = \\? ORDER BY ready_for_publication\\.created_at DESC")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: projectStatusLoadPattern,
			columns: projectStatusColumns,
			rows:    projectStatusRows(),
		},
		{
			kind:    kindQuery,
			pattern: listPattern,
			args:    []driver.Value{"active", int64(1)},
			columns: []string{"ready_publication_id"},
			rows:    [][]driver.Value{},
		},
	}

	state, restore := swapGlobalDB(t, steps)
	defer restore()

	svc := NewReadyPublicationService(config.DB)

	entries, err := svc.ListActive(ReadyPublicationFilter{ProjectStatus: "Ongoing"})
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListActiveRejectsUnknownProjectStatusName(t *testing.T) {
	// The cache refreshes once before giving up on an unknown name.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: projectStatusLoadPattern,
			columns: projectStatusColumns,
			rows:    projectStatusRows(),
		},
		{
			kind:    kindQuery,
			pattern: projectStatusLoadPattern,
			columns: projectStatusColumns,
			rows:    projectStatusRows(),
		},
	}

	state, restore := swapGlobalDB(t, steps)
	defer restore()

	svc := NewReadyPublicationService(config.DB)

	_, err := svc.ListActive(ReadyPublicationFilter{ProjectStatus: "Archived"})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for unknown project status, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
