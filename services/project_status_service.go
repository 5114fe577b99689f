package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"research-program-api/config"
	"research-program-api/models"
)

var (
	statusCacheMu sync.RWMutex
	statusCache   *statusCacheEntry
	statusTTL     = 5 * time.Minute
)

type statusCacheEntry struct {
	statuses  []models.ProjectStatus
	byName    map[string]models.ProjectStatus
	fetchedAt time.Time
}

func loadProjectStatuses(force bool) (*statusCacheEntry, error) {
	statusCacheMu.RLock()
	cached := statusCache
	statusCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < statusTTL {
		return cached, nil
	}

	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()

	if statusCache != nil && !force && time.Since(statusCache.fetchedAt) < statusTTL {
		return statusCache, nil
	}

	var rows []models.ProjectStatus
	if err := config.DB.Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load project statuses: %w", err)
	}

	byName := make(map[string]models.ProjectStatus, len(rows))
	for _, status := range rows {
		if status.StatusName == "" {
			continue
		}
		byName[strings.TrimSpace(status.StatusName)] = status
	}

	entry := &statusCacheEntry{
		statuses:  rows,
		byName:    byName,
		fetchedAt: time.Now(),
	}
	statusCache = entry
	return entry, nil
}

// ClearProjectStatusCache invalidates the in-memory status cache.
func ClearProjectStatusCache() {
	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()
	statusCache = nil
}

// GetProjectStatuses returns all active project statuses with caching
// support, for filter dropdowns on the workflow list pages.
func GetProjectStatuses() ([]models.ProjectStatus, error) {
	entry, err := loadProjectStatuses(false)
	if err != nil {
		return nil, err
	}
	return entry.statuses, nil
}

// GetProjectStatusByName returns the project status matching the exact
// status_name.
func GetProjectStatusByName(name string) (*models.ProjectStatus, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New("status name is required")
	}

	entry, err := loadProjectStatuses(false)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byName[trimmed]; ok {
		return &status, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadProjectStatuses(true)
	if err != nil {
		return nil, err
	}

	if status, ok := entry.byName[trimmed]; ok {
		return &status, nil
	}

	return nil, fmt.Errorf("status '%s' not found", trimmed)
}
