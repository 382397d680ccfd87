package domain

import (
	"fmt"
	"strings"
	"time"
)

type PurgeMode string

const (
	PurgeManual    PurgeMode = "manual"
	PurgeCancelled PurgeMode = "cancelled"
	PurgeAged      PurgeMode = "aged"
)

// DefaultRetentionWindow is how long a file is kept before it becomes aged.
const DefaultRetentionWindow = 30 * 24 * time.Hour

const tombstonePrefix = "purged:"

func ParsePurgeMode(s string) (PurgeMode, error) {
	switch m := PurgeMode(s); m {
	case PurgeManual, PurgeCancelled, PurgeAged:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown purge mode %q", ErrValidation, s)
}

// Tombstone is the sentinel written in place of a purged file's storage path.
func (m PurgeMode) Tombstone() string {
	return tombstonePrefix + string(m)
}

func IsTombstone(path string) bool {
	return strings.HasPrefix(path, tombstonePrefix)
}

type MaintenanceEventType string

const (
	MaintenancePricesAdjusted MaintenanceEventType = "prices_adjusted"
	MaintenanceFilesPurged    MaintenanceEventType = "files_purged"
)

type MaintenanceEvent struct {
	Type       MaintenanceEventType
	ActorID    string
	Percent    string
	Mode       PurgeMode
	Affected   int64
	Failed     int64
	OccurredAt time.Time
}

type PurgeResult struct {
	FilesPurged int64
	FilesFailed int64
}
