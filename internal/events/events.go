// Package events defines the cross-service event payloads the reference-data
// consumer ingests.
package events

import (
	"time"

	"example.com/referencedata/internal/domain"
)

// LanguageChanged is emitted by the settings service when a user selects a
// new display language.
type LanguageChanged struct {
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	Language   string    `json:"language"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BackupImported carries a restored backup to be merged into the reference
// stores. Partial or invalid records are tolerated and skipped downstream.
type BackupImported struct {
	TenantID   string        `json:"tenant_id"`
	UserID     string        `json:"user_id"`
	Backup     domain.Backup `json:"backup"`
	ImportedAt time.Time     `json:"imported_at"`
}

// ReferenceRemoved is emitted as part of record removal, before the removal
// completes, so dependent services (workout history, usage tracking) can
// clean up. A failed emission aborts the removal.
type ReferenceRemoved struct {
	Domain    string    `json:"domain"`
	RecordID  string    `json:"record_id"`
	RemovedAt time.Time `json:"removed_at"`
}
