package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/events"
	"example.com/referencedata/internal/store"
)

// LanguageSwitcher is the slice of the hydration service the handler needs.
type LanguageSwitcher interface {
	SetLanguage(ctx context.Context, language string)
}

// ReferenceHandler routes settings and backup events into the hydration
// services and reference stores.
type ReferenceHandler struct {
	hydrators []LanguageSwitcher
	exercises *store.Store[domain.Exercise, *domain.Exercise]
	equipment *store.Store[domain.GymEquipment, *domain.GymEquipment]
	logger    *log.Logger
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(
	hydrators []LanguageSwitcher,
	exercises *store.Store[domain.Exercise, *domain.Exercise],
	equipment *store.Store[domain.GymEquipment, *domain.GymEquipment],
	logger *log.Logger,
) Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &ReferenceHandler{
		hydrators: hydrators,
		exercises: exercises,
		equipment: equipment,
		logger:    logger,
	}
}

// Handle dispatches on the event_type header. Unknown event types are
// ignored so the consumer can share topics with other services.
func (h *ReferenceHandler) Handle(ctx context.Context, msg Message) error {
	switch msg.EventType() {
	case "settings.language_changed":
		return h.handleLanguageChanged(ctx, msg)
	case "backup.imported":
		return h.handleBackupImported(ctx, msg)
	default:
		return nil
	}
}

func (h *ReferenceHandler) handleLanguageChanged(ctx context.Context, msg Message) error {
	var evt events.LanguageChanged
	if err := json.Unmarshal(stripSchemaHeader(msg.Payload), &evt); err != nil {
		return fmt.Errorf("decode language_changed: %w", err)
	}
	language := strings.TrimSpace(evt.Language)
	if language == "" {
		return fmt.Errorf("language_changed without language")
	}

	for _, hydrator := range h.hydrators {
		hydrator.SetLanguage(ctx, language)
	}
	h.logger.Printf("display language switched to %q", language)
	return nil
}

func (h *ReferenceHandler) handleBackupImported(ctx context.Context, msg Message) error {
	var evt events.BackupImported
	if err := json.Unmarshal(stripSchemaHeader(msg.Payload), &evt); err != nil {
		return fmt.Errorf("decode backup_imported: %w", err)
	}

	exerciseReport, err := h.exercises.MergeImport(ctx, evt.Backup.Exercises)
	if err != nil {
		return fmt.Errorf("merge exercises: %w", err)
	}
	RecordImport("exercises", exerciseReport.Added, exerciseReport.Updated, exerciseReport.Skipped)

	equipmentReport, err := h.equipment.MergeImport(ctx, evt.Backup.GymEquipment)
	if err != nil {
		return fmt.Errorf("merge gym equipment: %w", err)
	}
	RecordImport("gym_equipment", equipmentReport.Added, equipmentReport.Updated, equipmentReport.Skipped)

	h.logger.Printf("backup merged: exercises +%d/~%d/!%d equipment +%d/~%d/!%d",
		exerciseReport.Added, exerciseReport.Updated, exerciseReport.Skipped,
		equipmentReport.Added, equipmentReport.Updated, equipmentReport.Skipped)
	return nil
}

// stripSchemaHeader drops the Confluent Schema Registry wire prefix (magic
// byte + 4-byte schema id) when present.
func stripSchemaHeader(payload json.RawMessage) json.RawMessage {
	if len(payload) >= 5 && payload[0] == 0x00 {
		return payload[5:]
	}
	return payload
}
