// Package api exposes HTTP handlers for the reference-data service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/referencedata/internal/auth"
	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/hydration"
	"example.com/referencedata/internal/join"
	"example.com/referencedata/internal/similarity"
	"example.com/referencedata/internal/store"
)

// Deps bundles the engine components the handlers operate on.
type Deps struct {
	Exercises    *store.Store[domain.Exercise, *domain.Exercise]
	GymEquipment *store.Store[domain.GymEquipment, *domain.GymEquipment]
	Joiner       *join.Joiner
	Muscles      *hydration.Service
	Equipment    *hydration.Service
	Categories   *hydration.Service
	Resolvers    join.Resolvers
}

// Handler handles HTTP interactions.
type Handler struct {
	deps Deps
}

// NewHandler constructs Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// RegisterRoutes sets up routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/exercises", h.exercises)
	mux.HandleFunc("/v1/exercises/", h.exerciseByID)
	mux.HandleFunc("/v1/equipment", h.equipment)
	mux.HandleFunc("/v1/equipment/", h.equipmentByID)
	mux.HandleFunc("/v1/vocabulary/", h.vocabulary)
	mux.HandleFunc("/v1/backup", h.backup)
	mux.HandleFunc("/v1/language", h.language)
	mux.HandleFunc("/v1/stats/muscles", h.muscleStats)
	mux.HandleFunc("/healthz", healthz)
}

// healthz returns an OK response for readiness probes.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) exercises(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listExercises(w, r)
	case http.MethodPost:
		h.addExercise(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// listExercises serves the hydrated default listing. Hidden records are
// excluded unless include_hidden is set; muscle/equipment filters accept any
// alias spelling.
func (h *Handler) listExercises(w http.ResponseWriter, r *http.Request) {
	if !h.requireRead(w, r) {
		return
	}

	var items []join.HydratedExercise
	if r.URL.Query().Get("include_hidden") == "true" {
		items = h.deps.Joiner.Snapshot()
	} else {
		items = h.deps.Joiner.Visible()
	}

	if muscle := r.URL.Query().Get("muscle"); muscle != "" {
		items = filterByMuscle(items, h.deps.Resolvers.Muscles.Resolve(muscle))
	}
	if equipment := r.URL.Query().Get("equipment"); equipment != "" {
		items = filterByEquipment(items, h.deps.Resolvers.Equipment.Resolve(equipment))
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	if !h.requireWrite(w, r) {
		return
	}

	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	added, err := h.deps.Exercises.Add(r.Context(), h.normalizeExercise(req))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"exercise": h.deps.Joiner.Hydrate(added)})
}

func (h *Handler) exerciseByID(w http.ResponseWriter, r *http.Request) {
	id, action := splitIDAction(strings.TrimPrefix(r.URL.Path, "/v1/exercises/"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing exercise id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.getExercise(w, r, id)
	case action == "" && r.Method == http.MethodPut:
		h.updateExercise(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		h.removeExercise(w, r, id)
	case action == "hide" && r.Method == http.MethodPost:
		h.setExerciseHidden(w, r, id, true)
	case action == "unhide" && r.Method == http.MethodPost:
		h.setExerciseHidden(w, r, id, false)
	case action == "similar" && r.Method == http.MethodGet:
		h.similarExercises(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) getExercise(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireRead(w, r) {
		return
	}
	record, ok := h.deps.Exercises.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise": h.deps.Joiner.Hydrate(record)})
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireWrite(w, r) {
		return
	}

	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	record := h.normalizeExercise(req)
	record.ID = id
	// The payload has no usage fields; an update must not erase them.
	if current, ok := h.deps.Exercises.Get(id); ok {
		record.LastUsedAt = current.LastUsedAt
	}

	updated, err := h.deps.Exercises.Update(r.Context(), record)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise": h.deps.Joiner.Hydrate(updated)})
}

func (h *Handler) removeExercise(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireWrite(w, r) {
		return
	}
	if err := h.deps.Exercises.Remove(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setExerciseHidden(w http.ResponseWriter, r *http.Request, id string, hidden bool) {
	if !h.requireWrite(w, r) {
		return
	}
	var err error
	if hidden {
		err = h.deps.Exercises.Hide(r.Context(), id)
	} else {
		err = h.deps.Exercises.Unhide(r.Context(), id)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) similarExercises(w http.ResponseWriter, r *http.Request, id string) {
	if !h.requireRead(w, r) {
		return
	}
	base, ok := h.deps.Exercises.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "exercise not found")
		return
	}

	count := 5
	if raw := r.URL.Query().Get("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			count = parsed
		}
	}

	ranked := similarity.Rank(base, h.deps.Exercises.Visible(), count, h.deps.Resolvers.Muscles)
	items := make([]join.HydratedExercise, 0, len(ranked))
	for _, record := range ranked {
		items = append(items, h.deps.Joiner.Hydrate(record))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) equipment(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listEquipment(w, r)
	case http.MethodPost:
		h.addEquipment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	if !h.requireRead(w, r) {
		return
	}
	var items []domain.GymEquipment
	if r.URL.Query().Get("include_hidden") == "true" {
		items = h.deps.GymEquipment.All()
	} else {
		items = h.deps.GymEquipment.Visible()
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) addEquipment(w http.ResponseWriter, r *http.Request) {
	if !h.requireWrite(w, r) {
		return
	}

	var req GymEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	added, err := h.deps.GymEquipment.Add(r.Context(), domain.GymEquipment{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		TypeID:   h.deps.Resolvers.Equipment.Resolve(req.Type),
		Quantity: req.Quantity,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"equipment": added})
}

func (h *Handler) equipmentByID(w http.ResponseWriter, r *http.Request) {
	id, action := splitIDAction(strings.TrimPrefix(r.URL.Path, "/v1/equipment/"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing equipment id")
		return
	}
	if !h.requireWrite(w, r) {
		return
	}

	var err error
	switch {
	case action == "" && r.Method == http.MethodPut:
		h.updateEquipment(w, r, id)
		return
	case action == "" && r.Method == http.MethodDelete:
		err = h.deps.GymEquipment.Remove(r.Context(), id)
	case action == "hide" && r.Method == http.MethodPost:
		err = h.deps.GymEquipment.Hide(r.Context(), id)
	case action == "unhide" && r.Method == http.MethodPost:
		err = h.deps.GymEquipment.Unhide(r.Context(), id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateEquipment(w http.ResponseWriter, r *http.Request, id string) {
	var req GymEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	updated, err := h.deps.GymEquipment.Update(r.Context(), domain.GymEquipment{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		TypeID:   h.deps.Resolvers.Equipment.Resolve(req.Type),
		Quantity: req.Quantity,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"equipment": updated})
}

// vocabulary serves the hydrated snapshot of one canonical domain.
func (h *Handler) vocabulary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireRead(w, r) {
		return
	}

	var svc *hydration.Service
	switch strings.TrimPrefix(r.URL.Path, "/v1/vocabulary/") {
	case "muscles":
		svc = h.deps.Muscles
	case "equipment":
		svc = h.deps.Equipment
	case "categories":
		svc = h.deps.Categories
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown vocabulary domain")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language": svc.Language(),
		"items":    svc.Snapshot(),
	})
}

func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.exportBackup(w, r)
	case http.MethodPost:
		h.importBackup(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// exportBackup returns the full in-memory arrays as-is, hidden records
// included.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireRead(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, domain.Backup{
		Exercises:    h.deps.Exercises.Backup(),
		GymEquipment: h.deps.GymEquipment.Backup(),
	})
}

func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireWrite(w, r) {
		return
	}

	var backup domain.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	exerciseReport, err := h.deps.Exercises.MergeImport(r.Context(), backup.Exercises)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	equipmentReport, err := h.deps.GymEquipment.MergeImport(r.Context(), backup.GymEquipment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exercises":     exerciseReport,
		"gym_equipment": equipmentReport,
	})
}

// language switches the active display language for every hydration domain,
// the HTTP mirror of the settings.language_changed event.
func (h *Handler) language(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireWrite(w, r) {
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Language) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "language is required")
		return
	}

	language := strings.TrimSpace(req.Language)
	for _, svc := range []*hydration.Service{h.deps.Muscles, h.deps.Equipment, h.deps.Categories} {
		svc.SetLanguage(r.Context(), language)
	}
	w.WriteHeader(http.StatusAccepted)
}

// muscleStats aggregates raw (non-hydrated) records keyed by canonical
// muscle id for the stats consumer.
func (h *Handler) muscleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireRead(w, r) {
		return
	}

	counts := make(map[string]int)
	for _, record := range h.deps.Exercises.Visible() {
		for _, id := range h.deps.Resolvers.Muscles.ResolveAll(record.Muscles) {
			counts[id]++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"muscles": counts})
}

func (h *Handler) normalizeExercise(req ExerciseRequest) domain.Exercise {
	return domain.Exercise{
		ID:            req.ID,
		Name:          strings.TrimSpace(req.Name),
		CategoryID:    h.deps.Resolvers.Categories.Resolve(req.Category),
		PrimaryMuscle: h.deps.Resolvers.Muscles.Resolve(req.PrimaryMuscle),
		Muscles:       h.deps.Resolvers.Muscles.ResolveAll(req.Muscles),
		Equipment:     h.deps.Resolvers.Equipment.ResolveAll(req.Equipment),
		Notes:         req.Notes,
	}
}

func (h *Handler) requireRead(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.CanRead() {
		writeError(w, http.StatusForbidden, "forbidden", "scope reference:read required")
		return false
	}
	return true
}

func (h *Handler) requireWrite(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(auth.ScopeReferenceWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope reference:write required")
		return false
	}
	return true
}

// ExerciseRequest represents the exercise create/update payload. Muscle,
// equipment, and category references accept any alias spelling.
type ExerciseRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	PrimaryMuscle string   `json:"primary_muscle"`
	Muscles       []string `json:"muscles"`
	Equipment     []string `json:"equipment"`
	Notes         string   `json:"notes"`
}

// GymEquipmentRequest represents the inventory create/update payload.
type GymEquipmentRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

func splitIDAction(path string) (string, string) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", ""
	}
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func filterByMuscle(items []join.HydratedExercise, muscleID string) []join.HydratedExercise {
	out := make([]join.HydratedExercise, 0, len(items))
	for _, item := range items {
		for _, muscle := range item.MuscleGroups {
			if muscle.ID == muscleID {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func filterByEquipment(items []join.HydratedExercise, equipmentID string) []join.HydratedExercise {
	out := make([]join.HydratedExercise, 0, len(items))
	for _, item := range items {
		for _, equipment := range item.EquipmentNeeded {
			if equipment.ID == equipmentID {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
