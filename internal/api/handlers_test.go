package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"example.com/referencedata/internal/auth"
	"example.com/referencedata/internal/config"
	"example.com/referencedata/internal/domain"
	"example.com/referencedata/internal/engine"
	"example.com/referencedata/internal/join"
)

func newTestHandler(t *testing.T) (*Handler, *engine.Engine) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	eng, err := engine.Build(ctx, config.Config{DefaultLanguage: "en"})
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	go eng.Joiner.Run(ctx)

	return NewHandler(Deps{
		Exercises:    eng.Exercises,
		GymEquipment: eng.GymEquipment,
		Joiner:       eng.Joiner,
		Muscles:      eng.Muscles,
		Equipment:    eng.Equipment,
		Categories:   eng.Categories,
		Resolvers:    eng.Resolvers,
	}), eng
}

func authorized(req *http.Request, scopes ...string) *http.Request {
	claims := &auth.Claims{
		Subject:   "user",
		TenantID:  "tenant",
		Scopes:    scopesWith(scopes...),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func TestListExercisesReturnsHydratedSeeds(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/exercises", nil), auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Items []join.HydratedExercise `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Items) == 0 {
		t.Fatalf("expected seeded exercises in listing")
	}
	first := body.Items[0]
	if first.Category == nil || first.Category.Name == "" {
		t.Fatalf("expected hydrated category, got %+v", first.Category)
	}
	if first.PrimaryMuscleGroup == nil || first.PrimaryMuscleGroup.Name == "" {
		t.Fatalf("expected hydrated primary muscle, got %+v", first.PrimaryMuscleGroup)
	}
}

func TestListExercisesRequiresAuth(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/exercises", nil)
	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestListExercisesFiltersByMuscleAlias(t *testing.T) {
	handler, eng := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/exercises?muscle=Quads", nil), auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Items []join.HydratedExercise `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Items) == 0 {
		t.Fatalf("expected quadriceps exercises in the seed catalog")
	}
	for _, item := range body.Items {
		found := false
		for _, muscle := range item.MuscleGroups {
			if muscle.ID == "quadriceps" {
				found = true
			}
		}
		if !found {
			t.Fatalf("exercise %q does not work quadriceps", item.Name)
		}
	}
	if len(body.Items) == len(eng.Joiner.Visible()) {
		t.Fatalf("filter did not narrow the listing")
	}
}

func TestAddExerciseResolvesAliasedReferences(t *testing.T) {
	handler, _ := newTestHandler(t)

	payload := map[string]any{
		"name":           "Pistol Squat",
		"category":       "Bodyweight",
		"primary_muscle": "Quads",
		"muscles":        []string{"Quads", "Glutes"},
		"equipment":      []string{},
	}
	buf, _ := json.Marshal(payload)

	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/exercises", bytes.NewReader(buf)),
		auth.ScopeReferenceRead, auth.ScopeReferenceWrite)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Exercise join.HydratedExercise `json:"exercise"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Exercise.ID == "" {
		t.Fatalf("expected generated exercise id")
	}
	if body.Exercise.CategoryID != "bodyweightCalisthenics" {
		t.Fatalf("expected canonical category, got %q", body.Exercise.CategoryID)
	}
	if body.Exercise.PrimaryMuscle != "quadriceps" {
		t.Fatalf("expected canonical primary muscle, got %q", body.Exercise.PrimaryMuscle)
	}
}

func TestAddExerciseRequiresWriteScope(t *testing.T) {
	handler, _ := newTestHandler(t)

	buf, _ := json.Marshal(map[string]any{"name": "Sit-Up"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/exercises", bytes.NewReader(buf)),
		auth.ScopeReferenceRead)

	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestAddExerciseRejectsDuplicateName(t *testing.T) {
	handler, _ := newTestHandler(t)

	buf, _ := json.Marshal(map[string]any{"name": "barbell BENCH press"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/exercises", bytes.NewReader(buf)),
		auth.ScopeReferenceWrite)

	rr := httptest.NewRecorder()
	handler.exercises(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate name, got %d", rr.Code)
	}
}

func TestSimilarExercisesRanksByMuscleOverlap(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/exercises/barbell-bench-press/similar?count=3", nil),
		auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.exerciseByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Items []join.HydratedExercise `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Items) == 0 {
		t.Fatalf("expected similar exercises for a seeded chest press")
	}
	if len(body.Items) > 3 {
		t.Fatalf("expected at most 3 items, got %d", len(body.Items))
	}
	for _, item := range body.Items {
		if item.ID == "barbell-bench-press" {
			t.Fatalf("similar listing includes the base exercise")
		}
	}
}

func TestHideExcludesFromDefaultListing(t *testing.T) {
	handler, eng := newTestHandler(t)

	visibleBefore := len(eng.Joiner.Visible())

	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/exercises/barbell-bench-press/hide", nil),
		auth.ScopeReferenceWrite)
	rr := httptest.NewRecorder()
	handler.exerciseByID(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	record, ok := eng.Exercises.Get("barbell-bench-press")
	if !ok || !record.IsHidden {
		t.Fatalf("expected record hidden, got %+v", record)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(eng.Joiner.Visible()) != visibleBefore-1 {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d visible exercises, got %d", visibleBefore-1, len(eng.Joiner.Visible()))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestUpdateKeepsHiddenStateAndUsageHistory(t *testing.T) {
	handler, eng := newTestHandler(t)

	record, ok := eng.Exercises.Get("barbell-bench-press")
	if !ok {
		t.Fatalf("expected seeded bench press")
	}
	used := time.Now().UTC()
	record.LastUsedAt = &used
	if _, err := eng.Exercises.Update(context.Background(), record); err != nil {
		t.Fatalf("seed usage timestamp: %v", err)
	}

	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/exercises/barbell-bench-press/hide", nil),
		auth.ScopeReferenceWrite)
	rr := httptest.NewRecorder()
	handler.exerciseByID(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	// Editing name and notes must not resurface the record or wipe usage.
	buf, _ := json.Marshal(map[string]any{
		"name":           "Barbell Bench Press",
		"category":       "Free Weights",
		"primary_muscle": "chest",
		"muscles":        []string{"chest", "triceps"},
		"equipment":      []string{"barbell"},
		"notes":          "pause at the chest",
	})
	req = authorized(httptest.NewRequest(http.MethodPut, "/v1/exercises/barbell-bench-press", bytes.NewReader(buf)),
		auth.ScopeReferenceWrite)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	handler.exerciseByID(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	record, ok = eng.Exercises.Get("barbell-bench-press")
	if !ok {
		t.Fatalf("expected record after update")
	}
	if !record.IsHidden {
		t.Fatalf("update resurfaced a hidden record")
	}
	if record.LastUsedAt == nil || !record.LastUsedAt.Equal(used) {
		t.Fatalf("update wiped usage history, got %v", record.LastUsedAt)
	}
	if record.Notes != "pause at the chest" {
		t.Fatalf("expected updated notes, got %q", record.Notes)
	}
}

func TestLanguageEndpointSwitchesAllDomains(t *testing.T) {
	handler, eng := newTestHandler(t)

	buf, _ := json.Marshal(map[string]string{"language": "de"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/v1/language", bytes.NewReader(buf)),
		auth.ScopeReferenceWrite)
	rr := httptest.NewRecorder()
	handler.language(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	for _, svc := range eng.Hydrators() {
		if svc.Language() != "de" {
			t.Fatalf("expected language de, got %q", svc.Language())
		}
	}
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	handler, eng := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/backup", nil), auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.backup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var exported domain.Backup
	if err := json.NewDecoder(rr.Body).Decode(&exported); err != nil {
		t.Fatalf("decode export failed: %v", err)
	}
	if len(exported.Exercises) == 0 {
		t.Fatalf("expected seeded exercises in export")
	}

	exported.Exercises = append(exported.Exercises, domain.Exercise{
		ID:            "imported-nordic-curl",
		Name:          "Nordic Curl",
		CategoryID:    "bodyweightCalisthenics",
		PrimaryMuscle: "hamstrings",
		Muscles:       []string{"hamstrings", "glutes"},
	})

	buf, _ := json.Marshal(exported)
	req = authorized(httptest.NewRequest(http.MethodPost, "/v1/backup", bytes.NewReader(buf)),
		auth.ScopeReferenceWrite)
	rr = httptest.NewRecorder()
	handler.backup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var report struct {
		Exercises struct {
			Added   int `json:"added"`
			Updated int `json:"updated"`
		} `json:"exercises"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report failed: %v", err)
	}
	if report.Exercises.Added != 1 {
		t.Fatalf("expected 1 added exercise, got %d", report.Exercises.Added)
	}
	if report.Exercises.Updated != len(exported.Exercises)-1 {
		t.Fatalf("expected %d updated exercises, got %d", len(exported.Exercises)-1, report.Exercises.Updated)
	}

	if _, ok := eng.Exercises.Get("imported-nordic-curl"); !ok {
		t.Fatalf("imported exercise missing from store")
	}
}

func TestVocabularyServesSnapshot(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/vocabulary/muscles", nil), auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.vocabulary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Language string `json:"language"`
		Items    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Language != "en" {
		t.Fatalf("expected en, got %q", body.Language)
	}
	if len(body.Items) == 0 {
		t.Fatalf("expected hydrated muscles")
	}
}

func TestMuscleStatsAggregatesCanonicalIDs(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := authorized(httptest.NewRequest(http.MethodGet, "/v1/stats/muscles", nil), auth.ScopeReferenceRead)
	rr := httptest.NewRecorder()
	handler.muscleStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Muscles map[string]int `json:"muscles"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Muscles["chest"] == 0 {
		t.Fatalf("expected chest exercises in the seed catalog, got %v", body.Muscles)
	}
}

func scopesWith(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
