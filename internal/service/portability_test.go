package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/service"
)

func TestExportSnapshot(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	if _, err := service.Rollover(db, now); err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if _, err := service.ToggleChecked(db, 1, now); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	data := service.ExportSnapshot(db, now)
	if data.SchemaVersion != 1 {
		t.Fatalf("expected schema version 1, got %d", data.SchemaVersion)
	}
	if data.LastLogDate != "2025-03-01" {
		t.Fatalf("expected last log date in the bundle, got %q", data.LastLogDate)
	}
	if len(data.Slots) != 3 || len(data.Recipes) != 5 {
		t.Fatalf("expected seeded collections in the bundle: %d slots, %d recipes", len(data.Slots), len(data.Recipes))
	}
	if len(data.LiveLog) != 1 {
		t.Fatalf("expected today's log in the bundle, got %d days", len(data.LiveLog))
	}

	// Bundle field names mirror the store keys.
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	for _, key := range []string{"meals_data", "recipes_data", "log_data", "recap_data", "goals_data", "user_settings"} {
		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal bundle: %v", err)
		}
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected bundle field %q", key)
		}
	}
}

func TestImportReplace(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	bundle := &service.ExportData{
		SchemaVersion: 1,
		LastLogDate:   "2025-03-01",
		Slots:         []model.MealSlot{{ID: 7, Name: "Only Meal"}},
		Recipes:       []model.Recipe{},
		LiveLog:       []model.DayLog{},
		Archive: []model.DayLog{
			{Date: "2025-02-20", Meals: []model.LoggedMeal{{ID: 7, Name: "Only Meal", Rating: 6}}},
		},
		Goals: []model.Goal{{ID: 9, Title: "Imported goal", Progress: 40}},
	}
	report, err := service.ImportSnapshot(db, bundle, service.ImportModeReplace, now)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Slots != 1 || report.Recipes != 0 || report.Days != 1 || report.Goals != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	slots := service.Slots(db)
	if len(slots) != 1 || slots[0].Name != "Only Meal" {
		t.Fatalf("expected replace to drop the seeded checklist, got %+v", slots)
	}
	if len(service.Recipes(db)) != 0 {
		t.Fatalf("expected replace to drop the preset recipes")
	}
	goals := service.Goals(db)
	if len(goals) != 1 || goals[0].Title != "Imported goal" {
		t.Fatalf("expected the imported goal, got %+v", goals)
	}
}

func TestImportMergeIncomingWins(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	bundle := &service.ExportData{
		SchemaVersion: 1,
		Slots: []model.MealSlot{
			{ID: 1, Name: "Early Breakfast"}, // conflicts with seeded slot 1
			{ID: 42, Name: "Supper"},
		},
	}
	report, err := service.ImportSnapshot(db, bundle, service.ImportModeMerge, now)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Slots != 4 {
		t.Fatalf("expected 3 seeded + 1 new slot, got %d", report.Slots)
	}
	slots := service.Slots(db)
	if slots[0].Name != "Early Breakfast" {
		t.Fatalf("expected the incoming record to win the id conflict, got %+v", slots[0])
	}
	if len(service.Recipes(db)) != 5 {
		t.Fatalf("expected merge to keep the preset recipes")
	}
}

func TestImportRunsRollover(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.Local)
	bundle := &service.ExportData{
		SchemaVersion: 1,
		LastLogDate:   "2025-03-01",
		LiveLog: []model.DayLog{
			{Date: "2025-03-01", Meals: []model.LoggedMeal{{ID: 1, Name: "Breakfast", Rating: 7}}},
		},
	}
	if _, err := service.ImportSnapshot(db, bundle, service.ImportModeMerge, now); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(service.LiveLog(db)) != 0 {
		t.Fatalf("expected the imported stale day to be archived immediately")
	}
	archive := service.Archive(db)
	if len(archive) != 1 || archive[0].Date != "2025-03-01" {
		t.Fatalf("expected 2025-03-01 in the archive, got %+v", archive)
	}
}

func TestImportReplaceArchivesStaleDaysWithoutBundleMarker(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// The local marker already points at today; a replace bundle carrying an
	// older live day but no marker of its own must still get that day
	// archived by the post-import rollover.
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.Local)
	if _, err := service.Rollover(db, now); err != nil {
		t.Fatalf("rollover: %v", err)
	}

	bundle := &service.ExportData{
		SchemaVersion: 1,
		LiveLog: []model.DayLog{
			{Date: "2025-03-01", Meals: []model.LoggedMeal{{ID: 1, Name: "Breakfast", Rating: 7}}},
		},
	}
	if _, err := service.ImportSnapshot(db, bundle, service.ImportModeReplace, now); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(service.LiveLog(db)) != 0 {
		t.Fatalf("expected the imported stale day archived despite the pre-import marker")
	}
	archive := service.Archive(db)
	if len(archive) != 1 || archive[0].Date != "2025-03-01" {
		t.Fatalf("expected 2025-03-01 in the archive, got %+v", archive)
	}
}

func TestImportRefusesNewerSchema(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bundle := &service.ExportData{SchemaVersion: 999}
	if _, err := service.ImportSnapshot(db, bundle, service.ImportModeMerge, time.Now()); err == nil {
		t.Fatalf("expected a newer-schema bundle to be refused")
	}
	if _, err := service.ImportSnapshot(db, nil, service.ImportModeMerge, time.Now()); err == nil {
		t.Fatalf("expected a nil bundle to be refused")
	}
	if _, err := service.ImportSnapshot(db, &service.ExportData{}, service.ImportMode("sideways"), time.Now()); err == nil {
		t.Fatalf("expected an unknown mode to be refused")
	}
}

func TestImportMergeClampsGoalProgress(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bundle := &service.ExportData{
		SchemaVersion: 1,
		Goals:         []model.Goal{{ID: 11, Title: "Broken", Progress: 250}},
	}
	if _, err := service.ImportSnapshot(db, bundle, service.ImportModeMerge, time.Now()); err != nil {
		t.Fatalf("import: %v", err)
	}
	goals := service.Goals(db)
	if len(goals) != 1 || goals[0].Progress != 100 || !goals[0].IsCompleted {
		t.Fatalf("expected the imported goal clamped and completed, got %+v", goals)
	}
}
