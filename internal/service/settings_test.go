package service_test

import (
	"testing"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/service"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	s := service.LoadSettings(db)
	if s.Theme != service.ThemeLight || s.RatingMin != 0 || s.RatingMax != 10 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SaveSettings(db, model.Settings{Theme: "neon", RatingMin: 0, RatingMax: 10}); err == nil {
		t.Fatalf("expected an error for an unknown theme")
	}
	if err := service.SaveSettings(db, model.Settings{Theme: "light", RatingMin: 5, RatingMax: 5}); err == nil {
		t.Fatalf("expected an error when min is not below max")
	}
	if err := service.SaveSettings(db, model.Settings{Theme: "light", RatingMin: 0, RatingMax: 99}); err == nil {
		t.Fatalf("expected an error for bounds outside 0..10")
	}

	if err := service.SaveSettings(db, model.Settings{Theme: " Dark ", RatingMin: 1, RatingMax: 9}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s := service.LoadSettings(db)
	if s.Theme != service.ThemeDark || s.RatingMin != 1 || s.RatingMax != 9 {
		t.Fatalf("expected normalized saved settings, got %+v", s)
	}
}

func TestLoadSettingsRepairsMalformedFields(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bad := model.Settings{Theme: "neon", RatingMin: 8, RatingMax: 3}
	if err := ledger.Save(db, ledger.KeySettings, bad); err != nil {
		t.Fatalf("seed bad settings: %v", err)
	}
	s := service.LoadSettings(db)
	if s.Theme != service.ThemeLight || s.RatingMin != 0 || s.RatingMax != 10 {
		t.Fatalf("expected malformed fields repaired to defaults, got %+v", s)
	}
}

func TestResetSettings(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SaveSettings(db, model.Settings{Theme: "dark", RatingMin: 2, RatingMax: 8}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := service.ResetSettings(db); err != nil {
		t.Fatalf("reset: %v", err)
	}
	s := service.LoadSettings(db)
	if s != service.DefaultSettings() {
		t.Fatalf("expected defaults after reset, got %+v", s)
	}
}

func TestRatingBoundsDriveClamping(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SaveSettings(db, model.Settings{Theme: "light", RatingMin: 1, RatingMax: 5}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	slot, err := service.SetRating(db, 1, 9, testNow)
	if err != nil {
		t.Fatalf("set rating: %v", err)
	}
	if slot.Rating != 5 {
		t.Fatalf("expected rating clamped to the configured max 5, got %d", slot.Rating)
	}
}
