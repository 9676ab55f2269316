package service

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func DefaultSettings() model.Settings {
	return model.Settings{Theme: ThemeLight, RatingMin: 0, RatingMax: 10}
}

// LoadSettings never fails: a missing or unreadable snapshot yields the
// defaults, and malformed fields are individually repaired.
func LoadSettings(db *sql.DB) model.Settings {
	settings := DefaultSettings()
	found, err := ledger.Load(db, ledger.KeySettings, &settings)
	if err != nil {
		log.Printf("warning: %v, using default settings", err)
		return DefaultSettings()
	}
	if !found {
		return DefaultSettings()
	}
	if settings.Theme != ThemeLight && settings.Theme != ThemeDark {
		settings.Theme = ThemeLight
	}
	if settings.RatingMin < 0 || settings.RatingMax > 10 || settings.RatingMin >= settings.RatingMax {
		settings.RatingMin = 0
		settings.RatingMax = 10
	}
	return settings
}

func SaveSettings(db *sql.DB, settings model.Settings) error {
	settings.Theme = strings.ToLower(strings.TrimSpace(settings.Theme))
	if settings.Theme != ThemeLight && settings.Theme != ThemeDark {
		return fmt.Errorf("theme must be %q or %q", ThemeLight, ThemeDark)
	}
	if settings.RatingMin < 0 || settings.RatingMax > 10 {
		return fmt.Errorf("rating bounds must stay within 0..10")
	}
	if settings.RatingMin >= settings.RatingMax {
		return fmt.Errorf("rating minimum must be below the maximum")
	}
	return ledger.Save(db, ledger.KeySettings, settings)
}

// ResetSettings drops the stored snapshot; a missing snapshot reads as the
// defaults.
func ResetSettings(db *sql.DB) error {
	return ledger.Delete(db, ledger.KeySettings)
}
