package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

// ExportData is the portable bundle of every persisted collection. Field
// names mirror the ledger keys so a bundle reads like the store itself.
type ExportData struct {
	SchemaVersion int              `json:"schema_version"`
	ExportedAt    string           `json:"exported_at"`
	LastLogDate   string           `json:"last_log_date,omitempty"`
	Slots         []model.MealSlot `json:"meals_data"`
	Recipes       []model.Recipe   `json:"recipes_data"`
	LiveLog       []model.DayLog   `json:"log_data"`
	Archive       []model.DayLog   `json:"recap_data"`
	Goals         []model.Goal     `json:"goals_data"`
	Settings      model.Settings   `json:"user_settings"`
}

type ImportMode string

const (
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportReport struct {
	Slots   int `json:"slots"`
	Recipes int `json:"recipes"`
	Days    int `json:"days"`
	Goals   int `json:"goals"`
}

func ExportSnapshot(db *sql.DB, now time.Time) *ExportData {
	out := &ExportData{
		SchemaVersion: ledger.SchemaVersion,
		ExportedAt:    now.Format(time.RFC3339),
		Slots:         loadSlots(db),
		Recipes:       loadRecipes(db),
		LiveLog:       loadLiveLog(db),
		Archive:       loadArchive(db),
		Goals:         loadGoals(db),
		Settings:      LoadSettings(db),
	}
	if marker, found, err := ledger.ReadMarker(db, ledger.MarkerLastLogDate); err == nil && found {
		out.LastLogDate = marker
	}
	return out
}

// ImportSnapshot applies a bundle. Replace mode overwrites every collection;
// merge mode folds the bundle in, with incoming records winning id (or
// date) conflicts. Rollover runs afterwards so an imported live log from an
// earlier day is archived immediately.
func ImportSnapshot(db *sql.DB, data *ExportData, mode ImportMode, now time.Time) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import bundle is empty")
	}
	if data.SchemaVersion > ledger.SchemaVersion {
		return report, fmt.Errorf("import bundle has schema version %d, newer than supported %d", data.SchemaVersion, ledger.SchemaVersion)
	}

	var slots []model.MealSlot
	var recipes []model.Recipe
	var liveLog, archive []model.DayLog
	var goals []model.Goal

	switch mode {
	case ImportModeReplace:
		slots = data.Slots
		recipes = data.Recipes
		liveLog = data.LiveLog
		archive = data.Archive
		goals = data.Goals
	case ImportModeMerge:
		slots = mergeSlots(loadSlots(db), data.Slots)
		recipes = mergeRecipes(loadRecipes(db), data.Recipes)
		liveLog = mergeDays(loadLiveLog(db), data.LiveLog)
		archive = mergeDays(loadArchive(db), data.Archive)
		goals = mergeGoals(loadGoals(db), data.Goals)
	default:
		return report, fmt.Errorf("unknown import mode %q", mode)
	}

	if err := ledger.Save(db, ledger.KeySlots, emptyIfNil(slots)); err != nil {
		return report, err
	}
	if err := ledger.Save(db, ledger.KeyRecipes, emptyIfNil(recipes)); err != nil {
		return report, err
	}
	if err := ledger.Save(db, ledger.KeyLiveLog, emptyIfNil(liveLog)); err != nil {
		return report, err
	}
	if err := ledger.Save(db, ledger.KeyArchive, emptyIfNil(archive)); err != nil {
		return report, err
	}
	if err := ledger.Save(db, ledger.KeyGoals, emptyIfNil(goals)); err != nil {
		return report, err
	}
	if data.Settings != (model.Settings{}) {
		if err := SaveSettings(db, data.Settings); err != nil {
			return report, fmt.Errorf("import settings: %w", err)
		}
	}
	// Replace mode discards the local data the old marker described. Without
	// a marker from the bundle, derive one from the earliest imported live
	// day so the rollover below archives stale days immediately, or drop the
	// marker entirely when there is no live log to place.
	marker := data.LastLogDate
	if marker == "" && mode == ImportModeReplace {
		for _, day := range liveLog {
			if marker == "" || day.Date < marker {
				marker = day.Date
			}
		}
		if marker == "" {
			if err := ledger.DeleteMarker(db, ledger.MarkerLastLogDate); err != nil {
				return report, err
			}
		}
	}
	if marker != "" {
		if err := ledger.PutMarker(db, ledger.MarkerLastLogDate, marker); err != nil {
			return report, err
		}
	}

	report.Slots = len(slots)
	report.Recipes = len(recipes)
	report.Days = len(liveLog) + len(archive)
	report.Goals = len(goals)

	if _, err := Rollover(db, now); err != nil {
		return report, err
	}
	touchMeals(db, now)
	return report, nil
}

func mergeSlots(existing, incoming []model.MealSlot) []model.MealSlot {
	out := append([]model.MealSlot{}, existing...)
	index := make(map[int64]int, len(out))
	for i, s := range out {
		index[s.ID] = i
	}
	for _, s := range incoming {
		if i, ok := index[s.ID]; ok {
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}

func mergeRecipes(existing, incoming []model.Recipe) []model.Recipe {
	out := append([]model.Recipe{}, existing...)
	index := make(map[int64]int, len(out))
	for i, r := range out {
		index[r.ID] = i
	}
	for _, r := range incoming {
		if i, ok := index[r.ID]; ok {
			out[i] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

func mergeDays(existing, incoming []model.DayLog) []model.DayLog {
	out := append([]model.DayLog{}, existing...)
	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Date] = i
	}
	for _, d := range incoming {
		if i, ok := index[d.Date]; ok {
			out[i] = d
			continue
		}
		index[d.Date] = len(out)
		out = append(out, d)
	}
	return out
}

func mergeGoals(existing, incoming []model.Goal) []model.Goal {
	out := append([]model.Goal{}, existing...)
	index := make(map[int64]int, len(out))
	for i, g := range out {
		index[g.ID] = i
	}
	for _, g := range incoming {
		g.Progress = clamp(g.Progress, progressMin, progressMax)
		g.IsCompleted = g.Progress >= progressMax
		if i, ok := index[g.ID]; ok {
			out[i] = g
			continue
		}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	return out
}

func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
