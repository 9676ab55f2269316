package service

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func dayOf(t time.Time) string {
	return t.Format(dateLayout)
}

func validateDate(name, value string) error {
	if _, err := time.ParseInLocation(dateLayout, value, time.Local); err != nil {
		return fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, value)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// newID assigns ids from the millisecond clock. Collisions are not checked.
func newID(now time.Time) int64 {
	return now.UnixMilli()
}

// The load helpers below degrade to an empty collection when a snapshot is
// missing or unreadable. A broken snapshot must not block the user action;
// the next successful save supersedes it.

func loadSlots(db *sql.DB) []model.MealSlot {
	slots := make([]model.MealSlot, 0)
	if _, err := ledger.Load(db, ledger.KeySlots, &slots); err != nil {
		log.Printf("warning: %v, continuing with empty checklist", err)
		return make([]model.MealSlot, 0)
	}
	return slots
}

func loadRecipes(db *sql.DB) []model.Recipe {
	recipes := make([]model.Recipe, 0)
	if _, err := ledger.Load(db, ledger.KeyRecipes, &recipes); err != nil {
		log.Printf("warning: %v, continuing with empty recipe catalog", err)
		return make([]model.Recipe, 0)
	}
	return recipes
}

func loadLiveLog(db *sql.DB) []model.DayLog {
	logs := make([]model.DayLog, 0)
	if _, err := ledger.Load(db, ledger.KeyLiveLog, &logs); err != nil {
		log.Printf("warning: %v, continuing with empty live log", err)
		return make([]model.DayLog, 0)
	}
	return logs
}

func loadArchive(db *sql.DB) []model.DayLog {
	logs := make([]model.DayLog, 0)
	if _, err := ledger.Load(db, ledger.KeyArchive, &logs); err != nil {
		log.Printf("warning: %v, continuing with empty archive", err)
		return make([]model.DayLog, 0)
	}
	return logs
}

func loadGoals(db *sql.DB) []model.Goal {
	goals := make([]model.Goal, 0)
	if _, err := ledger.Load(db, ledger.KeyGoals, &goals); err != nil {
		log.Printf("warning: %v, continuing with empty goals", err)
		return make([]model.Goal, 0)
	}
	return goals
}

// touchMeals signals checklist/log changes to polling readers. Marker
// writes are best-effort; the snapshot save already succeeded.
func touchMeals(db *sql.DB, now time.Time) {
	if _, err := ledger.Touch(db, ledger.MarkerMealsUpdated, now); err != nil {
		log.Printf("warning: %v", err)
	}
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
