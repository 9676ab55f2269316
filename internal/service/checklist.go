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

// defaultCheckRating is applied when a slot is checked without a rating.
const defaultCheckRating = 5

// Slots returns the checklist in user order.
func Slots(db *sql.DB) []model.MealSlot {
	return loadSlots(db)
}

// SlotNames returns the slot names in checklist order and refreshes the
// transient checklist_items snapshot the recipe-logging flow reads its
// selection list from.
func SlotNames(db *sql.DB) []string {
	slots := loadSlots(db)
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.Name)
	}
	if err := ledger.Save(db, ledger.KeyChecklistItems, names); err != nil {
		log.Printf("warning: %v", err)
	}
	return names
}

func AddSlot(db *sql.DB, name string, now time.Time) (model.MealSlot, error) {
	name = normalizeName(name)
	if name == "" {
		return model.MealSlot{}, fmt.Errorf("slot name is required")
	}
	slots := loadSlots(db)
	slot := model.MealSlot{ID: newID(now), Name: name}
	slots = append(slots, slot)
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return model.MealSlot{}, err
	}
	touchMeals(db, now)
	return slot, nil
}

// RemoveSlot deletes the slot and, when it was checked, its record in
// today's log. A missing id is a no-op reported via the bool.
func RemoveSlot(db *sql.DB, id int64, now time.Time) (bool, error) {
	slots := loadSlots(db)
	kept := make([]model.MealSlot, 0, len(slots))
	var removed *model.MealSlot
	for i := range slots {
		if slots[i].ID == id {
			removed = &slots[i]
			continue
		}
		kept = append(kept, slots[i])
	}
	if removed == nil {
		return false, nil
	}
	if err := ledger.Save(db, ledger.KeySlots, kept); err != nil {
		return false, err
	}
	if removed.Checked {
		logs := removeLogRecord(loadLiveLog(db), dayOf(now), id)
		if err := ledger.Save(db, ledger.KeyLiveLog, logs); err != nil {
			return false, err
		}
	}
	touchMeals(db, now)
	return true, nil
}

// ToggleChecked flips the slot's checked state. Checking stamps the
// time-of-day, applies the default rating when none is set, and upserts the
// matching record into today's log. Unchecking zeroes the rating and clears
// the timestamp and recipe link together, and removes the log record.
// Returns nil for an unknown id.
func ToggleChecked(db *sql.DB, id int64, now time.Time) (*model.MealSlot, error) {
	slots := loadSlots(db)
	idx := slotIndex(slots, id)
	if idx < 0 {
		return nil, nil
	}
	slot := &slots[idx]
	logs := loadLiveLog(db)
	today := dayOf(now)

	if slot.Checked {
		slot.Checked = false
		slot.Rating = 0
		slot.TimeChecked = ""
		slot.AssociatedMeal = nil
		logs = removeLogRecord(logs, today, id)
	} else {
		slot.Checked = true
		if slot.Rating == 0 {
			slot.Rating = defaultCheckRating
		}
		slot.TimeChecked = now.Format(clockLayout)
		logs = upsertLogRecord(logs, today, loggedMealFromSlot(*slot))
	}

	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return nil, err
	}
	if err := ledger.Save(db, ledger.KeyLiveLog, logs); err != nil {
		return nil, err
	}
	touchMeals(db, now)
	out := slots[idx]
	return &out, nil
}

// SetRating clamps to the configured bounds and, when the slot is checked,
// propagates into today's log record.
func SetRating(db *sql.DB, id int64, rating int, now time.Time) (*model.MealSlot, error) {
	settings := LoadSettings(db)
	rating = clamp(rating, settings.RatingMin, settings.RatingMax)

	slots := loadSlots(db)
	idx := slotIndex(slots, id)
	if idx < 0 {
		return nil, nil
	}
	slots[idx].Rating = rating
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return nil, err
	}
	if slots[idx].Checked {
		logs := upsertLogRecord(loadLiveLog(db), dayOf(now), loggedMealFromSlot(slots[idx]))
		if err := ledger.Save(db, ledger.KeyLiveLog, logs); err != nil {
			return nil, err
		}
	}
	touchMeals(db, now)
	out := slots[idx]
	return &out, nil
}

func RenameSlot(db *sql.DB, id int64, name string, now time.Time) (*model.MealSlot, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("slot name is required")
	}
	slots := loadSlots(db)
	idx := slotIndex(slots, id)
	if idx < 0 {
		return nil, nil
	}
	slots[idx].Name = name
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return nil, err
	}
	if slots[idx].Checked {
		logs := upsertLogRecord(loadLiveLog(db), dayOf(now), loggedMealFromSlot(slots[idx]))
		if err := ledger.Save(db, ledger.KeyLiveLog, logs); err != nil {
			return nil, err
		}
	}
	touchMeals(db, now)
	out := slots[idx]
	return &out, nil
}

// Reorder rewrites the checklist order from ids. Unknown ids are skipped;
// slots missing from ids keep their relative order at the tail. No other
// field changes.
func Reorder(db *sql.DB, ids []int64, now time.Time) error {
	slots := loadSlots(db)
	byID := make(map[int64]int, len(slots))
	for i, s := range slots {
		byID[s.ID] = i
	}
	ordered := make([]model.MealSlot, 0, len(slots))
	placed := make(map[int64]bool, len(slots))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		ordered = append(ordered, slots[i])
		placed[id] = true
	}
	for _, s := range slots {
		if !placed[s.ID] {
			ordered = append(ordered, s)
		}
	}
	if err := ledger.Save(db, ledger.KeySlots, ordered); err != nil {
		return err
	}
	touchMeals(db, now)
	return nil
}

// LogAgainstRecipe upserts a checked slot named slotName carrying the
// recipe snapshot, and mirrors it into today's log. The slot is created at
// the end of the checklist when no slot has that name.
func LogAgainstRecipe(db *sql.DB, slotName string, recipe model.Recipe, now time.Time) (model.MealSlot, error) {
	slotName = normalizeName(slotName)
	if slotName == "" {
		return model.MealSlot{}, fmt.Errorf("slot name is required")
	}
	slots := loadSlots(db)
	idx := -1
	for i := range slots {
		if strings.EqualFold(slots[i].Name, slotName) {
			idx = i
			break
		}
	}
	if idx < 0 {
		slots = append(slots, model.MealSlot{ID: newID(now), Name: slotName})
		idx = len(slots) - 1
	}
	slot := &slots[idx]
	slot.Checked = true
	slot.Rating = recipe.Rating
	slot.TimeChecked = now.Format(clockLayout)
	slot.AssociatedMeal = &model.MealRef{ID: recipe.ID, Name: recipe.Name, Rating: recipe.Rating}

	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return model.MealSlot{}, err
	}
	logs := upsertLogRecord(loadLiveLog(db), dayOf(now), loggedMealFromSlot(*slot))
	if err := ledger.Save(db, ledger.KeyLiveLog, logs); err != nil {
		return model.MealSlot{}, err
	}
	touchMeals(db, now)
	return slots[idx], nil
}

// ClearLog drops every entry from the live log and unchecks all slots so
// the checklist matches the now-empty day.
func ClearLog(db *sql.DB, now time.Time) error {
	if err := ledger.Save(db, ledger.KeyLiveLog, []model.DayLog{}); err != nil {
		return err
	}
	slots := loadSlots(db)
	for i := range slots {
		slots[i].Checked = false
		slots[i].Rating = 0
		slots[i].TimeChecked = ""
		slots[i].AssociatedMeal = nil
	}
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return err
	}
	if _, err := ledger.Touch(db, ledger.MarkerLogCleared, now); err != nil {
		log.Printf("warning: %v", err)
	}
	touchMeals(db, now)
	return nil
}

func slotIndex(slots []model.MealSlot, id int64) int {
	for i := range slots {
		if slots[i].ID == id {
			return i
		}
	}
	return -1
}

func loggedMealFromSlot(s model.MealSlot) model.LoggedMeal {
	rec := model.LoggedMeal{
		ID:          s.ID,
		Name:        s.Name,
		Rating:      s.Rating,
		TimeChecked: s.TimeChecked,
	}
	if s.AssociatedMeal != nil {
		ref := *s.AssociatedMeal
		rec.AssociatedMeal = &ref
	}
	return rec
}

func upsertLogRecord(logs []model.DayLog, date string, rec model.LoggedMeal) []model.DayLog {
	for i := range logs {
		if logs[i].Date != date {
			continue
		}
		for j := range logs[i].Meals {
			if logs[i].Meals[j].ID == rec.ID {
				logs[i].Meals[j] = rec
				return logs
			}
		}
		logs[i].Meals = append(logs[i].Meals, rec)
		return logs
	}
	return append(logs, model.DayLog{Date: date, Meals: []model.LoggedMeal{rec}})
}

// removeLogRecord drops the record and the whole day entry when it becomes
// empty; only non-empty days are represented.
func removeLogRecord(logs []model.DayLog, date string, id int64) []model.DayLog {
	out := make([]model.DayLog, 0, len(logs))
	for _, day := range logs {
		if day.Date != date {
			out = append(out, day)
			continue
		}
		meals := make([]model.LoggedMeal, 0, len(day.Meals))
		for _, m := range day.Meals {
			if m.ID != id {
				meals = append(meals, m)
			}
		}
		if len(meals) > 0 {
			out = append(out, model.DayLog{Date: day.Date, Meals: meals})
		}
	}
	return out
}
