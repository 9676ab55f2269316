package service_test

import (
	"testing"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
	"github.com/mealdeck/mealdeck/internal/service"
)

func TestDoctorCleanDatabase(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	if _, err := service.ToggleChecked(db, 1, now); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	report, err := service.RunDoctor(db, false, now)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected a clean report, got %+v", report)
	}
}

func TestDoctorFindsAndFixesDuplicateDates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.Local)
	dup := []model.DayLog{{Date: "2025-03-01", Meals: []model.LoggedMeal{{ID: 1, Name: "Breakfast", Rating: 5}}}}
	if err := ledger.Save(db, ledger.KeyLiveLog, dup); err != nil {
		t.Fatalf("seed live: %v", err)
	}
	if err := ledger.Save(db, ledger.KeyArchive, dup); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	report, err := service.RunDoctor(db, false, now)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.DuplicateDates != 1 {
		t.Fatalf("expected 1 duplicate date, got %+v", report)
	}

	report, err = service.RunDoctor(db, true, now)
	if err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	if report.FixedIssues == 0 {
		t.Fatalf("expected a fix to be applied, got %+v", report)
	}
	if len(service.LiveLog(db)) != 0 {
		t.Fatalf("expected the live duplicate dropped in favor of the archive copy")
	}

	report, err = service.RunDoctor(db, false, now)
	if err != nil {
		t.Fatalf("doctor after fix: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected a clean report after fixing, got %+v", report)
	}
}

func TestDoctorFixesUncheckedResidue(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	slots := []model.MealSlot{
		{ID: 1, Name: "Breakfast", Checked: false, Rating: 7, TimeChecked: "08:00",
			AssociatedMeal: &model.MealRef{ID: 2, Name: "Avocado Toast with Egg", Rating: 8}},
	}
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		t.Fatalf("seed slots: %v", err)
	}

	report, err := service.RunDoctor(db, true, now)
	if err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	if report.UncheckedResidue != 1 {
		t.Fatalf("expected 1 residue finding, got %+v", report)
	}
	got := service.Slots(db)[0]
	if got.TimeChecked != "" || got.AssociatedMeal != nil {
		t.Fatalf("expected residue cleared, got %+v", got)
	}
	// A rating alone is a legitimate pre-set, not residue.
	if got.Rating != 7 {
		t.Fatalf("expected the pre-set rating kept, got %+v", got)
	}
}

func TestDoctorAcceptsPreSetRating(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	if _, err := service.SetRating(db, 1, 7, now); err != nil {
		t.Fatalf("set rating: %v", err)
	}

	report, err := service.RunDoctor(db, false, now)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected a pre-set rating on an unchecked slot to be clean, got %+v", report)
	}

	if _, err := service.RunDoctor(db, true, now); err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	// Checking afterwards keeps the pre-set rating instead of the default.
	slot, err := service.ToggleChecked(db, 1, now)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if slot.Rating != 7 {
		t.Fatalf("expected the pre-set rating 7 to survive the doctor, got %d", slot.Rating)
	}
}

func TestDoctorRepairsChecklistLogMismatch(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	today := "2025-03-01"
	slots := []model.MealSlot{
		{ID: 1, Name: "Breakfast", Checked: true, Rating: 5, TimeChecked: "08:00"},
	}
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		t.Fatalf("seed slots: %v", err)
	}
	// Slot 1 checked but unlogged; record 99 logged but backed by no slot.
	live := []model.DayLog{{Date: today, Meals: []model.LoggedMeal{{ID: 99, Name: "Ghost", Rating: 4}}}}
	if err := ledger.Save(db, ledger.KeyLiveLog, live); err != nil {
		t.Fatalf("seed live: %v", err)
	}

	report, err := service.RunDoctor(db, false, now)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.UnloggedCheckedSlots != 1 || report.OrphanLogRecords != 1 {
		t.Fatalf("expected both mismatch findings, got %+v", report)
	}

	if _, err := service.RunDoctor(db, true, now); err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	records, err := service.RecordsForDate(db, today)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].ID != 1 {
		t.Fatalf("expected the checklist to win today's log, got %+v", records)
	}
}

func TestDoctorFixesStaleGoalFlags(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	goals := []model.Goal{
		{ID: 1, Title: "Overflow", Progress: 140, IsCompleted: false},
		{ID: 2, Title: "Flagged early", Progress: 50, IsCompleted: true},
	}
	if err := ledger.Save(db, ledger.KeyGoals, goals); err != nil {
		t.Fatalf("seed goals: %v", err)
	}

	report, err := service.RunDoctor(db, true, now)
	if err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	if report.StaleGoalFlags != 2 {
		t.Fatalf("expected 2 goal findings, got %+v", report)
	}
	fixed := service.Goals(db)
	if fixed[0].Progress != 100 || !fixed[0].IsCompleted {
		t.Fatalf("expected goal 1 clamped and completed, got %+v", fixed[0])
	}
	if fixed[1].IsCompleted {
		t.Fatalf("expected goal 2's completion flag recomputed to false, got %+v", fixed[1])
	}
}
