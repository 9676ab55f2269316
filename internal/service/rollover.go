package service

import (
	"database/sql"
	"sort"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

// RolloverResult reports what a reconciliation pass did.
type RolloverResult struct {
	Initialized   bool
	ArchivedDates []string
	Marker        string
}

// Rollover keeps exactly one live day. It compares the last_log_date marker
// to the current calendar date and, when the date has advanced, moves every
// live-log day strictly before today into the archive. Archiving all stale
// days (not only the marker's day) means nothing is lost when the app sits
// closed for several days. Days with no entries are skipped; no placeholder
// entries are created. Repeated calls within the same day are no-ops.
func Rollover(db *sql.DB, now time.Time) (RolloverResult, error) {
	today := dayOf(now)
	res := RolloverResult{Marker: today}

	prev, found, err := ledger.ReadMarker(db, ledger.MarkerLastLogDate)
	if err != nil {
		return res, err
	}
	if !found {
		if err := ledger.PutMarker(db, ledger.MarkerLastLogDate, today); err != nil {
			return res, err
		}
		res.Initialized = true
		return res, nil
	}
	if prev == today {
		return res, nil
	}

	live := loadLiveLog(db)
	archive := loadArchive(db)
	archived := make(map[string]bool, len(archive))
	for _, day := range archive {
		archived[day.Date] = true
	}

	keep := make([]model.DayLog, 0, len(live))
	for _, day := range live {
		if day.Date >= today {
			keep = append(keep, day)
			continue
		}
		if archived[day.Date] {
			// The archive copy is immutable and wins; drop the stray
			// live duplicate so the date appears exactly once.
			continue
		}
		archive = append(archive, day)
		archived[day.Date] = true
		res.ArchivedDates = append(res.ArchivedDates, day.Date)
	}
	sort.Slice(archive, func(i, j int) bool { return archive[i].Date < archive[j].Date })

	if err := ledger.Save(db, ledger.KeyArchive, archive); err != nil {
		return res, err
	}
	if err := ledger.Save(db, ledger.KeyLiveLog, keep); err != nil {
		return res, err
	}

	// Checked state only describes the current day; reset it for the new one.
	slots := loadSlots(db)
	for i := range slots {
		slots[i].Checked = false
		slots[i].Rating = 0
		slots[i].TimeChecked = ""
		slots[i].AssociatedMeal = nil
	}
	if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
		return res, err
	}

	if err := ledger.PutMarker(db, ledger.MarkerLastLogDate, today); err != nil {
		return res, err
	}
	touchMeals(db, now)
	return res, nil
}
