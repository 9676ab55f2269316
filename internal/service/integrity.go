package service

import (
	"database/sql"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

type DoctorReport struct {
	DuplicateDates       int `json:"duplicate_dates"`
	UncheckedResidue     int `json:"unchecked_residue"`
	UnloggedCheckedSlots int `json:"unlogged_checked_slots"`
	OrphanLogRecords     int `json:"orphan_log_records"`
	OutOfRangeRatings    int `json:"out_of_range_ratings"`
	StaleGoalFlags       int `json:"stale_goal_flags"`
	FixedIssues          int `json:"fixed_issues,omitempty"`
}

func (r DoctorReport) Clean() bool {
	return r.DuplicateDates == 0 && r.UncheckedResidue == 0 && r.UnloggedCheckedSlots == 0 &&
		r.OrphanLogRecords == 0 && r.OutOfRangeRatings == 0 && r.StaleGoalFlags == 0
}

// RunDoctor validates the stored collections against the data model's
// invariants: a date lives in at most one of {live log, archive}; an
// unchecked slot carries no time or recipe link (a rating may be pre-set
// before checking, so it is not residue); checked slots and today's log
// records mirror each other; ratings sit inside the configured bounds; goal
// completion flags match progress. With fix set, safe repairs are applied
// (archive wins duplicate dates, the checklist wins today's log).
func RunDoctor(db *sql.DB, fix bool, now time.Time) (DoctorReport, error) {
	report := DoctorReport{}
	settings := LoadSettings(db)
	today := dayOf(now)

	slots := loadSlots(db)
	live := loadLiveLog(db)
	archive := loadArchive(db)
	goals := loadGoals(db)

	slotsDirty := false
	liveDirty := false
	goalsDirty := false

	archiveDates := make(map[string]bool, len(archive))
	for _, day := range archive {
		archiveDates[day.Date] = true
	}
	keptLive := make([]model.DayLog, 0, len(live))
	for _, day := range live {
		if archiveDates[day.Date] {
			report.DuplicateDates++
			if fix {
				report.FixedIssues++
				liveDirty = true
				continue
			}
		}
		keptLive = append(keptLive, day)
	}
	live = keptLive

	for i := range slots {
		s := &slots[i]
		if !s.Checked && (s.TimeChecked != "" || s.AssociatedMeal != nil) {
			report.UncheckedResidue++
			if fix {
				s.TimeChecked = ""
				s.AssociatedMeal = nil
				slotsDirty = true
				report.FixedIssues++
			}
		}
		if (s.Rating != 0 && s.Rating < settings.RatingMin) || s.Rating > settings.RatingMax {
			report.OutOfRangeRatings++
			if fix {
				s.Rating = clamp(s.Rating, settings.RatingMin, settings.RatingMax)
				slotsDirty = true
				report.FixedIssues++
			}
		}
	}

	todayRecords := map[int64]bool{}
	for _, day := range live {
		if day.Date != today {
			continue
		}
		for _, rec := range day.Meals {
			todayRecords[rec.ID] = true
		}
	}
	checkedSlots := map[int64]model.MealSlot{}
	for _, s := range slots {
		if s.Checked {
			checkedSlots[s.ID] = s
			if !todayRecords[s.ID] {
				report.UnloggedCheckedSlots++
				if fix {
					live = upsertLogRecord(live, today, loggedMealFromSlot(s))
					liveDirty = true
					report.FixedIssues++
				}
			}
		}
	}
	for id := range todayRecords {
		if _, ok := checkedSlots[id]; !ok {
			report.OrphanLogRecords++
			if fix {
				live = removeLogRecord(live, today, id)
				liveDirty = true
				report.FixedIssues++
			}
		}
	}

	for i := range goals {
		g := &goals[i]
		badProgress := g.Progress < progressMin || g.Progress > progressMax
		badFlag := g.IsCompleted != (g.Progress >= progressMax)
		if badProgress || badFlag {
			report.StaleGoalFlags++
			if fix {
				g.Progress = clamp(g.Progress, progressMin, progressMax)
				g.IsCompleted = g.Progress >= progressMax
				goalsDirty = true
				report.FixedIssues++
			}
		}
	}

	if fix {
		if slotsDirty {
			if err := ledger.Save(db, ledger.KeySlots, slots); err != nil {
				return report, err
			}
		}
		if liveDirty {
			if err := ledger.Save(db, ledger.KeyLiveLog, live); err != nil {
				return report, err
			}
		}
		if goalsDirty {
			if err := ledger.Save(db, ledger.KeyGoals, goals); err != nil {
				return report, err
			}
		}
		if slotsDirty || liveDirty {
			touchMeals(db, now)
		}
	}
	return report, nil
}
