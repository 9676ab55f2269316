package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

const (
	progressMin = 0
	progressMax = 100
)

type GoalInput struct {
	Title       string
	Description string
	TargetDate  string
}

func Goals(db *sql.DB) []model.Goal {
	return loadGoals(db)
}

func AddGoal(db *sql.DB, in GoalInput, now time.Time) (model.Goal, error) {
	in.Title = normalizeName(in.Title)
	if in.Title == "" {
		return model.Goal{}, fmt.Errorf("goal title is required")
	}
	if in.TargetDate != "" {
		if err := validateDate("target date", in.TargetDate); err != nil {
			return model.Goal{}, err
		}
	}
	goals := loadGoals(db)
	goal := model.Goal{
		ID:          newID(now),
		Title:       in.Title,
		Description: in.Description,
		TargetDate:  in.TargetDate,
		Progress:    0,
		CreatedAt:   now,
	}
	goals = append(goals, goal)
	if err := ledger.Save(db, ledger.KeyGoals, goals); err != nil {
		return model.Goal{}, err
	}
	return goal, nil
}

// AdjustProgress moves the goal's progress by delta, clamped to [0,100].
// Returns nil for an unknown id.
func AdjustProgress(db *sql.DB, id int64, delta int) (*model.Goal, error) {
	return applyProgress(db, id, func(p int) int { return p + delta })
}

// SetProgress pins the goal's progress, clamped to [0,100].
func SetProgress(db *sql.DB, id int64, value int) (*model.Goal, error) {
	return applyProgress(db, id, func(int) int { return value })
}

// CompleteGoal is SetProgress(100) under a friendlier name.
func CompleteGoal(db *sql.DB, id int64) (*model.Goal, error) {
	return SetProgress(db, id, progressMax)
}

func DeleteGoal(db *sql.DB, id int64) (bool, error) {
	goals := loadGoals(db)
	kept := make([]model.Goal, 0, len(goals))
	removed := false
	for _, g := range goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if !removed {
		return false, nil
	}
	if err := ledger.Save(db, ledger.KeyGoals, kept); err != nil {
		return false, err
	}
	return true, nil
}

// DaysRemaining reports days until the target date, negative when overdue.
// The bool is false for goals without a target date.
func DaysRemaining(g model.Goal, now time.Time) (int, bool) {
	if g.TargetDate == "" {
		return 0, false
	}
	target, err := time.ParseInLocation(dateLayout, g.TargetDate, time.Local)
	if err != nil {
		return 0, false
	}
	today, _ := time.ParseInLocation(dateLayout, dayOf(now), time.Local)
	return int(target.Sub(today).Hours() / 24), true
}

func applyProgress(db *sql.DB, id int64, f func(int) int) (*model.Goal, error) {
	goals := loadGoals(db)
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		goals[i].Progress = clamp(f(goals[i].Progress), progressMin, progressMax)
		goals[i].IsCompleted = goals[i].Progress >= progressMax
		if err := ledger.Save(db, ledger.KeyGoals, goals); err != nil {
			return nil, err
		}
		out := goals[i]
		return &out, nil
	}
	return nil, nil
}
