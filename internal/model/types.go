package model

import "time"

// MealRef is a denormalized snapshot of a recipe taken at the moment it was
// logged into a checklist slot. It is never re-resolved against the recipe
// catalog afterwards.
type MealRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// MealSlot is one named, position-ordered, checkable unit of the daily
// checklist. Rating, TimeChecked and AssociatedMeal are meaningful only
// while Checked is true and are cleared together on uncheck.
type MealSlot struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Checked        bool     `json:"checked"`
	Rating         int      `json:"rating"`
	TimeChecked    string   `json:"time_checked,omitempty"`
	AssociatedMeal *MealRef `json:"associated_meal,omitempty"`
}

// Recipe is a reusable meal definition, independent of any particular day.
type Recipe struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"recipe"`
	Rating       int    `json:"rating"`
}

// LoggedMeal is the record a checked slot leaves in the day's log.
type LoggedMeal struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Rating         int      `json:"rating"`
	TimeChecked    string   `json:"time_checked"`
	AssociatedMeal *MealRef `json:"associated_meal,omitempty"`
}

// DayLog holds everything logged for one calendar date (local time,
// YYYY-MM-DD). The entry for the current date is mutable; entries moved to
// the archive are not touched again.
type DayLog struct {
	Date  string       `json:"date"`
	Meals []LoggedMeal `json:"meals"`
}

type Goal struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  string    `json:"target_date,omitempty"`
	Progress    int       `json:"progress"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type Settings struct {
	Theme     string `json:"theme"`
	RatingMin int    `json:"rating_min"`
	RatingMax int    `json:"rating_max"`
}
