package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mealdeck/mealdeck/internal/model"
)

// DayRating is the calendar cell for one date. HasData distinguishes "no
// meals logged" from a genuine zero average; the numeric value alone cannot.
type DayRating struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	HasData bool    `json:"has_data"`
	Records int     `json:"records"`
}

type MonthReport struct {
	Year         int         `json:"year"`
	Month        time.Month  `json:"month"`
	Days         []DayRating `json:"days"`
	Average      float64     `json:"average"`
	DaysWithData int         `json:"days_with_data"`
}

// RecordsForDate looks the date up across live log and archive. A date
// lives in at most one of the two; the live log is consulted first.
func RecordsForDate(db *sql.DB, date string) ([]model.LoggedMeal, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	for _, day := range loadLiveLog(db) {
		if day.Date == date {
			return day.Meals, nil
		}
	}
	for _, day := range loadArchive(db) {
		if day.Date == date {
			return day.Meals, nil
		}
	}
	return []model.LoggedMeal{}, nil
}

// AverageRatingForDate returns the mean rating across the date's records,
// preferring the linked recipe's rating where one was snapshotted. The bool
// is false when the date has no records.
func AverageRatingForDate(db *sql.DB, date string) (float64, bool, error) {
	records, err := RecordsForDate(db, date)
	if err != nil {
		return 0, false, err
	}
	if len(records) == 0 {
		return 0, false, nil
	}
	sum := 0
	for _, rec := range records {
		sum += effectiveRating(rec)
	}
	return float64(sum) / float64(len(records)), true, nil
}

// MonthSummary computes the per-day averages for a calendar month plus the
// month-wide mean over days that have data.
func MonthSummary(db *sql.DB, year int, month time.Month) (*MonthReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	byDate := map[string][]model.LoggedMeal{}
	for _, day := range loadArchive(db) {
		byDate[day.Date] = day.Meals
	}
	for _, day := range loadLiveLog(db) {
		byDate[day.Date] = day.Meals
	}

	report := &MonthReport{Year: year, Month: month}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	total := 0.0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := dayOf(d)
		cell := DayRating{Date: date}
		if records, ok := byDate[date]; ok && len(records) > 0 {
			sum := 0
			for _, rec := range records {
				sum += effectiveRating(rec)
			}
			cell.Average = float64(sum) / float64(len(records))
			cell.HasData = true
			cell.Records = len(records)
			total += cell.Average
			report.DaysWithData++
		}
		report.Days = append(report.Days, cell)
	}
	if report.DaysWithData > 0 {
		report.Average = total / float64(report.DaysWithData)
	}
	return report, nil
}

func effectiveRating(rec model.LoggedMeal) int {
	if rec.AssociatedMeal != nil {
		return rec.AssociatedMeal.Rating
	}
	return rec.Rating
}

// LiveLog exposes the mutable day entries, most useful for showing today.
func LiveLog(db *sql.DB) []model.DayLog {
	return loadLiveLog(db)
}

// Archive exposes the immutable past-day entries in date order.
func Archive(db *sql.DB) []model.DayLog {
	return loadArchive(db)
}
