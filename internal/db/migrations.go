package db

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS snapshots (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS markers (
  name TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

// First-run checklist. Matches the stock three-meal layout users expect
// before they customize anything.
var defaultSlots = []model.MealSlot{
	{ID: 1, Name: "Breakfast"},
	{ID: 2, Name: "Lunch"},
	{ID: 3, Name: "Dinner"},
}

var presetRecipes = []model.Recipe{
	{
		ID:           1,
		Name:         "Grilled Salmon & Quinoa",
		Ingredients:  "Salmon, quinoa, spinach, lemon, olive oil",
		Instructions: "Grill salmon, cook quinoa, mix with spinach, squeeze lemon, drizzle olive oil.",
		Rating:       9,
	},
	{
		ID:           2,
		Name:         "Avocado Toast with Egg",
		Ingredients:  "Whole grain bread, avocado, egg, salt, pepper",
		Instructions: "Toast bread, mash avocado, cook egg (fried/boiled), assemble, season to taste.",
		Rating:       8,
	},
	{
		ID:           3,
		Name:         "Greek Yogurt & Berries",
		Ingredients:  "Greek yogurt, blueberries, honey, almonds",
		Instructions: "Mix yogurt with berries, drizzle honey, sprinkle almonds.",
		Rating:       7,
	},
	{
		ID:           4,
		Name:         "Chicken & Veggie Stir-fry",
		Ingredients:  "Chicken breast, broccoli, carrots, bell pepper, soy sauce, garlic",
		Instructions: "Sauté chicken, add veggies, stir in soy sauce and garlic.",
		Rating:       8,
	},
	{
		ID:           5,
		Name:         "Oatmeal with Banana & Nuts",
		Ingredients:  "Oats, banana, walnuts, cinnamon, honey",
		Instructions: "Cook oats, slice banana, add walnuts, sprinkle cinnamon, drizzle honey.",
		Rating:       9,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	if err := ledger.SaveIfAbsent(db, ledger.KeySlots, defaultSlots); err != nil {
		return fmt.Errorf("seed default checklist: %w", err)
	}
	if err := ledger.SaveIfAbsent(db, ledger.KeyRecipes, presetRecipes); err != nil {
		return fmt.Errorf("seed preset recipes: %w", err)
	}

	return nil
}
