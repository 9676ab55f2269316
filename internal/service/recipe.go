package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
	"github.com/mealdeck/mealdeck/internal/model"
)

const (
	recipeRatingMin = 0
	recipeRatingMax = 10
)

type RecipeInput struct {
	Name         string
	Ingredients  string
	Instructions string
	Rating       int
}

func (in *RecipeInput) validate() error {
	in.Name = normalizeName(in.Name)
	if in.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	if in.Ingredients == "" {
		return fmt.Errorf("recipe ingredients are required")
	}
	if in.Instructions == "" {
		return fmt.Errorf("recipe instructions are required")
	}
	if in.Rating < recipeRatingMin || in.Rating > recipeRatingMax {
		return fmt.Errorf("recipe rating must be between %d and %d", recipeRatingMin, recipeRatingMax)
	}
	return nil
}

func Recipes(db *sql.DB) []model.Recipe {
	return loadRecipes(db)
}

func RecipeByID(db *sql.DB, id int64) *model.Recipe {
	for _, r := range loadRecipes(db) {
		if r.ID == id {
			out := r
			return &out
		}
	}
	return nil
}

func AddRecipe(db *sql.DB, in RecipeInput, now time.Time) (model.Recipe, error) {
	if err := in.validate(); err != nil {
		return model.Recipe{}, err
	}
	recipes := loadRecipes(db)
	recipe := model.Recipe{
		ID:           newID(now),
		Name:         in.Name,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Rating:       in.Rating,
	}
	recipes = append(recipes, recipe)
	if err := ledger.Save(db, ledger.KeyRecipes, recipes); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

// UpdateRecipe replaces the mutable fields of the recipe in place. Identity
// is immutable; a missing id is a no-op reported via the bool.
func UpdateRecipe(db *sql.DB, id int64, in RecipeInput) (bool, error) {
	if err := in.validate(); err != nil {
		return false, err
	}
	recipes := loadRecipes(db)
	for i := range recipes {
		if recipes[i].ID != id {
			continue
		}
		recipes[i].Name = in.Name
		recipes[i].Ingredients = in.Ingredients
		recipes[i].Instructions = in.Instructions
		recipes[i].Rating = in.Rating
		if err := ledger.Save(db, ledger.KeyRecipes, recipes); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func DeleteRecipe(db *sql.DB, id int64) (bool, error) {
	recipes := loadRecipes(db)
	kept := make([]model.Recipe, 0, len(recipes))
	removed := false
	for _, r := range recipes {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	if err := ledger.Save(db, ledger.KeyRecipes, kept); err != nil {
		return false, err
	}
	return true, nil
}

// LogRecipe checks the named slot off against the recipe, snapshotting the
// recipe's id, name and rating into the slot and today's log.
func LogRecipe(db *sql.DB, id int64, slotName string, now time.Time) (model.MealSlot, error) {
	recipe := RecipeByID(db, id)
	if recipe == nil {
		return model.MealSlot{}, fmt.Errorf("recipe %d does not exist", id)
	}
	return LogAgainstRecipe(db, slotName, *recipe, now)
}
