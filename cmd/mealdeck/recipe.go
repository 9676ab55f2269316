package mealdeck

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage the recipe catalog",
}

var (
	recipeName         string
	recipeIngredients  string
	recipeInstructions string
	recipeRating       int
)

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tRATING")
			for _, r := range service.Recipes(sqldb) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d/10\n", r.ID, r.Name, r.Rating)
			}
			return nil
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			r := service.RecipeByID(sqldb, id)
			if r == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\nIngredients: %s\nRecipe: %s\nRating: %d/10\n", r.Name, r.Ingredients, r.Instructions, r.Rating)
			return nil
		})
	},
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.RecipeInput{
			Name:         recipeName,
			Ingredients:  recipeIngredients,
			Instructions: recipeInstructions,
			Rating:       recipeRating,
		}
		return withDB(func(sqldb *sql.DB) error {
			recipe, err := service.AddRecipe(sqldb, in, timeNow())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %q (id %d)\n", recipe.Name, recipe.ID)
			return nil
		})
	},
}

var recipeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a recipe's fields in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		in := service.RecipeInput{
			Name:         recipeName,
			Ingredients:  recipeIngredients,
			Instructions: recipeInstructions,
			Rating:       recipeRating,
		}
		return withDB(func(sqldb *sql.DB) error {
			found, err := service.UpdateRecipe(sqldb, id, in)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d\n", id)
			return nil
		})
	},
}

var recipeRemoveYes bool

var recipeRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		if !recipeRemoveYes {
			return fmt.Errorf("removing a recipe is destructive; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			removed, err := service.DeleteRecipe(sqldb, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed recipe %d\n", id)
			return nil
		})
	},
}

var recipeLogSlot string

var recipeLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Log a recipe against a checklist slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if recipeLogSlot == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Pick a slot with --slot. Available:")
				for _, name := range service.SlotNames(sqldb) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
				return fmt.Errorf("--slot is required")
			}
			slot, err := service.LogRecipe(sqldb, id, recipeLogSlot, timeNow())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %q into slot %q (rating %d)\n", slot.AssociatedMeal.Name, slot.Name, slot.Rating)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeListCmd, recipeShowCmd, recipeAddCmd, recipeEditCmd, recipeRemoveCmd, recipeLogCmd)

	for _, c := range []*cobra.Command{recipeAddCmd, recipeEditCmd} {
		c.Flags().StringVar(&recipeName, "name", "", "Recipe name")
		c.Flags().StringVar(&recipeIngredients, "ingredients", "", "Comma-separated ingredients")
		c.Flags().StringVar(&recipeInstructions, "instructions", "", "Preparation instructions")
		c.Flags().IntVar(&recipeRating, "rating", 5, "Healthiness rating 0-10")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("ingredients")
		_ = c.MarkFlagRequired("instructions")
	}

	recipeRemoveCmd.Flags().BoolVar(&recipeRemoveYes, "yes", false, "Confirm removal")
	recipeLogCmd.Flags().StringVar(&recipeLogSlot, "slot", "", "Checklist slot name to log into")
}
