package mealdeck

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage the daily meal checklist",
}

var slotListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the checklist in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCHECKED\tRATING\tTIME\tRECIPE")
			for _, s := range service.Slots(sqldb) {
				checked := "no"
				if s.Checked {
					checked = "yes"
				}
				recipe := ""
				if s.AssociatedMeal != nil {
					recipe = s.AssociatedMeal.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%s\t%s\n", s.ID, s.Name, checked, s.Rating, s.TimeChecked, recipe)
			}
			return nil
		})
	},
}

var slotAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Append a slot to the checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			slot, err := service.AddSlot(sqldb, args[0], timeNow())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added slot %q (id %d)\n", slot.Name, slot.ID)
			return nil
		})
	},
}

var slotRemoveYes bool

var slotRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a slot (and its record in today's log)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("slot id", args[0])
		if err != nil {
			return err
		}
		if !slotRemoveYes {
			return fmt.Errorf("removing a slot is destructive; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			removed, err := service.RemoveSlot(sqldb, id, timeNow())
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No slot with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed slot %d\n", id)
			return nil
		})
	},
}

var slotToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Check a slot off for today, or uncheck it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("slot id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			slot, err := service.ToggleChecked(sqldb, id, timeNow())
			if err != nil {
				return err
			}
			if slot == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No slot with id %d\n", id)
				return nil
			}
			if slot.Checked {
				fmt.Fprintf(cmd.OutOrStdout(), "Checked %q at %s (rating %d)\n", slot.Name, slot.TimeChecked, slot.Rating)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unchecked %q\n", slot.Name)
			}
			return nil
		})
	},
}

var slotRateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Rate a slot (clamped to the configured bounds)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("slot id", args[0])
		if err != nil {
			return err
		}
		rating, err := parseIntArg("rating", args[1])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			slot, err := service.SetRating(sqldb, id, rating, timeNow())
			if err != nil {
				return err
			}
			if slot == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No slot with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rated %q %d\n", slot.Name, slot.Rating)
			return nil
		})
	},
}

var slotRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("slot id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			slot, err := service.RenameSlot(sqldb, id, args[1], timeNow())
			if err != nil {
				return err
			}
			if slot == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No slot with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed slot %d to %q\n", id, slot.Name)
			return nil
		})
	},
}

var slotReorderCmd = &cobra.Command{
	Use:   "reorder <id,id,...>",
	Short: "Rewrite the checklist order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.Split(args[0], ",")
		ids := make([]int64, 0, len(parts))
		for _, p := range parts {
			id, err := parseInt64Arg("slot id", p)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.Reorder(sqldb, ids, timeNow()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reordered checklist")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(slotCmd)
	slotCmd.AddCommand(slotListCmd, slotAddCmd, slotRemoveCmd, slotToggleCmd, slotRateCmd, slotRenameCmd, slotReorderCmd)

	slotRemoveCmd.Flags().BoolVar(&slotRemoveYes, "yes", false, "Confirm removal")
}
