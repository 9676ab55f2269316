package mealdeck

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Track free-standing goals",
}

var (
	goalDescription string
	goalTargetDate  string
)

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.GoalInput{
			Title:       args[0],
			Description: goalDescription,
			TargetDate:  goalTargetDate,
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.AddGoal(sqldb, in, timeNow())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q (id %d)\n", goal.Title, goal.ID)
			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := timeNow()
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTITLE\tPROGRESS\tTARGET\tSTATUS")
			for _, g := range service.Goals(sqldb) {
				status := "in progress"
				if g.IsCompleted {
					status = "completed"
				} else if days, ok := service.DaysRemaining(g, now); ok {
					switch {
					case days < 0:
						status = fmt.Sprintf("%d days overdue", -days)
					case days == 0:
						status = "due today"
					default:
						status = fmt.Sprintf("%d days remaining", days)
					}
				}
				target := g.TargetDate
				if target == "" {
					target = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d%%\t%s\t%s\n", g.ID, g.Title, g.Progress, target, status)
			}
			return nil
		})
	},
}

var goalProgressBy int

var goalProgressCmd = &cobra.Command{
	Use:   "progress <id>",
	Short: "Adjust progress by a delta (e.g. --by 10 or --by=-10)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("goal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.AdjustProgress(sqldb, id, goalProgressBy)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No goal with id %d\n", id)
				return nil
			}
			printGoalProgress(cmd, goal.Title, goal.Progress, goal.IsCompleted)
			return nil
		})
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set <id> <progress>",
	Short: "Set progress to an absolute value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("goal id", args[0])
		if err != nil {
			return err
		}
		value, err := parseIntArg("progress", args[1])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.SetProgress(sqldb, id, value)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No goal with id %d\n", id)
				return nil
			}
			printGoalProgress(cmd, goal.Title, goal.Progress, goal.IsCompleted)
			return nil
		})
	},
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("goal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.CompleteGoal(sqldb, id)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No goal with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %q\n", goal.Title)
			return nil
		})
	},
}

var goalRemoveYes bool

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("goal id", args[0])
		if err != nil {
			return err
		}
		if !goalRemoveYes {
			return fmt.Errorf("removing a goal is destructive; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			removed, err := service.DeleteGoal(sqldb, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No goal with id %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed goal %d\n", id)
			return nil
		})
	},
}

func printGoalProgress(cmd *cobra.Command, title string, progress int, completed bool) {
	if completed {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is at %d%% (completed)\n", title, progress)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%q is at %d%%\n", title, progress)
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalProgressCmd, goalSetCmd, goalCompleteCmd, goalRemoveCmd)

	goalProgressCmd.Flags().IntVar(&goalProgressBy, "by", 0, "Progress delta, may be negative")
	_ = goalProgressCmd.MarkFlagRequired("by")

	goalAddCmd.Flags().StringVar(&goalDescription, "description", "", "Optional description")
	goalAddCmd.Flags().StringVar(&goalTargetDate, "target-date", "", "Optional target date YYYY-MM-DD")
	goalRemoveCmd.Flags().BoolVar(&goalRemoveYes, "yes", false, "Confirm removal")
}
