package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/application/commands"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/calendar"
	"github.com/lakshmiprabha03/smarttask-analyzer/internal/analysis/domain/task"
)

var (
	analyzeStrategy    string
	analyzeReference   string
	analyzeHolidayMode string
	analyzeHolidays    []string
	analyzeJSON        bool
)

// analyzeFile is the accepted input shape: either a bare JSON array of
// tasks, or an object with a "tasks" field as sent to the HTTP API.
type analyzeFile struct {
	Tasks []task.Task `json:"tasks"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <tasks.json>",
	Short: "Score a batch of tasks from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read tasks file: %w", err)
		}

		var tasks []task.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			var wrapped analyzeFile
			if err := json.Unmarshal(raw, &wrapped); err != nil {
				return fmt.Errorf("parse tasks file: %w", err)
			}
			tasks = wrapped.Tasks
		}
		if len(tasks) == 0 {
			return fmt.Errorf("no tasks in %s", args[0])
		}

		// Offline mode: engine and defaults only, no storage or broker.
		handler := commands.NewAnalyzeTasksHandler(commands.AnalyzeTasksConfig{Logger: logger})
		result, err := handler.Handle(cmd.Context(), commands.AnalyzeTasksCommand{
			Tasks:         tasks,
			Strategy:      analyzeStrategy,
			ReferenceDate: analyzeReference,
			HolidayMode:   calendar.HolidayMode(analyzeHolidayMode),
			Holidays:      analyzeHolidays,
		})
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return printResultTable(cmd, result)
	},
}

func printResultTable(cmd *cobra.Command, result *commands.AnalyzeTasksResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tCYCLE\tTITLE\tEXPLANATION")
	for _, t := range result.Tasks {
		cycle := ""
		if t.CircularDependency {
			cycle = "yes"
		}
		fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\n", t.ID, t.Score, cycle, t.Title, t.Explanation)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nstrategy: %s", result.Meta.Strategy)
	if result.Meta.HasCycle {
		fmt.Fprintf(out, "  cycles: %v", result.Meta.Cycles)
	}
	fmt.Fprintln(out)
	return nil
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "strategy preset (smart, fastest, impact, deadline)")
	analyzeCmd.Flags().StringVar(&analyzeReference, "reference-date", "", "reference date YYYY-MM-DD (defaults to today)")
	analyzeCmd.Flags().StringVar(&analyzeHolidayMode, "holiday-mode", "", "holiday mode (none, indian, custom, both)")
	analyzeCmd.Flags().StringSliceVar(&analyzeHolidays, "holiday", nil, "custom holiday YYYY-MM-DD (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output JSON instead of a table")
	rootCmd.AddCommand(analyzeCmd)
}
