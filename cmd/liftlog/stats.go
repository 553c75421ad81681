package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/stats"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Training statistics",
	}
	cmd.AddCommand(statsExercisesCmd())
	cmd.AddCommand(statsMusclesCmd())
	cmd.AddCommand(statsWeeklyCmd())
	cmd.AddCommand(statsSummaryCmd())
	return cmd
}

func statsExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "Sets, reps and heaviest weight per exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EXERCISE\tMUSCLE\tSETS\tREPS\tMAX")
			for _, row := range stats.ByExercise(a.store.Data()) {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", row.Name, row.Muscle, row.TotalSets, row.TotalReps, formatWeight(row.MaxWeight))
			}
			return tw.Flush()
		},
	}
}

func statsMusclesCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "muscles",
		Short: "Sets and reps per muscle group",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			if days == 0 {
				fmt.Fprintln(tw, "MUSCLE\tSETS\tREPS")
				for _, row := range stats.ByMuscle(a.store.Data()) {
					fmt.Fprintf(tw, "%s\t%d\t%d\n", row.Muscle, row.TotalSets, row.TotalReps)
				}
				return tw.Flush()
			}

			fmt.Fprintln(tw, "MUSCLE\tSETS\tREPS\tTONNAGE")
			for _, row := range stats.ByMuscleInWindow(a.store.Data(), days, a.store.Today()) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", row.Muscle, row.TotalSets, row.TotalReps, formatWeight(row.TotalTonnage))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "only the last N days, today included (0 for all time)")
	return cmd
}

func statsWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Volume per ISO week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			report := stats.Weekly(a.store.Data())
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WEEK\tVOLUME")
			for _, w := range report.Weeks {
				fmt.Fprintf(tw, "%s\t%s\n", w.Week, formatWeight(w.TotalVolume))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if report.RecentDelta != nil {
				fmt.Printf("\nLast 4 weeks vs 4 before: %+.1f\n", *report.RecentDelta)
			}
			return nil
		},
	}
}

func statsSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Headline numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			s := stats.Summarize(a.store.Data())
			fmt.Printf("Sessions:        %d (%d finished)\n", s.Sessions, s.FinishedSessions)
			fmt.Printf("Sets:            %d\n", s.TotalSets)
			fmt.Printf("Total volume:    %s\n", formatWeight(s.TotalVolume))
			fmt.Printf("Best set volume: %s\n", formatWeight(s.BestSet))
			fmt.Printf("Best est. 1RM:   %s\n", formatWeight(s.BestOneRepMax))
			return nil
		},
	}
}
