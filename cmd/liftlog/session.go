package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/normalize"
	"github.com/meltforce/liftlog/internal/stats"
	"github.com/meltforce/liftlog/internal/store"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Log workout sessions",
	}
	cmd.AddCommand(sessionNewCmd())
	cmd.AddCommand(sessionListCmd())
	cmd.AddCommand(sessionShowCmd())
	cmd.AddCommand(sessionLogCmd())
	cmd.AddCommand(sessionUnlogCmd())
	cmd.AddCommand(sessionFinishCmd())
	cmd.AddCommand(sessionNoteCmd())
	cmd.AddCommand(sessionMusclesCmd())
	cmd.AddCommand(sessionRmCmd())
	return cmd
}

func sessionNewCmd() *cobra.Command {
	var (
		date    string
		muscles []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if date != "" {
				date = normalize.Date(date, a.store.Today())
			}
			sess := a.store.NewSession(date)
			if len(muscles) > 0 {
				a.store.SetMuscleFilter(sess, muscles)
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Started session %s on %s\n", shortID(sess.ID), sess.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "session date YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVarP(&muscles, "muscles", "m", nil, "muscle groups to focus the exercise picker on")
	return cmd
}

func sessionListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sessions := a.store.SessionsByDate()
			if len(sessions) == 0 {
				fmt.Println("No sessions yet. Use 'liftlog session new' to start one.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for i, sess := range sessions {
				if limit > 0 && i >= limit {
					break
				}
				status := "open"
				if sess.Done {
					status = "done"
				}
				sets := 0
				for _, item := range sess.Items {
					sets += len(item.Sets)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d sets\t%s\t%s\n",
					shortID(sess.ID), sess.Date, status, sets,
					formatWeight(stats.SessionVolume(sess)), sess.Notes)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to show (0 for all)")
	return cmd
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a session's sets with personal bests marked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}

			status := "open"
			if sess.Done {
				status = "finished"
			}
			fmt.Printf("Session %s  %s  (%s)\n", shortID(sess.ID), sess.Date, status)
			if len(sess.Muscles) > 0 {
				tags := make([]string, len(sess.Muscles))
				for i, m := range sess.Muscles {
					tags[i] = m.String()
				}
				fmt.Printf("Focus: %s\n", strings.Join(tags, ", "))
			}
			if sess.Notes != "" {
				fmt.Printf("Notes: %s\n", sess.Notes)
			}

			data := a.store.Data()
			for _, item := range sess.Items {
				ex := a.store.ResolveExercise(item.ExerciseID)
				fmt.Printf("\n%s (%s)\n", ex.Name, ex.Muscle)
				flags := stats.PersonalBestFlags(data, sess, item.ExerciseID)
				for i, set := range item.Sets {
					mark := ""
					if i < len(flags) && flags[i] {
						mark = "  PB"
					}
					fmt.Printf("  %d. %s x %d%s\n", i+1, formatWeight(set.Weight), set.Reps, mark)
				}
			}
			fmt.Printf("\nVolume: %s\n", formatWeight(stats.SessionVolume(sess)))
			return nil
		},
	}
}

func sessionLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [session] [exercise] [weight] [reps]",
		Short: "Log a set",
		Long:  "Log a set. The exercise is an id or a name; weight accepts a comma decimal.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			ex, err := a.findExercise(args[1])
			if err != nil {
				return err
			}
			set, err := normalize.ParseSet(args[2], args[3])
			if err != nil {
				return err
			}

			pb := stats.IsPersonalBest(a.store.Data(), ex.ID, sess.ID, set.Weight)
			item, err := a.store.AddSet(sess, ex.ID, set)
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("%s set %d: %s x %d", ex.Name, len(item.Sets), formatWeight(set.Weight), set.Reps)
			if pb {
				fmt.Print("  new personal best!")
			}
			fmt.Println()
			return nil
		},
	}
}

func sessionUnlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlog [session] [exercise] [set number]",
		Short: "Remove a logged set (numbered from 1 as in 'session show')",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			// Sets of a deleted exercise can only be addressed by id.
			exerciseID := args[1]
			if ex, err := a.findExercise(args[1]); err == nil {
				exerciseID = ex.ID
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("set number %q: %w", args[2], err)
			}

			if err := a.store.DeleteSet(sess, exerciseID, n-1); err != nil {
				if errors.Is(err, store.ErrSetNotFound) {
					return fmt.Errorf("no set %d for that exercise in session %s", n, shortID(sess.ID))
				}
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Removed set %d\n", n)
			return nil
		},
	}
}

func sessionFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish [id]",
		Short: "Mark a session finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			a.store.FinishSession(sess)
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Finished session %s (volume %s)\n", shortID(sess.ID), formatWeight(stats.SessionVolume(sess)))
			return nil
		},
	}
}

func sessionNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note [id] [text]",
		Short: "Replace a session's notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			sess.Notes = strings.Join(args[1:], " ")
			return a.save(cmd.Context())
		},
	}
}

func sessionMusclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "muscles [id] [muscle...]",
		Short: "Set the muscle groups a session focuses on (none clears)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			a.store.SetMuscleFilter(sess, args[1:])
			if err := a.save(cmd.Context()); err != nil {
				return err
			}

			choices := a.store.ExercisesForSession(sess)
			names := make([]string, len(choices))
			for i, ex := range choices {
				names[i] = ex.Name
			}
			fmt.Printf("Exercises for this session: %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}

func sessionRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.findSession(args[0])
			if err != nil {
				return err
			}
			a.store.DeleteSession(sess.ID)
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s\n", shortID(sess.ID))
			return nil
		},
	}
}
