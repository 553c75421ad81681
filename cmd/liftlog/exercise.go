package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/models"
)

func exerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercise",
		Aliases: []string{"ex"},
		Short:   "Manage the exercise catalogue",
	}
	cmd.AddCommand(exerciseAddCmd())
	cmd.AddCommand(exerciseListCmd())
	cmd.AddCommand(exerciseRmCmd())
	cmd.AddCommand(exerciseRenameCmd())
	cmd.AddCommand(exerciseRetagCmd())
	cmd.AddCommand(exerciseSeedCmd())
	return cmd
}

func exerciseAddCmd() *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an exercise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ex, err := a.store.AddExercise(strings.Join(args, " "), models.Muscle(muscle))
			if err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Added %s  %s (%s)\n", shortID(ex.ID), ex.Name, ex.Muscle)
			return nil
		},
	}

	cmd.Flags().StringVarP(&muscle, "muscle", "m", "", "primary muscle group (unknown names become Other)")
	return cmd
}

func exerciseListCmd() *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			exercises := a.store.Data().Exercises
			if len(exercises) == 0 {
				fmt.Println("No exercises yet. Use 'liftlog exercise seed' for a starter catalogue.")
				return nil
			}

			filter, _ := models.ParseMuscle(muscle)
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, ex := range exercises {
				if muscle != "" && ex.Muscle != filter {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", shortID(ex.ID), ex.Name, ex.Muscle)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&muscle, "muscle", "m", "", "only this muscle group")
	return cmd
}

func exerciseRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id|name]",
		Short: "Delete an exercise (logged sets are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ex, err := a.findExercise(args[0])
			if err != nil {
				return err
			}
			name := ex.Name
			a.store.DeleteExercise(ex.ID)
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Deleted %s. Its sets now show as %s.\n", name, models.DeletedExerciseName)
			return nil
		},
	}
}

func exerciseRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id|name] [new name]",
		Short: "Rename an exercise",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ex, err := a.findExercise(args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if name == "" {
				return fmt.Errorf("new name is empty")
			}
			ex.Name = name
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %s\n", shortID(ex.ID), ex.Name)
			return nil
		},
	}
}

func exerciseRetagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retag [id|name] [muscle]",
		Short: "Change an exercise's muscle group",
		Long:  "Change an exercise's muscle group. Past sets count toward the new group in every rollup.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ex, err := a.findExercise(args[0])
			if err != nil {
				return err
			}
			ex.Muscle, _ = models.ParseMuscle(args[1])
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", ex.Name, ex.Muscle)
			return nil
		},
	}
}

func exerciseSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the starter catalogue, skipping names already present",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			added := a.store.SeedCatalogue(models.DefaultCatalogue)
			if added == 0 {
				fmt.Println("Catalogue already complete.")
				return nil
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Added %d exercises\n", added)
			return nil
		},
	}
}
