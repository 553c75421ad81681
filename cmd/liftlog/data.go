package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/csvio"
	"github.com/meltforce/liftlog/internal/upload"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export [kind]",
		Short:     "Write a CSV export (exercises, sessions, exercise-stats, muscle-stats)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := csvio.ParseKind(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if out == "-" {
				return csvio.Export(os.Stdout, kind, a.store.Data())
			}
			if out == "" {
				out = kind.Filename()
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := csvio.Export(f, kind, a.store.Data()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout (default liftlog-<kind>.csv)")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		remote string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "import [exercises|sessions] [file...]",
		Short: "Import CSV files",
		Long: "Import CSV files into the local store, or with --remote into a running 'liftlog serve'. " +
			"Nothing is applied from a file missing required columns; invalid rows are skipped and counted. " +
			"A file already imported into the same place is skipped unless --force is given.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := csvio.ParseKind(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			var target upload.Target = upload.NewLocal(a.store)
			if remote != "" {
				target = upload.NewClient(remote, a.cfg.Auth.APIKey)
			}
			u := upload.New(target, a.db, a.log)

			for _, path := range args[1:] {
				out, err := u.ImportFile(cmd.Context(), kind, path, force)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if out.Skipped {
					fmt.Printf("%s: already imported into %s (use --force to import again)\n", path, target.Name())
					continue
				}
				r := out.Result
				fmt.Printf("%s: %d rows, %d skipped; inserted %d exercises, %d sessions, %d sets\n",
					path, r.RowsReceived, r.RowsSkipped, r.ExercisesInserted, r.SessionsInserted, r.SetsInserted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a liftlog server to import into")
	cmd.Flags().BoolVar(&force, "force", false, "import files even if they were imported before")
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all exercises and sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Print("This deletes every exercise and session. Type 'reset' to confirm: ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.TrimSpace(line) != "reset" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Reset(cmd.Context()); err != nil {
				return err
			}
			if err := a.db.ForgetImports(cmd.Context(), upload.LocalTarget); err != nil {
				a.log.Warn("import ledger not cleared", "error", err)
			}
			fmt.Println("All data deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func kindNames() []string {
	names := make([]string, len(csvio.Kinds))
	for i, k := range csvio.Kinds {
		names[i] = string(k)
	}
	return names
}
