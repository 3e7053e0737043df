package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"runsheet/internal/bootstrap"
	importerdto "runsheet/internal/modules/importer/dto"
	"runsheet/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspacePath string

	root := &cobra.Command{
		Use:           "runsheet",
		Short:         "Facilitation session planner and run clock",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workspacePath, "workspace", defaultWorkspace(), "workspace path")

	root.AddCommand(newTUICmd(&workspacePath))
	root.AddCommand(newQueueCmd(&workspacePath))
	root.AddCommand(newTemplateCmd(&workspacePath))
	root.AddCommand(newHistoryCmd(&workspacePath))
	root.AddCommand(newDeckCmd(&workspacePath))
	root.AddCommand(newStarCmd(&workspacePath))
	root.AddCommand(newImporterCmd(&workspacePath))
	return root
}

func defaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "runsheet")
}

func loadApp(workspacePath string) (*bootstrap.App, error) {
	cfg, err := config.New(workspacePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(context.Background(), cfg)
}

func newTUICmd(workspacePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the runsheet terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newQueueCmd(workspacePath *string) *cobra.Command {
	queue := &cobra.Command{Use: "queue", Short: "Manage the current session queue"}

	queue.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a fresh empty queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.CreateQueue(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "queue created")
			return nil
		},
	})

	var minutes int
	addCmd := &cobra.Command{
		Use:   "add <item-ref>",
		Short: "Append an activity (or the break sentinel) to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.AddEntry(context.Background(), args[0], minutes); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
			return nil
		},
	}
	addCmd.Flags().IntVar(&minutes, "minutes", 0, "target minutes (0 = item default)")
	queue.AddCommand(addCmd)

	queue.AddCommand(&cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the entry at a position (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := position(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.RemoveEntry(context.Background(), pos); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	})

	queue.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an entry to a new position (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := position(args[0])
			if err != nil {
				return err
			}
			to, err := position(args[1])
			if err != nil {
				return err
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.Move(context.Background(), from, to); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "moved")
			return nil
		},
	})

	queue.AddCommand(&cobra.Command{
		Use:   "set-duration <position> <minutes>",
		Short: "Set the target minutes for an entry (1-based position)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := position(args[0])
			if err != nil {
				return err
			}
			mins, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %s", args[1])
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.SetDuration(context.Background(), pos, mins); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "duration set")
			return nil
		},
	})

	queue.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			view, err := app.BoardCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			if view.Current == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no current session")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  (%d min planned)\n", view.Current.DisplayName, view.Current.PlannedMinutes)
			for _, entry := range view.Current.Entries {
				marker := " "
				if view.ActiveIndex != nil && entry.Position == *view.ActiveIndex {
					marker = ">"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %2d. %-30s %3d min\n", marker, entry.Position+1, entry.ItemName, entry.TargetMinutes)
			}
			return nil
		},
	})

	queue.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.ClearCurrent(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	})

	return queue
}

func newTemplateCmd(workspacePath *string) *cobra.Command {
	template := &cobra.Command{Use: "template", Short: "Manage session templates"}

	template.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			view, err := app.BoardCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			if len(view.Templates) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no templates")
				return nil
			}
			for _, tpl := range view.Templates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d entries\t%d min\n", tpl.ID, tpl.DisplayName, len(tpl.Entries), tpl.PlannedMinutes)
			}
			return nil
		},
	})

	var fromRun int
	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current queue (or an archived run) as a template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if fromRun > 0 {
				err = app.BoardCLI.SaveRunAsTemplate(context.Background(), fromRun-1, name)
			} else {
				err = app.BoardCLI.SaveCurrentAsTemplate(context.Background(), name)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved template %q\n", name)
			return nil
		},
	}
	saveCmd.Flags().IntVar(&fromRun, "from-run", 0, "archive run number to save instead of the current queue (1-based)")
	template.AddCommand(saveCmd)

	template.AddCommand(&cobra.Command{
		Use:   "load <template-id>",
		Short: "Load a template as the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.LoadTemplate(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "loaded")
			return nil
		},
	})

	template.AddCommand(&cobra.Command{
		Use:   "rename <template-id> <name>",
		Short: "Rename a template",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			if err := app.BoardCLI.RenameTemplate(context.Background(), args[0], name); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "renamed")
			return nil
		},
	})

	template.AddCommand(&cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.DeleteTemplate(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	})

	return template
}

func newHistoryCmd(workspacePath *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Inspect archived runs"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			runs, err := app.BoardCLI.Runs(context.Background())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no archived runs")
				return nil
			}
			for _, run := range runs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d activities\tplan %d min\tran %d:%02d\t%s\n",
					run.CompletedAt, run.EntryCount, run.PlannedMinutes,
					run.ActualSeconds/60, run.ActualSeconds%60, run.ReflectionNotes)
			}
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "show <run>",
		Short: "Show one archived run (1-based, oldest first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := position(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			view, err := app.BoardCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(view.Archive) {
				return fmt.Errorf("no archived run %s", args[0])
			}
			record := view.Archive[idx]
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s  plan %d min  ran %d:%02d\n",
				record.CompletedAt, record.PlannedMinutes, record.ActualSeconds/60, record.ActualSeconds%60)
			if record.ReflectionNotes != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reflection: %s\n", record.ReflectionNotes)
			}
			for _, entry := range record.Entries {
				line := fmt.Sprintf("%2d. %-30s plan %3d min", entry.Position+1, entry.ItemName, entry.TargetMinutes)
				if entry.ActualSeconds != nil {
					line += fmt.Sprintf("  ran %d:%02d", *entry.ActualSeconds/60, *entry.ActualSeconds%60)
				}
				if entry.RunNotes != "" {
					line += "  // " + entry.RunNotes
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "delete <run>",
		Short: "Delete one archived run (1-based, oldest first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := position(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.DeleteArchiveEntry(context.Background(), idx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every archived run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.ClearArchive(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "archive cleared")
			return nil
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the run read model from the archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.ReindexRuns(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindexed")
			return nil
		},
	})

	return history
}

func newDeckCmd(workspacePath *string) *cobra.Command {
	deck := &cobra.Command{Use: "deck", Short: "Manage the activity deck"}

	var tags []string
	var minutes int
	var body string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom activity to the deck",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			out, err := app.DeckCLI.Add(context.Background(), strings.Join(args, " "), tags, minutes, body)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) note=%s\n", out.Name, out.ID, out.NotePath)
			return nil
		},
	}
	addCmd.Flags().StringSliceVar(&tags, "tags", nil, "tags (derived from the name when empty)")
	addCmd.Flags().IntVar(&minutes, "minutes", 0, "default minutes (0 = 5)")
	addCmd.Flags().StringVar(&body, "body", "", "note body (default scaffold when empty)")
	deck.AddCommand(addCmd)

	deck.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List deck activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			items, err := app.DeckCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "empty deck")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d min\t%s\n", item.ID, item.Name, item.DefaultMinutes, strings.Join(item.Tags, ","))
			}
			return nil
		},
	})

	var tag string
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the deck by name or tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			items, err := app.DeckCLI.Search(context.Background(), query, tag)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d min\n", item.ID, item.Name, item.DefaultMinutes)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&tag, "tag", "", "exact tag filter")
	deck.AddCommand(searchCmd)

	deck.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "List distinct tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			tags, err := app.DeckCLI.Tags(context.Background())
			if err != nil {
				return err
			}
			for _, t := range tags {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	})

	deck.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the deck search index from workspace files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.DeckCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindexed")
			return nil
		},
	})

	return deck
}

func newStarCmd(workspacePath *string) *cobra.Command {
	star := &cobra.Command{Use: "star", Short: "Manage starred activities"}

	star.AddCommand(&cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Star or unstar an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			if err := app.BoardCLI.ToggleStarred(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "toggled")
			return nil
		},
	})

	star.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List starred activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			view, err := app.BoardCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			if len(view.Starred) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing starred")
				return nil
			}
			for _, id := range view.Starred {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	return star
}

func newImporterCmd(workspacePath *string) *cobra.Command {
	importer := &cobra.Command{Use: "importer", Short: "Manage deck importers"}

	importer.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered importers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			infos, err := app.ImporterCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no importers")
				return nil
			}
			for _, info := range infos {
				state := "disabled"
				if info.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", info.Name, info.Version, state, info.Description)
			}
			return nil
		},
	})

	importer.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Probe every importer binary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			results, err := app.ImporterCLI.Check(context.Background())
			if err != nil {
				return err
			}
			for _, result := range results {
				status := "ok"
				if result.Error != "" {
					status = result.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tbinary=%t checksum=%t lifecycle=%t\t%s\n",
					result.Name, result.BinaryReachable, result.ChecksumValid, result.LifecycleOK, status)
			}
			return nil
		},
	})

	var query string
	var limit int
	runCmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Pull activities from an importer into the deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			out, err := app.ImporterCLI.Run(context.Background(), importerdto.RunInput{
				ImporterName: args[0],
				Query:        query,
				Limit:        limit,
			})
			if err != nil {
				return err
			}
			for _, item := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s)\n", item.Name, item.ID)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d imported, %d skipped\n", len(out.Items), out.Skipped)
			return nil
		},
	}
	runCmd.Flags().StringVar(&query, "query", "", "filter items by name or tag")
	runCmd.Flags().IntVar(&limit, "limit", 0, "maximum items to pull (0 = all)")
	importer.AddCommand(runCmd)

	return importer
}

// position converts a 1-based CLI argument to a 0-based index.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position must be a positive number: %s", arg)
	}
	return n - 1, nil
}
