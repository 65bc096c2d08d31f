package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect, export and delete stored interviews",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		stage, _ := cmd.Flags().GetString("stage")
		opts := store.QueryOpts{Limit: limit, Filter: strings.ToUpper(stage)}
		if cmd.Flags().Changed("ended") {
			ended, _ := cmd.Flags().GetBool("ended")
			opts.Ended = &ended
		}

		return withRuntime(cmd, runtimeOptions{}, func(ctx context.Context, rt *runtime) error {
			svc, err := rt.service()
			if err != nil {
				return err
			}
			rows, err := svc.List(ctx, opts)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			fmt.Printf("%-36s  %-20s  %-4s  %-5s  %s\n", "ID", "Stage", "Lang", "Ended", "Updated")
			fmt.Println(strings.Repeat("─", 90))
			for _, r := range rows {
				ended := " "
				if r.Ended {
					ended = "✓"
				}
				fmt.Printf("%-36s  %-20s  %-4s  %-5s  %s\n",
					truncate(r.ID, 36),
					r.Stage,
					r.Language,
					ended,
					r.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				)
			}
			return nil
		})
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the candidate summary for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, runtimeOptions{}, func(ctx context.Context, rt *runtime) error {
			svc, err := rt.service()
			if err != nil {
				return err
			}
			rec, err := svc.Record(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Print(record.Summary(rec))
			return nil
		})
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write the candidate record as JSON or YAML",
	Long: `Write the candidate record for a session.

With --out set to a directory the record is written there as
candidate_<id>.<ext>; with --out - it is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatVal, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		format, err := record.ParseFormat(formatVal)
		if err != nil {
			return err
		}

		return withRuntime(cmd, runtimeOptions{}, func(ctx context.Context, rt *runtime) error {
			svc, err := rt.service()
			if err != nil {
				return err
			}
			rec, err := svc.Record(ctx, args[0])
			if err != nil {
				return err
			}

			if out == "-" {
				data, err := record.Marshal(rec, format)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			if out == "" {
				out = rt.cfg.Storage.ExportDir
			}
			path, err := record.Export(out, rec, format)
			if err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		})
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session and its candidate record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		id := args[0]

		if !yes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete session %s and its candidate record", id),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
					fmt.Println("Aborted.")
					return nil
				}
				return err
			}
		}

		return withRuntime(cmd, runtimeOptions{}, func(ctx context.Context, rt *runtime) error {
			svc, err := rt.service()
			if err != nil {
				return err
			}
			if _, err := svc.Session(ctx, id); err != nil {
				return err
			}
			if err := svc.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted", id)
			return nil
		})
	},
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "number of sessions to show")
	sessionsListCmd.Flags().StringP("stage", "s", "", "only sessions in this stage (e.g. concluded)")
	sessionsListCmd.Flags().Bool("ended", false, "only ended (or, with --ended=false, open) sessions")

	sessionsExportCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	sessionsExportCmd.Flags().StringP("out", "o", "", "output directory, or - for stdout (default storage.export-dir)")

	sessionsDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
