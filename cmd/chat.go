package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a screening interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetString("resume")
		return runChat(cmd, resume)
	},
}

func init() {
	chatCmd.Flags().StringP("resume", "r", "", "resume the session with this id")
}

// runChat launches the terminal UI. Logs go to a file beside the database.
func runChat(cmd *cobra.Command, resume string) error {
	return withRuntime(cmd, runtimeOptions{logToFile: true}, func(_ context.Context, rt *runtime) error {
		svc, err := rt.service()
		if err != nil {
			return err
		}
		return app.Run(svc, resume)
	})
}
