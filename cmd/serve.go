package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve screening interviews over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, runtimeOptions{}, func(ctx context.Context, rt *runtime) error {
			svc, err := rt.service()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(svc, server.Config{
				Addr:   rt.cfg.Server.Addr,
				APIKey: rt.cfg.Server.APIKey,
			}, rt.log)
			return srv.Run(ctx)
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
