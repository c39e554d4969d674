package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-dms/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive comparison page",
		Long: `Load every *.csv file of the data directory and serve the comparison page.

The server listens on 0.0.0.0:8051 unless configured otherwise; the PORT
environment variable overrides the configured port. Debug mode (on by
default) exposes runtime profiling under /debug.`,
		Example: `  vibe-dms serve
  vibe-dms serve --data-dir scores/ --port 9000
  PORT=8080 vibe-dms serve --debug=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().String("host", server.DefaultHost, "interface to listen on")
	cmd.Flags().Int("port", server.DefaultPort, "port to listen on")
	cmd.Flags().Bool("debug", true, "enable debug logging and /debug introspection routes")
	viper.BindPFlag(keyServerHost, cmd.Flags().Lookup("host"))
	viper.BindPFlag(keyServerPort, cmd.Flags().Lookup("port"))
	viper.BindPFlag(keyServerDebug, cmd.Flags().Lookup("debug"))

	return cmd
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.Config{
		Host:  viper.GetString(keyServerHost),
		Port:  viper.GetInt(keyServerPort),
		Debug: viper.GetBool(keyServerDebug),
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := loadCatalog(ctx, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, catalog, logger)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
