// Package main provides the vibe-dms command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-dms/internal/dataset"
	"github.com/inodb/vibe-dms/internal/duckdb"
	"github.com/inodb/vibe-dms/internal/server"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Configuration keys.
const (
	keyDataDir     = "data.dir"
	keyLoadWorkers = "load.workers"
	keyServerHost  = "server.host"
	keyServerPort  = "server.port"
	keyServerDebug = "server.debug"
)

const defaultDataDir = "data/"

var cfgFile string

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe-dms",
		Short: "Compare deep mutational scanning score files",
		Long: `vibe-dms loads per-position variant score CSV files and serves an interactive
page comparing two of them: a scatter plot of median scores, colored by
annotation flags, and a heatmap of variant scores for each file.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.vibe-dms.yaml)")
	cmd.PersistentFlags().String("data-dir", defaultDataDir, "directory of *.csv score files")
	viper.BindPFlag(keyDataDir, cmd.PersistentFlags().Lookup("data-dir"))

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads .env, the config file and VIBE_DMS_* environment variables.
func initConfig(stderr io.Writer) {
	// A missing .env is normal.
	_ = godotenv.Load()

	viper.SetDefault(keyDataDir, defaultDataDir)
	viper.SetDefault(keyLoadWorkers, 4)
	viper.SetDefault(keyServerHost, server.DefaultHost)
	viper.SetDefault(keyServerPort, server.DefaultPort)
	viper.SetDefault(keyServerDebug, true)

	viper.SetEnvPrefix("VIBE_DMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv(keyServerPort, "VIBE_DMS_SERVER_PORT", "PORT")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".vibe-dms")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

// newLogger builds a development logger in debug mode and a production logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCatalog reads every CSV of the configured data directory.
func loadCatalog(ctx context.Context, logger *zap.Logger) (*dataset.Catalog, error) {
	dir := viper.GetString(keyDataDir)
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	store, err := duckdb.Open("")
	if err != nil {
		return nil, err
	}
	defer store.Close()

	loader := dataset.NewLoader(store, dir)
	loader.SetWorkers(viper.GetInt(keyLoadWorkers))
	loader.SetLogger(logger)

	c := dataset.NewCatalog()
	if err := loader.Load(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("catalog ready", zap.String("dir", abs), zap.Int("datasets", c.Count()))
	return c, nil
}
