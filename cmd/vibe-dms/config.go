package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys lists the settable keys and how their values are parsed.
var configKeys = map[string]func(string) (any, error){
	keyDataDir:     parseString,
	keyLoadWorkers: parsePositiveInt,
	keyServerHost:  parseString,
	keyServerPort:  parsePort,
	keyServerDebug: parseBool,
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-dms configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vibe-dms.yaml.",
		Example: `  vibe-dms config                        # show effective config
  vibe-dms config set server.port 9000   # listen on another port
  vibe-dms config set server.debug off   # disable /debug routes
  vibe-dms config get data.dir           # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runConfigShow(w io.Writer) error {
	settings := viper.AllSettings()
	if cfg := viper.ConfigFileUsed(); cfg != "" {
		fmt.Fprintf(w, "# Config file: %s\n", cfg)
	} else {
		fmt.Fprintln(w, "# No config file; showing defaults and environment. Config file: ~/.vibe-dms.yaml")
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func runConfigSet(w io.Writer, key, value string) error {
	parse, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(knownKeys(), ", "))
	}
	v, err := parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vibe-dms.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, viper.Get(key))
	return nil
}

func parseString(s string) (any, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	return s, nil
}

func parseBool(s string) (any, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return nil, fmt.Errorf("%q is not a boolean", s)
}

func parsePositiveInt(s string) (any, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%q is not a positive integer", s)
	}
	return n, nil
}

func parsePort(s string) (any, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("%q is not a TCP port", s)
	}
	return n, nil
}
