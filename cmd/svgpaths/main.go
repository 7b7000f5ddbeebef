// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the svgpaths CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logLevel is adjusted from --log-level before any command runs.
var logLevel = new(slog.LevelVar)

// logger is the single logger handed to every stage.
var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

// rootCmd is the base command for the svgpaths CLI.
var rootCmd = &cobra.Command{
	Use:   "svgpaths",
	Short: "Convert SVG trait artwork into path-data JSON",
	Long: `svgpaths reads SVG files from an input directory, joins the "d" attribute
of every path element, cleans the result, and writes one JSON file per SVG
holding pathData and viewBox. The trait renderer loads these files directly.

By default it reads ~/Desktop/basicPhilPaths and writes
~/Desktop/basicPhilPaths_json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
			return err
		}
		return setLogLevel(viper.GetString("log_level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./svgpaths.yaml or ~/.config/svgpaths/svgpaths.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "minimum log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("svgpaths")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "svgpaths"))
		}
	}

	viper.SetEnvPrefix("SVGPATHS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setLogLevel(s string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", s, err)
	}
	logLevel.Set(l)
	return nil
}

// bindFlags binds each named flag of fs to its viper key. Binding happens
// when a command runs so that commands sharing a key do not steal each
// other's flags.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("svgpaths failed", "err", err)
		stop()
		os.Exit(1)
	}
}
