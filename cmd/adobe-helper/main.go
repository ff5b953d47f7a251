// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the adobe-helper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/adobe-helper/internal/endpoints"
	"github.com/pdiddy/adobe-helper/internal/logger"
	"github.com/pdiddy/adobe-helper/internal/usage"
	"github.com/pdiddy/adobe-helper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process-wide logger, built once flags and config are read.
var log logger.Logger = logger.Nop()

// rootCmd is the base command for the adobe-helper CLI.
var rootCmd = &cobra.Command{
	Use:   "adobe-helper",
	Short: "Local bookkeeping for Adobe's free online PDF conversion",
	Long: `adobe-helper automates Adobe's free online PDF conversion service. This
CLI exposes the helper's local bookkeeping: the resolved service endpoint
URLs and the per-day free-tier usage quota. The conversion workflow
consults the quota before each conversion and records each success here.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(viper.GetString("log_level"), viper.GetBool("pretty_log"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./adobe-helper.yaml or ~/.config/adobe-helper/config.yaml)")
	rootCmd.PersistentFlags().String("state-dir", "", "state directory (default: ~/.adobe-helper)")
	rootCmd.PersistentFlags().Int("daily-limit", usage.DefaultDailyLimit, "free conversions allowed per day")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().Bool("pretty-log", false, "colored human-readable log output")

	viper.BindPFlag("state_dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	viper.BindPFlag("daily_limit", rootCmd.PersistentFlags().Lookup("daily-limit"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("pretty_log", rootCmd.PersistentFlags().Lookup("pretty-log"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("adobe-helper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "adobe-helper"))
		}
	}

	viper.SetEnvPrefix("ADOBE_HELPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newTracker builds the usage tracker from the effective configuration.
func newTracker() (*usage.Tracker, error) {
	cfg := types.TrackerConfig{
		StateDir:   viper.GetString("state_dir"),
		DailyLimit: viper.GetInt("daily_limit"),
	}
	return usage.NewTracker(cfg, log)
}

// stateDir returns the effective state directory, for components that
// share it with the tracker.
func stateDir() (string, error) {
	if dir := viper.GetString("state_dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, endpoints.DefaultStateDirName), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
