package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "dashboard",
	Short:        "Local staking dashboard",
	Long:         "Tracks a staking position on Solana, counts down the withdrawal lock and submits stake/unstake transactions signed by a local encrypted keystore.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "Path to YAML config file (optional, environment overrides it)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// promptNewPassword asks twice and checks both entries match
func promptNewPassword() ([]byte, error) {
	password, err := config.PromptPassword("Enter new wallet password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := config.PromptPassword("Repeat new wallet password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)

	if string(password) != string(confirm) {
		clear(password)
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}
