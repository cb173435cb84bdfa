package main

import (
	"fmt"

	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/keystore"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new wallet into the encrypted keystore",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		password, err := promptNewPassword()
		if err != nil {
			return err
		}
		defer clear(password)

		address, err := keystore.Create(cfg.KeystorePath, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wallet created: %s\nKeystore: %s\n", address, cfg.KeystorePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
