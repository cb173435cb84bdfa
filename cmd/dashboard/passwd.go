package main

import (
	"fmt"

	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/keystore"

	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the keystore password",
	Long:  "Re-encrypts the keystore under a new password with a fresh salt and nonce. Keystores holding a legacy hex seed are rewritten in the current format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		oldPassword, err := config.PromptPassword("Enter current wallet password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := promptNewPassword()
		if err != nil {
			return err
		}
		defer clear(newPassword)

		if err := keystore.ChangePassword(cfg.KeystorePath, oldPassword, newPassword); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}
