package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/keystore"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var statusAddress string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the staking position of a wallet once",
	Long:  "Runs one read cycle against the chain without unlocking the keystore and prints the dashboard as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		address := statusAddress
		if address == "" {
			if address, _, err = keystore.ReadAddress(cfg.KeystorePath); err != nil {
				return err
			}
		}
		wallet, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return fmt.Errorf("invalid wallet address: %w", err)
		}

		opts, err := staking.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		solanaClient, err := client.NewSolanaClient(client.NewRPC(cfg.SolanaRPCURL), client.Options{
			ProgramID:  opts.ProgramID,
			Mint:       opts.Mint,
			Commitment: opts.Commitment,
		})
		if err != nil {
			return err
		}

		reader := staking.NewReader(solanaClient, staking.ReaderOptions{
			Decimals:      cfg.Decimals,
			ActivityLimit: cfg.ActivityLimit,
			Logger:        log,
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		snapshot := reader.Fetch(ctx, wallet, model.NewSnapshot(cfg.DailyRewardRate))
		lock := staking.DeriveLock(snapshot.LastUpdateTime, time.Now().Unix(), cfg.LockSeconds())

		out, err := json.MarshalIndent(model.DashboardResponse{
			Address:        wallet.String(),
			WalletBalance:  common.FormatLargeNumber(snapshot.WalletBalance),
			StakedBalance:  common.FormatLargeNumber(snapshot.StakedAmount),
			RewardBalance:  common.FormatLargeNumber(snapshot.PendingReward),
			RewardRate:     snapshot.RewardRate,
			LastUpdateTime: snapshot.LastUpdateTime,
			Lock:           lock,
			Activity:       snapshot.Activity,
			Error:          snapshot.FetchError,
			Raw:            snapshot,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusAddress, "address", "", "Wallet address (defaults to the keystore address)")
}
