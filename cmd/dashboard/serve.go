package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/api"
	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/keystore"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"
	"github.com/AlexZinkM/staking-dashboard/staking"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveConnect bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	Long: `Run the dashboard backend:
- prompts for the keystore password (kept in memory only)
- serves the dashboard API, WebSocket stream, Swagger UI and Prometheus metrics
- syncs the connected wallet's staking position with the chain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveConnect, "connect", true, "Connect the keystore wallet at startup")
}

func runServe() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	if _, _, err := keystore.ReadAddress(cfg.KeystorePath); err != nil {
		return fmt.Errorf("keystore %s: %w (run `dashboard keygen` first)", cfg.KeystorePath, err)
	}

	password, err := config.PromptPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	source := keystore.NewSource(cfg.KeystorePath, password)
	clear(password)
	defer source.Close()

	opts, err := staking.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics("")
	session := staking.NewSession(client.NewRPC(cfg.SolanaRPCURL), opts, log, metrics)
	defer session.Close()

	if serveConnect {
		signer, err := source.Unlock()
		if err != nil {
			return fmt.Errorf("failed to unlock keystore: %w", err)
		}
		if err := session.Connect(signer); err != nil {
			return err
		}
	}

	router, err := api.SetupRouter(api.Dependencies{
		Session: session,
		Wallet:  source,
		Metrics: metrics,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("rpc", cfg.SolanaRPCURL),
			zap.String("program", cfg.ProgramID),
			zap.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
