package api

import (
	"errors"
	"net/http"
	"time"

	_ "github.com/AlexZinkM/staking-dashboard/docs" // registers the OpenAPI document
	"github.com/AlexZinkM/staking-dashboard/internal/handler"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"
	"github.com/AlexZinkM/staking-dashboard/staking"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//go:generate swag init -g main.go -d ../../cmd/dashboard,../handler,../model -o ../../docs --outputTypes go

// Dependencies are the components the router serves
type Dependencies struct {
	Session *staking.Session
	Wallet  handler.WalletSource
	Metrics *observability.Metrics
	Logger  *zap.Logger
	Stream  *handler.StreamConfig
}

// SetupRouter sets up router with handlers
func SetupRouter(deps Dependencies) (http.Handler, error) {
	if deps.Session == nil {
		return nil, errors.New("session is required")
	}
	if deps.Wallet == nil {
		return nil, errors.New("wallet source is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	walletHandler := handler.NewWalletHandler(deps.Wallet, deps.Session, deps.Logger)
	stakingHandler := handler.NewStakingHandler(deps.Session, deps.Logger)
	streamHandler := handler.NewStreamHandler(deps.Session, deps.Stream, deps.Logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("/metrics", deps.Metrics.Handler())

	// Wallet endpoints
	mux.HandleFunc("/wallet", walletHandler.Get)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)

	// Staking endpoints
	mux.HandleFunc("/staking/snapshot", stakingHandler.Snapshot)
	mux.HandleFunc("/staking/lock", stakingHandler.Lock)
	mux.HandleFunc("/staking/estimate", stakingHandler.Estimate)
	mux.HandleFunc("/staking/max", stakingHandler.Max)
	mux.HandleFunc("/staking/refresh", stakingHandler.Refresh)
	mux.HandleFunc("/staking/stake", stakingHandler.Stake)
	mux.HandleFunc("/staking/unstake", stakingHandler.Unstake)
	mux.HandleFunc("/staking/claim", stakingHandler.Claim)
	mux.Handle("/staking/stream", streamHandler)

	return withLogging(deps.Logger.Named("http"), mux), nil
}

// statusRecorder keeps the response status for the access log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the recorder does not implement http.Hijacker
		if r.URL.Path == "/staking/stream" {
			next.ServeHTTP(w, r)
			return
		}

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(started)),
		)
	})
}
