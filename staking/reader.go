// Package staking keeps a wallet's staking position in sync with the chain:
// it polls account state, derives the lock countdown, and submits
// stake/unstake instructions with classified failures.
package staking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FetchErrorMessage is set on a snapshot when a whole cycle failed
const FetchErrorMessage = "Failed to fetch data. Please try again later."

// Reader step names used in logs and metrics
const (
	stepBalance  = "balance"
	stepGlobal   = "global"
	stepUser     = "user"
	stepActivity = "activity"
)

// Clock returns the current time; injected so tests control it
type Clock func() time.Time

// Fetcher produces the next snapshot for a wallet
type Fetcher interface {
	Fetch(ctx context.Context, wallet solana.PublicKey, prev model.Snapshot) model.Snapshot
}

// ReaderOptions configures a Reader
type ReaderOptions struct {
	Decimals      int32
	ActivityLimit int
	Now           Clock
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// Reader fetches balance, program state and activity in one cycle.
// Every step is fault-isolated: a failed step falls back to a default and the cycle continues.
type Reader struct {
	client        *client.SolanaClient
	decimals      int32
	activityLimit int
	now           Clock
	log           *zap.Logger
	metrics       *observability.Metrics
}

// NewReader creates a reader over the given client
func NewReader(c *client.SolanaClient, opts ReaderOptions) *Reader {
	if opts.Decimals == 0 {
		opts.Decimals = common.TokenDecimals
	}
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Reader{
		client:        c,
		decimals:      opts.Decimals,
		activityLimit: opts.ActivityLimit,
		now:           opts.Now,
		log:           opts.Logger.Named("reader"),
		metrics:       opts.Metrics,
	}
}

// Fetch runs one refresh cycle. It never returns an error:
// on a cycle-level failure it returns prev with FetchError set.
func (r *Reader) Fetch(ctx context.Context, wallet solana.PublicKey, prev model.Snapshot) (next model.Snapshot) {
	started := time.Now()
	log := r.log.With(zap.String("wallet", wallet.String()))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("refresh cycle panicked", zap.Any("panic", rec))
			next = r.failed(prev)
		}
		r.metrics.ObserveRefresh(time.Since(started).Seconds(), next.FetchError != "")
	}()

	next = prev.Clone()
	next.WalletAddress = wallet.String()
	next.FetchError = ""

	transportFailures := 0

	// 1. wallet token balance
	balance, err := r.client.TokenBalance(ctx, wallet)
	if err != nil {
		if !client.IsAccountNotFound(err) {
			transportFailures++
		}
		r.stepFailed(log, stepBalance, err)
		balance = 0
	}
	next.WalletBalance = common.FromBaseUnits(balance, r.decimals)

	// 2. global config: keeps the previous rate when unavailable
	global, err := r.client.GlobalState(ctx)
	if err != nil {
		if !client.IsAccountNotFound(err) {
			transportFailures++
		}
		r.stepFailed(log, stepGlobal, err)
	} else {
		next.RewardRate = common.FromBaseUnits(global.RewardRate, r.decimals)
		next.MaxStake = common.FromBaseUnits(global.MaxStake, r.decimals)
	}

	// 3. user position: a transport failure keeps the previous position
	user, err := r.client.UserState(ctx, wallet)
	switch {
	case err == nil:
		next.StakedAmount = common.FromBaseUnits(user.StakedAmount, r.decimals)
		next.LastUpdateTime = user.LastStakeTime
	case client.IsAccountNotFound(err):
		log.Debug("user position not found, wallet has never staked")
		r.metrics.StepFailed(stepUser, "not_found")
		next.StakedAmount = decimal.Zero
		next.LastUpdateTime = 0
	default:
		transportFailures++
		r.stepFailed(log, stepUser, err)
	}

	if ctx.Err() != nil || transportFailures == 3 {
		log.Error("refresh cycle failed", zap.Int("transportFailures", transportFailures), zap.Error(ctx.Err()))
		return r.failed(prev)
	}

	// 4. derived reward estimate
	next.PendingReward = common.PendingReward(r.now().Unix(), next.LastUpdateTime, next.RewardRate, next.StakedAmount)

	// 5. recent activity on the position record
	activity, err := r.activity(ctx, wallet)
	if err != nil {
		r.stepFailed(log, stepActivity, err)
	} else {
		next.Activity = activity
	}

	next.UpdatedAt = r.now()
	r.metrics.SetPosition(next.WalletBalance.InexactFloat64(), next.StakedAmount.InexactFloat64())

	log.Debug("refresh cycle done",
		zap.String("walletBalance", next.WalletBalance.String()),
		zap.String("staked", next.StakedAmount.String()),
		zap.Int64("lastUpdateTime", next.LastUpdateTime),
		zap.Int("activity", len(next.Activity)),
	)
	return next
}

func (r *Reader) activity(ctx context.Context, wallet solana.PublicKey) ([]model.ActivityEntry, error) {
	userAddress, err := r.client.UserAddress(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to derive user address: %w", err)
	}

	sigs, err := r.client.RecentSignatures(ctx, userAddress, r.activityLimit)
	if err != nil {
		return nil, err
	}
	return toActivity(sigs), nil
}

func toActivity(sigs []*rpc.TransactionSignature) []model.ActivityEntry {
	entries := make([]model.ActivityEntry, 0, len(sigs))
	for _, sig := range sigs {
		if sig == nil {
			continue
		}

		entry := model.ActivityEntry{
			Signature: sig.Signature.String(),
			Slot:      sig.Slot,
			Status:    model.ActivitySuccess,
		}
		if sig.BlockTime != nil {
			entry.BlockTime = int64(*sig.BlockTime)
		}
		if sig.Err != nil {
			entry.Status = model.ActivityFail
		}
		entries = append(entries, entry)
	}
	return entries
}

func (r *Reader) failed(prev model.Snapshot) model.Snapshot {
	out := prev.Clone()
	out.FetchError = FetchErrorMessage
	return out
}

func (r *Reader) stepFailed(log *zap.Logger, step string, err error) {
	reason := "transport"
	if client.IsAccountNotFound(err) {
		reason = "not_found"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		reason = "cancelled"
	}
	r.metrics.StepFailed(step, reason)
	log.Warn("refresh step failed, using default", zap.String("step", step), zap.String("reason", reason), zap.Error(err))
}
