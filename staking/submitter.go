package staking

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"
	"github.com/AlexZinkM/staking-dashboard/internal/program"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// LockSource provides the current lock state
type LockSource interface {
	State() model.LockState
}

// Refresher schedules a delayed snapshot refresh
type Refresher interface {
	RefreshAfter(d time.Duration)
}

// SubmitterOptions configures a Submitter
type SubmitterOptions struct {
	Decimals     int32
	RefreshDelay time.Duration
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// Submitter validates, builds, signs and sends stake/unstake transactions.
// Only one submission runs at a time.
type Submitter struct {
	client       *client.SolanaClient
	signer       client.Signer
	lock         LockSource
	refresher    Refresher
	decimals     int32
	refreshDelay time.Duration
	log          *zap.Logger
	metrics      *observability.Metrics

	busy atomic.Bool
}

// NewSubmitter creates a submitter; a nil signer means no wallet is connected
func NewSubmitter(c *client.SolanaClient, signer client.Signer, lock LockSource, refresher Refresher, opts SubmitterOptions) *Submitter {
	if opts.Decimals == 0 {
		opts.Decimals = common.TokenDecimals
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Submitter{
		client:       c,
		signer:       signer,
		lock:         lock,
		refresher:    refresher,
		decimals:     opts.Decimals,
		refreshDelay: opts.RefreshDelay,
		log:          opts.Logger.Named("submitter"),
		metrics:      opts.Metrics,
	}
}

// Submit executes one action. Preconditions are checked before any network call:
// a connected wallet, a positive amount, and for unstake an elapsed lock.
// On success a refresh is scheduled after the configured delay.
func (s *Submitter) Submit(ctx context.Context, kind model.ActionKind, amount string) (solana.Signature, *ActionError) {
	sig, actionErr := s.submit(ctx, kind, amount)

	code := "ok"
	if actionErr != nil {
		code = string(actionErr.Code)
	}
	s.metrics.ActionDone(string(kind), code)
	return sig, actionErr
}

func (s *Submitter) submit(ctx context.Context, kind model.ActionKind, amount string) (solana.Signature, *ActionError) {
	if _, err := model.ParseActionKind(string(kind)); err != nil {
		return solana.Signature{}, newActionError(CodeUnknown, kind, err)
	}
	if s.signer == nil {
		return solana.Signature{}, newActionError(CodeNoWallet, kind, nil)
	}

	units, err := common.ParseBaseUnits(amount, s.decimals)
	if err != nil {
		return solana.Signature{}, newActionError(CodeInvalidAmount, kind, err)
	}

	lock := s.lock.State()
	if kind == model.ActionUnstake && !lock.CanUnstake {
		actionErr := newActionError(CodeLockActive, kind, nil)
		actionErr.Remaining = lock.RemainingSeconds
		return solana.Signature{}, actionErr
	}

	if !s.busy.CompareAndSwap(false, true) {
		return solana.Signature{}, newActionError(CodeBusy, kind, nil)
	}
	defer s.busy.Store(false)

	log := s.log.With(zap.String("kind", string(kind)), zap.Uint64("amount", units))

	instruction, err := s.instruction(kind, units)
	if err != nil {
		log.Error("failed to build instruction", zap.Error(err))
		return solana.Signature{}, newActionError(CodeUnknown, kind, err)
	}

	sig, err := s.client.Send(ctx, instruction, s.signer)
	if err != nil {
		actionErr := classify(kind, s.lock.State().RemainingSeconds, err)
		if actionErr.Code == CodeUnknown {
			log.Error("transaction failed", zap.Error(err))
		} else {
			log.Warn("transaction rejected", zap.String("code", string(actionErr.Code)), zap.Error(err))
		}
		return solana.Signature{}, actionErr
	}

	log.Info("transaction sent", zap.String("signature", sig.String()))
	s.refresher.RefreshAfter(s.refreshDelay)
	return sig, nil
}

// instruction builds the program call; stake and unstake take different account sets
func (s *Submitter) instruction(kind model.ActionKind, units uint64) (solana.Instruction, error) {
	wallet := s.signer.PublicKey()

	user, err := s.client.UserAddress(wallet)
	if err != nil {
		return nil, err
	}

	if kind == model.ActionUnstake {
		return program.NewUnstakeInstruction(s.client.ProgramID(), units, user, wallet)
	}

	global, err := s.client.GlobalAddress()
	if err != nil {
		return nil, err
	}
	return program.NewStakeInstruction(s.client.ProgramID(), units, global, user, wallet)
}
