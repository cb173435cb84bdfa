package staking

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNotConnected is returned by operations that need a wallet
var ErrNotConnected = errors.New("wallet not connected")

// Options configures a Session
type Options struct {
	ProgramID       solana.PublicKey
	Mint            solana.PublicKey
	Commitment      rpc.CommitmentType
	Decimals        int32
	DailyRewardRate decimal.Decimal
	APR             decimal.Decimal
	LockDuration    time.Duration
	PollInterval    time.Duration
	RefreshDelay    time.Duration
	ActivityLimit   int
	Now             Clock
}

// OptionsFromConfig maps the application config onto session options
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	programID, err := cfg.ProgramPublicKey()
	if err != nil {
		return Options{}, err
	}
	mint, err := cfg.MintPublicKey()
	if err != nil {
		return Options{}, err
	}

	return Options{
		ProgramID:       programID,
		Mint:            mint,
		Commitment:      rpc.CommitmentType(cfg.Commitment),
		Decimals:        cfg.Decimals,
		DailyRewardRate: cfg.DailyRewardRate,
		APR:             cfg.APR,
		LockDuration:    cfg.LockDuration,
		PollInterval:    cfg.PollInterval,
		RefreshDelay:    cfg.RefreshDelay,
		ActivityLimit:   cfg.ActivityLimit,
	}, nil
}

// connection holds everything built for one connected wallet
type connection struct {
	signer    client.Signer
	poller    *Poller
	lock      *LockTimer
	submitter *Submitter
	unsub     []func()
}

// Session is the dashboard state of the process. Each Connect builds a fresh
// client, poller, lock timer and submitter; nothing is shared across wallets.
type Session struct {
	rpc     client.RPC
	opts    Options
	log     *zap.Logger
	metrics *observability.Metrics

	mu   sync.RWMutex
	conn *connection
	// last state of a disconnected wallet, kept inert
	lastSnapshot model.Snapshot
	lastLock     model.LockState

	subsMu sync.Mutex
	subs   map[int]func(model.DashboardResponse)
	nextID int
}

// NewSession creates a disconnected session
func NewSession(rpcClient client.RPC, opts Options, log *zap.Logger, metrics *observability.Metrics) *Session {
	if opts.Decimals == 0 {
		opts.Decimals = common.TokenDecimals
	}
	if opts.LockDuration == 0 {
		opts.LockDuration = config.DefaultLockDuration
	}
	if opts.RefreshDelay == 0 {
		opts.RefreshDelay = config.DefaultRefreshDelay
	}
	if opts.DailyRewardRate.IsZero() {
		opts.DailyRewardRate = config.DefaultDailyRewardRate
	}
	if opts.APR.IsZero() {
		opts.APR = config.DefaultAPR
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		rpc:          rpcClient,
		opts:         opts,
		log:          log.Named("session"),
		metrics:      metrics,
		lastSnapshot: model.NewSnapshot(opts.DailyRewardRate),
		lastLock:     model.Unlocked(),
		subs:         make(map[int]func(model.DashboardResponse)),
	}
}

// Connect starts tracking the signer's wallet. Connecting the same wallet
// again is a no-op; a different wallet replaces the current one.
func (s *Session) Connect(signer client.Signer) error {
	if signer == nil {
		return errors.New("signer is required")
	}

	s.mu.Lock()
	if s.conn != nil && s.conn.signer.PublicKey().Equals(signer.PublicKey()) {
		s.mu.Unlock()
		return nil
	}
	s.teardownLocked()

	solanaClient, err := client.NewSolanaClient(s.rpc, client.Options{
		ProgramID:  s.opts.ProgramID,
		Mint:       s.opts.Mint,
		Commitment: s.opts.Commitment,
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}

	reader := NewReader(solanaClient, ReaderOptions{
		Decimals:      s.opts.Decimals,
		ActivityLimit: s.opts.ActivityLimit,
		Now:           s.opts.Now,
		Logger:        s.log,
		Metrics:       s.metrics,
	})
	poller := NewPoller(reader, PollerOptions{
		Interval:          s.opts.PollInterval,
		DefaultRewardRate: s.opts.DailyRewardRate,
		Logger:            s.log,
	})
	lock := NewLockTimer(s.opts.LockDuration, s.opts.Now, s.metrics)
	submitter := NewSubmitter(solanaClient, signer, lock, poller, SubmitterOptions{
		Decimals:     s.opts.Decimals,
		RefreshDelay: s.opts.RefreshDelay,
		Logger:       s.log,
		Metrics:      s.metrics,
	})

	conn := &connection{
		signer:    signer,
		poller:    poller,
		lock:      lock,
		submitter: submitter,
	}
	conn.unsub = append(conn.unsub,
		poller.Subscribe(func(snapshot model.Snapshot) {
			lock.SetBase(snapshot.LastUpdateTime)
			s.publish()
		}),
		lock.OnChange(func(model.LockState) { s.publish() }),
	)
	s.conn = conn
	s.mu.Unlock()

	s.log.Info("wallet connected", zap.String("wallet", signer.PublicKey().String()))
	poller.Start(signer.PublicKey())
	s.publish()
	return nil
}

// Disconnect stops polling and the lock timer. The last snapshot stays readable.
func (s *Session) Disconnect() {
	s.mu.Lock()
	had := s.conn != nil
	s.teardownLocked()
	s.mu.Unlock()

	if had {
		s.log.Info("wallet disconnected")
		s.publish()
	}
}

func (s *Session) teardownLocked() {
	if s.conn == nil {
		return
	}

	conn := s.conn
	s.conn = nil
	for _, unsub := range conn.unsub {
		unsub()
	}
	conn.poller.Stop()
	conn.lock.Stop()
	s.lastSnapshot = conn.poller.Snapshot()
	s.lastLock = conn.lock.State()

	if closer, ok := conn.signer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.log.Warn("failed to close signer", zap.Error(err))
		}
	}
}

// Connected reports whether a wallet is connected
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

// Address returns the connected wallet, or the zero key
func (s *Session) Address() solana.PublicKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return solana.PublicKey{}
	}
	return s.conn.signer.PublicKey()
}

// Snapshot returns the current snapshot
func (s *Session) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return s.lastSnapshot.Clone()
	}
	return s.conn.poller.Snapshot()
}

// Lock returns the current lock state
func (s *Session) Lock() model.LockState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return s.lastLock
	}
	return s.conn.lock.State()
}

// Fetching reports whether a refresh is in flight
func (s *Session) Fetching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil && s.conn.poller.Fetching()
}

// Refresh triggers an immediate asynchronous refresh
func (s *Session) Refresh() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return ErrNotConnected
	}
	s.conn.poller.RefreshNow()
	return nil
}

// Estimate projects rewards for a candidate amount; invalid input yields zeros
func (s *Session) Estimate(amount string) model.EstimatedRewards {
	value, err := common.ParseAmount(amount)
	if err != nil {
		value = decimal.Zero
	}
	return common.EstimateRewards(value, s.opts.DailyRewardRate, s.opts.APR)
}

// Submit runs a stake or unstake action for the connected wallet
func (s *Session) Submit(ctx context.Context, kind model.ActionKind, amount string) (solana.Signature, *ActionError) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	if conn == nil {
		return solana.Signature{}, newActionError(CodeNoWallet, kind, ErrNotConnected)
	}
	return conn.submitter.Submit(ctx, kind, amount)
}

// MaxAmount returns the largest amount the user can enter for kind:
// the wallet balance for stake, the staked amount for unstake.
// The value goes through display formatting first, as the input field shows it.
func (s *Session) MaxAmount(kind model.ActionKind) (decimal.Decimal, error) {
	snapshot := s.Snapshot()

	value := snapshot.WalletBalance
	if kind == model.ActionUnstake {
		value = snapshot.StakedAmount
	}
	return common.ParseFormattedBalance(common.FormatLargeNumber(value))
}

// Dashboard composes the snapshot, lock state and flags for display
func (s *Session) Dashboard() model.DashboardResponse {
	snapshot := s.Snapshot()
	lock := s.Lock()

	address := snapshot.WalletAddress
	if connected := s.Address(); !connected.IsZero() {
		address = connected.String()
	}

	return model.DashboardResponse{
		Address:        address,
		Connected:      s.Connected(),
		Fetching:       s.Fetching(),
		WalletBalance:  common.FormatLargeNumber(snapshot.WalletBalance),
		StakedBalance:  common.FormatLargeNumber(snapshot.StakedAmount),
		RewardBalance:  common.FormatLargeNumber(snapshot.PendingReward),
		RewardRate:     snapshot.RewardRate,
		LastUpdateTime: snapshot.LastUpdateTime,
		Lock:           lock,
		Activity:       snapshot.Activity,
		Error:          snapshot.FetchError,
		Raw:            snapshot,
	}
}

// Subscribe registers fn for every dashboard change and returns a function removing it
func (s *Session) Subscribe(fn func(model.DashboardResponse)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// Close disconnects the wallet
func (s *Session) Close() {
	s.Disconnect()
}

func (s *Session) publish() {
	s.subsMu.Lock()
	subs := make([]func(model.DashboardResponse), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	if len(subs) == 0 {
		return
	}
	frame := s.Dashboard()
	for _, fn := range subs {
		fn(frame)
	}
}
