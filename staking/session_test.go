package staking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client/clienttest"
	"github.com/AlexZinkM/staking-dashboard/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closingSigner records Close calls
type closingSigner struct {
	*clienttest.Signer
	closed atomic.Bool
}

func (s *closingSigner) Close() error {
	s.closed.Store(true)
	return nil
}

func newTestSession(f *fixture) *Session {
	return NewSession(f.rpc, Options{
		ProgramID:    testProgramID,
		Mint:         testMint,
		PollInterval: time.Minute,
		RefreshDelay: 20 * time.Millisecond,
		Now:          f.clock.Now,
	}, nil, nil)
}

func waitForSnapshot(t *testing.T, s *Session, cond func(model.Snapshot) bool) {
	t.Helper()
	require.Eventually(t, func() bool { return cond(s.Snapshot()) }, 2*time.Second, 5*time.Millisecond)
}

func TestSession_ConnectFetchesAndDerivesLock(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 1_500_000*tokens)
	f.setGlobal(t, 0, 150)
	f.setUser(t, f.wallet, 2500*tokens, t0.Unix()-testLockSeconds+86400)
	f.setActivity(t, f.wallet, 3)

	s := newTestSession(f)
	defer s.Close()

	require.NoError(t, s.Connect(f.signer))
	assert.True(t, s.Connected())
	assert.Equal(t, f.wallet, s.Address())

	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.HasPosition() })
	require.Eventually(t, func() bool { return s.Lock().RemainingSeconds == 86400 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Lock().CanUnstake)

	dash := s.Dashboard()
	assert.True(t, dash.Connected)
	assert.Equal(t, f.wallet.String(), dash.Address)
	assert.Equal(t, "1.50M", dash.WalletBalance)
	assert.Equal(t, "2.50K", dash.StakedBalance)
	assert.Equal(t, "1d 0h", dash.Lock.Remaining)
	assert.Len(t, dash.Activity, 3)
	assert.Empty(t, dash.Error)
}

func TestSession_UnstakeDuringLockMakesNoCalls(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 10*tokens)
	f.setUser(t, f.wallet, 1000*tokens, t0.Unix()-testLockSeconds+86400)

	s := newTestSession(f)
	defer s.Close()
	require.NoError(t, s.Connect(f.signer))
	require.Eventually(t, func() bool { return s.Lock().RemainingSeconds == 86400 }, 2*time.Second, 5*time.Millisecond)

	_, err := s.Submit(context.Background(), model.ActionUnstake, "100")
	require.NotNil(t, err)
	assert.Equal(t, CodeLockActive, err.Code)
	assert.Equal(t, int64(86400), err.Remaining)
	assert.Equal(t, 0, f.rpc.CallCount("sendTransaction"))
	assert.Equal(t, 0, f.rpc.CallCount("getLatestBlockhash"))
}

func TestSession_UserFetchHiccupKeepsLock(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 10*tokens)
	f.setUser(t, f.wallet, 1000*tokens, t0.Unix()-testLockSeconds+86400)

	s := newTestSession(f)
	defer s.Close()
	require.NoError(t, s.Connect(f.signer))
	require.Eventually(t, func() bool { return s.Lock().RemainingSeconds == 86400 }, 2*time.Second, 5*time.Millisecond)

	// position record unreachable for one cycle, balance still readable
	f.rpc.SetAccountErr(f.userAddress(t, f.wallet), clienttest.ErrTransport)
	f.setBalance(t, f.wallet, 11*tokens)
	require.NoError(t, s.Refresh())
	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.WalletBalance.Equal(decimal.NewFromInt(11)) })

	snap := s.Snapshot()
	assert.Equal(t, "1000", snap.StakedAmount.String())
	assert.Equal(t, t0.Unix()-testLockSeconds+86400, snap.LastUpdateTime)
	assert.Equal(t, int64(86400), s.Lock().RemainingSeconds)
	assert.False(t, s.Lock().CanUnstake)

	_, err := s.Submit(context.Background(), model.ActionUnstake, "100")
	require.NotNil(t, err)
	assert.Equal(t, CodeLockActive, err.Code)
	assert.Equal(t, 0, f.rpc.CallCount("sendTransaction"))
}

func TestSession_StakeRefreshesAfterDelay(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 5000*tokens)

	// the chain applies the stake when the transaction lands
	f.rpc.SendHook = func(*solana.Transaction) {
		f.setBalance(t, f.wallet, 4000*tokens)
		f.setUser(t, f.wallet, 1000*tokens, t0.Unix())
	}

	s := newTestSession(f)
	defer s.Close()
	require.NoError(t, s.Connect(f.signer))
	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.WalletBalance.Equal(decimal.NewFromInt(5000)) })

	sig, err := s.Submit(context.Background(), model.ActionStake, "1000")
	require.Nil(t, err)
	assert.False(t, sig.IsZero())

	waitForSnapshot(t, s, func(snap model.Snapshot) bool {
		return snap.StakedAmount.Equal(decimal.NewFromInt(1000)) && snap.WalletBalance.Equal(decimal.NewFromInt(4000))
	})
	require.Eventually(t, func() bool { return s.Lock().RemainingSeconds == testLockSeconds }, time.Second, 5*time.Millisecond)

	// a stake at t0 unlocks exactly one week later
	f.clock.Set(t0.Add(time.Duration(testLockSeconds-1) * time.Second))
	assert.False(t, DeriveLock(s.Snapshot().LastUpdateTime, f.clock.Now().Unix(), testLockSeconds).CanUnstake)
	f.clock.Set(t0.Add(time.Duration(testLockSeconds) * time.Second))
	require.Eventually(t, func() bool { return s.Lock().CanUnstake }, 3*time.Second, 20*time.Millisecond)
}

func TestSession_NeverStakedUser(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 7*tokens)

	s := newTestSession(f)
	defer s.Close()
	require.NoError(t, s.Connect(f.signer))

	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.WalletBalance.Equal(decimal.NewFromInt(7)) })
	snap := s.Snapshot()
	assert.Empty(t, snap.Activity)
	assert.Empty(t, snap.FetchError)
	assert.Equal(t, model.Unlocked(), s.Lock())

	_, err := s.Submit(context.Background(), model.ActionUnstake, "0")
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidAmount, err.Code)
	assert.Equal(t, 0, f.rpc.CallCount("sendTransaction"))
}

func TestSession_DisconnectKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 3*tokens)
	signer := &closingSigner{Signer: f.signer}

	s := newTestSession(f)
	require.NoError(t, s.Connect(signer))
	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.WalletBalance.Equal(decimal.NewFromInt(3)) })

	s.Disconnect()
	assert.False(t, s.Connected())
	assert.True(t, signer.closed.Load(), "key material released")
	assert.True(t, s.Snapshot().WalletBalance.Equal(decimal.NewFromInt(3)))
	assert.ErrorIs(t, s.Refresh(), ErrNotConnected)

	_, err := s.Submit(context.Background(), model.ActionStake, "1")
	require.NotNil(t, err)
	assert.Equal(t, CodeNoWallet, err.Code)

	calls := f.rpc.TotalCalls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, f.rpc.TotalCalls(), "no polling after disconnect")
}

func TestSession_SwitchWallet(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 3*tokens)
	other := clienttest.NewSigner()
	f.setBalance(t, other.PublicKey(), 9*tokens)

	s := newTestSession(f)
	defer s.Close()

	require.NoError(t, s.Connect(f.signer))
	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.WalletBalance.Equal(decimal.NewFromInt(3)) })

	require.NoError(t, s.Connect(other))
	assert.Equal(t, other.PublicKey(), s.Address())
	waitForSnapshot(t, s, func(snap model.Snapshot) bool {
		return snap.WalletAddress == other.PublicKey().String() && snap.WalletBalance.Equal(decimal.NewFromInt(9))
	})
}

func TestSession_EstimateAndMax(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, 1_234_567_891_000) // 1234567.891 tokens
	f.setUser(t, f.wallet, 2500*tokens, t0.Unix()-2*testLockSeconds)

	s := newTestSession(f)
	defer s.Close()

	est := s.Estimate("1000")
	assert.Equal(t, "0.15", est.Daily.String())
	assert.Equal(t, "54.8", est.Yearly.String())
	assert.True(t, s.Estimate("nope").Daily.IsZero())
	assert.True(t, s.Estimate("-10").Yearly.IsZero())

	require.NoError(t, s.Connect(f.signer))
	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.HasPosition() })

	maxStake, err := s.MaxAmount(model.ActionStake)
	require.NoError(t, err)
	assert.Equal(t, "1230000", maxStake.String())

	maxUnstake, err := s.MaxAmount(model.ActionUnstake)
	require.NoError(t, err)
	assert.Equal(t, "2500", maxUnstake.String())
}

func TestSession_Subscribe(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.wallet, tokens)

	s := newTestSession(f)
	defer s.Close()

	var mu sync.Mutex
	var frames []model.DashboardResponse
	unsubscribe := s.Subscribe(func(d model.DashboardResponse) {
		mu.Lock()
		defer mu.Unlock()
		frames = append(frames, d)
	})
	defer unsubscribe()

	require.NoError(t, s.Connect(f.signer))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, frame := range frames {
			if frame.WalletBalance == "1" {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSession_TransportFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.rpc.FailAll()

	s := newTestSession(f)
	defer s.Close()
	require.NoError(t, s.Connect(f.signer))

	waitForSnapshot(t, s, func(snap model.Snapshot) bool { return snap.FetchError != "" })
	assert.Equal(t, FetchErrorMessage, s.Dashboard().Error)
}
