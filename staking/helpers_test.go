package staking

import (
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
	"github.com/AlexZinkM/staking-dashboard/internal/client/clienttest"
	"github.com/AlexZinkM/staking-dashboard/internal/config"
	"github.com/AlexZinkM/staking-dashboard/internal/program"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

const (
	testLockSeconds = int64(604800)
	tokens          = uint64(1_000_000) // one token in base units
)

var (
	testProgramID = solana.MustPublicKeyFromBase58(config.DefaultProgramID)
	testMint      = solana.MustPublicKeyFromBase58(config.DefaultMint)
	t0            = time.Unix(1_700_000_000, 0)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(at time.Time) *fakeClock {
	return &fakeClock{now: at}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixture is a fake chain with one wallet
type fixture struct {
	rpc    *clienttest.RPC
	client *client.SolanaClient
	signer *clienttest.Signer
	wallet solana.PublicKey
	clock  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := clienttest.NewRPC()
	c, err := client.NewSolanaClient(fake, client.Options{ProgramID: testProgramID, Mint: testMint})
	require.NoError(t, err)

	signer := clienttest.NewSigner()
	return &fixture{
		rpc:    fake,
		client: c,
		signer: signer,
		wallet: signer.PublicKey(),
		clock:  newFakeClock(t0),
	}
}

func (f *fixture) setBalance(t *testing.T, wallet solana.PublicKey, units uint64) {
	t.Helper()
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, testMint)
	require.NoError(t, err)
	f.rpc.SetBalance(ata, units)
}

func (f *fixture) setGlobal(t *testing.T, maxStake, rewardRate uint64) {
	t.Helper()
	address, err := program.GlobalAddress(testProgramID)
	require.NoError(t, err)
	data, err := program.EncodeGlobalState(program.GlobalState{MaxStake: maxStake, RewardRate: rewardRate})
	require.NoError(t, err)
	f.rpc.SetAccount(address, data)
}

func (f *fixture) setUser(t *testing.T, wallet solana.PublicKey, staked uint64, lastStakeTime int64) {
	t.Helper()
	address := f.userAddress(t, wallet)
	data, err := program.EncodeUserState(program.UserState{StakedAmount: staked, LastStakeTime: lastStakeTime})
	require.NoError(t, err)
	f.rpc.SetAccount(address, data)
}

func (f *fixture) userAddress(t *testing.T, wallet solana.PublicKey) solana.PublicKey {
	t.Helper()
	address, err := program.UserAddress(testProgramID, wallet)
	require.NoError(t, err)
	return address
}

// setActivity stores n signatures for the wallet's position, newest first.
// Every third one failed; the first has no block time yet.
func (f *fixture) setActivity(t *testing.T, wallet solana.PublicKey, n int) {
	t.Helper()

	sigs := make([]*rpc.TransactionSignature, 0, n)
	for i := 0; i < n; i++ {
		sig := &rpc.TransactionSignature{
			Signature: solana.Signature{byte(i + 1)},
			Slot:      uint64(1000 - i),
		}
		if i > 0 {
			bt := solana.UnixTimeSeconds(t0.Unix() - int64(i*60))
			sig.BlockTime = &bt
		}
		if i%3 == 2 {
			sig.Err = map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}
		}
		sigs = append(sigs, sig)
	}
	f.rpc.SetSignatures(f.userAddress(t, wallet), sigs)
}

func (f *fixture) reader() *Reader {
	return NewReader(f.client, ReaderOptions{Now: f.clock.Now})
}
