package client

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/staking-dashboard/internal/client/clienttest"
	"github.com/AlexZinkM/staking-dashboard/internal/program"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testProgramID = solana.MustPublicKeyFromBase58("6SVBFPT8bLcbp8eDud9ECSoVYJhzmXxgHm9iU5FviKAs")
	testMint      = solana.MustPublicKeyFromBase58("CzLeDd7qrK8Y4XREpsb4uc5xVX9ktYcryGw3zXRSpump")
)

func newTestClient(t *testing.T) (*SolanaClient, *clienttest.RPC) {
	t.Helper()
	fake := clienttest.NewRPC()
	c, err := NewSolanaClient(fake, Options{ProgramID: testProgramID, Mint: testMint})
	require.NoError(t, err)
	return c, fake
}

func TestNewSolanaClient_Validation(t *testing.T) {
	_, err := NewSolanaClient(nil, Options{ProgramID: testProgramID, Mint: testMint})
	assert.Error(t, err)

	_, err = NewSolanaClient(clienttest.NewRPC(), Options{Mint: testMint})
	assert.Error(t, err)

	_, err = NewSolanaClient(clienttest.NewRPC(), Options{ProgramID: testProgramID})
	assert.Error(t, err)

	c, err := NewSolanaClient(clienttest.NewRPC(), Options{ProgramID: testProgramID, Mint: testMint})
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentConfirmed, c.commitment)
}

func TestTokenBalance(t *testing.T) {
	c, fake := newTestClient(t)
	owner := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(owner, testMint)
	require.NoError(t, err)

	// No ATA yet
	_, err = c.TokenBalance(context.Background(), owner)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	fake.SetBalance(ata, 1_500_000_000_000)
	balance, err := c.TokenBalance(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000_000), balance)

	fake.BalanceErr = clienttest.ErrTransport
	_, err = c.TokenBalance(context.Background(), owner)
	require.Error(t, err)
	assert.False(t, IsAccountNotFound(err))
}

func TestUserState(t *testing.T) {
	c, fake := newTestClient(t)
	owner := solana.NewWallet().PublicKey()

	_, err := c.UserState(context.Background(), owner)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	userAddr, err := c.UserAddress(owner)
	require.NoError(t, err)
	data, err := program.EncodeUserState(program.UserState{StakedAmount: 1_000_000_000, LastStakeTime: 1_700_000_000})
	require.NoError(t, err)
	fake.SetAccount(userAddr, data)

	state, err := c.UserState(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), state.StakedAmount)
	assert.Equal(t, int64(1_700_000_000), state.LastStakeTime)
}

func TestGlobalState(t *testing.T) {
	c, fake := newTestClient(t)

	globalAddr, err := c.GlobalAddress()
	require.NoError(t, err)
	data, err := program.EncodeGlobalState(program.GlobalState{MaxStake: 10, RewardRate: 200})
	require.NoError(t, err)
	fake.SetAccount(globalAddr, data)

	state, err := c.GlobalState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(200), state.RewardRate)

	fake.SetAccountErr(globalAddr, clienttest.ErrTransport)
	_, err = c.GlobalState(context.Background())
	require.Error(t, err)
	assert.False(t, IsAccountNotFound(err))
}

func TestRecentSignatures_Limit(t *testing.T) {
	c, fake := newTestClient(t)
	addr := solana.NewWallet().PublicKey()

	sigs := make([]*rpc.TransactionSignature, 8)
	for i := range sigs {
		sigs[i] = &rpc.TransactionSignature{Slot: uint64(100 - i)}
	}
	fake.SetSignatures(addr, sigs)

	got, err := c.RecentSignatures(context.Background(), addr, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, uint64(100), got[0].Slot)
}

func TestSend_SignsWithPayer(t *testing.T) {
	c, fake := newTestClient(t)
	signer := clienttest.NewSigner()

	userAddr, err := c.UserAddress(signer.PublicKey())
	require.NoError(t, err)
	ix, err := program.NewUnstakeInstruction(testProgramID, 5, userAddr, signer.PublicKey())
	require.NoError(t, err)

	sig, err := c.Send(context.Background(), ix, signer)
	require.NoError(t, err)
	assert.False(t, sig.IsZero())

	require.Len(t, fake.Sent, 1)
	tx := fake.Sent[0]
	assert.Equal(t, signer.PublicKey(), tx.Message.AccountKeys[0])
	assert.Equal(t, sig, tx.Signatures[0])
}

func TestSend_Errors(t *testing.T) {
	c, fake := newTestClient(t)
	signer := clienttest.NewSigner()
	userAddr, err := c.UserAddress(signer.PublicKey())
	require.NoError(t, err)
	ix, err := program.NewUnstakeInstruction(testProgramID, 5, userAddr, signer.PublicKey())
	require.NoError(t, err)

	_, err = c.Send(context.Background(), ix, nil)
	assert.Error(t, err)

	fake.SendErr = errors.New("Transaction simulation failed: custom program error: 0x1771")
	_, err = c.Send(context.Background(), ix, signer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x1771")
}

func TestIsAccountNotFound(t *testing.T) {
	assert.False(t, IsAccountNotFound(nil))
	assert.True(t, IsAccountNotFound(ErrAccountNotFound))
	assert.True(t, IsAccountNotFound(rpc.ErrNotFound))
	assert.True(t, IsAccountNotFound(errors.New("Invalid param: could not find account")))
	assert.False(t, IsAccountNotFound(clienttest.ErrTransport))
	assert.False(t, IsAccountNotFound(errors.New("rpc call getAccountInfo() on http://node: Method not found")))
	assert.False(t, IsAccountNotFound(errors.New("404 page not found")))
}
