package program

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = solana.MustPublicKeyFromBase58("6SVBFPT8bLcbp8eDud9ECSoVYJhzmXxgHm9iU5FviKAs")

func TestAnchorDiscriminator(t *testing.T) {
	assert.Equal(t, StakeDiscriminator, AnchorDiscriminator("global", "stake"))
	assert.Equal(t, UserStateDiscriminator, AnchorDiscriminator("account", "UserState"))

	// Known drift in the shipped IDL
	assert.NotEqual(t, UnstakeDiscriminator, AnchorDiscriminator("global", "unstake"))
	assert.NotEqual(t, GlobalStateDiscriminator, AnchorDiscriminator("account", "GlobalState"))
}

func TestAddresses_Deterministic(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()

	g1, err := GlobalAddress(testProgramID)
	require.NoError(t, err)
	g2, err := GlobalAddress(testProgramID)
	require.NoError(t, err)
	assert.Equal(t, g1, g2)

	u1, err := UserAddress(testProgramID, wallet)
	require.NoError(t, err)
	u2, err := UserAddress(testProgramID, wallet)
	require.NoError(t, err)
	assert.Equal(t, u1, u2)
	assert.NotEqual(t, g1, u1)

	other, err := UserAddress(testProgramID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, u1, other)
}

func TestDecodeUserState(t *testing.T) {
	data := make([]byte, 24)
	copy(data, UserStateDiscriminator[:])
	binary.LittleEndian.PutUint64(data[8:], 1_000_000_000)
	binary.LittleEndian.PutUint64(data[16:], uint64(1_700_000_000))

	state, err := DecodeUserState(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), state.StakedAmount)
	assert.Equal(t, int64(1_700_000_000), state.LastStakeTime)
}

func TestDecodeGlobalState_Encoded(t *testing.T) {
	data, err := EncodeGlobalState(GlobalState{MaxStake: 5_000_000, RewardRate: 150})
	require.NoError(t, err)
	require.Len(t, data, 24)

	state, err := DecodeGlobalState(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), state.MaxStake)
	assert.Equal(t, uint64(150), state.RewardRate)
}

func TestDecode_Errors(t *testing.T) {
	_, err := DecodeUserState([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrAccountTooShort)

	data, err := EncodeGlobalState(GlobalState{})
	require.NoError(t, err)
	_, err = DecodeUserState(data)
	assert.ErrorIs(t, err, ErrDiscriminatorMismatch)
}

func TestStakeInstruction_Accounts(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	global, err := GlobalAddress(testProgramID)
	require.NoError(t, err)
	user, err := UserAddress(testProgramID, wallet)
	require.NoError(t, err)

	ix, err := NewStakeInstruction(testProgramID, 1_500_000, global, user, wallet)
	require.NoError(t, err)
	assert.Equal(t, testProgramID, ix.ProgramID())

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, global, accounts[0].PublicKey)
	assert.False(t, accounts[0].IsWritable)
	assert.Equal(t, user, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsWritable)
	assert.Equal(t, wallet, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsSigner)
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	assert.Equal(t, StakeDiscriminator[:], data[:8])
	assert.Equal(t, uint64(1_500_000), binary.LittleEndian.Uint64(data[8:]))
}

func TestUnstakeInstruction_Accounts(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	user, err := UserAddress(testProgramID, wallet)
	require.NoError(t, err)

	ix, err := NewUnstakeInstruction(testProgramID, 42, user, wallet)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, user, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, wallet, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsSigner)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, UnstakeDiscriminator[:], data[:8])
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(data[8:]))
}
