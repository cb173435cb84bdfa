// Package program describes the fixed account and instruction contract of the
// on-chain staking program: PDA seeds, Anchor discriminators, account layouts
// and instruction encoding.
package program

import (
	"crypto/sha256"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PDA seeds
const (
	GlobalSeed = "global"
	UserSeed   = "user"
)

// Program error codes declared by the program IDL
const (
	ErrCodeOverMaxStake      = 6000
	ErrCodeInsufficientFunds = 6001
)

// Discriminator is the 8-byte Anchor prefix of accounts and instruction data
type Discriminator [8]byte

// Canonical discriminators, taken from the IDL shipped with the dashboard.
// UnstakeDiscriminator and GlobalStateDiscriminator do not match
// AnchorDiscriminator("global", "unstake") / ("account", "GlobalState").
var (
	StakeDiscriminator       = Discriminator{206, 176, 202, 18, 200, 209, 179, 108}
	UnstakeDiscriminator     = Discriminator{191, 161, 103, 159, 64, 92, 14, 77}
	GlobalStateDiscriminator = Discriminator{163, 46, 74, 6, 137, 4, 123, 226}
	UserStateDiscriminator   = Discriminator{72, 177, 85, 249, 76, 167, 186, 126}
)

// AnchorDiscriminator computes sha256("<namespace>:<name>")[:8], the way Anchor derives discriminators
func AnchorDiscriminator(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:8])
	return d
}

// GlobalAddress derives the program's global config PDA
func GlobalAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(GlobalSeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive global address: %w", err)
	}
	return addr, nil
}

// UserAddress derives the per-wallet position PDA
func UserAddress(programID, wallet solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(UserSeed), wallet.Bytes()}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive user address: %w", err)
	}
	return addr, nil
}
