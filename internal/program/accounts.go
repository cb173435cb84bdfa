package program

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

var (
	ErrAccountTooShort       = errors.New("account data too short")
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
)

// GlobalState is the program-wide config record
type GlobalState struct {
	MaxStake   uint64
	RewardRate uint64 // daily rate scaled by 10^6
}

// UserState is the per-wallet position record
type UserState struct {
	StakedAmount  uint64
	LastStakeTime int64 // unix seconds of the last stake/unstake
}

// DecodeGlobalState decodes an Anchor GlobalState account
func DecodeGlobalState(data []byte) (*GlobalState, error) {
	var out GlobalState
	if err := decodeAccount(data, GlobalStateDiscriminator, &out); err != nil {
		return nil, fmt.Errorf("failed to decode GlobalState: %w", err)
	}
	return &out, nil
}

// DecodeUserState decodes an Anchor UserState account
func DecodeUserState(data []byte) (*UserState, error) {
	var out UserState
	if err := decodeAccount(data, UserStateDiscriminator, &out); err != nil {
		return nil, fmt.Errorf("failed to decode UserState: %w", err)
	}
	return &out, nil
}

// EncodeGlobalState is the inverse of DecodeGlobalState
func EncodeGlobalState(s GlobalState) ([]byte, error) {
	return encodeAccount(GlobalStateDiscriminator, s)
}

// EncodeUserState is the inverse of DecodeUserState
func EncodeUserState(s UserState) ([]byte, error) {
	return encodeAccount(UserStateDiscriminator, s)
}

func decodeAccount(data []byte, want Discriminator, v interface{}) error {
	if len(data) < len(want) {
		return ErrAccountTooShort
	}
	if !bytes.Equal(data[:len(want)], want[:]) {
		return fmt.Errorf("%w: got %v, want %v", ErrDiscriminatorMismatch, data[:len(want)], want[:])
	}
	return bin.NewBorshDecoder(data[len(want):]).Decode(v)
}

func encodeAccount(d Discriminator, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(d[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
