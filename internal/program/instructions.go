package program

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type amountArgs struct {
	Amount uint64
}

// NewStakeInstruction builds stake(amount).
// Accounts: global (read), user (write), wallet (write, signer), system program.
func NewStakeInstruction(programID solana.PublicKey, amount uint64, global, user, wallet solana.PublicKey) (solana.Instruction, error) {
	data, err := encodeInstruction(StakeDiscriminator, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stake instruction: %w", err)
	}

	return solana.NewInstruction(
		programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(global, false, false),
			solana.NewAccountMeta(user, true, false),
			solana.NewAccountMeta(wallet, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
		data,
	), nil
}

// NewUnstakeInstruction builds unstake(amount).
// Accounts: user (write), wallet (write, signer). No global or system account.
func NewUnstakeInstruction(programID solana.PublicKey, amount uint64, user, wallet solana.PublicKey) (solana.Instruction, error) {
	data, err := encodeInstruction(UnstakeDiscriminator, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode unstake instruction: %w", err)
	}

	return solana.NewInstruction(
		programID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(user, true, false),
			solana.NewAccountMeta(wallet, true, true),
		},
		data,
	), nil
}

func encodeInstruction(d Discriminator, amount uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(d[:])
	if err := bin.NewBorshEncoder(buf).Encode(amountArgs{Amount: amount}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
