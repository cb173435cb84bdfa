package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/staking-dashboard/internal/program"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrAccountNotFound is returned when an account (ATA or program record) was never created
var ErrAccountNotFound = errors.New("account not found")

// RPC is the subset of *rpc.Client used by SolanaClient
type RPC interface {
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetSignaturesForAddressWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// Signer signs transactions for the connected wallet
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(tx *solana.Transaction) error
}

// Options configures a SolanaClient
type Options struct {
	ProgramID  solana.PublicKey
	Mint       solana.PublicKey
	Commitment rpc.CommitmentType
}

// SolanaClient is a client for the staking program over Solana RPC.
// It is built per session; there is no package-level provider.
type SolanaClient struct {
	rpcClient  RPC
	programID  solana.PublicKey
	mint       solana.PublicKey
	commitment rpc.CommitmentType
}

// NewRPC creates the JSON-RPC transport for the given endpoint
func NewRPC(rpcURL string) *rpc.Client {
	return rpc.New(rpcURL)
}

// NewSolanaClient creates a new staking client over the given RPC transport.
func NewSolanaClient(rpcClient RPC, opts Options) (*SolanaClient, error) {
	if rpcClient == nil {
		return nil, errors.New("rpc client is required")
	}
	if opts.ProgramID.IsZero() {
		return nil, errors.New("program id is required")
	}
	if opts.Mint.IsZero() {
		return nil, errors.New("mint address is required")
	}
	if opts.Commitment == "" {
		opts.Commitment = rpc.CommitmentConfirmed
	}

	return &SolanaClient{
		rpcClient:  rpcClient,
		programID:  opts.ProgramID,
		mint:       opts.Mint,
		commitment: opts.Commitment,
	}, nil
}

// ProgramID returns the staking program id
func (c *SolanaClient) ProgramID() solana.PublicKey {
	return c.programID
}

// GlobalAddress derives the global config PDA
func (c *SolanaClient) GlobalAddress() (solana.PublicKey, error) {
	return program.GlobalAddress(c.programID)
}

// UserAddress derives the position PDA of a wallet
func (c *SolanaClient) UserAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	return program.UserAddress(c.programID, owner)
}

// TokenBalance gets the owner's token balance in base units (10^-6 tokens)
func (c *SolanaClient) TokenBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	ataAddress, _, err := solana.FindAssociatedTokenAddress(owner, c.mint)
	if err != nil {
		return 0, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	balance, err := c.rpcClient.GetTokenAccountBalance(ctx, ataAddress, c.commitment)
	if err != nil {
		if IsAccountNotFound(err) {
			return 0, fmt.Errorf("token account %s: %w", ataAddress, ErrAccountNotFound)
		}
		return 0, fmt.Errorf("failed to get token account balance: %w", err)
	}

	if balance == nil || balance.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance amount: %w", err)
	}

	return amount, nil
}

// GlobalState fetches and decodes the program's global config record
func (c *SolanaClient) GlobalState(ctx context.Context) (*program.GlobalState, error) {
	address, err := c.GlobalAddress()
	if err != nil {
		return nil, err
	}

	data, err := c.accountData(ctx, address)
	if err != nil {
		return nil, err
	}
	return program.DecodeGlobalState(data)
}

// UserState fetches and decodes the owner's position record.
// Returns ErrAccountNotFound when the owner has never staked.
func (c *SolanaClient) UserState(ctx context.Context, owner solana.PublicKey) (*program.UserState, error) {
	address, err := c.UserAddress(owner)
	if err != nil {
		return nil, err
	}

	data, err := c.accountData(ctx, address)
	if err != nil {
		return nil, err
	}
	return program.DecodeUserState(data)
}

// RecentSignatures gets up to limit most recent signatures for address, newest first
func (c *SolanaClient) RecentSignatures(ctx context.Context, address solana.PublicKey, limit int) ([]*rpc.TransactionSignature, error) {
	sigs, err := c.rpcClient.GetSignaturesForAddressWithOpts(
		ctx,
		address,
		&rpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: c.commitment,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures for %s: %w", address, err)
	}
	if len(sigs) > limit {
		sigs = sigs[:limit]
	}
	return sigs, nil
}

// Send builds a single-instruction transaction paid by the signer, signs it and sends it
func (c *SolanaClient) Send(ctx context.Context, instruction solana.Instruction, signer Signer) (solana.Signature, error) {
	if signer == nil {
		return solana.Signature{}, errors.New("signer is required")
	}

	// GetRecentBlockhash is deprecated, use GetLatestBlockhash
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(signer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := signer.SignTransaction(tx); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // simulate first so program errors surface here
			PreflightCommitment: c.commitment,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return sig, nil
}

func (c *SolanaClient) accountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	info, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if IsAccountNotFound(err) {
			return nil, fmt.Errorf("account %s: %w", address, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to get account info for %s: %w", address, err)
	}
	if info == nil || info.Value == nil || info.Value.Data == nil {
		return nil, fmt.Errorf("account %s: %w", address, ErrAccountNotFound)
	}
	return info.Value.Data.GetBinary(), nil
}

// IsAccountNotFound checks if error indicates that the account doesn't exist.
// RPC nodes only report this in the message text.
func IsAccountNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAccountNotFound) || errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "could not find account")
}
