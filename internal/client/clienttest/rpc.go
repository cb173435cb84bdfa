// Package clienttest provides an in-memory client.RPC for tests.
package clienttest

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrTransport simulates an unreachable RPC node
var ErrTransport = errors.New("rpc call: dial tcp: connection refused")

// RPC implements client.RPC backed by maps
type RPC struct {
	mu sync.Mutex

	Balances   map[solana.PublicKey]uint64
	Accounts   map[solana.PublicKey][]byte
	Signatures map[solana.PublicKey][]*rpc.TransactionSignature

	// Per-method injected failures
	BalanceErr    error
	AccountsErr   error // fails every account lookup
	AccountErr    map[solana.PublicKey]error
	SignaturesErr error
	BlockhashErr  error
	SendErr       error

	// SendHook runs before a successful send returns
	SendHook func(tx *solana.Transaction)

	Calls map[string]int
	Sent  []*solana.Transaction
}

// NewRPC creates an empty fake chain
func NewRPC() *RPC {
	return &RPC{
		Balances:   make(map[solana.PublicKey]uint64),
		Accounts:   make(map[solana.PublicKey][]byte),
		Signatures: make(map[solana.PublicKey][]*rpc.TransactionSignature),
		AccountErr: make(map[solana.PublicKey]error),
		Calls:      make(map[string]int),
	}
}

// SetBalance stores a token balance for the given token account
func (f *RPC) SetBalance(ata solana.PublicKey, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Balances[ata] = amount
}

// SetAccount stores raw account data
func (f *RPC) SetAccount(address solana.PublicKey, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Accounts[address] = data
}

// SetSignatures stores the signature history of an address, newest first
func (f *RPC) SetSignatures(address solana.PublicKey, sigs []*rpc.TransactionSignature) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Signatures[address] = sigs
}

// SetAccountErr injects a failure for one account address
func (f *RPC) SetAccountErr(address solana.PublicKey, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AccountErr[address] = err
}

// FailAll makes every read fail as if the node were down
func (f *RPC) FailAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceErr = ErrTransport
	f.SignaturesErr = ErrTransport
	f.BlockhashErr = ErrTransport
	f.AccountsErr = ErrTransport
}

// CallCount returns how many times method was invoked
func (f *RPC) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

// TotalCalls returns the number of RPC invocations of any kind
func (f *RPC) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.Calls {
		total += n
	}
	return total
}

// GetTokenAccountBalance returns the stored balance or a node-style not-found error
func (f *RPC) GetTokenAccountBalance(_ context.Context, account solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["getTokenAccountBalance"]++

	if f.BalanceErr != nil {
		return nil, f.BalanceErr
	}
	amount, ok := f.Balances[account]
	if !ok {
		return nil, errors.New("(*jsonrpc.RPCError)(0xc000010000)({Code: -32602, Message: \"Invalid param: could not find account\"})")
	}
	return &rpc.GetTokenAccountBalanceResult{
		Value: &rpc.UiTokenAmount{Amount: strconv.FormatUint(amount, 10), Decimals: 6},
	}, nil
}

// GetAccountInfoWithOpts returns stored account data or rpc.ErrNotFound
func (f *RPC) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["getAccountInfo"]++

	if f.AccountsErr != nil {
		return nil, f.AccountsErr
	}
	if err := f.AccountErr[account]; err != nil {
		return nil, err
	}
	data, ok := f.Accounts[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)},
	}, nil
}

// GetSignaturesForAddressWithOpts returns stored signatures honoring the limit
func (f *RPC) GetSignaturesForAddressWithOpts(_ context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["getSignaturesForAddress"]++

	if f.SignaturesErr != nil {
		return nil, f.SignaturesErr
	}
	sigs := f.Signatures[account]
	if opts != nil && opts.Limit != nil && *opts.Limit < len(sigs) {
		sigs = sigs[:*opts.Limit]
	}
	out := make([]*rpc.TransactionSignature, len(sigs))
	copy(out, sigs)
	return out, nil
}

// GetLatestBlockhash returns a fixed blockhash
func (f *RPC) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["getLatestBlockhash"]++

	if f.BlockhashErr != nil {
		return nil, f.BlockhashErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            solana.HashFromBytes(make([]byte, 32)),
			LastValidBlockHeight: 100,
		},
	}, nil
}

// SendTransactionWithOpts records the transaction and returns its first signature
func (f *RPC) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
	f.mu.Lock()
	f.Calls["sendTransaction"]++
	if f.SendErr != nil {
		err := f.SendErr
		f.mu.Unlock()
		return solana.Signature{}, err
	}
	f.Sent = append(f.Sent, tx)
	hook := f.SendHook
	f.mu.Unlock()

	if hook != nil {
		hook(tx)
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, errors.New("transaction is not signed")
	}
	return tx.Signatures[0], nil
}
