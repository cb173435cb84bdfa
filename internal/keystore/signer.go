package keystore

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// ErrSignerClosed is returned by a signer whose key was wiped
var ErrSignerClosed = errors.New("signer is closed")

// Signer signs transactions with the unlocked wallet key
type Signer struct {
	mu     sync.Mutex
	key    solana.PrivateKey
	public solana.PublicKey
}

func newSigner(key solana.PrivateKey) *Signer {
	return &Signer{key: key, public: key.PublicKey()}
}

// PublicKey returns the wallet address
func (s *Signer) PublicKey() solana.PublicKey {
	return s.public
}

// SignTransaction adds the wallet's signature to tx
func (s *Signer) SignTransaction(tx *solana.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return ErrSignerClosed
	}

	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.public) {
			return &s.key
		}
		return nil
	})
	return err
}

// Close wipes the key from memory
func (s *Signer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.key)
	s.key = nil
	return nil
}
