package clienttest

import "github.com/gagliardetto/solana-go"

// Signer signs with an in-memory key
type Signer struct {
	Key solana.PrivateKey
}

// NewSigner creates a signer with a fresh random key
func NewSigner() *Signer {
	return &Signer{Key: solana.NewWallet().PrivateKey}
}

// PublicKey returns the signer's address
func (s *Signer) PublicKey() solana.PublicKey {
	return s.Key.PublicKey()
}

// SignTransaction signs every slot that belongs to this key
func (s *Signer) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.Key.PublicKey()) {
			return &s.Key
		}
		return nil
	})
	return err
}
