package keystore

import (
	"errors"
	"sync"

	"github.com/AlexZinkM/staking-dashboard/internal/client"
)

// Source unlocks one keystore file with a password held in memory.
// The password is prompted once at startup.
type Source struct {
	path string

	mu       sync.Mutex
	password []byte
}

// NewSource copies password; the caller may zero its own slice afterwards
func NewSource(path string, password []byte) *Source {
	out := make([]byte, len(password))
	copy(out, password)
	return &Source{path: path, password: out}
}

// Path returns the keystore file
func (s *Source) Path() string {
	return s.path
}

// Address returns the wallet address and its QR code without decrypting
func (s *Source) Address() (string, string, error) {
	return ReadAddress(s.path)
}

// Unlock decrypts the keystore into a signer
func (s *Source) Unlock() (client.Signer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.password) == 0 {
		return nil, errors.New("password not set")
	}

	signer, err := Unlock(s.path, s.password)
	if err != nil {
		return nil, err
	}
	return signer, nil
}

// Close wipes the password from memory
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.password)
	s.password = nil
}
