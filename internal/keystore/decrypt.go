package keystore

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/staking-dashboard/internal/model"

	"github.com/gagliardetto/solana-go"
)

// ErrInvalidPassword is returned when the file cannot be decrypted with the given password
var ErrInvalidPassword = errors.New("invalid password")

// readFile loads the cleartext part of the keystore
func readFile(path string) (*model.KeystoreFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("keystore file does not exist: %w", os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return nil, errors.New("keystore file is empty")
	}

	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var file model.KeystoreFile
	if err := json.Unmarshal(fileData, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore file: %w", err)
	}
	return &file, nil
}

// ReadAddress reads the wallet address and its QR code without decrypting
func ReadAddress(path string) (address, qr string, err error) {
	file, err := readFile(path)
	if err != nil {
		return "", "", err
	}
	return file.Address, file.QR, nil
}

// decrypt opens the key material; password must be []byte (caller should zero it after use)
func decrypt(path string, password []byte) (*model.KeystoreFile, *model.KeyData, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(file.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(file.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(file.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	keyData, err := parseKeyData(plaintext)
	if err != nil {
		return nil, nil, err
	}
	return file, keyData, nil
}

// parseKeyData accepts the current format (64-byte key, base64 in JSON) and
// the legacy one (32-byte seed as a 64-char hex string), always returning a 64-byte key
func parseKeyData(plaintext []byte) (*model.KeyData, error) {
	var raw struct {
		PrivateKey string `json:"privateKey"`
		CreatedAt  string `json:"createdAt"`
	}
	if err := json.Unmarshal(plaintext, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key data: %w", err)
	}

	var key []byte
	if len(raw.PrivateKey) == hex.EncodedLen(ed25519.SeedSize) {
		seed, err := hex.DecodeString(raw.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode legacy key: %w", err)
		}
		key = ed25519.NewKeyFromSeed(seed)
		clear(seed)
	} else {
		decoded, err := base64.StdEncoding.DecodeString(raw.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode key: %w", err)
		}
		key = decoded
	}

	if len(key) != ed25519.PrivateKeySize {
		clear(key)
		return nil, fmt.Errorf("unexpected private key length %d", len(key))
	}
	return &model.KeyData{PrivateKey: key, CreatedAt: raw.CreatedAt}, nil
}

// Unlock decrypts the keystore and returns a signer holding the key.
// The caller must Close the signer to wipe the key.
func Unlock(path string, password []byte) (*Signer, error) {
	file, keyData, err := decrypt(path, password)
	if err != nil {
		return nil, err
	}

	signer := newSigner(solana.PrivateKey(keyData.PrivateKey))
	if file.Address != "" && file.Address != signer.PublicKey().String() {
		signer.Close()
		return nil, fmt.Errorf("keystore address %s does not match the key", file.Address)
	}
	return signer, nil
}

// ChangePassword re-encrypts the keystore under a new password with a fresh salt and nonce.
// Legacy seed-only files are rewritten in the current format.
func ChangePassword(path string, oldPassword, newPassword []byte) error {
	file, keyData, err := decrypt(path, oldPassword)
	if err != nil {
		return err
	}
	defer clear(keyData.PrivateKey)

	address := solana.PrivateKey(keyData.PrivateKey).PublicKey().String()
	if file.Address != "" && file.Address != address {
		return fmt.Errorf("keystore address %s does not match the key", file.Address)
	}
	return write(path, address, keyData.PrivateKey, keyData.CreatedAt, newPassword)
}
