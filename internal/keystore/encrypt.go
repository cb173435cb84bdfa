// Package keystore keeps the wallet key in an encrypted local file
// and exposes it as a transaction signer.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/scrypt"
)

const networkSolana = "solana"

// scrypt parameters. N=2^18 takes ~256MB RAM and 0.5-2s per derivation,
// which keeps brute force expensive on a local machine.
var scryptN = 1 << 18

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrFileExists is returned when the keystore file already has content
var ErrFileExists = fmt.Errorf("keystore file is not empty: %w", os.ErrExist)

// Create generates a new wallet key and writes it encrypted to path.
// Returns the wallet address. password must be []byte (caller should zero it after use).
func Create(path string, password []byte) (string, error) {
	if err := ensureEmpty(path); err != nil {
		return "", err
	}

	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	address := wallet.PublicKey().String()
	if err := write(path, address, wallet.PrivateKey, time.Now().Format(time.RFC3339), password); err != nil {
		return "", err
	}
	return address, nil
}

func ensureEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > 0 {
		return ErrFileExists
	}
	return nil
}

// write encrypts the key with a fresh salt and nonce and replaces the file at path
func write(path, address string, privateKey []byte, createdAt string, password []byte) error {
	if len(password) == 0 {
		return errors.New("password cannot be empty")
	}

	qrCode, err := GenerateQRCode(address)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(model.KeyData{PrivateKey: privateKey, CreatedAt: createdAt})
	if err != nil {
		return fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	fileData, err := json.MarshalIndent(model.KeystoreFile{
		Network:    networkSolana,
		Address:    address,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore file: %w", err)
	}

	// UTF-8 BOM for proper display in Windows editors
	if err := os.WriteFile(path, append(append([]byte{}, utf8BOM...), fileData...), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// GenerateQRCode renders the address as a base64 PNG QR code
func GenerateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
