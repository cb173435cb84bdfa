package model

// KeystoreFile represents the encrypted keystore file structure
type KeystoreFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"` // base64 PNG of the address
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyData represents decrypted key material
type KeyData struct {
	PrivateKey []byte `json:"privateKey"` // 64-byte ed25519 key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// WalletResponse represents response for GET /wallet and POST /wallet/connect
type WalletResponse struct {
	Address   string `json:"address"`
	Connected bool   `json:"connected"`
	QR        string `json:"QR,omitempty"`
}
