package model

// WalletFile represents .cwt file structure
type WalletFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // 64 bytes (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// WalletConnectResponse represents response for POST /wallet/connect and /wallet/reconnect
type WalletConnectResponse struct {
	Connected    bool   `json:"connected"`
	Message      string `json:"message,omitempty"`
	Address      string `json:"address,omitempty"`
	ShortAddress string `json:"shortAddress,omitempty"`
}

// WalletStatusResponse represents response for GET /wallet/status
type WalletStatusResponse struct {
	Connected      bool           `json:"connected"`
	Address        string         `json:"address,omitempty"`
	ShortAddress   string         `json:"shortAddress,omitempty"`   // 4 chars each side, for the button
	DisplayAddress string         `json:"displayAddress,omitempty"` // 8 chars each side, for the status card
	QR             string         `json:"QR,omitempty"`             // base64 PNG
	Balance        *WalletBalance `json:"balance,omitempty"`
}

// WalletBalance is the optional balance block of the wallet status card
type WalletBalance struct {
	SOL  string `json:"sol"`
	Rate string `json:"rate"` // SOL/USD
	USD  string `json:"usd"`
}
