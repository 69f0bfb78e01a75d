package solana

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/AlexZinkM/trader-ranker/internal/crypto"
	"github.com/AlexZinkM/trader-ranker/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

const (
	networkSolana = "solana"
)

// GenerateWallet generates a new Solana keypair and saves it encrypted to a .cwt file.
// Returns the generated public address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (address string, err error) {
	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	address = wallet.PublicKey().String()

	qrCode, err := AddressQR(address)
	if err != nil {
		return "", err
	}

	walletData := &model.WalletData{
		PrivateKey: wallet.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkSolana, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// AddressQR generates QR code of address as base64 PNG
func AddressQR(address string) (string, error) {
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
