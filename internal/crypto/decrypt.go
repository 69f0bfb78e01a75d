package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/trader-ranker/internal/model"
)

var (
	// ErrWalletNotFound is returned when the wallet file is missing or empty.
	ErrWalletNotFound = errors.New("wallet file not found")
	// ErrInvalidPassword is returned when the password does not open the wallet.
	ErrInvalidPassword = errors.New("invalid password")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecryptWallet reads and decrypts .cwt file
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(filePath string, password []byte) (*model.WalletFile, *model.WalletData, error) {
	walletFile, err := readWalletFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(walletFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(walletFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(walletFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aead, err := newAEAD(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return walletFile, &walletData, nil
}

// ReadWalletAddress reads only the address from .cwt file (without decryption)
func ReadWalletAddress(filePath string) (string, error) {
	walletFile, err := readWalletFile(filePath)
	if err != nil {
		return "", err
	}
	if walletFile.Address == "" {
		return "", fmt.Errorf("wallet file has no address")
	}
	return walletFile.Address, nil
}

func readWalletFile(filePath string) (*model.WalletFile, error) {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(fileData) == 0 {
		return nil, ErrWalletNotFound
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= len(utf8BOM) && string(fileData[:len(utf8BOM)]) == string(utf8BOM) {
		fileData = fileData[len(utf8BOM):]
	}

	var walletFile model.WalletFile
	if err := json.Unmarshal(fileData, &walletFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &walletFile, nil
}
