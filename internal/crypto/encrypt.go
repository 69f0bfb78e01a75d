package crypto

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
	"path/filepath"

	"github.com/AlexZinkM/trader-ranker/internal/model"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for the local wallet file.
// N=2^18 needs ~256MB RAM and 0.5-2s per derivation; N=2^20 fails on mobile memory limits.
// Tests lower ScryptN to keep derivation fast.
var ScryptN = 1 << 18

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// WalletFileExt is the required extension of wallet files
	WalletFileExt = ".cwt"
)

// ErrWalletExists is returned when the target wallet file already has content.
var ErrWalletExists = errors.New("wallet file is not empty")

// EncryptWallet encrypts wallet data and writes it to .cwt
// password must be []byte for security (caller should zero it after use)
func EncryptWallet(filePath string, network, address, qrCode string, walletData *model.WalletData, password []byte) error {
	if filepath.Ext(filePath) != WalletFileExt {
		return fmt.Errorf("file must have %s extension", WalletFileExt)
	}

	if info, err := os.Stat(filePath); err == nil && info.Size() > 0 {
		return ErrWalletExists
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := newAEAD(password, salt)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	walletFile := model.WalletFile{
		Network:    network,
		Address:    address,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aead.Seal(nil, nonce, plaintext, nil)),
	}

	fileData, err := json.MarshalIndent(walletFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// BOM for proper display in Windows editors
	out := make([]byte, 0, len(utf8BOM)+len(fileData))
	out = append(out, utf8BOM...)
	out = append(out, fileData...)

	if err := os.WriteFile(filePath, out, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// newAEAD derives the file key from password and salt and returns AES-GCM over it.
func newAEAD(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, ScryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
