package crypto

import (
	"fmt"
	"os"
	"strings"
)

// ReencryptWallet re-encrypts the wallet at filePath under newPassword with a fresh salt and nonce.
// The file is replaced only after the new copy is written.
func ReencryptWallet(filePath string, oldPassword, newPassword []byte) error {
	walletFile, walletData, err := DecryptWallet(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(walletData.PrivateKey)

	tmp := strings.TrimSuffix(filePath, WalletFileExt) + ".rotating" + WalletFileExt
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale temp file: %w", err)
	}
	if err := EncryptWallet(tmp, walletFile.Network, walletFile.Address, walletFile.QR, walletData, newPassword); err != nil {
		return err
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace wallet file: %w", err)
	}
	return nil
}
