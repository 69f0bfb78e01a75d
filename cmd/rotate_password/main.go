// Re-encrypts a wallet file under a new password with a fresh salt and nonce.
// Usage: go run ./cmd/rotate_password -file wallet.cwt
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/trader-ranker/internal/config"
	"github.com/AlexZinkM/trader-ranker/internal/crypto"
)

func main() {
	filePath := flag.String("file", "", "path to the .cwt wallet file")
	flag.Parse()
	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		os.Exit(2)
	}

	if err := run(*filePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Password changed:", *filePath)
}

func run(filePath string) error {
	oldPassword, err := config.PromptForPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := promptNewPassword()
	if err != nil {
		return err
	}
	defer clear(newPassword)

	return crypto.ReencryptWallet(filePath, oldPassword, newPassword)
}

func promptNewPassword() ([]byte, error) {
	password, err := config.PromptForPassword("New password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	confirm, err := config.PromptForPassword("Repeat new password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)
	if !bytes.Equal(password, confirm) {
		clear(password)
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}
