// Generates a new Solana wallet file for the local wallet provider.
// Usage: go run ./cmd/keygen -file wallet.cwt
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/trader-ranker/internal/config"
	"github.com/AlexZinkM/trader-ranker/solana"
)

func main() {
	filePath := flag.String("file", "wallet.cwt", "path of the .cwt wallet file to create")
	flag.Parse()

	address, err := generate(*filePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Wallet created:", *filePath)
	fmt.Println("Address:", address)
}

func generate(filePath string) (string, error) {
	password, err := config.PromptForPassword("New wallet password: ")
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", errors.New("password must not be empty")
	}
	defer clear(password)

	confirm, err := config.PromptForPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	defer clear(confirm)
	if !bytes.Equal(password, confirm) {
		return "", errors.New("passwords do not match")
	}

	return solana.GenerateWallet(filePath, password)
}
