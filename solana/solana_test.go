package solana

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/trader-ranker/internal/crypto"
)

type stubLamports struct {
	lamports uint64
	err      error
}

func (s stubLamports) GetSOLBalance(context.Context, string) (uint64, error) {
	return s.lamports, s.err
}

type stubRate string

func (s stubRate) GetSOLtoUSDRate(context.Context) (string, error) {
	return string(s), nil
}

func TestGetBalance(t *testing.T) {
	reader := &BalanceReader{solana: stubLamports{lamports: 2_500_000_000}, prices: stubRate("100.00")}

	balance, err := reader.GetBalance(context.Background(), "addr")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.SOL != "2.500000000" {
		t.Fatalf("expected 2.500000000 SOL, got %s", balance.SOL)
	}
	if balance.USD != "250.00" {
		t.Fatalf("expected 250.00 USD, got %s", balance.USD)
	}
	if balance.Rate != "100.00" {
		t.Fatalf("expected rate 100.00, got %s", balance.Rate)
	}
}

func TestGetBalanceRPCError(t *testing.T) {
	reader := &BalanceReader{solana: stubLamports{err: errors.New("rpc down")}, prices: stubRate("1")}
	if _, err := reader.GetBalance(context.Background(), "addr"); err == nil {
		t.Fatal("expected error")
	}
}

func TestAddressQR(t *testing.T) {
	qr, err := AddressQR("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	if err != nil {
		t.Fatalf("address qr: %v", err)
	}
	png, err := base64.StdEncoding.DecodeString(qr)
	if err != nil {
		t.Fatalf("decode qr: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatal("expected PNG data")
	}
}

func TestGenerateWallet(t *testing.T) {
	crypto.ScryptN = 1 << 10
	path := filepath.Join(t.TempDir(), "wallet.cwt")

	address, err := GenerateWallet(path, []byte("pw"))
	if err != nil {
		t.Fatalf("generate wallet: %v", err)
	}

	stored, err := crypto.ReadWalletAddress(path)
	if err != nil {
		t.Fatalf("read address: %v", err)
	}
	if stored != address {
		t.Fatalf("expected stored address %s, got %s", address, stored)
	}

	_, data, err := crypto.DecryptWallet(path, []byte("pw"))
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if len(data.PrivateKey) != 64 {
		t.Fatalf("expected 64-byte private key, got %d", len(data.PrivateKey))
	}

	if _, err := GenerateWallet(path, []byte("pw")); !errors.Is(err, crypto.ErrWalletExists) {
		t.Fatalf("expected ErrWalletExists, got %v", err)
	}
}
