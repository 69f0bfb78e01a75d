package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCoinGeckoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "solana" || r.URL.Query().Get("vs_currencies") != "usd" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"solana":{"usd":151.456}}`))
	}))
	defer srv.Close()

	rate, err := NewCoinGeckoClient(srv.URL).GetSOLtoUSDRate(context.Background())
	if err != nil {
		t.Fatalf("get rate: %v", err)
	}
	if rate != "151.46" {
		t.Fatalf("expected 151.46, got %s", rate)
	}
}

func TestCoinGeckoRateBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := NewCoinGeckoClient(srv.URL).GetSOLtoUSDRate(context.Background()); err == nil {
		t.Fatal("expected error for 429")
	}
}

func TestSolanaBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("invalid rpc request: %v", err)
		}
		if req.Method != "getBalance" {
			t.Errorf("expected getBalance, got %s", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]any{
				"context": map[string]any{"slot": 1},
				"value":   1500000000,
			},
		})
	}))
	defer srv.Close()

	lamports, err := NewSolanaClient(srv.URL).GetSOLBalance(context.Background(), "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if lamports != 1500000000 {
		t.Fatalf("expected 1500000000, got %d", lamports)
	}
}

func TestSolanaBalanceInvalidAddress(t *testing.T) {
	if _, err := NewSolanaClient("http://127.0.0.1:1").GetSOLBalance(context.Background(), "nope"); err == nil {
		t.Fatal("expected invalid address error")
	}
}
