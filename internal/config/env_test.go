package config

import (
	"os"
	"reflect"
	"testing"
)

func TestInitDefaults(t *testing.T) {
	// a set but empty variable overrides the default, so unset them; t.Setenv restores afterwards
	for _, key := range []string{"SIGNUP_BACKEND", "SIGNUP_RATE_PER_MINUTE", "STORE_KIND", "STORE_SLOT", "PORT", "WALLET_BALANCE_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	c := Get()

	if c.SignupBackend != "local" {
		t.Fatalf("expected default backend local, got %q", c.SignupBackend)
	}
	if c.Store.Kind != "file" || c.Store.Slot != "traderRankerEmails" {
		t.Fatalf("unexpected store defaults %+v", c.Store)
	}
	if GetPort() != "8080" {
		t.Fatalf("expected default port 8080, got %s", GetPort())
	}
	if c.SignupRatePerMinute != 10 || !c.WalletBalanceEnabled {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("SIGNUP_BACKEND", "  Mailchimp ")
	t.Setenv("MAILCHIMP_API_KEY", "key-us21")
	t.Setenv("MAILCHIMP_LIST_ID", "list1")
	t.Setenv("WEBHOOK_URL", "https://hooks.example/waitlist")
	t.Setenv("STORE_KIND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "https://traderranker.app,http://localhost:3000")
	t.Setenv("WALLET_FILE_PATH", "/tmp/wallet.cwt")

	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	c := Get()

	if GetSignupBackend() != "mailchimp" {
		t.Fatalf("expected trimmed lowercase backend, got %q", GetSignupBackend())
	}
	if c.Mailchimp.APIKey != "key-us21" || c.Mailchimp.ListID != "list1" {
		t.Fatalf("unexpected mailchimp config %+v", c.Mailchimp)
	}
	if c.Webhook.URL != "https://hooks.example/waitlist" {
		t.Fatalf("unexpected webhook url %q", c.Webhook.URL)
	}
	if c.Store.Kind != "redis" || c.Store.RedisAddr != "redis:6379" || c.Store.RedisDB != 2 {
		t.Fatalf("unexpected store config %+v", c.Store)
	}
	want := []string{"https://traderranker.app", "http://localhost:3000"}
	if !reflect.DeepEqual(c.CORSOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, c.CORSOrigins)
	}
	if GetWalletFilePath() != "/tmp/wallet.cwt" {
		t.Fatalf("unexpected wallet path %q", GetWalletFilePath())
	}
}

func TestInitRejectsBadValue(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	if err := Init(); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}
