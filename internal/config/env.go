package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	// SignupBackend selects where waitlist emails go: local, mailchimp, convertkit, buttondown, beehiiv, webhook
	SignupBackend       string `envconfig:"SIGNUP_BACKEND" default:"local"`
	SignupRatePerMinute int    `envconfig:"SIGNUP_RATE_PER_MINUTE" default:"10"`

	Store      StoreConfig
	Mailchimp  MailchimpConfig
	ConvertKit ConvertKitConfig
	Buttondown ButtondownConfig
	Beehiiv    BeehiivConfig
	Webhook    WebhookConfig

	WalletFilePath       string `envconfig:"WALLET_FILE_PATH"`
	SolanaRPCURL         string `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	WalletBalanceEnabled bool   `envconfig:"WALLET_BALANCE_ENABLED" default:"true"`
	CoinGeckoURL         string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
}

// StoreConfig configures the local fallback slot.
type StoreConfig struct {
	Kind          string `envconfig:"STORE_KIND" default:"file"` // file, bolt or redis
	Path          string `envconfig:"STORE_PATH" default:"./data"`
	Slot          string `envconfig:"STORE_SLOT" default:"traderRankerEmails"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MailchimpConfig struct {
	APIKey string `envconfig:"MAILCHIMP_API_KEY"`
	ListID string `envconfig:"MAILCHIMP_LIST_ID"`
}

type ConvertKitConfig struct {
	APIKey string `envconfig:"CONVERTKIT_API_KEY"`
	FormID string `envconfig:"CONVERTKIT_FORM_ID"`
}

type ButtondownConfig struct {
	APIKey string `envconfig:"BUTTONDOWN_API_KEY"`
}

type BeehiivConfig struct {
	APIKey        string `envconfig:"BEEHIIV_API_KEY"`
	PublicationID string `envconfig:"BEEHIIV_PUBLICATION_ID"`
}

type WebhookConfig struct {
	URL   string `envconfig:"WEBHOOK_URL"`
	Token string `envconfig:"WEBHOOK_TOKEN"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	c.SignupBackend = strings.ToLower(strings.TrimSpace(c.SignupBackend))
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetLogLevel returns log level from configuration
func GetLogLevel() string {
	return Get().LogLevel
}

// GetSignupBackend returns the selected signup backend name
func GetSignupBackend() string {
	return Get().SignupBackend
}

// GetWalletFilePath returns path to .cwt file, empty when no local wallet is configured
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// PromptForPassword prompts for a password in the terminal without echoing it.
// An empty answer returns a nil slice and no error.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
