// Package signup validates waitlist emails and delivers them to the configured backend.
package signup

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Signup is one waitlist submission as handed to a backend.
type Signup struct {
	Email         string
	WalletAddress string
	Timestamp     time.Time
}

// Backend delivers a signup somewhere.
type Backend interface {
	Name() string
	Submit(ctx context.Context, s Signup) error
}

// Dispatcher sends every signup to one backend chosen at construction.
type Dispatcher struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// WithHTTPClient sets the client used by HTTP backends.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the time source for signup timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewDispatcher builds the backend described by cfg.
func NewDispatcher(cfg BackendConfig, opts ...Option) (*Dispatcher, error) {
	o := options{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		return nil, errors.New("signup backend config is required")
	}
	backend, err := cfg.build(o.client)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		backend: backend,
		logger:  o.logger.Named("signup").With(zap.String("backend", backend.Name())),
		now:     o.now,
	}, nil
}

// Backend returns the active backend name.
func (d *Dispatcher) Backend() string {
	return d.backend.Name()
}

// Local returns the fallback backend when it is the active one.
func (d *Dispatcher) Local() (*LocalBackend, bool) {
	local, ok := d.backend.(*LocalBackend)
	return local, ok
}

// Validate reports whether email looks like local-part@domain.tld.
func (d *Dispatcher) Validate(email string) bool {
	return Validate(email)
}

// Submit validates email and delivers it with the optional wallet address attached.
// Errors match ErrInvalidEmail, ErrDuplicateEmail, ErrRemoteRejected or ErrNetwork.
// Nothing is retried; callers may submit again.
func (d *Dispatcher) Submit(ctx context.Context, email, walletAddress string) error {
	email = strings.TrimSpace(email)
	if !Validate(email) {
		return ErrInvalidEmail
	}

	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress != "" {
		if _, err := solana.PublicKeyFromBase58(walletAddress); err != nil {
			// metadata only, never a reason to lose the signup
			d.logger.Warn("dropping invalid wallet address", zap.Error(err))
			walletAddress = ""
		}
	}

	err := d.backend.Submit(ctx, Signup{
		Email:         email,
		WalletAddress: walletAddress,
		Timestamp:     d.now(),
	})
	if err != nil {
		d.logger.Warn("signup failed", zap.Error(err))
		return err
	}

	d.logger.Info("signup accepted", zap.Bool("wallet", walletAddress != ""))
	return nil
}
