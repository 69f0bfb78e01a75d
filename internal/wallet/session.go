package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// State is the connection state of a Session.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Session tracks the connected wallet address for the page.
// It registers a single event handler with the provider while connected.
type Session struct {
	provider Provider
	logger   *zap.Logger

	// opMu serializes connect and disconnect; mu guards the fields below.
	opMu        sync.Mutex
	mu          sync.Mutex
	address     string
	unsubscribe func()
}

// NewSession creates a session over provider. A nil provider means no wallet is installed.
func NewSession(provider Provider, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		provider: provider,
		logger:   logger.Named("wallet"),
	}
}

// Address returns the connected address, or "" when disconnected.
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// State returns the current connection state.
func (s *Session) State() State {
	if s.Address() == "" {
		return Disconnected
	}
	return Connected
}

// Connected reports whether a wallet is connected.
func (s *Session) Connected() bool {
	return s.State() == Connected
}

// Connect asks the provider for a connection and returns the connected address.
// Errors match ErrProviderUnavailable, ErrUserRejected or ErrConnectionFailed;
// on error the session state is left as it was.
func (s *Session) Connect(ctx context.Context) (string, error) {
	return s.connect(ctx, ConnectOptions{})
}

// SilentReconnect restores a connection the user already trusted, without prompting.
// It is meant for page load and visibility changes; failures are only logged.
func (s *Session) SilentReconnect(ctx context.Context) bool {
	if s.provider == nil || !s.provider.IsAvailable() || !s.provider.IsConnected() {
		return false
	}
	if _, err := s.connect(ctx, ConnectOptions{OnlyIfTrusted: true}); err != nil {
		s.logger.Debug("no automatic connection", zap.Error(err))
		return false
	}
	return true
}

func (s *Session) connect(ctx context.Context, opts ConnectOptions) (string, error) {
	if s.provider == nil || !s.provider.IsAvailable() {
		return "", ErrProviderUnavailable
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if address := s.Address(); address != "" {
		return address, nil
	}

	publicKey, err := s.provider.Connect(ctx, opts)
	if err != nil {
		if errors.Is(err, ErrUserRejected) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	if isEmptyKey(publicKey) {
		return "", fmt.Errorf("%w: provider returned no public key", ErrConnectionFailed)
	}

	address := publicKey.String()
	unsubscribe := s.provider.Subscribe(s.handleEvent)

	s.mu.Lock()
	s.address = address
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.logger.Info("wallet connected",
		zap.String("address", FormatAddress(address, DefaultVisibleChars)),
		zap.Bool("silent", opts.OnlyIfTrusted))
	return address, nil
}

// Disconnect clears the session. The provider's own disconnect is best-effort:
// its failure is logged and the local state is cleared regardless.
func (s *Session) Disconnect(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	held := s.clear()
	if !held || s.provider == nil {
		return
	}
	if err := s.provider.Disconnect(ctx); err != nil {
		s.logger.Warn("provider disconnect failed", zap.Error(err))
	}
	s.logger.Info("wallet disconnected")
}

// clear drops the address and the event subscription. It reports whether a connection was held.
func (s *Session) clear() bool {
	s.mu.Lock()
	held := s.address != ""
	unsubscribe := s.unsubscribe
	s.address = ""
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	return held
}

// handleEvent is the single handler registered with the provider.
func (s *Session) handleEvent(ev Event) {
	switch ev.Kind {
	case EventAccountChanged:
		if isEmptyKey(ev.PublicKey) {
			s.logger.Info("account removed by provider")
			// The provider may still consider itself connected; close it out.
			if s.clear() && s.provider != nil {
				if err := s.provider.Disconnect(context.Background()); err != nil {
					s.logger.Warn("provider disconnect failed", zap.Error(err))
				}
			}
			return
		}

		address := ev.PublicKey.String()
		s.mu.Lock()
		if s.address == "" {
			// stale event delivered after disconnect
			s.mu.Unlock()
			return
		}
		s.address = address
		s.mu.Unlock()
		s.logger.Info("account changed", zap.String("address", FormatAddress(address, DefaultVisibleChars)))

	case EventDisconnect:
		if s.clear() {
			s.logger.Info("wallet disconnected by provider")
		}
	}
}
