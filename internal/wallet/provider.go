// Package wallet mediates the connection between the page and a Solana wallet provider.
package wallet

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// InstallURL is where users are sent when no wallet provider is available.
const InstallURL = "https://phantom.app/"

var (
	// ErrProviderUnavailable is returned by Connect when there is no wallet provider to talk to.
	ErrProviderUnavailable = errors.New("wallet provider not found")
	// ErrUserRejected is returned when the user declines a connection request.
	// Providers return it (possibly wrapped) for declined prompts and untrusted silent connects.
	ErrUserRejected = errors.New("user rejected the request")
	// ErrConnectionFailed wraps every other provider connection error.
	ErrConnectionFailed = errors.New("failed to connect wallet")
)

// ConnectOptions tunes a provider connection request.
type ConnectOptions struct {
	// OnlyIfTrusted connects without prompting and fails when the user has not trusted this app before.
	OnlyIfTrusted bool
}

// EventKind identifies a provider notification.
type EventKind int

const (
	// EventAccountChanged is emitted when the user switches accounts in the provider.
	// A zero PublicKey means the provider no longer exposes any account.
	EventAccountChanged EventKind = iota + 1
	// EventDisconnect is emitted when the provider drops the connection on its own.
	EventDisconnect
)

func (k EventKind) String() string {
	switch k {
	case EventAccountChanged:
		return "accountChanged"
	case EventDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Event is a provider notification.
type Event struct {
	Kind      EventKind
	PublicKey solana.PublicKey
}

// Provider is the wallet capability the session talks to.
//
// Subscribe registers a handler for account-changed and disconnect events and returns a function
// that removes it. Providers must not hold internal locks while invoking handlers.
type Provider interface {
	IsAvailable() bool
	IsConnected() bool
	Connect(ctx context.Context, opts ConnectOptions) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	Subscribe(handler func(Event)) (unsubscribe func())
}

func isEmptyKey(key solana.PublicKey) bool {
	return key == solana.PublicKey{}
}
