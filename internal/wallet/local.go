package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/trader-ranker/internal/config"
	"github.com/AlexZinkM/trader-ranker/internal/crypto"

	"github.com/gagliardetto/solana-go"
)

// Approver asks the wallet owner whether a connection may be made.
// It returns nil when approved and an error matching ErrUserRejected when declined.
type Approver interface {
	Approve(ctx context.Context, address string) error
}

// LocalProvider is a wallet provider backed by a .cwt wallet file on this machine.
// Connection prompts are answered by its Approver; once approved the app is trusted
// for silent reconnects until the process exits.
type LocalProvider struct {
	filePath string
	approver Approver

	mu        sync.Mutex
	connected bool
	trusted   bool
	publicKey solana.PublicKey
	handlers  map[int]func(Event)
	nextID    int
}

// NewLocalProvider creates a provider for the wallet file at filePath.
func NewLocalProvider(filePath string, approver Approver) *LocalProvider {
	return &LocalProvider{
		filePath: filePath,
		approver: approver,
		handlers: make(map[int]func(Event)),
	}
}

// IsAvailable reports whether the wallet file exists and holds an address.
func (p *LocalProvider) IsAvailable() bool {
	_, err := p.readPublicKey()
	return err == nil
}

// IsConnected reports whether the provider currently has an open connection.
func (p *LocalProvider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Connect opens a connection to the wallet file's account.
func (p *LocalProvider) Connect(ctx context.Context, opts ConnectOptions) (solana.PublicKey, error) {
	publicKey, err := p.readPublicKey()
	if err != nil {
		return solana.PublicKey{}, err
	}

	p.mu.Lock()
	trusted := p.trusted
	p.mu.Unlock()

	if opts.OnlyIfTrusted {
		if !trusted {
			return solana.PublicKey{}, fmt.Errorf("%w: app is not trusted yet", ErrUserRejected)
		}
	} else {
		if p.approver == nil {
			return solana.PublicKey{}, errors.New("no approver configured")
		}
		if err := p.approver.Approve(ctx, publicKey.String()); err != nil {
			return solana.PublicKey{}, err
		}
	}

	p.mu.Lock()
	p.connected = true
	p.trusted = true
	p.publicKey = publicKey
	p.mu.Unlock()
	return publicKey, nil
}

// Disconnect closes the connection and notifies subscribers.
func (p *LocalProvider) Disconnect(_ context.Context) error {
	p.mu.Lock()
	wasConnected := p.connected
	p.connected = false
	p.mu.Unlock()

	if wasConnected {
		p.emit(Event{Kind: EventDisconnect})
	}
	return nil
}

// Reload re-reads the wallet file. When connected and the account changed, subscribers get
// an account-changed event; a missing or unreadable file reports an empty account.
func (p *LocalProvider) Reload() {
	publicKey, err := p.readPublicKey()
	if err != nil {
		publicKey = solana.PublicKey{}
	}

	p.mu.Lock()
	if !p.connected || publicKey.Equals(p.publicKey) {
		p.mu.Unlock()
		return
	}
	p.publicKey = publicKey
	if isEmptyKey(publicKey) {
		p.connected = false
	}
	p.mu.Unlock()

	p.emit(Event{Kind: EventAccountChanged, PublicKey: publicKey})
}

// Subscribe registers handler for provider events.
func (p *LocalProvider) Subscribe(handler func(Event)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.handlers[id] = handler
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.handlers, id)
			p.mu.Unlock()
		})
	}
}

func (p *LocalProvider) emit(ev Event) {
	p.mu.Lock()
	handlers := make([]func(Event), 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (p *LocalProvider) readPublicKey() (solana.PublicKey, error) {
	address, err := crypto.ReadWalletAddress(p.filePath)
	if err != nil {
		return solana.PublicKey{}, err
	}
	publicKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid Solana address in wallet file: %w", err)
	}
	return publicKey, nil
}

// TerminalApprover approves connections by asking for the wallet password in the terminal.
// An empty answer declines the request; a wrong password is an error, not a rejection.
type TerminalApprover struct {
	FilePath string
}

// Approve prompts and verifies the password against the wallet file.
// The prompt blocks until the operator answers; ctx is only checked before prompting.
func (a TerminalApprover) Approve(ctx context.Context, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Connect wallet %s to TraderRanker? Enter password (empty to reject): ",
		FormatAddress(address, DefaultVisibleChars))
	password, err := config.PromptForPassword(prompt)
	if err != nil {
		return err
	}
	if len(password) == 0 {
		return ErrUserRejected
	}
	defer clear(password)

	_, walletData, err := crypto.DecryptWallet(a.FilePath, password)
	if err != nil {
		return err
	}
	clear(walletData.PrivateKey)
	return nil
}
