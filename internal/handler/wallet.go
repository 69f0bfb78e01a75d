package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlexZinkM/trader-ranker/internal/model"
	"github.com/AlexZinkM/trader-ranker/internal/wallet"
	"github.com/AlexZinkM/trader-ranker/solana"

	"go.uber.org/zap"
)

// statusCardChars is how many characters the wallet status card shows on each side of the address.
const statusCardChars = 8

// WalletSession is the part of wallet.Session the handlers use.
type WalletSession interface {
	Address() string
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context)
	SilentReconnect(ctx context.Context) bool
}

// BalanceSource looks up the balance shown on the wallet status card.
type BalanceSource interface {
	GetBalance(ctx context.Context, address string) (*model.WalletBalance, error)
}

// WalletHandler serves the wallet connect button and status card.
type WalletHandler struct {
	session  WalletSession
	balances BalanceSource
	logger   *zap.Logger
}

// NewWalletHandler creates a WalletHandler. balances may be nil to leave the balance off the status card.
func NewWalletHandler(session WalletSession, balances BalanceSource, logger *zap.Logger) *WalletHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletHandler{
		session:  session,
		balances: balances,
		logger:   logger.Named("wallet_handler"),
	}
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Asks the wallet provider for a connection and returns the connected address
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletConnectResponse
// @Failure      403  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	address, err := h.session.Connect(r.Context())
	if err != nil {
		h.logger.Warn("wallet connection error", zap.Error(err))
		switch {
		case errors.Is(err, wallet.ErrProviderUnavailable):
			writeJSON(w, http.StatusNotFound, model.ErrorResponse{
				Error:      "Phantom wallet not detected. Please install it from phantom.app",
				Code:       model.CodeProviderUnavailable,
				InstallURL: wallet.InstallURL,
			})
		case errors.Is(err, wallet.ErrUserRejected):
			writeError(w, http.StatusForbidden, model.CodeUserRejected, "Connection request was rejected.")
		default:
			writeError(w, http.StatusBadGateway, model.CodeConnectionFailed, "Failed to connect wallet. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.WalletConnectResponse{
		Connected:    true,
		Message:      "Wallet connected successfully!",
		Address:      address,
		ShortAddress: wallet.FormatAddress(address, wallet.DefaultVisibleChars),
	})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Disconnects the wallet; always succeeds
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletConnectResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	h.session.Disconnect(r.Context())
	writeJSON(w, http.StatusOK, model.WalletConnectResponse{
		Connected: false,
		Message:   "Wallet disconnected",
	})
}

// Reconnect handles POST /wallet/reconnect
// @Summary      Restore trusted connection
// @Description  Reconnects without prompting when the wallet already trusts this app. Called on page load and when the page becomes visible.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletConnectResponse
// @Router       /wallet/reconnect [post]
func (h *WalletHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	h.session.SilentReconnect(r.Context())
	address := h.session.Address()
	writeJSON(w, http.StatusOK, model.WalletConnectResponse{
		Connected:    address != "",
		Address:      address,
		ShortAddress: wallet.FormatAddress(address, wallet.DefaultVisibleChars),
	})
}

// Status handles GET /wallet/status
// @Summary      Wallet status card
// @Description  Returns the connected address in button and card formats, its QR code and, when enabled, SOL balance with USD value
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletStatusResponse
// @Router       /wallet/status [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	address := h.session.Address()
	if address == "" {
		writeJSON(w, http.StatusOK, model.WalletStatusResponse{Connected: false})
		return
	}

	resp := model.WalletStatusResponse{
		Connected:      true,
		Address:        address,
		ShortAddress:   wallet.FormatAddress(address, wallet.DefaultVisibleChars),
		DisplayAddress: wallet.FormatAddress(address, statusCardChars),
	}

	qr, err := solana.AddressQR(address)
	if err != nil {
		h.logger.Warn("failed to render address QR", zap.Error(err))
	} else {
		resp.QR = qr
	}

	if h.balances != nil {
		balance, err := h.balances.GetBalance(r.Context(), address)
		if err != nil {
			h.logger.Warn("failed to get wallet balance", zap.Error(err))
		} else {
			resp.Balance = balance
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
