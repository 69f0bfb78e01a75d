package api

import (
	"errors"
	"net/http"

	_ "github.com/AlexZinkM/trader-ranker/docs"
	"github.com/AlexZinkM/trader-ranker/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Options wires the handlers and cross-cutting settings into the router.
type Options struct {
	Wallet *handler.WalletHandler
	Signup *handler.SignupHandler

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
	// SignupRatePerMinute limits POST /waitlist per client IP; 0 disables the limit.
	SignupRatePerMinute int

	Logger *zap.Logger
}

// SetupRouter sets up router with handlers
func SetupRouter(opts Options) (http.Handler, error) {
	if opts.Wallet == nil || opts.Signup == nil {
		return nil, errors.New("wallet and signup handlers are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/connect", opts.Wallet.Connect)
	mux.HandleFunc("/wallet/disconnect", opts.Wallet.Disconnect)
	mux.HandleFunc("/wallet/reconnect", opts.Wallet.Reconnect)
	mux.HandleFunc("/wallet/status", opts.Wallet.Status)

	// Waitlist endpoints
	limit := newIPLimiter(opts.SignupRatePerMinute)
	mux.Handle("/waitlist", limit.middleware(http.HandlerFunc(opts.Signup.Join)))
	mux.HandleFunc("/waitlist/count", opts.Signup.Count)

	return chain(mux,
		logRequests(logger),
		newCORS(opts.CORSOrigins).middleware,
	), nil
}
