package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/trader-ranker/internal/api"
	"github.com/AlexZinkM/trader-ranker/internal/config"
	"github.com/AlexZinkM/trader-ranker/internal/handler"
	"github.com/AlexZinkM/trader-ranker/internal/signup"
	"github.com/AlexZinkM/trader-ranker/internal/storage"
	"github.com/AlexZinkM/trader-ranker/internal/wallet"
	"github.com/AlexZinkM/trader-ranker/solana"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title           TraderRanker API
// @version         1.0
// @description     Waitlist signup and wallet connection for the TraderRanker landing page.
// @BasePath        /
func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(config.GetLogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	return cfg.Build()
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	var slot storage.Slot
	if cfg.SignupBackend == signup.NameLocal {
		var err error
		slot, err = storage.Open(ctx, storage.Options{
			Kind:          cfg.Store.Kind,
			Path:          cfg.Store.Path,
			Name:          cfg.Store.Slot,
			RedisAddr:     cfg.Store.RedisAddr,
			RedisPassword: cfg.Store.RedisPassword,
			RedisDB:       cfg.Store.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("failed to open signup store: %w", err)
		}
		defer slot.Close()
	}

	backendCfg, err := backendConfig(cfg, slot)
	if err != nil {
		return err
	}
	dispatcher, err := signup.NewDispatcher(backendCfg, signup.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("signup backend ready", zap.String("backend", dispatcher.Backend()))

	var counter handler.Counter
	if local, ok := dispatcher.Local(); ok {
		counter = local
	}

	var provider wallet.Provider
	if path := config.GetWalletFilePath(); path != "" {
		local := wallet.NewLocalProvider(path, wallet.TerminalApprover{FilePath: path})
		provider = local
		go reloadOnHangup(ctx, local, logger)
		logger.Info("local wallet provider enabled", zap.String("file", path))
	}
	session := wallet.NewSession(provider, logger)

	var balances handler.BalanceSource
	if cfg.WalletBalanceEnabled {
		balances = solana.NewBalanceReader(config.GetSolanaRPCURL(), cfg.CoinGeckoURL)
	}

	router, err := api.SetupRouter(api.Options{
		Wallet:              handler.NewWalletHandler(session, balances, logger),
		Signup:              handler.NewSignupHandler(dispatcher, counter, session, logger),
		CORSOrigins:         cfg.CORSOrigins,
		SignupRatePerMinute: cfg.SignupRatePerMinute,
		Logger:              logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	session.Disconnect(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

// reloadOnHangup re-reads the wallet file on SIGHUP so an account switch reaches the session.
func reloadOnHangup(ctx context.Context, provider *wallet.LocalProvider, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("reloading wallet file")
			provider.Reload()
		}
	}
}
