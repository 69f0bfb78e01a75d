package solana

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/trader-ranker/internal/client"
	"github.com/AlexZinkM/trader-ranker/internal/common"
	"github.com/AlexZinkM/trader-ranker/internal/model"
)

type lamportsReader interface {
	GetSOLBalance(ctx context.Context, address string) (uint64, error)
}

type rateReader interface {
	GetSOLtoUSDRate(ctx context.Context) (string, error)
}

// BalanceReader builds the balance block of the wallet status card.
type BalanceReader struct {
	solana lamportsReader
	prices rateReader
}

// NewBalanceReader creates a reader over Solana RPC and CoinGecko.
func NewBalanceReader(rpcURL, coingeckoURL string) *BalanceReader {
	return &BalanceReader{
		solana: client.NewSolanaClient(rpcURL),
		prices: client.NewCoinGeckoClient(coingeckoURL),
	}
}

// GetBalance gets SOL balance of address with its USD value
func (r *BalanceReader) GetBalance(ctx context.Context, address string) (*model.WalletBalance, error) {
	lamports, err := r.solana.GetSOLBalance(ctx, address)
	if err != nil {
		return nil, err
	}
	sol := common.LamportsToSOL(lamports)

	rate, err := r.prices.GetSOLtoUSDRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	usd, err := common.FiatValue(sol, rate)
	if err != nil {
		return nil, err
	}

	return &model.WalletBalance{
		SOL:  sol,
		Rate: rate,
		USD:  usd,
	}, nil
}
