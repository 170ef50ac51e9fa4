// Package evm connects the dashboard to Ethereum: the server-held wallet, the
// USDC and xReserve contract bindings, and receipt tracking.
package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to rpcURL and checks that it serves the expected chain.
func Dial(ctx context.Context, rpcURL string, chainID int64) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum client: %w", err)
	}

	remote, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID > 0 && remote.Cmp(big.NewInt(chainID)) != 0 {
		client.Close()
		return nil, fmt.Errorf("chain id mismatch: expected %d, got %s", chainID, remote)
	}
	return client, nil
}
