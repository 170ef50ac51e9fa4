// Package stacks reads Stacks account data from the Hiro API and exposes the
// configured Stacks address as a wallet.
package stacks

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vietddude/stacksyield/internal/infra/rpc/provider"
)

// Balances is the response of /extended/v1/address/{principal}/balances.
type Balances struct {
	STX struct {
		Balance string `json:"balance"`
	} `json:"stx"`
	FungibleTokens map[string]struct {
		Balance string `json:"balance"`
	} `json:"fungible_tokens"`
}

// Client is a Hiro API client.
type Client struct {
	provider provider.Provider
}

// NewClient creates a client for apiURL, rate limited to requestsPerSecond.
func NewClient(apiURL string, timeout time.Duration, requestsPerSecond int) *Client {
	return &Client{
		provider: provider.NewHTTPProvider("hiro", apiURL, timeout, requestsPerSecond),
	}
}

// Balances fetches the STX and fungible token balances of principal. A failed
// request is returned as is and not retried.
func (c *Client) Balances(ctx context.Context, principal string) (*Balances, error) {
	var out Balances
	op := provider.Operation{
		Path:   "extended/v1/address/" + url.PathEscape(principal) + "/balances",
		Result: &out,
	}
	if _, err := c.provider.Execute(ctx, op); err != nil {
		return nil, fmt.Errorf("get balances of %s: %w", principal, err)
	}
	return &out, nil
}

// Health returns the transport health.
func (c *Client) Health() provider.HealthStatus {
	return c.provider.GetHealth()
}

func (c *Client) Close() error {
	return c.provider.Close()
}
