package domain

import (
	"fmt"
	"strings"
)

// Chain identifies one of the two supported networks.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainStacks   Chain = "stacks"
)

// Chains lists the supported chains in display order.
var Chains = []Chain{ChainEthereum, ChainStacks}

// ChainDisplayName maps a chain to its human-readable name.
var ChainDisplayName = map[Chain]string{
	ChainEthereum: "Ethereum",
	ChainStacks:   "Stacks",
}

// ChainExplorerURL maps a chain to its block explorer.
var ChainExplorerURL = map[Chain]string{
	ChainEthereum: "https://etherscan.io",
	ChainStacks:   "https://explorer.stacks.co",
}

// ParseChain converts a user supplied name into a Chain.
func ParseChain(s string) (Chain, error) {
	switch Chain(strings.ToLower(strings.TrimSpace(s))) {
	case ChainEthereum:
		return ChainEthereum, nil
	case ChainStacks:
		return ChainStacks, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChain, s)
}

// Other returns the opposite chain.
func (c Chain) Other() Chain {
	if c == ChainEthereum {
		return ChainStacks
	}
	return ChainEthereum
}

func (c Chain) String() string {
	return string(c)
}
