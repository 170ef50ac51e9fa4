package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

// BalanceReader reads token balances.
type BalanceReader interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// Wallet is the Ethereum wallet backed by a locally held key. It implements
// wallet.Provider and bridge.SignerSource.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	token   BalanceReader

	mu        sync.RWMutex
	connected bool
}

// NewWallet parses a hex private key, with or without 0x prefix.
func NewWallet(privateKey string, chainID int64, token BalanceReader) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(chainID),
		token:   token,
	}, nil
}

func (w *Wallet) Chain() domain.Chain { return domain.ChainEthereum }

func (w *Wallet) Connect(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return w.address.Hex(), nil
}

func (w *Wallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
	return nil
}

func (w *Wallet) Address(ctx context.Context) (string, error) {
	if !w.IsConnected() {
		return "", nil
	}
	return w.address.Hex(), nil
}

func (w *Wallet) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Balance returns the USDC balance of address.
func (w *Wallet) Balance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid ethereum address %q", address)
	}
	units, err := w.token.BalanceOf(ctx, common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	return bridge.FormatAmount(units), nil
}

// ActiveSigner returns transaction options for the connected wallet, nil when
// disconnected.
func (w *Wallet) ActiveSigner() *bind.TransactOpts {
	if !w.IsConnected() {
		return nil
	}
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainID)
	if err != nil {
		return nil
	}
	return opts
}
