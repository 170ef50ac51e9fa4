package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const erc20ABI = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"allowance","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

const xReserveABI = `[
	{"type":"function","name":"deposit","stateMutability":"nonpayable",
	 "inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
	           {"name":"destinationChain","type":"bytes32"},{"name":"destinationAddress","type":"bytes32"}],
	 "outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable",
	 "inputs":[{"name":"sourceChain","type":"bytes32"},{"name":"sourceAddress","type":"bytes32"},
	           {"name":"amount","type":"uint256"},{"name":"proof","type":"bytes"}],
	 "outputs":[]},
	{"type":"event","name":"Deposit","anonymous":false,
	 "inputs":[{"name":"sender","type":"address","indexed":true},{"name":"token","type":"address","indexed":true},
	           {"name":"amount","type":"uint256","indexed":false},{"name":"destinationChain","type":"bytes32","indexed":false}]},
	{"type":"event","name":"Withdrawal","anonymous":false,
	 "inputs":[{"name":"recipient","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},
	           {"name":"sourceChain","type":"bytes32","indexed":false}]}
]`

var (
	parsedERC20    = mustParseABI(erc20ABI)
	parsedXReserve = mustParseABI(xReserveABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid contract abi: %v", err))
	}
	return parsed
}

// Token is a USDC binding.
type Token struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewToken binds the ERC-20 at address.
func NewToken(address common.Address, backend bind.ContractBackend) *Token {
	return &Token{
		address:  address,
		contract: bind.NewBoundContract(address, parsedERC20, backend, backend, backend),
	}
}

func (t *Token) Address() common.Address { return t.address }

func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return t.callUint(ctx, "allowance", owner, spender)
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.callUint(ctx, "balanceOf", account)
}

func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, amount)
}

func (t *Token) callUint(ctx context.Context, method string, params ...any) (*big.Int, error) {
	var out []any
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", method, out[0])
	}
	return value, nil
}

// Reserve is an xReserve binding.
type Reserve struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewReserve binds the xReserve contract at address.
func NewReserve(address common.Address, backend bind.ContractBackend) *Reserve {
	return &Reserve{
		address:  address,
		contract: bind.NewBoundContract(address, parsedXReserve, backend, backend, backend),
	}
}

func (r *Reserve) Address() common.Address { return r.address }

func (r *Reserve) Deposit(
	opts *bind.TransactOpts,
	token common.Address,
	amount *big.Int,
	destinationChain [32]byte,
	destinationAddress [32]byte,
) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deposit", token, amount, destinationChain, destinationAddress)
}

// DepositEvent is a decoded xReserve Deposit log.
type DepositEvent struct {
	Sender           common.Address
	Token            common.Address
	Amount           *big.Int
	DestinationChain [32]byte
}

// FindDeposit returns the first Deposit log emitted by the reserve in receipt.
func (r *Reserve) FindDeposit(receipt *types.Receipt) (*DepositEvent, bool) {
	for _, l := range receipt.Logs {
		if l == nil || l.Address != r.address {
			continue
		}
		var event DepositEvent
		if err := r.contract.UnpackLog(&event, "Deposit", *l); err != nil {
			continue
		}
		return &event, true
	}
	return nil, false
}
