package domain

import "errors"

var (
	// ErrConnectionFailure is returned when a wallet capability is unavailable or the user declined.
	ErrConnectionFailure = errors.New("wallet connection failed")

	// ErrNoSignerAvailable is returned when no signing capability is active for the source chain.
	ErrNoSignerAvailable = errors.New("no signer available")

	// ErrInsufficientAllowance marks an allowance below the bridged amount.
	// It is resolved by an approval and never returned to callers.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrContractCallFailure wraps any rejected or reverted external contract call.
	ErrContractCallFailure = errors.New("contract call failed")

	// ErrNotImplemented is returned for the Stacks to Ethereum direction.
	ErrNotImplemented = errors.New("not implemented")

	ErrUnknownChain       = errors.New("unknown chain")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrWalletNotConnected = errors.New("wallet not connected")
)
