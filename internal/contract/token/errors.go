package token

import (
	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-token/internal/contract/common"
)

// Every failure aborts the whole operation; the executor reverts all pending
// writes, so none of these leave partial state behind.
var (
	ErrUninitialized      = errors.New("token is not initialized")
	ErrAlreadyInitialized = errors.New("token is already initialized")

	ErrAuthorizationFailed = common.ErrAuthorizationFailed

	ErrNotMintable  = errors.New("token is not mintable")
	ErrNotBurnable  = errors.New("token is not burnable")
	ErrNotFreezable = errors.New("token is not freezable")

	ErrGloballyFrozen = errors.New("token is globally frozen")
	ErrAccountFrozen  = errors.New("account is frozen")

	ErrMaxSupplyExceeded = errors.New("mint would exceed max supply")

	ErrInsufficientBalance   = errors.New("value exceeds balance")
	ErrInsufficientAllowance = errors.New("value exceeds allowance")
	ErrAllowanceExpired      = errors.New("allowance is expired")

	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrArithmeticOverflow = errors.New("amount outside the 128-bit domain")
)
