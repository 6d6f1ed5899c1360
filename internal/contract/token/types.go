package token

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	AdminKey          = "tokenAdmin"
	MetadataKey       = "tokenMetadata"
	StateKey          = "tokenState"
	BalancesKey       = "tokenBalances"
	AllowancesKey     = "tokenAllowances"
	FrozenAccountsKey = "tokenFrozenAccounts"
)

// Lifetime bookkeeping, measured in ledger sequence numbers. Instance
// records (admin/metadata/state) are bumped a week out on every touch,
// balance and allowance entries a month out on every write.
const (
	DayInLedgers = 17280

	InstanceBumpAmount        = 7 * DayInLedgers
	InstanceLifetimeThreshold = InstanceBumpAmount - DayInLedgers

	BalanceBumpAmount        = 30 * DayInLedgers
	BalanceLifetimeThreshold = BalanceBumpAmount - DayInLedgers
)

// Metadata is the immutable token descriptor, written once by Initialize.
type Metadata struct {
	Decimals uint8  `json:"decimals"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
}

// State is the instance-scoped accounting record. TotalSupply always equals
// the sum of all balance entries. MaxSupply nil means uncapped.
type State struct {
	Admin       ethcommon.Address `json:"admin"`
	TotalSupply *big.Int          `json:"total_supply"`
	MaxSupply   *big.Int          `json:"max_supply"`
	IsMintable  bool              `json:"is_mintable"`
	IsBurnable  bool              `json:"is_burnable"`
	IsFreezable bool              `json:"is_freezable"`
	IsFrozen    bool              `json:"is_frozen"`
}

// AllowanceKey identifies one (owner, spender) delegation.
type AllowanceKey struct {
	Owner   ethcommon.Address `json:"owner"`
	Spender ethcommon.Address `json:"spender"`
}

func (k AllowanceKey) String() string {
	return fmt.Sprintf("%s-%s", k.Owner.String(), k.Spender.String())
}

// AllowanceValue is the remaining delegated amount and the last ledger
// sequence at which it may still be spent. An entry whose ExpirationLedger
// is behind the current sequence reads as amount 0; it is never compacted.
type AllowanceValue struct {
	Amount           *big.Int `json:"amount"`
	ExpirationLedger uint64   `json:"expiration_ledger"`
}

// Amounts live in the signed 128-bit domain. Any arithmetic result outside
// it aborts the operation instead of wrapping.
var (
	maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minAmount = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func checkAmountRange(value *big.Int) error {
	if value.Cmp(maxAmount) > 0 || value.Cmp(minAmount) < 0 {
		return ErrArithmeticOverflow
	}
	return nil
}

func checkPositive(value *big.Int) error {
	if value == nil || value.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return checkAmountRange(value)
}

func checkNonNegative(value *big.Int) error {
	if value == nil || value.Sign() < 0 {
		return ErrInvalidAmount
	}
	return checkAmountRange(value)
}
