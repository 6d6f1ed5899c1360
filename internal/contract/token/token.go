package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/axiom-token/internal/contract/common"
	"github.com/axiomesh/axiom-token/internal/ledger"
)

var _ common.SystemContract = (*Token)(nil)

// Token is the fungible-token native contract. It holds no state of its own:
// every call re-reads from the bound state account and writes back before
// returning, and the executor reverts everything on failure.
type Token struct {
	logger  logrus.FieldLogger
	ctx     *common.VMContext
	account *ledger.StateAccount

	adminSlot    *common.VMSlot[ethcommon.Address]
	metadataSlot *common.VMSlot[Metadata]
	stateSlot    *common.VMSlot[State]

	balances       *common.VMMap[ethcommon.Address, *big.Int]
	allowances     *common.VMMap[AllowanceKey, AllowanceValue]
	frozenAccounts *common.VMMap[ethcommon.Address, bool]
}

func New(logger logrus.FieldLogger) *Token {
	return &Token{
		logger: logger,
	}
}

func (t *Token) SetContext(ctx *common.VMContext) {
	t.ctx = ctx
	t.account = ctx.StateAccount

	t.adminSlot = common.NewVMSlot[ethcommon.Address](t.account, AdminKey)
	t.metadataSlot = common.NewVMSlot[Metadata](t.account, MetadataKey)
	t.stateSlot = common.NewVMSlot[State](t.account, StateKey)

	t.balances = common.NewVMMap[ethcommon.Address, *big.Int](t.account, BalancesKey, func(key ethcommon.Address) string {
		return key.String()
	})
	t.allowances = common.NewVMMap[AllowanceKey, AllowanceValue](t.account, AllowancesKey, func(key AllowanceKey) string {
		return key.String()
	})
	t.frozenAccounts = common.NewVMMap[ethcommon.Address, bool](t.account, FrozenAccountsKey, func(key ethcommon.Address) string {
		return key.String()
	})
}

// Initialize creates the token instance: admin, metadata and the zeroed
// accounting state. It can run exactly once.
func (t *Token) Initialize(admin ethcommon.Address, decimals uint8, name string, symbol string, maxSupply *big.Int, mintable bool, burnable bool, freezable bool) error {
	if t.adminSlot.Has() {
		return ErrAlreadyInitialized
	}
	if maxSupply != nil {
		if err := checkNonNegative(maxSupply); err != nil {
			return errors.Wrap(err, "max supply")
		}
	}

	if err := t.adminSlot.Put(admin); err != nil {
		return err
	}
	if err := t.metadataSlot.Put(Metadata{
		Decimals: decimals,
		Name:     name,
		Symbol:   symbol,
	}); err != nil {
		return err
	}
	if err := t.stateSlot.Put(State{
		Admin:       admin,
		TotalSupply: big.NewInt(0),
		MaxSupply:   maxSupply,
		IsMintable:  mintable,
		IsBurnable:  burnable,
		IsFreezable: freezable,
		IsFrozen:    false,
	}); err != nil {
		return err
	}
	t.extendInstanceTTL()

	t.logger.WithFields(logrus.Fields{
		"admin":  admin.String(),
		"name":   name,
		"symbol": symbol,
	}).Debug("token initialized")
	return nil
}

// Mint credits amount to the target account and grows total supply (admin only).
func (t *Token) Mint(to ethcommon.Address, amount *big.Int) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}
	if !state.IsMintable {
		return ErrNotMintable
	}
	if state.IsFrozen {
		return ErrGloballyFrozen
	}
	if t.frozenAccounts.Has(to) {
		return errors.Wrapf(ErrAccountFrozen, "to account %s", to)
	}
	if err := checkPositive(amount); err != nil {
		return err
	}

	newSupply := new(big.Int).Add(state.TotalSupply, amount)
	if err := checkAmountRange(newSupply); err != nil {
		return err
	}
	if state.MaxSupply != nil && newSupply.Cmp(state.MaxSupply) > 0 {
		return ErrMaxSupplyExceeded
	}

	state.TotalSupply = newSupply
	if err := t.stateSlot.Put(state); err != nil {
		return err
	}
	if err := t.receiveBalance(to, amount); err != nil {
		return err
	}

	t.recordLog(mintEvent, []byter{to}, []byter{amount})
	t.extendInstanceTTL()
	return nil
}

// Burn debits amount from the target account and shrinks total supply (admin only).
func (t *Token) Burn(from ethcommon.Address, amount *big.Int) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}
	if !state.IsBurnable {
		return ErrNotBurnable
	}
	if state.IsFrozen {
		return ErrGloballyFrozen
	}
	if t.frozenAccounts.Has(from) {
		return errors.Wrapf(ErrAccountFrozen, "from account %s", from)
	}
	if err := checkPositive(amount); err != nil {
		return err
	}

	if err := t.spendBalance(from, amount); err != nil {
		return err
	}
	// supply == sum of balances, so a successful debit guarantees this
	if state.TotalSupply.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	state.TotalSupply = new(big.Int).Sub(state.TotalSupply, amount)
	if err := t.stateSlot.Put(state); err != nil {
		return err
	}

	t.recordLog(burnEvent, []byter{from}, []byter{amount})
	t.extendInstanceTTL()
	return nil
}

// Freeze blocks all transfers in and out of the account (admin only).
func (t *Token) Freeze(account ethcommon.Address) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}
	if !state.IsFreezable {
		return ErrNotFreezable
	}

	if err := t.frozenAccounts.Put(account, true); err != nil {
		return err
	}
	t.recordLog(freezeEvent, []byter{account}, nil)
	return nil
}

// Unfreeze lifts a per-account freeze. Unfreezing an account that is not
// frozen is a no-op.
func (t *Token) Unfreeze(account ethcommon.Address) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}
	if !state.IsFreezable {
		return ErrNotFreezable
	}

	if err := t.frozenAccounts.Delete(account); err != nil {
		return err
	}
	t.recordLog(unfreezeEvent, []byter{account}, nil)
	return nil
}

// SetFrozen toggles the global freeze flag (admin only).
func (t *Token) SetFrozen(frozen bool) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}
	if !state.IsFreezable {
		return ErrNotFreezable
	}

	state.IsFrozen = frozen
	if err := t.stateSlot.Put(state); err != nil {
		return err
	}
	t.recordLog(setFrozenEvent, nil, []byter{boolValue(frozen)})
	t.extendInstanceTTL()
	return nil
}

// SetAdmin rotates the administrator (current admin only).
func (t *Token) SetAdmin(newAdmin ethcommon.Address) error {
	state, err := t.requireAdmin()
	if err != nil {
		return err
	}

	if err := t.adminSlot.Put(newAdmin); err != nil {
		return err
	}
	state.Admin = newAdmin
	if err := t.stateSlot.Put(state); err != nil {
		return err
	}

	t.recordLog(setAdminEvent, []byter{newAdmin}, nil)
	t.extendInstanceTTL()
	t.logger.WithField("admin", newAdmin.String()).Debug("admin rotated")
	return nil
}

// Approve overwrites the allowance granted to spender by from. Amount 0
// revokes; an expiration behind the current sequence is accepted and yields
// an allowance that immediately reads as 0.
func (t *Token) Approve(from ethcommon.Address, spender ethcommon.Address, amount *big.Int, expirationLedger uint64) error {
	if err := t.ctx.RequireAuth(from); err != nil {
		return err
	}
	if err := checkNonNegative(amount); err != nil {
		return err
	}

	key := AllowanceKey{Owner: from, Spender: spender}
	if err := t.allowances.Put(key, AllowanceValue{
		Amount:           amount,
		ExpirationLedger: expirationLedger,
	}); err != nil {
		return err
	}
	if amount.Sign() > 0 {
		t.allowances.ExtendTTL(key, BalanceLifetimeThreshold, BalanceBumpAmount)
	}

	t.recordLog(approveEvent, []byter{from, spender}, []byter{amount, seqValue(expirationLedger)})
	t.extendInstanceTTL()
	return nil
}

// Transfer moves amount from one account to another (sender authorized).
func (t *Token) Transfer(from ethcommon.Address, to ethcommon.Address, amount *big.Int) error {
	if err := t.ctx.RequireAuth(from); err != nil {
		return err
	}
	if err := t.checkTransferable(from, to); err != nil {
		return err
	}
	if err := checkPositive(amount); err != nil {
		return err
	}

	if err := t.spendBalance(from, amount); err != nil {
		return err
	}
	if err := t.receiveBalance(to, amount); err != nil {
		return err
	}

	t.recordLog(transferEvent, []byter{from, to}, []byter{amount})
	t.extendInstanceTTL()
	return nil
}

// TransferFrom spends the (from, spender) allowance, then moves the balance
// exactly as Transfer does (spender authorized).
func (t *Token) TransferFrom(spender ethcommon.Address, from ethcommon.Address, to ethcommon.Address, amount *big.Int) error {
	if err := t.ctx.RequireAuth(spender); err != nil {
		return err
	}
	if err := t.checkTransferable(from, to); err != nil {
		return err
	}
	if err := checkPositive(amount); err != nil {
		return err
	}

	if err := t.spendAllowance(from, spender, amount); err != nil {
		return err
	}
	if err := t.spendBalance(from, amount); err != nil {
		return err
	}
	if err := t.receiveBalance(to, amount); err != nil {
		return err
	}

	t.recordLog(transferEvent, []byter{from, to}, []byter{amount})
	t.extendInstanceTTL()
	return nil
}

// BalanceOf returns the account balance, 0 when no entry exists.
func (t *Token) BalanceOf(account ethcommon.Address) (*big.Int, error) {
	exist, balance, err := t.balances.Get(account)
	if err != nil {
		return nil, err
	}
	if !exist {
		return big.NewInt(0), nil
	}
	t.extendInstanceTTL()
	return balance, nil
}

// Allowance returns the live delegated amount; expired entries read as 0.
func (t *Token) Allowance(from ethcommon.Address, spender ethcommon.Address) (*big.Int, error) {
	value, err := t.readAllowance(from, spender)
	if err != nil {
		return nil, err
	}
	t.extendInstanceTTL()
	if t.ctx.BlockNumber > value.ExpirationLedger {
		return big.NewInt(0), nil
	}
	return value.Amount, nil
}

func (t *Token) Name() (string, error) {
	_, metadata, err := t.metadataSlot.Get()
	return metadata.Name, err
}

func (t *Token) Symbol() (string, error) {
	_, metadata, err := t.metadataSlot.Get()
	return metadata.Symbol, err
}

func (t *Token) Decimals() (uint8, error) {
	_, metadata, err := t.metadataSlot.Get()
	return metadata.Decimals, err
}

func (t *Token) TotalSupply() (*big.Int, error) {
	state, err := t.getState()
	if err != nil {
		return nil, err
	}
	t.extendInstanceTTL()
	return state.TotalSupply, nil
}

// MaxSupply returns nil when the supply is uncapped.
func (t *Token) MaxSupply() (*big.Int, error) {
	state, err := t.getState()
	if err != nil {
		return nil, err
	}
	t.extendInstanceTTL()
	return state.MaxSupply, nil
}

func (t *Token) IsMintable() (bool, error) {
	state, err := t.getState()
	return state.IsMintable, err
}

func (t *Token) IsBurnable() (bool, error) {
	state, err := t.getState()
	return state.IsBurnable, err
}

func (t *Token) IsFreezable() (bool, error) {
	state, err := t.getState()
	return state.IsFreezable, err
}

// IsFrozen reports whether the account is blocked, either by the global flag
// or by a per-account freeze entry.
func (t *Token) IsFrozen(account ethcommon.Address) (bool, error) {
	state, err := t.getState()
	if err != nil {
		return false, err
	}
	if state.IsFrozen {
		return true, nil
	}
	return t.frozenAccounts.Has(account), nil
}

func (t *Token) Admin() (ethcommon.Address, error) {
	exist, admin, err := t.adminSlot.Get()
	if err != nil {
		return ethcommon.Address{}, err
	}
	if !exist {
		return ethcommon.Address{}, ErrUninitialized
	}
	return admin, nil
}

func (t *Token) getState() (State, error) {
	exist, state, err := t.stateSlot.Get()
	if err != nil {
		return State{}, err
	}
	if !exist {
		return State{}, ErrUninitialized
	}
	return state, nil
}

// requireAdmin loads the state and demands authorization from the current
// administrator.
func (t *Token) requireAdmin() (State, error) {
	state, err := t.getState()
	if err != nil {
		return State{}, err
	}
	if err := t.ctx.RequireAuth(state.Admin); err != nil {
		return State{}, err
	}
	return state, nil
}

// checkTransferable gates every balance move on the freeze state machine:
// the global flag blocks everything, and both endpoints must be unfrozen.
func (t *Token) checkTransferable(from ethcommon.Address, to ethcommon.Address) error {
	state, err := t.getState()
	if err != nil {
		return err
	}
	if state.IsFrozen {
		return ErrGloballyFrozen
	}
	if t.frozenAccounts.Has(from) {
		return errors.Wrapf(ErrAccountFrozen, "from account %s", from)
	}
	if t.frozenAccounts.Has(to) {
		return errors.Wrapf(ErrAccountFrozen, "to account %s", to)
	}
	return nil
}

func (t *Token) receiveBalance(account ethcommon.Address, amount *big.Int) error {
	exist, balance, err := t.balances.Get(account)
	if err != nil {
		return err
	}
	if !exist {
		balance = big.NewInt(0)
	}

	newBalance := new(big.Int).Add(balance, amount)
	if err := checkAmountRange(newBalance); err != nil {
		return err
	}
	if err := t.balances.Put(account, newBalance); err != nil {
		return err
	}
	t.balances.ExtendTTL(account, BalanceLifetimeThreshold, BalanceBumpAmount)
	return nil
}

func (t *Token) spendBalance(account ethcommon.Address, amount *big.Int) error {
	exist, balance, err := t.balances.Get(account)
	if err != nil {
		return err
	}
	if !exist {
		balance = big.NewInt(0)
	}
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "account %s", account)
	}

	if err := t.balances.Put(account, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	t.balances.ExtendTTL(account, BalanceLifetimeThreshold, BalanceBumpAmount)
	return nil
}

func (t *Token) readAllowance(owner ethcommon.Address, spender ethcommon.Address) (AllowanceValue, error) {
	exist, value, err := t.allowances.Get(AllowanceKey{Owner: owner, Spender: spender})
	if err != nil {
		return AllowanceValue{}, err
	}
	if !exist {
		return AllowanceValue{Amount: big.NewInt(0), ExpirationLedger: 0}, nil
	}
	return value, nil
}

func (t *Token) spendAllowance(owner ethcommon.Address, spender ethcommon.Address, amount *big.Int) error {
	key := AllowanceKey{Owner: owner, Spender: spender}
	exist, value, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if !exist {
		return errors.Wrapf(ErrInsufficientAllowance, "owner %s spender %s", owner, spender)
	}
	if t.ctx.BlockNumber > value.ExpirationLedger {
		return errors.Wrapf(ErrAllowanceExpired, "expired at ledger %d, current %d", value.ExpirationLedger, t.ctx.BlockNumber)
	}
	if value.Amount.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientAllowance, "owner %s spender %s", owner, spender)
	}

	return t.allowances.Put(key, AllowanceValue{
		Amount:           new(big.Int).Sub(value.Amount, amount),
		ExpirationLedger: value.ExpirationLedger,
	})
}

// extendInstanceTTL bumps the instance-scoped records so the host does not
// garbage-collect them between operations.
func (t *Token) extendInstanceTTL() {
	t.adminSlot.ExtendTTL(InstanceLifetimeThreshold, InstanceBumpAmount)
	t.metadataSlot.ExtendTTL(InstanceLifetimeThreshold, InstanceBumpAmount)
	t.stateSlot.ExtendTTL(InstanceLifetimeThreshold, InstanceBumpAmount)
}
