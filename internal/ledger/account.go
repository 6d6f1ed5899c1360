package ledger

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// StateAccount is the slice of a Storage owned by one contract address.
// All contract state goes through it, so keys from different contracts can
// never collide.
type StateAccount struct {
	addr  ethcommon.Address
	store Storage
}

func NewStateAccount(store Storage, addr ethcommon.Address) *StateAccount {
	return &StateAccount{addr: addr, store: store}
}

func (a *StateAccount) GetAddress() ethcommon.Address {
	return a.addr
}

func (a *StateAccount) GetState(key []byte) (bool, []byte) {
	return a.store.Get(a.stateKey(key))
}

func (a *StateAccount) SetState(key []byte, value []byte) {
	a.store.Put(a.stateKey(key), value)
}

func (a *StateAccount) RemoveState(key []byte) {
	a.store.Delete(a.stateKey(key))
}

func (a *StateAccount) HasState(key []byte) bool {
	return a.store.Has(a.stateKey(key))
}

// ExtendTTL requests a lifetime bump for one of this account's entries.
func (a *StateAccount) ExtendTTL(key []byte, threshold uint64, bump uint64) {
	a.store.ExtendTTL(a.stateKey(key), threshold, bump)
}

func (a *StateAccount) stateKey(key []byte) []byte {
	return []byte(fmt.Sprintf("%s-%s", a.addr.String(), key))
}
