package common

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/axiomesh/axiom-token/internal/ledger"
)

// VMMap is a typed map over an account's byte k/v state. A missing key reads
// as the zero value, never as an error. Values are JSON behind a 1-byte
// existence tag so that a deleted entry is distinguishable from an empty one.
type VMMap[K, V any] struct {
	account     *ledger.StateAccount
	mapName     string
	keyToString func(key K) string
}

func NewVMMap[K, V any](account *ledger.StateAccount, mapName string, keyToString func(key K) string) *VMMap[K, V] {
	return &VMMap[K, V]{
		account:     account,
		mapName:     mapName,
		keyToString: keyToString,
	}
}

func (m *VMMap[K, V]) stateKey(key K) []byte {
	return []byte(fmt.Sprintf("%s-%s", m.mapName, m.keyToString(key)))
}

func (m *VMMap[K, V]) Get(k K) (exist bool, v V, err error) {
	exist, data := m.account.GetState(m.stateKey(k))
	if !exist || len(data) == 0 || data[0] == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return false, v, err
	}
	return true, v, nil
}

func (m *VMMap[K, V]) MustGet(k K) (v V, err error) {
	exist, data := m.account.GetState(m.stateKey(k))
	if !exist || len(data) == 0 || data[0] == 0 {
		return v, errors.Errorf("contract[%s] map[%s] key[%s] not exist", m.account.GetAddress(), m.mapName, m.keyToString(k))
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return v, err
	}
	return v, nil
}

func (m *VMMap[K, V]) Has(k K) bool {
	exist, data := m.account.GetState(m.stateKey(k))
	return !(!exist || len(data) == 0 || data[0] == 0)
}

func (m *VMMap[K, V]) Put(k K, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.account.SetState(m.stateKey(k), append([]byte{1}, data...))
	return nil
}

func (m *VMMap[K, V]) Delete(k K) error {
	m.account.SetState(m.stateKey(k), []byte{0})
	return nil
}

// ExtendTTL asks the store to bump the lifetime horizon of one entry.
func (m *VMMap[K, V]) ExtendTTL(k K, threshold uint64, bump uint64) {
	m.account.ExtendTTL(m.stateKey(k), threshold, bump)
}

// VMSlot is a typed single value over an account's byte k/v state.
type VMSlot[V any] struct {
	account  *ledger.StateAccount
	slotName string
}

func NewVMSlot[V any](account *ledger.StateAccount, slotName string) *VMSlot[V] {
	return &VMSlot[V]{
		account:  account,
		slotName: slotName,
	}
}

func (s *VMSlot[V]) stateKey() []byte {
	return []byte(s.slotName)
}

func (s *VMSlot[V]) Get() (exist bool, v V, err error) {
	exist, data := s.account.GetState(s.stateKey())
	if !exist || len(data) == 0 || data[0] == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return false, v, err
	}
	return true, v, nil
}

func (s *VMSlot[V]) MustGet() (v V, err error) {
	exist, data := s.account.GetState(s.stateKey())
	if !exist || len(data) == 0 || data[0] == 0 {
		return v, errors.Errorf("contract[%s] slot[%s] not exist", s.account.GetAddress(), s.slotName)
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return v, err
	}
	return v, nil
}

func (s *VMSlot[V]) Has() bool {
	exist, data := s.account.GetState(s.stateKey())
	return !(!exist || len(data) == 0 || data[0] == 0)
}

func (s *VMSlot[V]) Put(v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.account.SetState(s.stateKey(), append([]byte{1}, data...))
	return nil
}

func (s *VMSlot[V]) Delete() error {
	s.account.SetState(s.stateKey(), []byte{0})
	return nil
}

func (s *VMSlot[V]) ExtendTTL(threshold uint64, bump uint64) {
	s.account.ExtendTTL(s.stateKey(), threshold, bump)
}
