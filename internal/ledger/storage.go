package ledger

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ttlKeyPrefix namespaces lifetime records away from user entries.
const ttlKeyPrefix = "ttl-"

var ErrStorageClosed = errors.New("storage is closed")

// Storage is the durable key/value store the token contract runs on.
//
// Writes accumulate in a pending overlay until Finalise commits them to the
// backend in one batch. RevertToSnapshot discards every pending write made
// after the matching Snapshot call, which is how the host provides the
// all-or-nothing guarantee for a single operation.
//
// ExtendTTL mirrors the host's entry-lifetime bookkeeping: an entry lives
// until a ledger sequence number, and callers may ask for that horizon to be
// pushed out. The store only records the horizon, it never evicts.
type Storage interface {
	Get(key []byte) (bool, []byte)
	Put(key []byte, value []byte)
	Delete(key []byte)
	Has(key []byte) bool

	// SetSequence tells the store the current ledger sequence number,
	// against which ExtendTTL thresholds are evaluated.
	SetSequence(seq uint64)
	// ExtendTTL bumps the entry's live-until horizon to seq+bump, but only
	// when fewer than threshold ledgers of lifetime remain.
	ExtendTTL(key []byte, threshold uint64, bump uint64)
	// LiveUntil reports the recorded lifetime horizon for an entry.
	LiveUntil(key []byte) (uint64, bool)

	Snapshot() int
	RevertToSnapshot(id int)
	Finalise() error
	Close() error
}

// backend is the durable half of a store: it only sees committed batches.
type backend interface {
	get(key []byte) (bool, []byte, error)
	apply(puts map[string][]byte, deletes map[string]struct{}) error
	close() error
}

type journalEntry struct {
	key     string
	wasSet  bool
	prev    []byte
	wasDel  bool
}

type store struct {
	backend backend
	seq     uint64

	pending    map[string][]byte
	pendingDel map[string]struct{}
	journal    []journalEntry

	closed bool
}

func newStore(b backend) *store {
	return &store{
		backend:    b,
		pending:    make(map[string][]byte),
		pendingDel: make(map[string]struct{}),
	}
}

func (s *store) Get(key []byte) (bool, []byte) {
	k := string(key)
	if _, ok := s.pendingDel[k]; ok {
		return false, nil
	}
	if v, ok := s.pending[k]; ok {
		return true, v
	}
	ok, v, err := s.backend.get(key)
	if err != nil {
		panic(errors.Wrapf(err, "storage get key[%s]", k))
	}
	return ok, v
}

func (s *store) Put(key []byte, value []byte) {
	k := string(key)
	s.journalize(k)
	delete(s.pendingDel, k)
	buf := make([]byte, len(value))
	copy(buf, value)
	s.pending[k] = buf
}

func (s *store) Delete(key []byte) {
	k := string(key)
	s.journalize(k)
	delete(s.pending, k)
	s.pendingDel[k] = struct{}{}
}

func (s *store) Has(key []byte) bool {
	ok, _ := s.Get(key)
	return ok
}

func (s *store) SetSequence(seq uint64) {
	s.seq = seq
}

func (s *store) ExtendTTL(key []byte, threshold uint64, bump uint64) {
	if !s.Has(key) {
		return
	}
	liveUntil, ok := s.LiveUntil(key)
	if ok && liveUntil > s.seq && liveUntil-s.seq >= threshold {
		return
	}
	horizon := make([]byte, 8)
	binary.BigEndian.PutUint64(horizon, s.seq+bump)
	s.Put(ttlKey(key), horizon)
}

func (s *store) LiveUntil(key []byte) (uint64, bool) {
	ok, v := s.Get(ttlKey(key))
	if !ok || len(v) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(v), true
}

func (s *store) Snapshot() int {
	return len(s.journal)
}

func (s *store) RevertToSnapshot(id int) {
	if id < 0 || id > len(s.journal) {
		panic(errors.Errorf("revert to invalid storage snapshot %d", id))
	}
	for i := len(s.journal) - 1; i >= id; i-- {
		entry := s.journal[i]
		delete(s.pending, entry.key)
		delete(s.pendingDel, entry.key)
		if entry.wasSet {
			s.pending[entry.key] = entry.prev
		}
		if entry.wasDel {
			s.pendingDel[entry.key] = struct{}{}
		}
	}
	s.journal = s.journal[:id]
}

func (s *store) Finalise() error {
	if s.closed {
		return ErrStorageClosed
	}
	if err := s.backend.apply(s.pending, s.pendingDel); err != nil {
		return errors.Wrap(err, "storage finalise")
	}
	s.pending = make(map[string][]byte)
	s.pendingDel = make(map[string]struct{})
	s.journal = s.journal[:0]
	return nil
}

func (s *store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.close()
}

func (s *store) journalize(k string) {
	entry := journalEntry{key: k}
	if v, ok := s.pending[k]; ok {
		entry.wasSet = true
		entry.prev = v
	}
	if _, ok := s.pendingDel[k]; ok {
		entry.wasDel = true
	}
	s.journal = append(s.journal, entry)
}

func ttlKey(key []byte) []byte {
	return append([]byte(ttlKeyPrefix), key...)
}
