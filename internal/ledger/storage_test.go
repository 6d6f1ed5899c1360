package ledger

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	s := NewMemory()

	ok, _ := s.Get([]byte("k"))
	require.False(t, ok)
	require.False(t, s.Has([]byte("k")))

	s.Put([]byte("k"), []byte("v"))
	ok, v := s.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)

	s.Delete([]byte("k"))
	require.False(t, s.Has([]byte("k")))

	require.Nil(t, s.Finalise())
	require.False(t, s.Has([]byte("k")))
}

func TestStoreSnapshotRevert(t *testing.T) {
	s := NewMemory()
	s.Put([]byte("a"), []byte("1"))
	require.Nil(t, s.Finalise())

	snapshot := s.Snapshot()
	s.Put([]byte("a"), []byte("2"))
	s.Put([]byte("b"), []byte("3"))
	s.Delete([]byte("a"))

	s.RevertToSnapshot(snapshot)

	ok, v := s.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)
	require.False(t, s.Has([]byte("b")))
}

func TestStoreNestedSnapshots(t *testing.T) {
	s := NewMemory()

	first := s.Snapshot()
	s.Put([]byte("x"), []byte("1"))

	second := s.Snapshot()
	s.Put([]byte("x"), []byte("2"))
	s.Put([]byte("y"), []byte("1"))

	s.RevertToSnapshot(second)
	ok, v := s.Get([]byte("x"))
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)
	require.False(t, s.Has([]byte("y")))

	s.RevertToSnapshot(first)
	require.False(t, s.Has([]byte("x")))
}

func TestStoreFinaliseCommits(t *testing.T) {
	backend := &memoryBackend{data: make(map[string][]byte)}
	s := newStore(backend)

	s.Put([]byte("k"), []byte("v"))
	_, stagedInBackend, err := backend.get([]byte("k"))
	require.Nil(t, err)
	require.Nil(t, stagedInBackend)

	require.Nil(t, s.Finalise())
	ok, v, err := backend.get([]byte("k"))
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)

	// reverting after finalise must not resurrect anything
	s.RevertToSnapshot(0)
	ok, _ = s.Get([]byte("k"))
	require.True(t, ok)
}

func TestStoreExtendTTL(t *testing.T) {
	s := NewMemory()
	s.SetSequence(100)

	// no entry, no horizon
	s.ExtendTTL([]byte("k"), 10, 50)
	_, ok := s.LiveUntil([]byte("k"))
	require.False(t, ok)

	s.Put([]byte("k"), []byte("v"))
	s.ExtendTTL([]byte("k"), 10, 50)
	liveUntil, ok := s.LiveUntil([]byte("k"))
	require.True(t, ok)
	require.Equal(t, uint64(150), liveUntil)

	// plenty of lifetime left, bump is a no-op
	s.SetSequence(110)
	s.ExtendTTL([]byte("k"), 10, 100)
	liveUntil, _ = s.LiveUntil([]byte("k"))
	require.Equal(t, uint64(150), liveUntil)

	// under the threshold, horizon moves out
	s.SetSequence(145)
	s.ExtendTTL([]byte("k"), 10, 100)
	liveUntil, _ = s.LiveUntil([]byte("k"))
	require.Equal(t, uint64(245), liveUntil)
}

func TestLeveldbRoundTrip(t *testing.T) {
	path := t.TempDir()
	s, err := NewLeveldb(path)
	require.Nil(t, err)

	s.Put([]byte("k"), []byte("v"))
	require.Nil(t, s.Finalise())
	require.Nil(t, s.Close())

	reopened, err := NewLeveldb(path)
	require.Nil(t, err)
	defer reopened.Close()

	ok, v := reopened.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)
}

func TestCachedStorage(t *testing.T) {
	s := NewCachedStorage(NewMemory(), 1)

	s.Put([]byte("k"), []byte("v"))
	ok, v := s.Get([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)

	s.Delete([]byte("k"))
	require.False(t, s.Has([]byte("k")))

	// a revert must not leave stale values in the cache
	snapshot := s.Snapshot()
	s.Put([]byte("k"), []byte("v2"))
	ok, _ = s.Get([]byte("k"))
	require.True(t, ok)
	s.RevertToSnapshot(snapshot)
	require.False(t, s.Has([]byte("k")))
}

func TestStateAccountKeyIsolation(t *testing.T) {
	store := NewMemory()
	a := NewStateAccount(store, ethcommon.HexToAddress("0x0000000000000000000000000000000000001002"))
	b := NewStateAccount(store, ethcommon.HexToAddress("0x0000000000000000000000000000000000001003"))

	a.SetState([]byte("k"), []byte("va"))
	require.False(t, b.HasState([]byte("k")))

	b.SetState([]byte("k"), []byte("vb"))
	ok, v := a.GetState([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("va"), v)

	a.RemoveState([]byte("k"))
	require.False(t, a.HasState([]byte("k")))
	require.True(t, b.HasState([]byte("k")))
}
