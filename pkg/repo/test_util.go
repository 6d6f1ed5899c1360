package repo

import (
	"testing"
)

// MockRepo builds a throwaway repo rooted in a temp dir, memory-backed.
func MockRepo(t testing.TB) *Repo {
	t.Helper()
	rep := Default(t.TempDir())
	rep.Config.Storage.KvType = KVStorageTypeMemory
	return rep
}
