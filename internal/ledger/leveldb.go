package ledger

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

type leveldbBackend struct {
	db *leveldb.DB
}

// NewLeveldb opens (or creates) a leveldb-backed Storage at the given path.
func NewLeveldb(path string) (Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb at %s", path)
	}
	return newStore(&leveldbBackend{db: db}), nil
}

func (l *leveldbBackend) get(key []byte) (bool, []byte, error) {
	v, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, v, nil
}

func (l *leveldbBackend) apply(puts map[string][]byte, deletes map[string]struct{}) error {
	batch := new(leveldb.Batch)
	for k, v := range puts {
		batch.Put([]byte(k), v)
	}
	for k := range deletes {
		batch.Delete([]byte(k))
	}
	return l.db.Write(batch, nil)
}

func (l *leveldbBackend) close() error {
	return l.db.Close()
}
