package main

import (
	"encoding/binary"
	"math/big"
	"os"
	"path/filepath"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-token/internal/ledger"
	"github.com/axiomesh/axiom-token/pkg/loggers"
	"github.com/axiomesh/axiom-token/pkg/repo"
)

// latestSequenceKey tracks the host-side ledger sequence number. Every CLI
// invocation is one host call, so each mutating command advances it by one,
// whether or not the operation itself succeeds.
var latestSequenceKey = []byte("latestLedgerSequence")

func loadRepo(ctx *cli.Context) (*repo.Repo, error) {
	repoRoot := ctx.String("repo")
	if repoRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		repoRoot = filepath.Join(home, ".axiom-token")
	}
	rep, err := repo.Load(repoRoot)
	if err != nil {
		return nil, err
	}
	if err := loggers.Initialize(map[string]string{
		loggers.App:      rep.Config.Log.Module.App,
		loggers.Token:    rep.Config.Log.Module.Token,
		loggers.Executor: rep.Config.Log.Module.Executor,
		loggers.Storage:  rep.Config.Log.Module.Storage,
	}); err != nil {
		return nil, err
	}
	return rep, nil
}

func openStorage(rep *repo.Repo) (ledger.Storage, error) {
	var store ledger.Storage
	switch rep.Config.Storage.KvType {
	case repo.KVStorageTypeMemory:
		store = ledger.NewMemory()
	case repo.KVStorageTypeLeveldb:
		s, err := ledger.NewLeveldb(rep.StoragePath())
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, errors.Errorf("unknown kv_type %q", rep.Config.Storage.KvType)
	}
	return ledger.NewCachedStorage(store, rep.Config.Storage.CacheMegabytesLimit), nil
}

// nextSequence reads, advances and persists the host sequence counter.
func nextSequence(store ledger.Storage) (uint64, error) {
	var seq uint64
	if ok, raw := store.Get(latestSequenceKey); ok && len(raw) == 8 {
		seq = binary.BigEndian.Uint64(raw)
	}
	seq++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	store.Put(latestSequenceKey, buf)
	if err := store.Finalise(); err != nil {
		return 0, err
	}
	return seq, nil
}

func currentSequence(store ledger.Storage) uint64 {
	if ok, raw := store.Get(latestSequenceKey); ok && len(raw) == 8 {
		return binary.BigEndian.Uint64(raw)
	}
	return 0
}

func parseAmount(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, errors.Errorf("invalid amount %q, expect a decimal integer", raw)
	}
	return v, nil
}

func parseAddress(raw string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(raw) {
		return ethcommon.Address{}, errors.Errorf("invalid address %q", raw)
	}
	return ethcommon.HexToAddress(raw), nil
}
