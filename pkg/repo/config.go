package repo

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypeMemory  = "memory"
)

type Config struct {
	Log     Log     `mapstructure:"log" toml:"log"`
	Storage Storage `mapstructure:"storage" toml:"storage"`
	Genesis Genesis `mapstructure:"genesis" toml:"genesis"`
}

type Log struct {
	Level  string    `mapstructure:"level" toml:"level"`
	Module LogModule `mapstructure:"module" toml:"module"`
}

type LogModule struct {
	App      string `mapstructure:"app" toml:"app"`
	Token    string `mapstructure:"token" toml:"token"`
	Executor string `mapstructure:"executor" toml:"executor"`
	Storage  string `mapstructure:"storage" toml:"storage"`
}

type Storage struct {
	KvType              string `mapstructure:"kv_type" toml:"kv_type"`
	CacheMegabytesLimit int    `mapstructure:"cache_megabytes_limit" toml:"cache_megabytes_limit"`
}

// Genesis describes the token instance created by `axiom-token init`.
// MaxSupply and balances are decimal strings so the config survives values
// beyond 64 bits. An empty MaxSupply means uncapped. Accounts are optional
// initial holders, minted by the admin right after Initialize (the token
// must be mintable for that).
type Genesis struct {
	Admin     string     `mapstructure:"admin" toml:"admin"`
	Decimals  uint8      `mapstructure:"decimals" toml:"decimals"`
	Name      string     `mapstructure:"name" toml:"name"`
	Symbol    string     `mapstructure:"symbol" toml:"symbol"`
	MaxSupply string     `mapstructure:"max_supply" toml:"max_supply"`
	Mintable  bool       `mapstructure:"mintable" toml:"mintable"`
	Burnable  bool       `mapstructure:"burnable" toml:"burnable"`
	Freezable bool       `mapstructure:"freezable" toml:"freezable"`
	Accounts  []*Account `mapstructure:"accounts" toml:"accounts"`
}

type Account struct {
	Address string `mapstructure:"address" toml:"address"`
	Balance string `mapstructure:"balance" toml:"balance"`
}

func (g *Genesis) AdminAddress() ethcommon.Address {
	return ethcommon.HexToAddress(g.Admin)
}

// MaxSupplyBigInt returns nil for an empty (uncapped) max supply.
func (g *Genesis) MaxSupplyBigInt() (*big.Int, error) {
	if g.MaxSupply == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(g.MaxSupply, 10)
	if !ok {
		return nil, errors.Errorf("invalid max_supply %q", g.MaxSupply)
	}
	return v, nil
}

func (a *Account) BalanceBigInt() (*big.Int, error) {
	v, ok := new(big.Int).SetString(a.Balance, 10)
	if !ok {
		return nil, errors.Errorf("invalid balance %q for account %s", a.Balance, a.Address)
	}
	return v, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: Log{
			Level: "info",
			Module: LogModule{
				App:      "info",
				Token:    "info",
				Executor: "info",
				Storage:  "info",
			},
		},
		Storage: Storage{
			KvType:              KVStorageTypeLeveldb,
			CacheMegabytesLimit: 32,
		},
		Genesis: Genesis{
			Admin:     "0x1210000000000000000000000000000000000000",
			Decimals:  7,
			Name:      "Axiom Token",
			Symbol:    "AXT",
			MaxSupply: "",
			Mintable:  true,
			Burnable:  true,
			Freezable: true,
		},
	}
}
