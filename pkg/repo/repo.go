package repo

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	AppName = "axiom-token"

	CfgFileName    = "config.toml"
	StorageDirName = "storage"
)

type Repo struct {
	RepoRoot string
	Config   *Config
}

// Default builds a repo with the default config, without touching disk.
func Default(repoRoot string) *Repo {
	return &Repo{
		RepoRoot: repoRoot,
		Config:   DefaultConfig(),
	}
}

// Load reads config.toml under repoRoot. A missing file yields the defaults,
// so a bare directory is a usable repo.
func Load(repoRoot string) (*Repo, error) {
	cfg := DefaultConfig()
	cfgPath := filepath.Join(repoRoot, CfgFileName)
	if fileExist(cfgPath) {
		raw, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", cfgPath)
		}
		if err := unmarshalConfig(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", cfgPath)
		}
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Repo{
		RepoRoot: repoRoot,
		Config:   cfg,
	}, nil
}

// Flush writes the current config back to config.toml.
func (r *Repo) Flush() error {
	if err := os.MkdirAll(r.RepoRoot, 0755); err != nil {
		return errors.Wrapf(err, "create repo dir %s", r.RepoRoot)
	}
	buf := new(bytes.Buffer)
	e := toml.NewEncoder(buf)
	e.SetIndentTables(true)
	if err := e.Encode(r.Config); err != nil {
		return errors.Wrap(err, "encode config")
	}
	cfgPath := filepath.Join(r.RepoRoot, CfgFileName)
	if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write config file %s", cfgPath)
	}
	return nil
}

func (r *Repo) StoragePath() string {
	return filepath.Join(r.RepoRoot, StorageDirName)
}

func unmarshalConfig(raw []byte, config *Config) error {
	vp := viper.New()
	vp.SetConfigType("toml")
	if err := vp.ReadConfig(bytes.NewBuffer(raw)); err != nil {
		return err
	}

	// viper alone does not do strong type checking
	decoder := toml.NewDecoder(bytes.NewBuffer(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&Config{}); err != nil {
		var decodeError *toml.DecodeError
		if errors.As(err, &decodeError) {
			return errors.New(decodeError.String())
		}
		return err
	}

	return vp.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
	})
}

func validateConfig(cfg *Config) error {
	if cfg.Genesis.Admin == "" {
		return errors.New("genesis admin is required")
	}
	if _, err := cfg.Genesis.MaxSupplyBigInt(); err != nil {
		return err
	}
	badAccounts := lo.Filter(cfg.Genesis.Accounts, func(account *Account, _ int) bool {
		_, err := account.BalanceBigInt()
		return err != nil
	})
	if len(badAccounts) != 0 {
		return errors.Errorf("genesis account %s has an invalid balance", badAccounts[0].Address)
	}
	switch cfg.Storage.KvType {
	case KVStorageTypeLeveldb, KVStorageTypeMemory:
	default:
		return errors.Errorf("unknown kv_type %q, expect leveldb or memory", cfg.Storage.KvType)
	}
	return nil
}

func fileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
