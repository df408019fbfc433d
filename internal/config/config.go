// Package config resolves bookkeeper settings from defaults, an optional
// JSONC file, environment variables and command-line flags, in that order.
package config

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tailscale/hujson"
)

const (
	defaultDataDir       = "data"
	defaultInventoryFile = "bookKeeper_bookList.txt"
	defaultLoansFile     = "bookKeeper_loanList.txt"
	defaultHistoryFile   = "history.db"
	defaultLogFile       = "bookkeeper.log"

	// DefaultFile is looked up inside the data directory when no --config
	// flag is given.
	DefaultFile = "bookkeeper.jsonc"
)

var (
	ErrConfigFileRead = errors.New("cannot read config file")
	ErrConfigInvalid  = errors.New("invalid config")
)

// Config is the resolved configuration. File names are relative to DataDir
// unless absolute.
type Config struct {
	DataDir       string `json:"data_dir"`
	InventoryFile string `json:"inventory_file"`
	LoansFile     string `json:"loans_file"`
	HistoryFile   string `json:"history_file"`
	LogFile       string `json:"log_file"`
	History       *bool  `json:"history"`
	Debug         bool   `json:"debug"`
}

// Overrides are values set on the command line. Empty strings and nil
// pointers leave the lower layers alone.
type Overrides struct {
	DataDir    string
	ConfigPath string
	Debug      *bool
	History    *bool
}

// Default returns the built-in configuration.
func Default() Config {
	on := true
	return Config{
		DataDir:       defaultDataDir,
		InventoryFile: defaultInventoryFile,
		LoansFile:     defaultLoansFile,
		HistoryFile:   defaultHistoryFile,
		LogFile:       defaultLogFile,
		History:       &on,
	}
}

// Load layers defaults, the config file, env and overrides. A missing
// config file is only an error when it was named explicitly.
func Load(o Overrides, env map[string]string) (Config, error) {
	cfg := Default()

	dataDir := cmp.Or(o.DataDir, env["BOOKKEEPER_DATA_DIR"], cfg.DataDir)
	path, mustExist := o.ConfigPath, true
	if path == "" {
		path, mustExist = filepath.Join(dataDir, DefaultFile), false
	}
	fileCfg, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	cfg = merge(cfg, fileCfg)

	cfg.DataDir = cmp.Or(o.DataDir, env["BOOKKEEPER_DATA_DIR"], cfg.DataDir)
	if v, ok := env["BOOKKEEPER_DEBUG"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}
	if o.History != nil {
		cfg.History = o.History
	}
	return cfg, nil
}

// HistoryEnabled reports whether the loan journal should be opened.
func (c Config) HistoryEnabled() bool { return c.History == nil || *c.History }

func (c Config) InventoryPath() string { return c.resolve(c.InventoryFile) }
func (c Config) LoansPath() string     { return c.resolve(c.LoansFile) }
func (c Config) HistoryPath() string   { return c.resolve(c.HistoryFile) }
func (c Config) LogPath() string       { return c.resolve(c.LogFile) }

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func loadFile(path string, mustExist bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, file Config) Config {
	base.DataDir = cmp.Or(file.DataDir, base.DataDir)
	base.InventoryFile = cmp.Or(file.InventoryFile, base.InventoryFile)
	base.LoansFile = cmp.Or(file.LoansFile, base.LoansFile)
	base.HistoryFile = cmp.Or(file.HistoryFile, base.HistoryFile)
	base.LogFile = cmp.Or(file.LogFile, base.LogFile)
	if file.History != nil {
		base.History = file.History
	}
	base.Debug = base.Debug || file.Debug
	return base
}
