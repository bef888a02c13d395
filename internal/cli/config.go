package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "gcvec"
	configFileType = "yaml"
	envPrefix      = "GCVEC"
	envConfigDir   = "GCVEC_CONFIG_DIR"

	cfgKeyAllocator = "allocator"
	cfgKeyBudget    = "budget"
	cfgKeyCount     = "count"
	cfgKeyValue     = "value"
	cfgKeyLogLevel  = "log_level"

	allocatorHeap = "heap"
	allocatorMmap = "mmap"

	defaultAllocator = allocatorHeap
	defaultBudget    = "0"
	defaultCount     = 100000
	defaultValue     = 45
	defaultLogLevel  = "warn"
)

// config is the resolved set of knobs for one run.
type config struct {
	Allocator string
	Budget    uint64 // bytes, 0 is unlimited
	Count     uint
	Value     int64
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyAllocator, defaultAllocator)
	v.SetDefault(cfgKeyBudget, defaultBudget)
	v.SetDefault(cfgKeyCount, defaultCount)
	v.SetDefault(cfgKeyValue, defaultValue)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// resolveConfigDir returns the config directory from flag, env or default.
func resolveConfigDir(flag string) string {
	if flag != "" {
		return flag
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir
	}
	return "."
}

// loadConfig reads gcvec.yaml from dir. A missing file is not an error.
func loadConfig(v *viper.Viper, dir string) error {
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}
	return nil
}

// bindFlags binds each named flag of fs to the config key of the same name,
// with dashes turned into underscores. Commands bind when they run: keys are
// shared between subcommands and the last binding wins.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

// readConfig validates the merged flag, env and file values.
func readConfig(v *viper.Viper) (config, error) {
	cfg := config{Allocator: strings.ToLower(v.GetString(cfgKeyAllocator))}

	switch cfg.Allocator {
	case allocatorHeap, allocatorMmap:
	default:
		return config{}, fmt.Errorf("unknown allocator %q (want %s or %s)", cfg.Allocator, allocatorHeap, allocatorMmap)
	}

	// viper's typed getters swallow conversion errors; cast reports them
	count, err := cast.ToInt64E(v.Get(cfgKeyCount))
	if err != nil {
		return config{}, fmt.Errorf("count: %w", err)
	}
	if count < 0 {
		return config{}, fmt.Errorf("count must not be negative, got %d", count)
	}
	cfg.Count = uint(count)

	if cfg.Value, err = cast.ToInt64E(v.Get(cfgKeyValue)); err != nil {
		return config{}, fmt.Errorf("value: %w", err)
	}

	budget, err := humanize.ParseBytes(v.GetString(cfgKeyBudget))
	if err != nil {
		return config{}, fmt.Errorf("budget: %w", err)
	}
	cfg.Budget = budget

	return cfg, nil
}
