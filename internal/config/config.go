package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/libra-ai/msgfilter/internal/logging"
	"github.com/libra-ai/msgfilter/internal/paths"
	"github.com/libra-ai/msgfilter/internal/transfer"
)

// TransferConfig controls how winning files are copied.
type TransferConfig struct {
	BufferSizeMB int `mapstructure:"buffer_size_mb"`
}

// Options converts the config into transfer options.
func (t TransferConfig) Options() transfer.Options {
	opts := transfer.DefaultOptions()
	if t.BufferSizeMB > 0 {
		opts.BufferSize = t.BufferSizeMB * 1024 * 1024
	}
	return opts
}

type Config struct {
	SourceDir string         `mapstructure:"source_dir"`
	TargetDir string         `mapstructure:"target_dir"`
	Logging   logging.Config `mapstructure:"logging"`
	Transfer  TransferConfig `mapstructure:"transfer"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		SourceDir: "",
		TargetDir: "",
		Logging:   logging.DefaultConfig(),
		Transfer: TransferConfig{
			BufferSizeMB: 4,
		},
	}
}

// Load loads configuration from the given file, or from the default
// location when path is empty. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configFile)
}

// SaveTo writes the configuration to the given path.
func (c *Config) SaveTo(configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	return os.WriteFile(configFile, []byte(c.ToTOML()), 0644)
}

func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

func ConfigExists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# msgfilter configuration
# Generated by: msgfilter config init

# Directory containing the incoming .msg report files
source_dir = %q

# Directory the deduplicated files are copied into
target_dir = %q

[logging]
# debug, info, warn, error
level = %q
# Log file path (empty = ~/.config/msgfilter/logs/msgfilter.log)
file = %q
max_size_mb = %d
max_backups = %d

[transfer]
buffer_size_mb = %d
`,
		c.SourceDir,
		c.TargetDir,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
		c.Transfer.BufferSizeMB,
	)
}
