package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. HANZI_STORAGE_DRIVER for storage.driver.
const EnvPrefix = "HANZI"

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":      "log.level",
	"log-file":       "log.file",
	"storage-driver": "storage.driver",
	"storage-path":   "storage.path",
	"storage-url":    "storage.url",
	"cedict":         "lexicon.cedict_path",
	"hsk":            "lexicon.hsk_path",
	"chise":          "lexicon.chise_path",
	"color":          "ui.color",
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.String("storage-driver", "", "deck store (file, sqlite, postgres)")
	fs.String("storage-path", "", "deck file for the file and sqlite drivers")
	fs.String("storage-url", "", "postgres connection URL")
	fs.String("cedict", "", "path to the CC-CEDICT dictionary")
	fs.String("hsk", "", "path to the HSK vocabulary list")
	fs.String("chise", "", "path to the CHISE IDS decomposition data")
	fs.String("color", "", "prompt colour (auto, always, never)")
}

// Load configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence.
// flags may be nil. Returns a populated Config struct or an error if
// loading/validation fails.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := expandPaths(&cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "~/.character_trainer.yaml")
	v.SetDefault("storage.url", "")
	v.SetDefault("storage.owner", "default")
	v.SetDefault("lexicon.cedict_path", "")
	v.SetDefault("lexicon.hsk_path", "")
	v.SetDefault("lexicon.chise_path", "")
	v.SetDefault("session.sample_size", 10)
	v.SetDefault("srs.min_ease_factor", 0)
	v.SetDefault("srs.max_ease_factor", 0)
	v.SetDefault("srs.again_review_minutes", 0)
	v.SetDefault("srs.first_review_good_interval", 0)
	v.SetDefault("ui.color", "auto")
}

// readConfigFile loads the file named by --config, which must exist, or else
// looks for config.yaml in ~/.config/scry-hanzi and the working directory.
func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	var explicit string
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}

	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "scry-hanzi"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func expandPaths(cfg *Config) error {
	for _, p := range []*string{
		&cfg.Log.File,
		&cfg.Storage.Path,
		&cfg.Lexicon.CEDICTPath,
		&cfg.Lexicon.HSKPath,
		&cfg.Lexicon.CHISEPath,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
