package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/coolbeans/mpnclass/pkg/batch"
	"github.com/coolbeans/mpnclass/pkg/manufacturer"
	"github.com/coolbeans/mpnclass/pkg/pattern"
	"github.com/coolbeans/mpnclass/pkg/ruleset"
)

// Config is the CLI configuration after defaults, file, environment and flags
// have been merged.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Output   string      `mapstructure:"output"`
	RulesDir string      `mapstructure:"rules_dir"`
	Batch    BatchConfig `mapstructure:"batch"`
}

type BatchConfig struct {
	Workers  int           `mapstructure:"workers"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

const envPrefix = "MPNCLASS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("output", "text")
	v.SetDefault("rules_dir", "")
	v.SetDefault("batch.workers", batch.DefaultWorkers)
	v.SetDefault("batch.cache_ttl", batch.DefaultCacheTTL)
}

// loadConfig merges the optional .env file, the config file and MPNCLASS_*
// environment variables into v. A missing default config file is not an
// error; a missing explicit one is.
func loadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	_ = godotenv.Load()

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mpnclass"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Output {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("output must be text or json, got %q", cfg.Output)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildDirectory returns the bundled directory, with rule files from dir
// replacing the embedded ones of the same id.
func buildDirectory(dir string, logger *slog.Logger) (*manufacturer.Directory, error) {
	entries := manufacturer.Catalog()
	if dir != "" {
		files, err := pattern.LoadDirectory(dir)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*pattern.RuleFile, len(files))
		for _, rf := range files {
			byID[rf.ID] = rf
		}
		for i, e := range entries {
			rf, ok := byID[string(e.ID)]
			if !ok {
				continue
			}
			entries[i].New = func() (ruleset.RuleSet, error) { return ruleset.FromRuleFile(rf), nil }
			delete(byID, rf.ID)
			logger.Info("using rule file override", "manufacturer", e.ID, "dir", dir)
		}
		for id := range byID {
			logger.Warn("rule file has no catalog entry", "id", id, "dir", dir)
		}
	}
	return manufacturer.NewDirectory(entries, manufacturer.WithLogger(logger))
}
