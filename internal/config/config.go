// Package config resolves multitran settings from flags, environment
// variables and the optional YAML config file through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultProvider    = "gtranslate"
	DefaultHistoryFile = "translation_history.json"
	DefaultExitKeyword = "exit"
	DefaultWhitespace  = "reject"
)

var providers = []string{"gtranslate", "google", "mymemory", "ollama", "openrouter"}

type Config struct {
	Languages   []string
	HistoryFile string
	Provider    string
	Source      string
	Workers     int
	Whitespace  string
	ExitKeyword string

	Cache      CacheConfig
	Breaker    BreakerConfig
	Google     GoogleConfig
	MyMemory   MyMemoryConfig
	Ollama     OllamaConfig
	OpenRouter OpenRouterConfig
}

type CacheConfig struct {
	// DB is the sqlite translation memory path. Empty disables the cache.
	DB string
}

type BreakerConfig struct {
	Enabled     bool
	MaxFailures uint32
	Timeout     time.Duration
}

type GoogleConfig struct {
	Credentials string
	Project     string
}

type MyMemoryConfig struct {
	Email  string
	Detect bool
	// DetectLanguages limits source detection to these codes. Empty means
	// every language the detector knows.
	DetectLanguages []string
}

type OllamaConfig struct {
	URL    string
	Models []string
}

type OpenRouterConfig struct {
	Key    string
	URL    string
	Models []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("history_file", DefaultHistoryFile)
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("source", "auto")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("whitespace", DefaultWhitespace)
	v.SetDefault("exit_keyword", DefaultExitKeyword)
	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("ollama.url", "http://localhost:11434")
}

// Init points v at the config file and the MULTITRAN_ environment. When
// cfgFile is empty $HOME/.multitran.yaml is used if it exists.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".multitran")
	}

	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("MULTITRAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from v without validating it.
func Load(v *viper.Viper) *Config {
	return &Config{
		Languages:   languagesFrom(v, "languages"),
		HistoryFile: expandHome(v.GetString("history_file")),
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("provider"))),
		Source:      strings.ToLower(strings.TrimSpace(v.GetString("source"))),
		Workers:     v.GetInt("workers"),
		Whitespace:  strings.ToLower(strings.TrimSpace(v.GetString("whitespace"))),
		ExitKeyword: v.GetString("exit_keyword"),
		Cache: CacheConfig{
			DB: expandHome(v.GetString("cache.db")),
		},
		Breaker: BreakerConfig{
			Enabled:     v.GetBool("breaker.enabled"),
			MaxFailures: v.GetUint32("breaker.max_failures"),
			Timeout:     v.GetDuration("breaker.timeout"),
		},
		Google: GoogleConfig{
			Credentials: expandHome(v.GetString("google.credentials")),
			Project:     v.GetString("google.project"),
		},
		MyMemory: MyMemoryConfig{
			Email:           v.GetString("mymemory.email"),
			Detect:          v.GetBool("mymemory.detect"),
			DetectLanguages: languagesFrom(v, "mymemory.detect_languages"),
		},
		Ollama: OllamaConfig{
			URL:    v.GetString("ollama.url"),
			Models: v.GetStringSlice("ollama.models"),
		},
		OpenRouter: OpenRouterConfig{
			Key:    v.GetString("openrouter.key"),
			URL:    v.GetString("openrouter.url"),
			Models: v.GetStringSlice("openrouter.models"),
		},
	}
}

// Validate checks the settings needed to start a translate session.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one target language is required")
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("history file must not be empty")
	}
	switch c.Whitespace {
	case "reject", "accept":
	default:
		return fmt.Errorf("invalid whitespace policy %q (want reject or accept)", c.Whitespace)
	}
	if !isProvider(c.Provider) {
		return fmt.Errorf("unknown provider %q (want one of %s)", c.Provider, strings.Join(providers, ", "))
	}
	if strings.TrimSpace(c.ExitKeyword) == "" {
		return fmt.Errorf("exit keyword must not be empty")
	}
	return nil
}

// ParseLanguages splits a comma-separated list of language codes. Codes are
// trimmed and lowercased; empty items are dropped. Order and duplicates are
// kept as given.
func ParseLanguages(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		code := strings.ToLower(strings.TrimSpace(part))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// languagesFrom accepts both a YAML list and a comma-separated string.
func languagesFrom(v *viper.Viper, key string) []string {
	var codes []string
	for _, item := range v.GetStringSlice(key) {
		codes = append(codes, ParseLanguages(item)...)
	}
	return codes
}

func isProvider(name string) bool {
	for _, p := range providers {
		if p == name {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
