package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/huddleai/huddle/pkg/secrets"
)

// Analysis provider names. Unknown values fall back to mock at dispatch
// time; Validate rejects them up front.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Validation errors.
var (
	ErrMissingUsername = errors.New("sleeper username is required")
	ErrMissingAPIKey   = errors.New("api key is required for this provider")
	ErrInvalidProvider = errors.New("invalid analysis provider")
	ErrNotConfigured   = errors.New("no configuration found, run 'huddle config set' first")
)

// Config is the credential record persisted encrypted at rest. It is held
// decrypted only in process memory for the session.
type Config struct {
	Provider       string `yaml:"provider"`
	APIKey         string `yaml:"api_key"`
	Username       string `yaml:"username"`
	FantasyProsKey string `yaml:"fantasypros_api_key"`
	Season         string `yaml:"season"`
	CacheEnabled   bool   `yaml:"cache_enabled"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Provider:       ProviderMock,
		Season:         strconv.Itoa(time.Now().Year()),
		CacheEnabled:   true,
		CacheTTLHours:  24,
		MaxRetries:     3,
		TimeoutSeconds: 30,
		LogLevel:       "INFO",
	}
}

// Validate checks required fields. An API key is required only for the
// hosted providers.
func (c *Config) Validate() error {
	if c.Username == "" {
		return ErrMissingUsername
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("%w: %s", ErrMissingAPIKey, c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}
	return nil
}

// CacheTTL returns the configured cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// Timeout returns the configured request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Manager persists the Config as a single password-encrypted blob inside a
// configuration directory it owns.
type Manager struct {
	dir   string
	store *secrets.Store
}

const configFile = "config.enc"

// DefaultDir returns the per-user configuration directory (~/.huddle).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".huddle"), nil
}

// NewManager creates a Manager rooted at dir, creating the directory if
// needed. An empty dir selects DefaultDir.
func NewManager(dir string, store *secrets.Store) (*Manager, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if store == nil {
		store = secrets.New()
	}
	return &Manager{dir: dir, store: store}, nil
}

// Dir returns the configuration directory.
func (m *Manager) Dir() string { return m.dir }

// Path returns the encrypted config file path.
func (m *Manager) Path() string { return filepath.Join(m.dir, configFile) }

// CachePath returns the cache database path inside the config dir.
func (m *Manager) CachePath() string { return filepath.Join(m.dir, "cache.db") }

// HistoryPath returns the analysis history database path.
func (m *Manager) HistoryPath() string { return filepath.Join(m.dir, "history.db") }

// Exists reports whether a configuration file is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.Path())
	return err == nil
}

// Save validates, serializes, encrypts and atomically replaces the config
// file. A reader never sees the file mid-write.
func (m *Manager) Save(cfg *Config, password string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	plaintext, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	blob, err := m.store.Encrypt(plaintext, password)
	if err != nil {
		return fmt.Errorf("encrypt config: %w", err)
	}

	tmp := m.Path() + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, m.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Load decrypts and parses the config file. A wrong password surfaces as
// secrets.ErrInvalidPassword.
func (m *Manager) Load(password string) (*Config, error) {
	blob, err := os.ReadFile(m.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	plaintext, err := m.store.Decrypt(blob, password)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(plaintext, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// VerifyPassword reports whether the password opens the stored config.
func (m *Manager) VerifyPassword(password string) bool {
	blob, err := os.ReadFile(m.Path())
	if err != nil {
		return false
	}
	return m.store.VerifyPassword(blob, password)
}

// Delete removes the configuration file. Deleting a missing file is not an
// error.
func (m *Manager) Delete() error {
	if err := os.Remove(m.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete config: %w", err)
	}
	return nil
}
