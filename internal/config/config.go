// Package config resolves board settings from, in increasing priority:
// built-in defaults, the TOML config file, BOARD_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"progress-board/internal/logging"
	"progress-board/internal/statusutil"
	"progress-board/internal/store"
)

const (
	FileName           = "config.toml"
	DefaultOutline     = "themes.txt"
	DefaultPage        = "football"
	envConfigDir       = "BOARD_CONFIG_DIR"
	defaultDirBasename = ".board"
)

type Config struct {
	Sources Sources `toml:"sources" json:"sources" yaml:"sources"`
	Storage Storage `toml:"storage" json:"storage" yaml:"storage"`
	Remote  Remote  `toml:"remote" json:"remote" yaml:"remote"`
	UI      UI      `toml:"ui" json:"ui" yaml:"ui"`
	Log     Log     `toml:"log" json:"log" yaml:"log"`

	// File is the config file that was read, "" when none existed.
	File string `toml:"-" json:"file" yaml:"file"`
	// Dir is the config directory; state lives here unless storage.dir is set.
	Dir string `toml:"-" json:"dir" yaml:"dir"`
}

type Sources struct {
	Outline string `toml:"outline" json:"outline" yaml:"outline"`
	Content string `toml:"content" json:"content" yaml:"content"`
}

type Storage struct {
	Backend   string `toml:"backend" json:"backend" yaml:"backend"`
	Dir       string `toml:"dir" json:"dir" yaml:"dir"`
	Namespace string `toml:"namespace" json:"namespace" yaml:"namespace"`
}

type Remote struct {
	BaseURL     string `toml:"base_url" json:"base_url" yaml:"base_url"`
	APIKey      string `toml:"api_key" json:"-" yaml:"-"`
	DefaultPage string `toml:"default_page" json:"default_page" yaml:"default_page"`
}

type UI struct {
	Locale string `toml:"locale" json:"locale" yaml:"locale"`
	Watch  bool   `toml:"watch" json:"watch" yaml:"watch"`
}

type Log struct {
	Level string `toml:"level" json:"level" yaml:"level"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Sources: Sources{Outline: DefaultOutline},
		Storage: Storage{Backend: store.BackendFile, Namespace: store.DefaultNamespace},
		Remote:  Remote{DefaultPage: DefaultPage},
		UI:      UI{Locale: statusutil.LocaleFR, Watch: true},
		Log:     Log{Level: logging.DefaultLevel},
	}
}

// ConfigDir returns $BOARD_CONFIG_DIR, or ~/.board.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(envConfigDir)); v != "" {
		return expandPath(v), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultDirBasename), nil
}

// Load applies defaults, then the config file, then the environment. An
// explicit path must exist; the default config file may be absent.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	dir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}
	cfg.Dir = dir

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	loadFromEnv(&cfg)
	cfg.finalize()
	return &cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("BOARD_OUTLINE"); v != "" {
		cfg.Sources.Outline = v
	}
	if v := os.Getenv("BOARD_CONTENT"); v != "" {
		cfg.Sources.Content = v
	}
	if v := os.Getenv("BOARD_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("BOARD_STATE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("BOARD_NAMESPACE"); v != "" {
		cfg.Storage.Namespace = v
	}
	if v := os.Getenv("BOARD_REMOTE_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv("BOARD_REMOTE_KEY"); v != "" {
		cfg.Remote.APIKey = v
	}
	if v := os.Getenv("BOARD_LOCALE"); v != "" {
		cfg.UI.Locale = v
	}
	if v := os.Getenv("BOARD_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Watch = b
		}
	}
	if v := os.Getenv("BOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Overrides carries flag values; empty fields leave the config untouched.
type Overrides struct {
	Outline   string
	Content   string
	Backend   string
	StateDir  string
	Namespace string
	Locale    string
	LogLevel  string
}

func (c *Config) Apply(o Overrides) {
	if o.Outline != "" {
		c.Sources.Outline = o.Outline
	}
	if o.Content != "" {
		c.Sources.Content = o.Content
	}
	if o.Backend != "" {
		c.Storage.Backend = o.Backend
	}
	if o.StateDir != "" {
		c.Storage.Dir = o.StateDir
	}
	if o.Namespace != "" {
		c.Storage.Namespace = o.Namespace
	}
	if o.Locale != "" {
		c.UI.Locale = o.Locale
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	c.finalize()
}

func (c *Config) finalize() {
	c.Sources.Outline = strings.TrimSpace(c.Sources.Outline)
	c.Sources.Content = strings.TrimSpace(c.Sources.Content)
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.Namespace = strings.TrimSpace(c.Storage.Namespace)
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = store.DefaultNamespace
	}
	c.Storage.Dir = expandPath(strings.TrimSpace(c.Storage.Dir))
	c.UI.Locale = strings.ToLower(strings.TrimSpace(c.UI.Locale))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !isURLish(c.Sources.Outline) {
		c.Sources.Outline = expandPath(c.Sources.Outline)
	}
	if !isURLish(c.Sources.Content) {
		c.Sources.Content = expandPath(c.Sources.Content)
	}
}

// StateDir is where statuses, exports and the TUI log are written.
func (c *Config) StateDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return c.Dir
}

// Validate reports the first setting no component can use.
func (c *Config) Validate() error {
	if c.Sources.Outline == "" {
		return fmt.Errorf("invalid config: sources.outline is empty")
	}
	if !store.ValidBackend(c.Storage.Backend) {
		return fmt.Errorf("invalid config: storage.backend %q (want %s|%s)", c.Storage.Backend, store.BackendFile, store.BackendSQLite)
	}
	if !statusutil.ValidLocale(c.UI.Locale) {
		return fmt.Errorf("invalid config: ui.locale %q (want %s|%s)", c.UI.Locale, statusutil.LocaleFR, statusutil.LocaleEN)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid config: log.level %q", c.Log.Level)
	}
	if c.StateDir() == "" {
		return fmt.Errorf("invalid config: no state directory")
	}
	return nil
}

func isURLish(s string) bool {
	return strings.Contains(s, "://")
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
