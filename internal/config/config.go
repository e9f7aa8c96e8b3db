package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"shuttle/internal/domain"
	"shuttle/internal/eventbus"
)

// ErrConfigNotFound is returned by LoadFromPath when the file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Match modes for [search] match
const (
	MatchExact = "exact"
	MatchFold  = "fold"
)

// Config represents the application configuration
type Config struct {
	Version    int           `toml:"version"`
	Titles     []string      `toml:"titles"`
	TargetKeys []string      `toml:"target_keys"`
	Units      Units         `toml:"units"`
	Search     Search        `toml:"search"`
	List       ListSettings  `toml:"list"`
	UISettings UISettings    `toml:"ui"`
	Items      []domain.Item `toml:"items"`
}

// Units are the nouns shown after the item count in panel headers
type Units struct {
	Item  string `toml:"item"`
	Items string `toml:"items"`
}

// Search configures the per-panel search box
type Search struct {
	Enabled     bool   `toml:"enabled"`
	Placeholder string `toml:"placeholder"`
	NotFound    string `toml:"not_found"`
	Match       string `toml:"match"` // exact or fold
}

// ListSettings configures the row renderer
type ListSettings struct {
	Lazy    bool `toml:"lazy"`
	Height  int  `toml:"height"`
	Width   int  `toml:"width"`
	DeferMS int  `toml:"defer_ms"` // delay before deferred panel tasks run

	ShowDescription bool `toml:"show_description"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AutosaveOnExit bool `toml:"autosave_on_exit"`
	ShowFooter     bool `toml:"show_footer"`
}

// Defer returns the deferred-task delay as a duration
func (l ListSettings) Defer() time.Duration {
	return time.Duration(l.DeferMS) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "shuttle", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:       cs.filePath,
			ItemCount:  len(cfg.Items),
			TargetKeys: cfg.TargetKeys,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Parse decodes TOML config data and fills in defaults for missing fields
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	defaults := DefaultConfig()

	switch len(c.Titles) {
	case 0:
		c.Titles = defaults.Titles
	case 1:
		c.Titles = append(c.Titles, defaults.Titles[1])
	case 2:
	default:
		return fmt.Errorf("invalid config: titles must have at most 2 entries, got %d", len(c.Titles))
	}

	if c.Units.Item == "" {
		c.Units.Item = defaults.Units.Item
	}
	if c.Units.Items == "" {
		c.Units.Items = defaults.Units.Items
	}

	switch c.Search.Match {
	case "":
		c.Search.Match = MatchExact
	case MatchExact, MatchFold:
	default:
		return fmt.Errorf("invalid config: unknown search match mode %q", c.Search.Match)
	}

	if c.List.Height <= 0 {
		c.List.Height = defaults.List.Height
	}
	if c.List.Width <= 0 {
		c.List.Width = defaults.List.Width
	}
	if c.List.DeferMS < 0 {
		return fmt.Errorf("invalid config: list.defer_ms must not be negative")
	}

	seen := make(map[string]bool, len(c.Items))
	for _, item := range c.Items {
		if item.Key == "" {
			return fmt.Errorf("invalid config: item with empty key")
		}
		if seen[item.Key] {
			return fmt.Errorf("invalid config: duplicate item key %q", item.Key)
		}
		seen[item.Key] = true
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Titles:  []string{"Source", "Target"},
		Units: Units{
			Item:  "item",
			Items: "items",
		},
		Search: Search{
			Enabled:     true,
			Placeholder: "Search here",
			NotFound:    "Not Found",
			Match:       MatchExact,
		},
		List: ListSettings{
			Lazy:   true,
			Height: 12,
			Width:  34,
		},
		UISettings: UISettings{
			AutosaveOnExit: false,
			ShowFooter:     true,
		},
	}
}
