package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanschultz/sortboard/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultHTTPBind     = "127.0.0.1:5437"
	DefaultAPIEndpoint  = "/api/v1"
	DefaultMCPEndpoint  = "/mcp"
	DefaultLogLevel     = "info"
	DefaultDevLogDir    = ".sortboard/log"
	DefaultColumnWidth  = 24
	MinColumnWidth      = 12
	DefaultJournalLimit = 50
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Server   ServerConfig   `toml:"server"`
	Board    BoardConfig    `toml:"board"`
	UI       UIConfig       `toml:"ui"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type ServerConfig struct {
	HTTPBind    string `toml:"http_bind"`
	APIEndpoint string `toml:"api_endpoint"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

type BoardConfig struct {
	Journal    bool              `toml:"journal"`
	Containers []ContainerConfig `toml:"containers"`
}

type ContainerConfig struct {
	ID    string       `toml:"id"`
	Label string       `toml:"label"`
	Items []ItemConfig `toml:"items"`
}

type ItemConfig struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Body  string `toml:"body"`
	Style string `toml:"style"`
}

type UIConfig struct {
	ShowItemIDs   bool      `toml:"show_item_ids"`
	ShowStyleTags bool      `toml:"show_style_tags"`
	ColumnWidth   int       `toml:"column_width"`
	Mouse         bool      `toml:"mouse"`
	JournalLimit  int       `toml:"journal_limit"`
	Keys          KeyConfig `toml:"keys"`
}

// KeyConfig overrides single TUI bindings. Blank fields keep the built-in key.
type KeyConfig struct {
	PickUp  string `toml:"pick_up"`
	Journal string `toml:"journal"`
	CopyID  string `toml:"copy_id"`
	Reset   string `toml:"reset"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     DefaultDevLogDir,
			},
		},
		Server: ServerConfig{
			HTTPBind:    DefaultHTTPBind,
			APIEndpoint: DefaultAPIEndpoint,
			MCPEndpoint: DefaultMCPEndpoint,
		},
		Board: BoardConfig{
			Journal: true,
		},
		UI: UIConfig{
			ShowItemIDs:   true,
			ShowStyleTags: false,
			ColumnWidth:   DefaultColumnWidth,
			Mouse:         true,
			JournalLimit:  DefaultJournalLimit,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when dev_file is enabled")
	}

	for name, endpoint := range map[string]string{
		"server.api_endpoint": c.Server.APIEndpoint,
		"server.mcp_endpoint": c.Server.MCPEndpoint,
	} {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s must start with /: %q", name, endpoint)
		}
	}

	if c.UI.ColumnWidth != 0 && c.UI.ColumnWidth < MinColumnWidth {
		return fmt.Errorf("ui.column_width must be >= %d", MinColumnWidth)
	}

	if c.UI.JournalLimit < 0 {
		return errors.New("ui.journal_limit must be >= 0")
	}

	if err := c.UI.Keys.validate(); err != nil {
		return err
	}

	if _, err := c.Board.Seed(); err != nil {
		return err
	}
	return nil
}

// builtinKeys are the fixed TUI bindings overrides may not shadow.
var builtinKeys = map[string]string{
	"q":      "quit",
	"ctrl+c": "quit",
	"?":      "help",
	"h":      "container left",
	"left":   "container left",
	"l":      "container right",
	"right":  "container right",
	"k":      "item up",
	"up":     "item up",
	"j":      "item down",
	"down":   "item down",
	"enter":  "drop",
	"esc":    "cancel drag",
}

// validate rejects overrides that collide with a fixed binding or with each other.
func (k KeyConfig) validate() error {
	bindings := []struct {
		field    string
		raw      string
		fallback string
	}{
		{"ui.keys.pick_up", k.PickUp, "space"},
		{"ui.keys.journal", k.Journal, "g"},
		{"ui.keys.copy_id", k.CopyID, "y"},
		{"ui.keys.reset", k.Reset, "r"},
	}
	seen := make(map[string]string, len(bindings))
	for _, b := range bindings {
		name := normalizeKey(b.raw)
		if name == "" {
			name = b.fallback
		}
		if action, ok := builtinKeys[name]; ok {
			return fmt.Errorf("%s %q is already bound to %s", b.field, name, action)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s %q is already bound by %s", b.field, name, other)
		}
		seen[name] = b.field
	}
	return nil
}

func normalizeKey(raw string) string {
	if raw == " " {
		return "space"
	}
	raw = strings.TrimSpace(raw)
	if len([]rune(raw)) == 1 {
		return raw
	}
	return strings.ToLower(raw)
}

// Seed builds the starting arrangement. With no configured containers it is
// the built-in seed.
func (b BoardConfig) Seed() (domain.CardBoard, error) {
	if len(b.Containers) == 0 {
		return domain.DefaultSeed(), nil
	}
	containers := make([]domain.CardContainer, 0, len(b.Containers))
	for cIdx, cc := range b.Containers {
		items := make([]domain.CardItem, 0, len(cc.Items))
		for iIdx, ic := range cc.Items {
			card, err := domain.NewCard(ic.Title, ic.Body)
			if err != nil {
				return domain.CardBoard{}, fmt.Errorf("board.containers[%d].items[%d]: %w", cIdx, iIdx, err)
			}
			item, err := domain.NewItem(ic.ID, card, ic.Style)
			if err != nil {
				return domain.CardBoard{}, fmt.Errorf("board.containers[%d].items[%d]: %w", cIdx, iIdx, err)
			}
			items = append(items, item)
		}
		container, err := domain.NewContainer(cc.ID, cc.Label, items)
		if err != nil {
			return domain.CardBoard{}, fmt.Errorf("board.containers[%d]: %w", cIdx, err)
		}
		containers = append(containers, container)
	}
	board, err := domain.NewBoard(containers...)
	if err != nil {
		return domain.CardBoard{}, fmt.Errorf("board.containers: %w", err)
	}
	return board, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteFile encodes cfg as TOML at path, creating parent dirs. An existing
// file is kept unless overwrite is set.
func WriteFile(path string, cfg Config, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %q already exists: %w", path, os.ErrExist)
		}
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
