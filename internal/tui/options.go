package tui

// DisplayConfig controls how containers and items are drawn.
type DisplayConfig struct {
	ShowItemIDs   bool
	ShowStyleTags bool
	ColumnWidth   int
	Mouse         bool
}

type Option func(*Model)

const (
	defaultColumnWidth = 24
	minColumnWidth     = 12
)

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		ShowItemIDs:   true,
		ShowStyleTags: false,
		ColumnWidth:   defaultColumnWidth,
		Mouse:         true,
	}
}

func WithDisplayConfig(cfg DisplayConfig) Option {
	return func(m *Model) {
		if cfg.ColumnWidth <= 0 {
			cfg.ColumnWidth = defaultColumnWidth
		}
		cfg.ColumnWidth = max(cfg.ColumnWidth, minColumnWidth)
		m.display = cfg
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithJournalLimit caps how many events the journal modal requests.
func WithJournalLimit(limit int) Option {
	return func(m *Model) {
		if limit > 0 {
			m.journalLimit = limit
		}
	}
}
