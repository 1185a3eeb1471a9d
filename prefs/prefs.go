// Package prefs persists the tool's own slicing defaults through the
// settings container, under one group in a per-user SQLite database.
package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"iconsheet/settings"
	"iconsheet/settings/sqlite"

	"github.com/caarlos0/env/v11"
)

// Group is the settings group holding slice defaults.
const Group = "slice"

// Keys within Group.
const (
	KeyColumns    = "columns"
	KeyRows       = "rows"
	KeyCellWidth  = "cell_width"
	KeyCellHeight = "cell_height"
	KeyFormat     = "format"
	KeyWorkers    = "workers"
)

// Keys lists every key Group may hold.
var Keys = []string{KeyColumns, KeyRows, KeyCellWidth, KeyCellHeight, KeyFormat, KeyWorkers}

type envConfig struct {
	StateDB string `env:"ICONSHEET_STATE_DB"`
}

// DBPath returns the settings database location: $ICONSHEET_STATE_DB when
// set, otherwise iconsheet/settings.db under the user config directory.
func DBPath() (string, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return "", fmt.Errorf("could not parse environment: %w", err)
	}
	if cfg.StateDB != "" {
		return cfg.StateDB, nil
	}
	confDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate user config directory: %w", err)
	}
	return filepath.Join(confDir, "iconsheet", "settings.db"), nil
}

// OpenStore opens the settings database, creating its folder when missing.
func OpenStore() (*sqlite.Store, error) {
	path, err := DBPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create settings folder: %w", err)
	}
	return sqlite.Open(path)
}

// Defaults are the stored slice options. A zero field means "not stored".
type Defaults struct {
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
	Format     string
	Workers    int
}

// Load reads the stored defaults; entries never stored stay zero.
func Load(ctx context.Context) (Defaults, error) {
	store, err := OpenStore()
	if err != nil {
		return Defaults{}, err
	}
	defer func() { _ = store.Close() }()

	c := settings.NewContainer[string](Group)
	if err := c.Read(ctx, store); err != nil {
		return Defaults{}, err
	}
	return Defaults{
		Columns:    settings.Value(c, KeyColumns, 0),
		Rows:       settings.Value(c, KeyRows, 0),
		CellWidth:  settings.Value(c, KeyCellWidth, 0),
		CellHeight: settings.Value(c, KeyCellHeight, 0),
		Format:     settings.Value(c, KeyFormat, ""),
		Workers:    settings.Value(c, KeyWorkers, 0),
	}, nil
}

// Save persists the non-zero fields of d as stored defaults, keeping
// defaults it does not name.
func Save(ctx context.Context, d Defaults) error {
	c := settings.NewContainer[string](Group)
	if d.Columns > 0 {
		c.SetValue(KeyColumns, d.Columns)
	}
	if d.Rows > 0 {
		c.SetValue(KeyRows, d.Rows)
	}
	if d.CellWidth > 0 {
		c.SetValue(KeyCellWidth, d.CellWidth)
	}
	if d.CellHeight > 0 {
		c.SetValue(KeyCellHeight, d.CellHeight)
	}
	if d.Format != "" {
		c.SetValue(KeyFormat, d.Format)
	}
	if d.Workers > 0 {
		c.SetValue(KeyWorkers, d.Workers)
	}
	if c.Len() == 0 {
		return nil
	}

	store, err := OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return c.Write(ctx, store)
}
