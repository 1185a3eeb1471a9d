// Package slicer implements the command line surface: slicing an icon
// sheet into per-cell image files and inspecting sheet geometry.
package slicer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"iconsheet/iconset"
	"iconsheet/parallel"
	"iconsheet/prefs"
	"iconsheet/sheetio"
)

// GridParams describe the sheet layout, shared by slice and info.
type GridParams struct {
	Columns    int `help:"Grid columns." short:"c"`
	Rows       int `help:"Grid rows." short:"r"`
	Count      int `help:"Icon count of a single-row sheet; shorthand for --columns=N --rows=1." short:"n"`
	CellWidth  int `help:"Cell width in pixels; omitted, the cell size derives from the grid."`
	CellHeight int `help:"Cell height in pixels."`
}

func (g *GridParams) validate() error {
	if g.Count < 0 || g.Columns < 0 || g.Rows < 0 {
		return fmt.Errorf("grid dimensions cannot be negative")
	}
	if g.Count > 0 && (g.Columns > 0 || g.Rows > 0) {
		return fmt.Errorf("--count and --columns/--rows are mutually exclusive")
	}
	if g.CellWidth < 0 || g.CellHeight < 0 {
		return fmt.Errorf("cell size cannot be negative")
	}
	if (g.CellWidth > 0) != (g.CellHeight > 0) {
		return fmt.Errorf("--cell-width and --cell-height go together")
	}
	return nil
}

func (g *GridParams) grid() (iconset.Grid, error) {
	if g.Count > 0 {
		return iconset.Grid{Columns: g.Count, Rows: 1}, nil
	}
	if g.Columns < 1 || g.Rows < 1 {
		return iconset.Grid{}, fmt.Errorf("no grid given: use --columns with --rows, or --count for a single row")
	}
	return iconset.Grid{Columns: g.Columns, Rows: g.Rows}, nil
}

func (g *GridParams) cell() image.Point {
	return image.Pt(g.CellWidth, g.CellHeight)
}

// SliceCmd explodes an icon sheet into one image file per grid cell.
type SliceCmd struct {
	Sheet string `arg:"" help:"Icon sheet image to slice." type:"existingfile"`
	GridParams
	Dest     string `help:"Destination folder for icon files." short:"d" default:"icons"`
	Format   string `help:"Output format: png, gif, jpeg, bmp or tiff." short:"f"`
	Workers  int    `help:"Concurrent icon writers; 0 means one per CPU." short:"w"`
	Remember bool   `help:"Store this run's grid and output options as defaults."`
	NoSaved  bool   `help:"Ignore stored defaults."`
}

func (c *SliceCmd) Validate() error {
	if err := c.GridParams.validate(); err != nil {
		return err
	}
	if c.Format != "" && !sheetio.ValidFormat(c.Format) {
		return fmt.Errorf("unsupported output format %q, expected one of %v", c.Format, sheetio.Formats)
	}
	abs, err := filepath.Abs(c.Sheet)
	if err != nil {
		return fmt.Errorf("could not resolve sheet path %q: %w", c.Sheet, err)
	}
	c.Sheet = abs
	return nil
}

func (c *SliceCmd) Run() error {
	ctx := context.Background()
	c.applySaved(ctx)
	if c.Format == "" {
		c.Format = "png"
	}
	if !sheetio.ValidFormat(c.Format) {
		return fmt.Errorf("unsupported output format %q, expected one of %v", c.Format, sheetio.Formats)
	}
	grid, err := c.grid()
	if err != nil {
		return err
	}

	img, err := sheetio.Load(c.Sheet)
	if err != nil {
		return err
	}
	set := iconset.New(img, grid, c.cell())
	if set.Empty() {
		return fmt.Errorf("could not slice %q: no icons extracted", c.Sheet)
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("could not create destination folder %q: %w", c.Dest, err)
	}

	base := strings.TrimSuffix(filepath.Base(c.Sheet), filepath.Ext(c.Sheet))
	slog.Info("slicing sheet",
		"sheet", c.Sheet,
		"columns", grid.Columns,
		"rows", grid.Rows,
		"cell_width", set.CellSize().X,
		"cell_height", set.CellSize().Y,
		"dest", c.Dest)

	var saved, failed atomic.Uint64
	pool := parallel.New(c.Workers)
	for i, ic := range set.All() {
		pool.Do(func() {
			col, row := grid.Pos(i)
			name := iconName(base, col, row)
			if err := sheetio.Save(ic.Image(), c.Format, c.Dest, name); err != nil {
				failed.Add(1)
				slog.Error("could not save icon", "file", name, "error", err)
				return
			}
			saved.Add(1)
		})
	}
	pool.Wait()

	slog.Info("stats", "saved", saved.Load(), "errors", failed.Load(), "total", set.Len())
	if failed.Load() > 0 {
		return fmt.Errorf("failed to save %d of %d icons", failed.Load(), set.Len())
	}
	if c.Remember {
		if err := c.remember(ctx, grid); err != nil {
			return fmt.Errorf("icons saved, but could not store defaults: %w", err)
		}
	}
	return nil
}

// applySaved layers stored defaults under the flags the user left unset.
// A missing or unreadable settings database just means no defaults.
func (c *SliceCmd) applySaved(ctx context.Context) {
	if c.NoSaved {
		return
	}
	saved, err := prefs.Load(ctx)
	if err != nil {
		slog.Debug("no stored defaults", "error", err)
		return
	}
	if c.Count == 0 && c.Columns == 0 && c.Rows == 0 {
		c.Columns, c.Rows = saved.Columns, saved.Rows
	}
	if c.CellWidth == 0 && c.CellHeight == 0 {
		c.CellWidth, c.CellHeight = saved.CellWidth, saved.CellHeight
	}
	if c.Format == "" {
		c.Format = saved.Format
	}
	if c.Workers == 0 {
		c.Workers = saved.Workers
	}
}

func (c *SliceCmd) remember(ctx context.Context, grid iconset.Grid) error {
	return prefs.Save(ctx, prefs.Defaults{
		Columns:    grid.Columns,
		Rows:       grid.Rows,
		CellWidth:  c.CellWidth,
		CellHeight: c.CellHeight,
		Format:     c.Format,
		Workers:    c.Workers,
	})
}

// iconName builds the file base name for the icon at (col, row).
func iconName(base string, col, row int) string {
	return fmt.Sprintf("%s_%02dx%02d", base, row, col)
}

// InfoCmd prints the geometry a sheet resolves to without writing files.
type InfoCmd struct {
	Sheet string `arg:"" help:"Icon sheet image to inspect." type:"existingfile"`
	GridParams
}

func (c *InfoCmd) Validate() error {
	return c.GridParams.validate()
}

func (c *InfoCmd) Run() error {
	grid, err := c.grid()
	if err != nil {
		return err
	}
	img, err := sheetio.Load(c.Sheet)
	if err != nil {
		return err
	}
	set := iconset.New(img, grid, c.cell())
	if set.Empty() {
		return fmt.Errorf("could not slice %q: no icons extracted", c.Sheet)
	}

	b := img.Bounds()
	cell := set.CellSize()
	fmt.Printf("sheet:    %s\n", c.Sheet)
	fmt.Printf("source:   %dx%d px\n", b.Dx(), b.Dy())
	fmt.Printf("grid:     %d columns x %d rows, %d icons\n", grid.Columns, grid.Rows, set.Len())
	fmt.Printf("cell:     %dx%d px, radius %d\n", cell.X, cell.Y, set.Radius())
	fmt.Printf("coverage: %dx%d of %dx%d px\n", cell.X*grid.Columns, cell.Y*grid.Rows, b.Dx(), b.Dy())
	if trimX, trimY := b.Dx()-cell.X*grid.Columns, b.Dy()-cell.Y*grid.Rows; trimX > 0 || trimY > 0 {
		fmt.Printf("leftover: %d px right, %d px bottom\n", trimX, trimY)
	}
	return nil
}
