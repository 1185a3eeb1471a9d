// Package iconset slices a single image laid out as a uniform grid of
// equally sized cells into individually addressable icons.
//
// A Set is extracted eagerly, once, and is immutable afterwards, so any
// number of goroutines may look icons up concurrently. Lookups go by linear
// index or by (column, row) pair and never fail: positions outside the
// table resolve to the empty invalid icon.
package iconset

import (
	"image"
	"iter"
	"log/slog"

	"golang.org/x/image/draw"
)

// Grid is the (columns, rows) layout of an icon sheet.
type Grid struct {
	Columns int
	Rows    int
}

// Count returns the number of cells in the grid.
func (g Grid) Count() int { return g.Columns * g.Rows }

// Index converts a (column, row) position to its linear index. Cells are
// numbered in row-major order: left to right, then top to bottom.
func (g Grid) Index(col, row int) int { return row*g.Columns + col }

// Pos is the inverse of Index. The grid must have at least one column.
func (g Grid) Pos(index int) (col, row int) {
	row = index / g.Columns
	col = index - row*g.Columns
	return col, row
}

// Set is an icon lookup table extracted from one sheet image.
type Set struct {
	grid  Grid
	cell  image.Point
	icons []Icon
}

// New slices src into grid.Count() icons, row by row, left to right. Each
// icon is an independent copy of its cell, so src may be discarded or
// reused once New returns.
//
// A zero cell means auto: cell width and height derive from integer
// division of the source size by the grid size, and remainder pixels on the
// right and bottom edges belong to no cell. An explicit cell is taken as
// given, even when cells then overlap the source edge; pixels past the edge
// come out transparent.
//
// A nil or empty source, a grid with columns or rows below one, or a
// resolved cell width or height below one leaves nothing to slice: New
// logs the problem and returns an empty Set on which every lookup yields
// the invalid icon.
func New(src image.Image, grid Grid, cell image.Point) *Set {
	s := &Set{grid: grid, cell: cell}
	if src == nil || src.Bounds().Empty() {
		slog.Error("could not slice icon sheet: no source image")
		return s
	}
	if grid.Columns < 1 || grid.Rows < 1 {
		slog.Error("could not slice icon sheet: invalid grid", "columns", grid.Columns, "rows", grid.Rows)
		return s
	}
	b := src.Bounds()
	if cell == (image.Point{}) {
		s.cell = image.Pt(b.Dx()/grid.Columns, b.Dy()/grid.Rows)
	}
	if s.cell.X < 1 || s.cell.Y < 1 {
		slog.Error("could not slice icon sheet: invalid cell size", "width", s.cell.X, "height", s.cell.Y)
		return s
	}

	s.icons = make([]Icon, 0, grid.Count())
	for y := range grid.Rows {
		oy := b.Min.Y + y*s.cell.Y
		for x := range grid.Columns {
			ox := b.Min.X + x*s.cell.X
			dst := image.NewRGBA(image.Rect(0, 0, s.cell.X, s.cell.Y))
			draw.Draw(dst, dst.Rect, src, image.Pt(ox, oy), draw.Src)
			s.icons = append(s.icons, Icon{img: dst})
		}
	}
	return s
}

// NewStrip slices a sheet holding count icons in a single row. It is New
// with a one-row grid.
func NewStrip(src image.Image, count int, cell image.Point) *Set {
	return New(src, Grid{Columns: count, Rows: 1}, cell)
}

// Icon returns the icon at the given linear index, or the invalid icon
// when the index is outside the table.
func (s *Set) Icon(index int) Icon {
	if index < 0 || index >= len(s.icons) {
		return Icon{}
	}
	return s.icons[index]
}

// IconAt returns the icon at the given (column, row) position, or the
// invalid icon when the position's linear index is outside the table. Only
// the linear index is range checked: a column past the grid width lands on
// the following row, exactly as Grid.Index maps it.
func (s *Set) IconAt(col, row int) Icon {
	return s.Icon(s.grid.Index(col, row))
}

// Valid reports whether Icon(index) would yield an extracted icon rather
// than the invalid one.
func (s *Set) Valid(index int) bool {
	return index >= 0 && index < len(s.icons)
}

// ValidAt reports whether IconAt(col, row) would yield an extracted icon.
func (s *Set) ValidAt(col, row int) bool {
	return s.Valid(s.grid.Index(col, row))
}

// CellSize returns the resolved cell size in pixels.
func (s *Set) CellSize() image.Point { return s.cell }

// Radius returns half the cell width, the inscribed radius for icons drawn
// as circular glyphs.
func (s *Set) Radius() int { return s.cell.X / 2 }

// Grid returns the sheet layout the set was built with.
func (s *Set) Grid() Grid { return s.grid }

// Len returns the number of extracted icons.
func (s *Set) Len() int { return len(s.icons) }

// Empty reports whether construction failed soft and left the table
// without icons.
func (s *Set) Empty() bool { return len(s.icons) == 0 }

// All iterates the table in extraction order.
func (s *Set) All() iter.Seq2[int, Icon] {
	return func(yield func(int, Icon) bool) {
		for i, ic := range s.icons {
			if !yield(i, ic) {
				return
			}
		}
	}
}

// Symbol is any integer-backed index type, typically an enum-style constant
// set declared by the caller to name the cells of a particular sheet.
type Symbol interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// For looks an icon up by a symbolic linear index.
func For[S Symbol](s *Set, sym S) Icon {
	return s.Icon(int(sym))
}

// ForCell looks an icon up by symbolic column and row; the two may be
// distinct types.
func ForCell[C, R Symbol](s *Set, col C, row R) Icon {
	return s.IconAt(int(col), int(row))
}
