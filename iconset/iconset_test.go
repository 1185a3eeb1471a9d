package iconset

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// cellColor returns a distinct opaque color per cell index so extraction
// order is observable in tests.
func cellColor(i int) color.RGBA {
	return color.RGBA{R: uint8(20 + i*37), G: uint8(230 - i*31), B: uint8(40 + i*13), A: 255}
}

var marginColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// tagSheet paints a w by h sheet whose grid cells each carry their own
// color; pixels outside any cell get marginColor.
func tagSheet(w, h int, g Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, marginColor)
		}
	}
	cw, ch := w/g.Columns, h/g.Rows
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			c := cellColor(g.Index(col, row))
			for y := row * ch; y < (row+1)*ch; y++ {
				for x := col * cw; x < (col+1)*cw; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

func pixel(t *testing.T, ic Icon, x, y int) color.RGBA {
	t.Helper()
	rgba, ok := ic.Image().(*image.RGBA)
	if !ok {
		t.Fatalf("icon image is %T, want *image.RGBA", ic.Image())
	}
	return rgba.RGBAAt(x, y)
}

func TestAutoCellSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		grid Grid
		want image.Point
	}{
		{"exact", 90, 40, Grid{Columns: 3, Rows: 2}, image.Pt(30, 20)},
		{"remainder", 91, 41, Grid{Columns: 3, Rows: 2}, image.Pt(30, 20)},
		{"strip", 150, 20, Grid{Columns: 5, Rows: 1}, image.Pt(30, 20)},
		{"single", 32, 32, Grid{Columns: 1, Rows: 1}, image.Pt(32, 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := New(tagSheet(tt.w, tt.h, tt.grid), tt.grid, image.Point{})
			if got := set.CellSize(); got != tt.want {
				t.Errorf("cell size = %v, want %v", got, tt.want)
			}
			if set.Len() != tt.grid.Count() {
				t.Errorf("len = %d, want %d", set.Len(), tt.grid.Count())
			}
			for i, ic := range set.All() {
				if got := ic.Size(); got != tt.want {
					t.Errorf("icon %d size = %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}

func TestExtractionOrder(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	for i := 0; i < set.Len(); i++ {
		if got, want := pixel(t, set.Icon(i), 15, 10), cellColor(i); got != want {
			t.Errorf("icon %d center = %v, want %v", i, got, want)
		}
	}
}

func TestRemainderPixelsExcluded(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(91, 41, g), g, image.Point{})
	for i, ic := range set.All() {
		rgba := ic.Image().(*image.RGBA)
		for y := 0; y < 20; y++ {
			for x := 0; x < 30; x++ {
				if rgba.RGBAAt(x, y) == marginColor {
					t.Fatalf("icon %d contains margin pixel at (%d,%d)", i, x, y)
				}
			}
		}
	}
}

func TestIndexCoordinateConsistency(t *testing.T) {
	g := Grid{Columns: 4, Rows: 3}
	set := New(tagSheet(80, 60, g), g, image.Point{})
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			if set.Icon(row*g.Columns+col) != set.IconAt(col, row) {
				t.Errorf("Icon(%d) and IconAt(%d,%d) disagree", row*g.Columns+col, col, row)
			}
			if !set.ValidAt(col, row) {
				t.Errorf("ValidAt(%d,%d) = false", col, row)
			}
		}
	}
}

func TestOutOfRangeYieldsInvalidIcon(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	for _, index := range []int{set.Len(), set.Len() + 1, 999, -1} {
		if !set.Icon(index).Empty() {
			t.Errorf("Icon(%d) is not the invalid icon", index)
		}
		if set.Valid(index) {
			t.Errorf("Valid(%d) = true", index)
		}
	}
	if !set.IconAt(0, 2).Empty() {
		t.Error("IconAt(0,2) is not the invalid icon")
	}
	if set.ValidAt(0, 2) {
		t.Error("ValidAt(0,2) = true")
	}
}

func TestColumnOverflowWrapsToNextRow(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	// Column 3 of row 0 maps to linear index 3, which is row 1 column 0.
	if set.IconAt(3, 0) != set.IconAt(0, 1) {
		t.Error("IconAt(3,0) does not wrap to IconAt(0,1)")
	}
	if !set.ValidAt(3, 0) {
		t.Error("ValidAt(3,0) = false")
	}
}

func TestStripMatchesSingleRowGrid(t *testing.T) {
	g := Grid{Columns: 5, Rows: 1}
	src := tagSheet(150, 20, g)
	strip := NewStrip(src, 5, image.Point{})
	grid := New(src, g, image.Point{})
	if strip.Len() != grid.Len() {
		t.Fatalf("strip len = %d, grid len = %d", strip.Len(), grid.Len())
	}
	if strip.CellSize() != grid.CellSize() {
		t.Fatalf("strip cell = %v, grid cell = %v", strip.CellSize(), grid.CellSize())
	}
	for i := 0; i < strip.Len(); i++ {
		a := strip.Icon(i).Image().(*image.RGBA)
		b := grid.Icon(i).Image().(*image.RGBA)
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("icon %d differs between strip and grid", i)
		}
	}
}

func TestLookupIdempotence(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	if set.Icon(4) != set.Icon(4) {
		t.Error("repeated Icon(4) lookups differ")
	}
	if set.Icon(99) != set.Icon(99) {
		t.Error("repeated out-of-range lookups differ")
	}
}

func TestRadius(t *testing.T) {
	g := Grid{Columns: 2, Rows: 2}
	set := New(tagSheet(80, 40, g), g, image.Point{})
	if got := set.Radius(); got != 20 {
		t.Errorf("radius = %d, want 20 for cell width 40", got)
	}
	odd := New(tagSheet(33, 33, Grid{Columns: 1, Rows: 1}), Grid{Columns: 1, Rows: 1}, image.Point{})
	if got := odd.Radius(); got != 16 {
		t.Errorf("radius = %d, want 16 for cell width 33", got)
	}
}

func TestIconsAreDeepCopies(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	src := tagSheet(90, 40, g)
	set := New(src, g, image.Point{})
	want := pixel(t, set.Icon(0), 0, 0)
	src.SetRGBA(0, 0, color.RGBA{A: 255})
	if got := pixel(t, set.Icon(0), 0, 0); got != want {
		t.Errorf("icon pixel changed with source: got %v, want %v", got, want)
	}
}

func TestEmptySource(t *testing.T) {
	for _, src := range []image.Image{nil, image.NewRGBA(image.Rectangle{})} {
		set := New(src, Grid{Columns: 3, Rows: 2}, image.Point{})
		if !set.Empty() {
			t.Fatal("set built from empty source is not empty")
		}
		if set.Len() != 0 {
			t.Errorf("len = %d, want 0", set.Len())
		}
		if !set.Icon(0).Empty() || !set.IconAt(0, 0).Empty() {
			t.Error("lookup on empty set is not the invalid icon")
		}
		if set.Valid(0) {
			t.Error("Valid(0) = true on empty set")
		}
	}
}

func TestDegenerateGrid(t *testing.T) {
	src := tagSheet(90, 40, Grid{Columns: 3, Rows: 2})
	for _, g := range []Grid{{Columns: 0, Rows: 2}, {Columns: 3, Rows: 0}, {Columns: -1, Rows: 1}} {
		if set := New(src, g, image.Point{}); !set.Empty() {
			t.Errorf("grid %+v did not fail soft", g)
		}
	}
}

func TestDegenerateCellSize(t *testing.T) {
	// Auto-derived width of 2/3 truncates to zero.
	small := New(tagSheet(2, 2, Grid{Columns: 1, Rows: 1}), Grid{Columns: 3, Rows: 2}, image.Point{})
	if !small.Empty() {
		t.Error("sub-cell source did not fail soft")
	}
	src := tagSheet(90, 40, Grid{Columns: 3, Rows: 2})
	if set := New(src, Grid{Columns: 3, Rows: 2}, image.Pt(-5, 10)); !set.Empty() {
		t.Error("negative explicit cell did not fail soft")
	}
}

func TestExplicitCellSize(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Pt(10, 10))
	if got := set.CellSize(); got != image.Pt(10, 10) {
		t.Fatalf("cell size = %v, want (10,10)", got)
	}
	// Cells stay packed from the top-left: icon 1 starts at x=10, still
	// inside the 30 pixel wide region of cell color 0.
	if got, want := pixel(t, set.Icon(1), 5, 5), cellColor(0); got != want {
		t.Errorf("icon 1 sample = %v, want %v", got, want)
	}
}

func TestExplicitCellPastEdge(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Pt(40, 25))
	ic := set.Icon(2) // origin x=80, extends 30 pixels past the source
	if got, want := pixel(t, ic, 5, 5), cellColor(2); got != want {
		t.Errorf("in-range sample = %v, want %v", got, want)
	}
	if got := pixel(t, ic, 35, 5); got != (color.RGBA{}) {
		t.Errorf("past-edge sample = %v, want transparent", got)
	}
}

func TestSourceWithNonZeroBounds(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	tag := tagSheet(90, 40, g)
	big := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 40; y++ {
		for x := 0; x < 90; x++ {
			big.SetRGBA(x+10, y+10, tag.RGBAAt(x, y))
		}
	}
	sub := big.SubImage(image.Rect(10, 10, 100, 50)).(*image.RGBA)
	set := New(sub, g, image.Point{})
	for i := 0; i < set.Len(); i++ {
		if got, want := pixel(t, set.Icon(i), 15, 10), cellColor(i); got != want {
			t.Errorf("icon %d center = %v, want %v", i, got, want)
		}
	}
}

func TestSymbolLookup(t *testing.T) {
	type sheetIcon int
	const (
		iconCut sheetIcon = iota
		iconCopy
		iconPaste
	)
	type column uint8
	type gridRow int16

	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	if For(set, iconPaste) != set.Icon(2) {
		t.Error("For(iconPaste) is not Icon(2)")
	}
	if For(set, iconCut) != set.Icon(0) {
		t.Error("For(iconCut) is not Icon(0)")
	}
	_ = iconCopy
	if ForCell(set, column(2), gridRow(1)) != set.IconAt(2, 1) {
		t.Error("ForCell(2,1) is not IconAt(2,1)")
	}
}

func TestAllStopsEarly(t *testing.T) {
	g := Grid{Columns: 3, Rows: 2}
	set := New(tagSheet(90, 40, g), g, image.Point{})
	var indexes []int
	for i, ic := range set.All() {
		if ic != set.Icon(i) {
			t.Fatalf("All yielded wrong icon at %d", i)
		}
		indexes = append(indexes, i)
		if len(indexes) == 3 {
			break
		}
	}
	if len(indexes) != 3 || indexes[0] != 0 || indexes[2] != 2 {
		t.Errorf("All yielded %v, want [0 1 2]", indexes)
	}
}

func TestGridIndexPosRoundTrip(t *testing.T) {
	g := Grid{Columns: 7, Rows: 4}
	for index := 0; index < g.Count(); index++ {
		col, row := g.Pos(index)
		if got := g.Index(col, row); got != index {
			t.Errorf("Index(Pos(%d)) = %d", index, got)
		}
		if col < 0 || col >= g.Columns || row < 0 || row >= g.Rows {
			t.Errorf("Pos(%d) = (%d,%d) out of grid", index, col, row)
		}
	}
}
