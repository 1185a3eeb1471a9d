package sheetio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 90, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	writePNG(t, path, testImage(30, 20))

	img, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(30, 20) {
		t.Errorf("size = %v, want (30,20)", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("loading a missing file succeeded")
	}
}

func TestLoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not pixels"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("loading junk succeeded")
	}
}

func TestLoadFS(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(16, 16)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	fsys := fstest.MapFS{
		"assets/sheet.png": &fstest.MapFile{Data: buf.Bytes()},
	}

	img, err := LoadFS(fsys, "assets/sheet.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(16, 16) {
		t.Errorf("size = %v, want (16,16)", got)
	}

	if _, err := LoadFS(fsys, "assets/absent.png"); err == nil {
		t.Error("loading a missing entry succeeded")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 8)

	if err := Save(src, "png", dir, "icon_00x00"); err != nil {
		t.Fatalf("save: %v", err)
	}
	img, err := Load(filepath.Join(dir, "icon_00x00.png"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(8, 8) {
		t.Errorf("size = %v, want (8,8)", got)
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 8)
	for _, format := range Formats {
		if err := Save(src, format, dir, "icon"); err != nil {
			t.Fatalf("save %s: %v", format, err)
		}
		if _, err := Load(filepath.Join(dir, "icon."+format)); err != nil {
			t.Errorf("decode %s back: %v", format, err)
		}
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	if err := Save(testImage(4, 4), "webp", dir, "icon"); err == nil {
		t.Error("saving an unsupported format succeeded")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d files behind", len(entries))
	}
}

func TestSaveMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	if err := Save(testImage(4, 4), "png", missing, "icon"); err == nil {
		t.Error("saving into a missing folder succeeded")
	}
}

func TestValidFormat(t *testing.T) {
	for _, format := range Formats {
		if !ValidFormat(format) {
			t.Errorf("ValidFormat(%q) = false", format)
		}
	}
	if ValidFormat("svg") {
		t.Error("ValidFormat(\"svg\") = true")
	}
}
