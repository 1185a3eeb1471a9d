// Package sheetio reads icon sheet images and writes icon files. Decoders
// for png, gif, jpeg, bmp, tiff, vp8l and webp are registered.
package sheetio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Load reads and decodes the sheet image at path.
func Load(path string) (image.Image, error) {
	inFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sheet %q: %w", path, err)
	}
	defer func() {
		if close_err := inFile.Close(); close_err != nil {
			slog.Error("could not close sheet", "file", path, "error", close_err)
		}
	}()

	img, _, err := image.Decode(inFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode sheet %q: %w", path, err)
	}
	return img, nil
}

// LoadFS decodes the sheet image stored at name inside fsys, typically an
// embedded asset tree.
func LoadFS(fsys fs.FS, name string) (image.Image, error) {
	inFile, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open sheet %q: %w", name, err)
	}
	defer func() {
		if close_err := inFile.Close(); close_err != nil {
			slog.Error("could not close sheet", "file", name, "error", close_err)
		}
	}()

	img, _, err := image.Decode(inFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode sheet %q: %w", name, err)
	}
	return img, nil
}
