package iconset

import (
	"image"

	"golang.org/x/image/draw"
)

// Icon is one cell extracted from an icon sheet. It is a deep copy of the
// source region: changes to the sheet or to other icons never show through.
// The zero Icon is the invalid icon returned for out-of-range lookups; it
// is empty and drawing it paints nothing.
type Icon struct {
	img *image.RGBA
}

var emptyImage = image.NewRGBA(image.Rectangle{})

// Empty reports whether this is the invalid icon.
func (ic Icon) Empty() bool {
	return ic.img == nil || ic.img.Rect.Empty()
}

// Image returns the icon's pixels. The result is shared with the set and
// must be treated as read-only. It is never nil; the invalid icon yields a
// zero-sized image.
func (ic Icon) Image() image.Image {
	if ic.img == nil {
		return emptyImage
	}
	return ic.img
}

// Bounds returns the icon's pixel rectangle, anchored at the origin.
func (ic Icon) Bounds() image.Rectangle {
	if ic.img == nil {
		return image.Rectangle{}
	}
	return ic.img.Rect
}

// Size returns the icon's dimensions in pixels.
func (ic Icon) Size() image.Point {
	return ic.Bounds().Size()
}

// Draw paints the icon over dst with its top-left corner at the given
// point. Drawing the invalid icon is a no-op.
func (ic Icon) Draw(dst draw.Image, at image.Point) {
	if ic.Empty() {
		return
	}
	r := image.Rectangle{Min: at, Max: at.Add(ic.img.Rect.Size())}
	draw.Draw(dst, r, ic.img, ic.img.Rect.Min, draw.Over)
}

// Scaled resamples the icon to the given size with a Catmull-Rom kernel.
// The invalid icon, and any size below 1x1, scales to an empty image.
func (ic Icon) Scaled(size image.Point) image.Image {
	if ic.Empty() || size.X < 1 || size.Y < 1 {
		return emptyImage
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(dst, dst.Rect, ic.img, ic.img.Rect, draw.Src, nil)
	return dst
}
