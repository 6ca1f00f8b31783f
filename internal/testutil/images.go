// Package testutil builds image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// Marker is the colour MarkedImage paints in its top-left quadrant.
var Marker = color.RGBA{R: 255, A: 255}

// MarkedImage returns a white width x height image whose top-left quadrant
// is Marker, so a test can tell where the stored top-left corner ends up.
func MarkedImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x < width/2 && y < height/2 {
				c = Marker
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// JPEGWithOrientation encodes MarkedImage(width, height) as a JPEG with an
// APP1 Exif segment holding only the Orientation tag v.
func JPEGWithOrientation(tb testing.TB, width, height int, v uint16) []byte {
	tb.Helper()
	var plain bytes.Buffer
	if err := jpeg.Encode(&plain, MarkedImage(width, height), &jpeg.Options{Quality: 95}); err != nil {
		tb.Fatalf("jpeg encode: %v", err)
	}

	var tiff bytes.Buffer
	tiff.WriteString("II")
	binary.Write(&tiff, binary.LittleEndian, uint16(42))
	binary.Write(&tiff, binary.LittleEndian, uint32(8))
	binary.Write(&tiff, binary.LittleEndian, uint16(1))      // entries
	binary.Write(&tiff, binary.LittleEndian, uint16(0x0112)) // Orientation
	binary.Write(&tiff, binary.LittleEndian, uint16(3))      // SHORT
	binary.Write(&tiff, binary.LittleEndian, uint32(1))
	binary.Write(&tiff, binary.LittleEndian, v)
	binary.Write(&tiff, binary.LittleEndian, uint16(0))
	binary.Write(&tiff, binary.LittleEndian, uint32(0)) // no next IFD

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	var out bytes.Buffer
	out.Write(plain.Bytes()[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(plain.Bytes()[2:])
	return out.Bytes()
}

// IsMarker reports whether c is close to Marker, allowing for lossy
// encoding.
func IsMarker(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 200 && g>>8 < 80 && b>>8 < 80
}
