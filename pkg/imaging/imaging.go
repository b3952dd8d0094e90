// Package imaging converts uploaded palm images into the base64 JPEG form
// the vision model consumes.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"
)

// AllowedExtensions are the accepted upload formats.
var AllowedExtensions = []string{"jpg", "jpeg", "png"}

// Allowed reports whether the filename carries an accepted image extension.
func Allowed(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// ToJPEGBase64 decodes an uploaded image, flattens it to plain RGB and
// returns the re-encoded JPEG as a base64 string. No validation happens
// beyond what the decode step enforces.
func ToJPEGBase64(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// Flatten indexed/alpha modes onto an RGB canvas before JPEG encoding.
	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, nil); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DataURI wraps a base64 JPEG payload as the data URI the model API expects.
func DataURI(imageBase64 string) string {
	return "data:image/jpeg;base64," + imageBase64
}
