// Package imaging prepares label photos for storage and analysis: bounded
// downscaling, JPEG re-encoding, and the data-URL form entries persist.
package imaging

import (
	"bytes"
	"image"
	"image/jpeg"

	// Register the decoders label photos arrive in.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Options bounds the compression output.
type Options struct {
	// MaxDimension caps the larger of width/height; the smaller dimension
	// scales in proportion, below the cap if needed.
	MaxDimension int
	// JPEGQuality is the lossy re-encode quality (1-100).
	JPEGQuality int
}

// DefaultOptions matches the repository configuration defaults.
func DefaultOptions() Options {
	return Options{MaxDimension: 800, JPEGQuality: 70}
}

// Compress decodes raw image bytes, downsizes them so the larger dimension
// fits the bound, and re-encodes as JPEG. Input that does not decode is
// returned unchanged so callers never lose a capture to a codec quirk.
// The call is pure; it has no side effects beyond the returned slice.
func Compress(raw []byte, opts Options) []byte {
	if opts.MaxDimension <= 0 || opts.JPEGQuality <= 0 {
		def := DefaultOptions()
		if opts.MaxDimension <= 0 {
			opts.MaxDimension = def.MaxDimension
		}
		if opts.JPEGQuality <= 0 {
			opts.JPEGQuality = def.JPEGQuality
		}
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return raw
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	newWidth, newHeight := fitWithin(width, height, opts.MaxDimension)

	var out image.Image = src
	if newWidth != width || newHeight != height {
		dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.JPEGQuality}); err != nil {
		return raw
	}
	return buf.Bytes()
}

// fitWithin scales (width, height) proportionally so the larger dimension
// equals max, leaving dimensions already within the bound untouched.
func fitWithin(width, height, max int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	if width >= height {
		if width <= max {
			return width, height
		}
		return max, scaleDim(height, max, width)
	}
	if height <= max {
		return width, height
	}
	return scaleDim(width, max, height), max
}

func scaleDim(dim, max, larger int) int {
	scaled := (dim*max + larger/2) / larger
	if scaled < 1 {
		return 1
	}
	return scaled
}
