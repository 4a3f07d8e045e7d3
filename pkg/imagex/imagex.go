// Package imagex validates uploaded profile photos and normalizes them into a
// small JPEG data URL suitable for storing next to a user record.
package imagex

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"math"
	"mime"
	"strings"

	_ "image/gif" // register decoder
	_ "image/png" // register decoder

	"golang.org/x/image/draw"

	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

const (
	// MaxFileSize is the largest accepted upload, 2 MiB.
	MaxFileSize = 2 * 1024 * 1024

	// MaxPixels bounds width*height before a full decode. Compressed formats
	// can declare dimensions far beyond what their file size suggests.
	MaxPixels = 25_000_000

	MaxWidth  = 300
	MaxHeight = 400

	// Quality is the JPEG quality used for the stored representation (0.7).
	Quality = 70

	// Portrait ID-photo proportions (3x4). Photos outside the tolerance only
	// produce a warning.
	TargetAspect    = 0.75
	AspectTolerance = 0.2

	dataURLPrefix = "data:image/jpeg;base64,"
)

var (
	ErrTooLarge        = errors.New("imagex: image must be at most 2MB")
	ErrUnsupportedType = errors.New("imagex: unsupported format, use JPG, PNG or GIF")
	ErrDecode          = errors.New("imagex: could not decode image")
)

var supportedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// File is an uploaded image as received from the client.
type File struct {
	Name        string
	ContentType string // declared media type
	Size        int64  // declared size, 0 when unknown
	Body        io.Reader
}

// Normalized is the outcome of Normalize.
type Normalized struct {
	DataURL        string
	Width          int
	Height         int
	OriginalSize   int64
	CompressedSize int
	AspectWarning  bool
}

// Normalize checks size and declared type, decodes the image, downscales it to
// fit MaxWidth x MaxHeight and re-encodes it as a JPEG data URL.
func Normalize(ctx context.Context, f File) (Normalized, error) {
	log := slogx.FromContext(ctx)

	if f.Size > MaxFileSize {
		return Normalized{}, ErrTooLarge
	}
	if !Supported(f.ContentType) {
		return Normalized{}, ErrUnsupportedType
	}
	if f.Body == nil {
		return Normalized{}, ErrDecode
	}

	// Read one byte past the limit so an undeclared size is still enforced.
	raw, err := io.ReadAll(io.LimitReader(f.Body, MaxFileSize+1))
	if err != nil {
		return Normalized{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(raw) > MaxFileSize {
		return Normalized{}, ErrTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Normalized{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Normalized{}, ErrDecode
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		log.Warn("photo dimensions over budget",
			slog.String("file", f.Name),
			slog.Int("width", cfg.Width),
			slog.Int("height", cfg.Height),
		)
		return Normalized{}, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Normalized{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return Normalized{}, err
	}

	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return Normalized{}, ErrDecode
	}

	warn := AspectOutOfRange(width, height)
	if warn {
		log.Warn("photo is not in the recommended 3x4 proportion",
			slog.String("file", f.Name),
			slog.Int("width", width),
			slog.Int("height", height),
		)
	}

	newW, newH := FitWithin(width, height, MaxWidth, MaxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	// JPEG has no alpha channel; compose transparent areas over white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if newW == width && newH == height {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: Quality}); err != nil {
		return Normalized{}, fmt.Errorf("imagex: encode: %w", err)
	}

	dataURL := dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())

	originalSize := f.Size
	if originalSize <= 0 {
		originalSize = int64(len(raw))
	}

	log.Debug("photo normalized",
		slog.String("format", format),
		slog.Int("width", newW),
		slog.Int("height", newH),
		slog.Int64("original_size", originalSize),
		slog.Int("compressed_size", len(dataURL)),
	)

	return Normalized{
		DataURL:        dataURL,
		Width:          newW,
		Height:         newH,
		OriginalSize:   originalSize,
		CompressedSize: len(dataURL),
		AspectWarning:  warn,
	}, nil
}

// Supported reports whether the declared media type is accepted. Parameters
// such as charset are ignored.
func Supported(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := supportedTypes[strings.ToLower(mt)]
	return ok
}

// AspectOutOfRange reports whether width/height deviates from 3x4 by more than
// the tolerance.
func AspectOutOfRange(width, height int) bool {
	if height == 0 {
		return true
	}
	ratio := float64(width) / float64(height)
	return math.Abs(ratio-TargetAspect) > AspectTolerance
}

// FitWithin scales (width, height) down proportionally so both fit inside
// maxW x maxH. Images already inside the box are returned unchanged.
func FitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= maxW && height <= maxH {
		return width, height
	}

	scale := math.Min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	w := clamp(int(math.Round(float64(width)*scale)), 1, maxW)
	h := clamp(int(math.Round(float64(height)*scale)), 1, maxH)
	return w, h
}

// DecodeDataURL returns the JPEG bytes of a data URL produced by Normalize.
func DecodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, ErrDecode
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(s, dataURLPrefix))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
