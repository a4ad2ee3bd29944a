// Package label renders location strings into labeled QR-code images:
// a QR symbol centered above a caption on a white canvas sized to fit both.
package label

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Sanitize strips path separators from a location string so it can be used
// as a PNG base name. It is total and idempotent.
func Sanitize(location string) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(location)
}

// Generator renders labeled QR images with fixed layout settings for the
// whole batch.
type Generator struct {
	Face    font.Face
	BoxSize int // pixels per QR module
	Padding int // pixels around and between QR and caption
	Logger  *slog.Logger
}

// Render produces the in-memory raster for one location: the QR symbol
// centered at the top, the caption centered below it. The canvas is fully
// opaque, so the PNG encoder writes it as 24-bit RGB.
func (g *Generator) Render(location string) (image.Image, error) {
	if location == "" {
		return nil, fmt.Errorf("render label: location is empty")
	}

	qr, err := qrcode.New(location, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %q: %w", location, err)
	}
	// Negative size scales each module to |size| pixels; the rasterized
	// symbol keeps its 4-module quiet zone.
	qrImg := qr.Image(-g.BoxSize)
	qrSize := qrImg.Bounds().Dx()

	bounds, _ := font.BoundString(g.Face, location)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	canvasW := max(qrSize, textW) + 2*g.Padding
	canvasH := qrSize + textH + 3*g.Padding

	dc := gg.NewContext(canvasW, canvasH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.DrawImage(qrImg, (canvasW-qrSize)/2, g.Padding)

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(g.Face)
	// DrawString takes the baseline position; shift by the bounding box
	// offsets so the glyph box sits flush at qrSize + 2*padding rather
	// than being pushed down by the ascent.
	textX := float64((canvasW-textW)/2) - f26dot6(bounds.Min.X)
	textY := float64(qrSize+2*g.Padding) - f26dot6(bounds.Min.Y)
	dc.DrawString(location, textX, textY)

	return dc.Image(), nil
}

// GenerateAll renders every location into dir, one PNG per location named
// after its sanitized string. Existing files are overwritten. The first
// failure aborts the batch; PNGs written so far stay on disk.
func (g *Generator) GenerateAll(locations []string, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	g.Logger.Info("batch_started",
		"count", len(locations),
		"output_dir", dir,
		"component", "label",
	)

	seen := make(map[string]string, len(locations))
	for _, loc := range locations {
		name := Sanitize(loc) + ".png"
		if prev, ok := seen[name]; ok {
			g.Logger.Warn("filename_collision",
				"file", name,
				"location", loc,
				"overwrites", prev,
				"component", "label",
			)
		}
		seen[name] = loc

		img, err := g.Render(loc)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, name)
		if err := gg.SavePNG(path, img); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}

		g.Logger.Info("label_generated",
			"file", path,
			"component", "label",
		)
	}

	return nil
}

func f26dot6(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
