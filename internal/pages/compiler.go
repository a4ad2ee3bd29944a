// Package pages assembles generated label PNGs into a single printable
// landscape PDF, one full-height picture per page in filename order.
package pages

import (
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/signintech/gopdf"
)

// Page geometry in centimeters: landscape A4 with print margins.
const (
	pageWidth  = 29.7
	pageHeight = 21.0

	marginLeft   = 1.0
	marginRight  = 1.0
	marginTop    = 1.0
	marginBottom = 1.5

	// Every picture is placed at this height; width follows the PNG's
	// own aspect ratio.
	pictureHeight = 18.0
)

// ListImages returns the names of dir's .png entries (case-insensitive),
// sorted lexicographically by byte value. A missing directory yields an
// empty list, not an error.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Compiler builds the output document from a directory of label images.
type Compiler struct {
	Logger *slog.Logger
}

// Compile writes a landscape PDF embedding every PNG found in dir. Each
// picture gets its own page, scaled to a fixed height and horizontally
// centered. An empty or missing directory produces a valid document with
// a single blank page. outPath is overwritten if present.
func (c *Compiler) Compile(dir, outPath string) error {
	names, err := ListImages(dir)
	if err != nil {
		return err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitCM,
		PageSize: gopdf.Rect{W: pageWidth, H: pageHeight},
	})
	pdf.SetMargins(marginLeft, marginTop, marginRight, marginBottom)

	if len(names) == 0 {
		pdf.AddPage()
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		w, err := scaledWidth(path, pictureHeight)
		if err != nil {
			return err
		}

		pdf.AddPage()
		x := (pageWidth - w) / 2
		if err := pdf.Image(path, x, marginTop, &gopdf.Rect{W: w, H: pictureHeight}); err != nil {
			return fmt.Errorf("embed %s: %w", path, err)
		}

		c.Logger.Info("picture_embedded",
			"file", name,
			"component", "pages",
		)
	}

	if err := pdf.WritePdf(outPath); err != nil {
		return fmt.Errorf("write document %s: %w", outPath, err)
	}

	c.Logger.Info("document_written",
		"file", outPath,
		"pictures", len(names),
		"component", "pages",
	)
	return nil
}

// scaledWidth reads the PNG header and returns the placed width for the
// given height, preserving aspect ratio.
func scaledWidth(path string, height float64) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Height == 0 {
		return 0, fmt.Errorf("decode %s: zero height", path)
	}
	return height * float64(cfg.Width) / float64(cfg.Height), nil
}
