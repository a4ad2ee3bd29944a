// Package fonts resolves a caption font from a short list of well-known
// system font files, falling back to the embedded Go Regular face when
// none of them load.
package fonts

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SearchPaths returns the ordered list of font files to probe for the
// given GOOS. The first path that loads wins.
func SearchPaths(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Windows\Fonts\arial.ttf`,
			`C:\Windows\Fonts\segoeui.ttf`,
		}
	case "darwin":
		return []string{
			"/Library/Fonts/Arial.ttf",
			"/System/Library/Fonts/Helvetica.ttc",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}
}

// Loader loads a font face from a file path at the given pixel size.
type Loader interface {
	Load(path string, size float64) (font.Face, error)
}

// DiskLoader reads TrueType/OpenType font files from the filesystem.
type DiskLoader struct{}

func (DiskLoader) Load(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	face, err := newFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return face, nil
}

// Resolve probes the platform search paths in order and returns the first
// face that loads, falling back to the embedded face if none do. Missing
// system fonts never fail the run.
func Resolve(loader Loader, goos string, size float64) font.Face {
	for _, path := range SearchPaths(goos) {
		face, err := loader.Load(path, size)
		if err != nil {
			continue
		}
		return face
	}
	return Fallback(size)
}

// Fallback returns the embedded Go Regular face at the given size.
func Fallback(size float64) font.Face {
	face, err := newFace(goregular.TTF, size)
	if err != nil {
		// goregular ships inside the binary; failing to parse it is a bug.
		panic(fmt.Sprintf("parse embedded font: %v", err))
	}
	return face
}

func newFace(data []byte, size float64) (font.Face, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}
