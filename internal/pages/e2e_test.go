package pages

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/AndreasL7/qrlabel/internal/fonts"
	"github.com/AndreasL7/qrlabel/internal/label"
)

// Full pipeline: generate labels for two locations, then compile the
// directory into a document.
func TestGenerateThenCompile(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gen := &label.Generator{
		Face:    fonts.Fallback(20),
		BoxSize: 5,
		Padding: 10,
		Logger:  logger,
	}
	if err := gen.GenerateAll([]string{"Cafe A", "Park/B"}, dir); err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, name := range []string{"Cafe A.png", "Park-B.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
		if _, err := png.Decode(f); err != nil {
			t.Errorf("%s is not a valid PNG: %v", name, err)
		}
		f.Close()
	}

	names, err := ListImages(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Pinned byte-wise order: space (0x20) sorts before '-' (0x2d).
	if len(names) != 2 || names[0] != "Cafe A.png" || names[1] != "Park-B.png" {
		t.Fatalf("unexpected picture order: %v", names)
	}

	out := filepath.Join(t.TempDir(), "labels.pdf")
	c := &Compiler{Logger: logger}
	if err := c.Compile(dir, out); err != nil {
		t.Fatalf("compile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if n := bytes.Count(data, []byte("/Subtype /Image")); n != 2 {
		t.Errorf("expected 2 pictures in document, found %d", n)
	}
}
