package fonts

import (
	"errors"
	"testing"

	"golang.org/x/image/font"
)

// fakeLoader records probe order and succeeds only for paths in ok.
type fakeLoader struct {
	ok     map[string]font.Face
	probed []string
}

func (f *fakeLoader) Load(path string, size float64) (font.Face, error) {
	f.probed = append(f.probed, path)
	if face, found := f.ok[path]; found {
		return face, nil
	}
	return nil, errors.New("no such font")
}

func TestSearchPaths_Windows(t *testing.T) {
	paths := SearchPaths("windows")
	if len(paths) != 2 {
		t.Fatalf("expected 2 windows paths, got %d", len(paths))
	}
	if paths[0] != `C:\Windows\Fonts\arial.ttf` {
		t.Errorf("expected arial first, got %q", paths[0])
	}
}

func TestSearchPaths_Darwin(t *testing.T) {
	paths := SearchPaths("darwin")
	if len(paths) != 2 {
		t.Fatalf("expected 2 darwin paths, got %d", len(paths))
	}
	if paths[0] != "/Library/Fonts/Arial.ttf" {
		t.Errorf("expected Arial first, got %q", paths[0])
	}
}

func TestSearchPaths_Linux(t *testing.T) {
	paths := SearchPaths("linux")
	if len(paths) != 1 {
		t.Fatalf("expected 1 linux path, got %d", len(paths))
	}
	if paths[0] != "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf" {
		t.Errorf("unexpected linux path %q", paths[0])
	}
}

func TestResolve_FirstLoadableWins(t *testing.T) {
	want := Fallback(12)
	loader := &fakeLoader{ok: map[string]font.Face{
		`C:\Windows\Fonts\segoeui.ttf`: want,
	}}

	got := Resolve(loader, "windows", 12)
	if got != want {
		t.Error("expected face from second probe path")
	}
	if len(loader.probed) != 2 {
		t.Errorf("expected 2 probes, got %d: %v", len(loader.probed), loader.probed)
	}
	if loader.probed[0] != `C:\Windows\Fonts\arial.ttf` {
		t.Errorf("expected arial probed first, got %q", loader.probed[0])
	}
}

func TestResolve_FallbackWhenNoneLoad(t *testing.T) {
	loader := &fakeLoader{}

	face := Resolve(loader, "linux", 20)
	if face == nil {
		t.Fatal("expected fallback face, got nil")
	}
	if len(loader.probed) != 1 {
		t.Errorf("expected every path probed, got %v", loader.probed)
	}
}

func TestFallback_Measures(t *testing.T) {
	face := Fallback(20)
	bounds, advance := font.BoundString(face, "Cafe A")
	if advance <= 0 {
		t.Error("expected positive advance for non-empty string")
	}
	if (bounds.Max.X - bounds.Min.X).Ceil() <= 0 {
		t.Error("expected positive bounding box width")
	}
	if (bounds.Max.Y - bounds.Min.Y).Ceil() <= 0 {
		t.Error("expected positive bounding box height")
	}
}
