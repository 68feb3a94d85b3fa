package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/framesheet/go-framesheet/pkg/storage"
)

func writeFrames(t *testing.T, dir string, n, w, h int, c color.RGBA) {
	t.Helper()
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		path := filepath.Join(dir, fmt.Sprintf("Scene%04d.png", i))
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func decodeSheet(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestBuildNative(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 5, 8, 6, color.RGBA{R: 200, G: 40, B: 40, A: 255})

	conf := DefaultConfig(dir)
	conf.FPS = 2
	out, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}
	if out != filepath.Join(dir, "contact_sheet.png") {
		t.Errorf("unexpected output path %s", out)
	}

	// 5 tiles on a 3x2 grid, 8x6 cells, 20px label strips, 1px lines
	img := decodeSheet(t, out)
	b := img.Bounds()
	wantW := 3*8 + 4*1
	wantH := 2*(6+20) + 3*1
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestBuildSingleFrame(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	writeFrames(t, dir, 1, 10, 10, red)

	conf := DefaultConfig(dir)
	conf.Labels = false
	out, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}

	// a single frame lands on a 1x1 grid, letterboxed only by the
	// gridline border
	img := decodeSheet(t, out)
	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 12 {
		t.Fatalf("sheet is %dx%d, want 12x12", b.Dx(), b.Dy())
	}
	r, g, bl, _ := img.At(6, 6).RGBA()
	if r>>8 != 255 || g>>8 != 0 || bl>>8 != 0 {
		t.Errorf("center pixel is %v, want solid red", img.At(6, 6))
	}
}

func TestBuildRespectsTileBudget(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 20, 8, 6, color.RGBA{G: 120, A: 255})

	conf := DefaultConfig(dir)
	conf.MaxTiles = 4
	out, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}

	// 4 tiles -> 3x2 grid
	img := decodeSheet(t, out)
	b := img.Bounds()
	wantW := 3*8 + 4*1
	wantH := 2*(6+20) + 3*1
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestBuildIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, 7, 8, 6, color.RGBA{B: 180, A: 255})

	conf := DefaultConfig(dir)
	conf.FPS = 4
	out1, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}

	out2, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Errorf("output path changed between runs: %s vs %s", out1, out2)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated builds produced different sheets")
	}
}

func TestBuildEmptyDir(t *testing.T) {
	dir := t.TempDir()
	// non-frame files do not count
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	conf := DefaultConfig(dir)
	_, err := Build(conf)
	if !errors.Is(err, ErrEmptySet) {
		t.Fatalf("got %v, want ErrEmptySet", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "contact_sheet.png")); !os.IsNotExist(err) {
		t.Errorf("empty set still produced an output file")
	}
}

func TestBuildMissingDir(t *testing.T) {
	conf := DefaultConfig(filepath.Join(t.TempDir(), "nope"))
	_, err := Build(conf)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestBuildBadConfig(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero tiles",
			mutate: func(c *Config) { c.MaxTiles = 0 },
		},
		{
			name:   "negative tiles",
			mutate: func(c *Config) { c.MaxTiles = -3 },
		},
		{
			name:   "zero cell width",
			mutate: func(c *Config) { c.CellWidth = 0 },
		},
		{
			name:   "bad grid color",
			mutate: func(c *Config) { c.GridColor = "red" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := DefaultConfig(t.TempDir())
			tc.mutate(&conf)
			_, err := Build(conf)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	conf := DefaultConfig("media/images/foo")
	if got, want := conf.outputPath(), filepath.Join("media/images/foo", "contact_sheet.png"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	conf.SceneName = "Intro"
	if got, want := conf.outputPath(), filepath.Join("media/images/foo", "Intro_sheet.png"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	conf.Output = "out/custom.png"
	if got := conf.outputPath(); got != "out/custom.png" {
		t.Errorf("got %s, want explicit output", got)
	}
}

func TestParseHexColor(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{
			name: "mid gray",
			in:   "808080",
			want: color.RGBA{R: 128, G: 128, B: 128, A: 255},
		},
		{
			name: "hash prefix",
			in:   "#ff0000",
			want: color.RGBA{R: 255, A: 255},
		},
		{
			name:    "short",
			in:      "fff",
			wantErr: true,
		},
		{
			name:    "not hex",
			in:      "gggggg",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseHexColor(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("got %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPickCompositor(t *testing.T) {
	conf := DefaultConfig("x")
	comp, err := pickCompositor(conf)
	if err != nil {
		t.Fatal(err)
	}
	if comp.name() != "native" {
		t.Errorf("default compositor is %s, want native", comp.name())
	}

	conf.Montage = true
	comp, err = pickCompositor(conf)
	if _, probeErr := montageBinary(); probeErr != nil {
		if !errors.Is(err, ErrMissingDependency) {
			t.Errorf("got %v, want ErrMissingDependency", err)
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	if comp.name() != "montage" {
		t.Errorf("forced fallback picked %s, want montage", comp.name())
	}
}
