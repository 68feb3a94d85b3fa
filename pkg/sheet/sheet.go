// Package sheet builds a contact sheet out of rendered frames: an
// evenly sampled subset of the sequence laid out on a labeled grid,
// written as one png for quick visual review.
package sheet

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	cfg "github.com/framesheet/go-framesheet/pkg/config"
	"github.com/framesheet/go-framesheet/pkg/logger"
	"github.com/framesheet/go-framesheet/pkg/storage"
)

var log = logger.Log

var (
	ErrEmptySet          = errors.New("no frames found")
	ErrMissingDependency = errors.New("no compositor available")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Config is built once from the CLI flags and stays immutable for the
// run.
type Config struct {
	Dir       string // frames directory
	Output    string // output path, derived from Dir and SceneName when empty
	SceneName string
	MaxTiles  int
	FPS       int // for timing labels, 0 disables the timing part
	Labels    bool
	GridLines bool
	Montage   bool   // force the degraded ImageMagick path
	GridColor string // hex, like 808080
	CellWidth int    // max width of one tile, px
}

func DefaultConfig(dir string) Config {
	return Config{
		Dir:       dir,
		MaxTiles:  cfg.DefaultMaxTiles,
		Labels:    true,
		GridLines: true,
		GridColor: cfg.DefaultGridColor,
		CellWidth: cfg.DefaultCellWidth,
	}
}

func (c Config) validate() error {
	if c.MaxTiles <= 0 {
		return fmt.Errorf("max tiles must be positive, got %d: %w", c.MaxTiles, ErrInvalidConfig)
	}
	if c.CellWidth <= 0 {
		return fmt.Errorf("cell width must be positive, got %d: %w", c.CellWidth, ErrInvalidConfig)
	}
	if _, err := parseHexColor(c.GridColor); err != nil {
		return err
	}
	return nil
}

func (c Config) outputPath() string {
	if c.Output != "" {
		return c.Output
	}
	name := cfg.SheetDefaultName
	if c.SceneName != "" {
		name = c.SceneName + cfg.SheetSuffix
	}
	return filepath.Join(c.Dir, name)
}

// Build turns a frames dir and a config into one composite image on
// disk and returns the written path. No shared state survives between
// runs; an existing sheet at the output path is replaced. An empty
// frames dir comes back as ErrEmptySet with nothing written, the
// caller decides how loud to be about it.
func Build(conf Config) (string, error) {
	if err := conf.validate(); err != nil {
		return "", err
	}
	frames, err := storage.ScanFrames(conf.Dir)
	if err != nil {
		return "", err
	}
	if len(frames) == 0 {
		return "", fmt.Errorf("%w in %s", ErrEmptySet, conf.Dir)
	}

	picks := Sample(len(frames), conf.MaxTiles)
	selected := make([]storage.Frame, len(picks))
	for i, p := range picks {
		selected[i] = frames[p]
	}
	grid := Layout(len(selected))
	log.Debugf("sampled %d/%d frames onto a %s grid", len(selected), len(frames), grid)

	comp, err := pickCompositor(conf)
	if err != nil {
		return "", err
	}

	out := conf.outputPath()
	if err := comp.compose(selected, grid, out); err != nil {
		return "", fmt.Errorf("%s compositor: %w", comp.name(), err)
	}
	return out, nil
}

type compositor interface {
	name() string
	compose(frames []storage.Frame, grid Grid, outPath string) error
}

// pickCompositor decides once per run which of the two interchangeable
// strategies does the compositing, a capability probe rather than a
// flag checked all over the place. The in-process path wins whenever
// it is allowed; the ImageMagick fallback only tiles frames, no labels
// or gridlines.
func pickCompositor(conf Config) (compositor, error) {
	if !conf.Montage {
		gc, err := parseHexColor(conf.GridColor)
		if err != nil {
			return nil, err
		}
		return &nativeCompositor{conf: conf, gridColor: gc}, nil
	}
	bin, err := montageBinary()
	if err != nil {
		return nil, fmt.Errorf("native compositing disabled and %v: %w", err, ErrMissingDependency)
	}
	log.Warn("Using ImageMagick fallback, no gridlines or labels")
	return &montageCompositor{conf: conf, bin: bin}, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("grid color must be 6 hex digits, got %q: %w", s, ErrInvalidConfig)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("grid color %q: %w", s, ErrInvalidConfig)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
