// All files related functions
package storage

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	cfg "github.com/framesheet/go-framesheet/pkg/config"
	"github.com/framesheet/go-framesheet/pkg/logger"
)

var log = logger.Log

var ErrNotFound = errors.New("not found")

// Frame is one rendered still on disk. The index is parsed from the
// numeric suffix of the filename and defines the sequence order.
type Frame struct {
	Index int
	Path  string
}

func (f Frame) Name() string {
	return filepath.Base(f.Path)
}

// trailing digits before the png extension, the way manim numbers
// its PNG output
var frameIndexRe = regexp.MustCompile(`(\d+)\.png$`)

// ScanFrames scans dir for numbered png frames and returns them
// ordered by numeric index, not filename. Lexicographic order would
// put frame 10 before frame 2. Gaps in the numbering are fine.
func ScanFrames(dir string) ([]Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("frames dir %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("Error scanning frames dir: %w", err)
	}
	frames := make([]Frame, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := frameIndexRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			// digits run too long for an int, not a frame of ours
			continue
		}
		frames = append(frames, Frame{Index: idx, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Index < frames[j].Index })
	log.Debugf("scanned %d frames in %s", len(frames), dir)
	return frames, nil
}

// ImageDir maps a scene file to the directory the renderer writes
// frames into, media/images/<stem>
func ImageDir(sceneFile string) string {
	base := filepath.Base(sceneFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.PathMediaDir, stem)
}

// CleanFrames removes stale png frames before a re-render so old
// frames never leak into a fresh sheet. A missing dir is fine.
func CleanFrames(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("Error removing old frame: %w", err)
		}
	}
	return nil
}

func FrameRead(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("Error decoding %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img as png at path, going through a temp file in
// the same dir so a crash mid-encode never leaves a partial sheet.
// An existing file at path is overwritten.
func SaveImage(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("Error creating output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".sheet-*.png")
	if err != nil {
		return fmt.Errorf("Error creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	if err = png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return fmt.Errorf("Error encoding sheet: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), path)
}
