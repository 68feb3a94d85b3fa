package sheet

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/framesheet/go-framesheet/pkg/storage"
)

// montageBinary probes for ImageMagick, preferring the v7 magick
// front end over the legacy montage binary.
func montageBinary() ([]string, error) {
	if path, err := exec.LookPath("magick"); err == nil {
		return []string{path, "montage"}, nil
	}
	if path, err := exec.LookPath("montage"); err == nil {
		return []string{path}, nil
	}
	return nil, errors.New("ImageMagick not found (magick/montage)")
}

// montageCompositor shells out to ImageMagick montage. Degraded path:
// tiles only, no labels, no gridlines.
type montageCompositor struct {
	conf Config
	bin  []string
}

func (m *montageCompositor) name() string { return "montage" }

func (m *montageCompositor) compose(frames []storage.Frame, grid Grid, outPath string) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("Error creating output dir: %w", err)
	}
	// montage writes the file itself, so stage it next to the target
	// and rename on success
	tmp := filepath.Join(dir, fmt.Sprintf(".montage-%d.png", os.Getpid()))
	defer os.Remove(tmp)

	args := append([]string{}, m.bin[1:]...)
	for _, f := range frames {
		args = append(args, f.Path)
	}
	geometry := fmt.Sprintf("%dx%d+0+0", m.conf.CellWidth, m.conf.CellWidth)
	args = append(args, "-tile", grid.String(), "-geometry", geometry, tmp)

	log.Debugf("Running montage command: %v %v", m.bin[0], args)
	cmd := exec.Command(m.bin[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("montage failed: %w\n%s", err, out)
	}
	return os.Rename(tmp, outPath)
}
