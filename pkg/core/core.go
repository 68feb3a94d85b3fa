// Package core wires the pipeline together: clean stale frames, run
// the renderer, report what landed on disk, optionally build a sheet.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	p "github.com/framesheet/go-framesheet/pkg/core/progress"
	"github.com/framesheet/go-framesheet/pkg/logger"
	"github.com/framesheet/go-framesheet/pkg/render"
	"github.com/framesheet/go-framesheet/pkg/sheet"
	"github.com/framesheet/go-framesheet/pkg/storage"
)

type Core struct {
	ctx context.Context
}

func NewCore(ctx context.Context) *Core {
	return &Core{ctx: ctx}
}

// RenderOptions extends the renderer options with the follow-up sheet
// step.
type RenderOptions struct {
	render.Options
	ContactSheet bool
	MaxTiles     int
}

// Render re-renders a scene from scratch: old frames are deleted
// first so the dir only ever holds the current run.
func (c *Core) Render(opts RenderOptions) error {
	log := logger.Log.WithField("scope", "core render")

	if _, err := os.Stat(opts.SceneFile); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("scene file %s: %w", opts.SceneFile, storage.ErrNotFound)
		}
		return err
	}

	imageDir := storage.ImageDir(opts.SceneFile)
	if err := storage.CleanFrames(imageDir); err != nil {
		return fmt.Errorf("Error cleaning old frames: %w", err)
	}

	logger.Log.Infof("Rendering %s from %s at %d FPS...", opts.SceneName, opts.SceneFile, opts.FPS)
	p.ProgressSpinner("Rendering... ")
	done := make(chan bool)
	go scanFramesDir(imageDir, done)

	start := time.Now()
	err := render.Frames(c.ctx, opts.Options)
	close(done)
	p.Finish()
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Seconds()

	frames, err := storage.ScanFrames(imageDir)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	logger.Log.Infof("Rendered %d frames in %.1fs at %d FPS", len(frames), elapsed, opts.FPS)
	if len(frames) > 0 {
		abs, _ := filepath.Abs(imageDir)
		logger.Log.Infof("Frame images: %s/%s to %s", abs, frames[0].Name(), frames[len(frames)-1].Name())
	}
	log.Debugf("image dir: %s", imageDir)

	if !opts.ContactSheet {
		return nil
	}
	conf := sheet.DefaultConfig(imageDir)
	conf.SceneName = opts.SceneName
	conf.FPS = opts.FPS
	if opts.MaxTiles > 0 {
		conf.MaxTiles = opts.MaxTiles
	}
	return c.Sheet(conf)
}

// Sheet builds the contact sheet. An empty frames dir degrades to a
// warning so render pipelines keep going, everything else is fatal to
// the run.
func (c *Core) Sheet(conf sheet.Config) error {
	out, err := sheet.Build(conf)
	if err != nil {
		if errors.Is(err, sheet.ErrEmptySet) {
			logger.Log.Warnf("No contact sheet: %v", err)
			return nil
		}
		return err
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	logger.Log.Infof("Wrote contact sheet: %s", abs)
	return nil
}

// Rendering progress runner. Total frame count is unknown until the
// renderer exits, so poll the dir and show a live count instead of a
// bar.
func scanFramesDir(dir string, done <-chan bool) {
	log := logger.Log.WithField("scope", "core scanFramesDir")

	ticker := time.NewTicker(time.Second / 4)
	defer ticker.Stop()

	prevCount := 0
	for {
		select {
		case <-ticker.C:
			files, err := os.ReadDir(dir)
			if err != nil {
				// dir appears only once manim writes the first frame
				log.Debugf("scanning dir: %v", err)
				continue
			}
			l := len(files)
			if l > prevCount {
				prevCount = l
				p.Describe(fmt.Sprintf("Rendering... %d frames ", l))
			}
			p.Add(1) // spin
		case <-done:
			return
		}
	}
}
