// Package render drives the external manim renderer. The renderer
// owns all of the actual animation work, this side only forwards
// parameters and surfaces its output on failure.
package render

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/framesheet/go-framesheet/pkg/logger"
)

// Options for one render run. Quality maps to the renderer's quality
// tiers, MaxFrames limits the animation range when positive.
type Options struct {
	SceneFile string
	SceneName string
	Quality   string
	FPS       int
	MaxFrames int
}

func qualityFlag(q string) (string, error) {
	switch q {
	case "low":
		return "-ql", nil
	case "medium":
		return "-qm", nil
	case "high":
		return "-qh", nil
	}
	return "", fmt.Errorf("unknown quality %q, want low, medium or high", q)
}

// Frames renders the scene to png frames in the renderer's own media
// dir. Blocks until the renderer exits; a non-zero exit comes back
// with the captured output verbatim.
func Frames(ctx context.Context, opts Options) error {
	qf, err := qualityFlag(opts.Quality)
	if err != nil {
		return err
	}
	args := []string{qf, "--fps", strconv.Itoa(opts.FPS), "--format=png", "--silent"}
	if opts.MaxFrames > 0 {
		args = append(args, "-n", fmt.Sprintf("0,%d", opts.MaxFrames))
	}
	args = append(args, opts.SceneFile, opts.SceneName)

	logger.Log.Debugf("Running manim command: manim %v", args)
	cmd := exec.CommandContext(ctx, "manim", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("manim failed: %w\n%s", err, out)
	}
	return nil
}
