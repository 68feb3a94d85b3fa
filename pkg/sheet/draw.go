package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	cfg "github.com/framesheet/go-framesheet/pkg/config"
	p "github.com/framesheet/go-framesheet/pkg/core/progress"
	"github.com/framesheet/go-framesheet/pkg/storage"
)

var sheetBackground = color.RGBA{R: 16, G: 16, B: 16, A: 255}

// nativeCompositor pastes frames in-process with image/draw, with
// per-tile labels and gridlines on top.
type nativeCompositor struct {
	conf      Config
	gridColor color.RGBA
}

func (n *nativeCompositor) name() string { return "native" }

func (n *nativeCompositor) compose(frames []storage.Frame, grid Grid, outPath string) error {
	imgs := make([]image.Image, len(frames))
	maxW := 0
	for i, f := range frames {
		img, err := storage.FrameRead(f.Path)
		if err != nil {
			return err
		}
		imgs[i] = img
		if w := img.Bounds().Dx(); w > maxW {
			maxW = w
		}
	}

	// cell width is capped, never upscaled past the source frames
	cellW := n.conf.CellWidth
	if maxW < cellW {
		cellW = maxW
	}
	cellH := 1
	for _, img := range imgs {
		b := img.Bounds()
		if h := b.Dy() * cellW / b.Dx(); h > cellH {
			cellH = h
		}
	}
	labelH := 0
	if n.conf.Labels {
		labelH = cfg.LabelHeight
	}
	cellW, cellH = cellFit(cellW, cellH, labelH, grid)

	lw := cfg.GridLineWidth
	sheetW := grid.Cols*cellW + (grid.Cols+1)*lw
	sheetH := grid.Rows*(cellH+labelH) + (grid.Rows+1)*lw
	sheet := image.NewRGBA(image.Rect(0, 0, sheetW, sheetH))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	p.ProgressReset(len(imgs), "Compositing... ")
	for i, img := range imgs {
		row := i / grid.Cols
		col := i % grid.Cols
		cellX := col*cellW + (col+1)*lw
		cellY := row*(cellH+labelH) + (row+1)*lw

		// letterbox into the cell, never stretch
		b := img.Bounds()
		s := math.Min(float64(cellW)/float64(b.Dx()), float64(cellH)/float64(b.Dy()))
		w := int(float64(b.Dx()) * s)
		h := int(float64(b.Dy()) * s)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		x := cellX + (cellW-w)/2
		y := cellY + (cellH-h)/2
		xdraw.CatmullRom.Scale(sheet, image.Rect(x, y, x+w, y+h), img, b, xdraw.Src, nil)

		if n.conf.Labels {
			label := frames[i].Name()
			if n.conf.FPS > 0 {
				label = fmt.Sprintf("%s (%.2fs)", label, float64(frames[i].Index)/float64(n.conf.FPS))
			}
			drawLabel(sheet, cellX+cfg.LabelPad, cellY+cellH+cfg.LabelPad, label)
		}
		p.Add(1)
	}

	if n.conf.GridLines {
		n.drawGridLines(sheet, grid, cellW, cellH+labelH)
	}
	p.Finish()
	return storage.SaveImage(outPath, sheet)
}

// drawLabel paints text in white with the top-left corner at x,y
func drawLabel(dst *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

func (n *nativeCompositor) drawGridLines(dst *image.RGBA, grid Grid, cellW, cellH int) {
	lw := cfg.GridLineWidth
	b := dst.Bounds()
	src := image.NewUniform(n.gridColor)
	for col := 0; col <= grid.Cols; col++ {
		x := col * (cellW + lw)
		draw.Draw(dst, image.Rect(x, 0, x+lw, b.Dy()), src, image.Point{}, draw.Src)
	}
	for row := 0; row <= grid.Rows; row++ {
		y := row * (cellH + lw)
		draw.Draw(dst, image.Rect(0, y, b.Dx(), y+lw), src, image.Point{}, draw.Src)
	}
}
