package sheet

import (
	"fmt"
	"math"

	cfg "github.com/framesheet/go-framesheet/pkg/config"
)

// Grid is the shape of the sheet. Cells beyond the tile count stay
// blank in the composite.
type Grid struct {
	Cols int
	Rows int
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// Layout picks a near-square grid for k tiles, biased toward extra
// columns since the frames are usually landscape. Cols*Rows >= k
// always holds, and Cols never exceeds k.
func Layout(k int) Grid {
	if k <= 0 {
		return Grid{}
	}
	cols := int(math.Ceil(math.Sqrt(float64(k) * cfg.AspectBias)))
	if cols > k {
		cols = k
	}
	rows := int(math.Ceil(float64(k) / float64(cols)))
	return Grid{Cols: cols, Rows: rows}
}

// cellFit shrinks the cell uniformly until the full sheet, gridlines
// and label strips included, stays under the MaxSheetDim pixel cap.
func cellFit(cellW, cellH, labelH int, grid Grid) (int, int) {
	lw := cfg.GridLineWidth
	// the largest cell each axis can afford once the fixed line and
	// label overhead is paid
	allowedW := float64(cfg.MaxSheetDim-(grid.Cols+1)*lw) / float64(grid.Cols)
	allowedH := float64(cfg.MaxSheetDim-(grid.Rows+1)*lw)/float64(grid.Rows) - float64(labelH)

	scale := 1.0
	if s := allowedW / float64(cellW); s < scale {
		scale = s
	}
	if s := allowedH / float64(cellH); s < scale {
		scale = s
	}
	if scale < 1 {
		cellW = int(float64(cellW) * scale)
		cellH = int(float64(cellH) * scale)
	}
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	return cellW, cellH
}
