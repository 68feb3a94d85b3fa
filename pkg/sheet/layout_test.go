package sheet

import "testing"

func TestLayout(t *testing.T) {
	testCases := []struct {
		name string
		k    int
		want Grid
	}{
		{
			name: "single tile",
			k:    1,
			want: Grid{Cols: 1, Rows: 1},
		},
		{
			name: "two tiles in a row",
			k:    2,
			want: Grid{Cols: 2, Rows: 1},
		},
		{
			name: "five tiles",
			k:    5,
			want: Grid{Cols: 3, Rows: 2},
		},
		{
			name: "twelve tiles",
			k:    12,
			want: Grid{Cols: 4, Rows: 3},
		},
		{
			name: "sixteen tiles",
			k:    16,
			want: Grid{Cols: 5, Rows: 4},
		},
		{
			name: "zero",
			k:    0,
			want: Grid{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Layout(tc.k)
			if got != tc.want {
				t.Errorf("Layout(%d) = %v, want %v", tc.k, got, tc.want)
			}
		})
	}
}

func TestLayoutInvariants(t *testing.T) {
	for k := 1; k <= 64; k++ {
		g := Layout(k)
		if g.Cols*g.Rows < k {
			t.Fatalf("k=%d: grid %v does not hold all tiles", k, g)
		}
		if g.Cols < g.Rows {
			t.Fatalf("k=%d: grid %v taller than wide", k, g)
		}
		if g.Cols > k {
			t.Fatalf("k=%d: grid %v wider than the tile count", k, g)
		}
	}
}

func TestCellFit(t *testing.T) {
	// small sheet passes through untouched
	w, h := cellFit(320, 180, 20, Grid{Cols: 4, Rows: 3})
	if w != 320 || h != 180 {
		t.Errorf("small sheet rescaled to %dx%d", w, h)
	}

	// oversized sheet shrinks under the cap
	grid := Grid{Cols: 6, Rows: 5}
	w, h = cellFit(1920, 1080, 20, grid)
	sheetW := grid.Cols*w + (grid.Cols+1)*1
	sheetH := grid.Rows*(h+20) + (grid.Rows+1)*1
	if sheetW > 4096 || sheetH > 4096 {
		t.Errorf("sheet %dx%d still over the cap", sheetW, sheetH)
	}
	if w < 1 || h < 1 {
		t.Errorf("cell collapsed to %dx%d", w, h)
	}
}
