package config

const (
	// sheet defaults
	DefaultMaxTiles  = 16
	DefaultCellWidth = 320 // max width of a single tile, px
	DefaultGridColor = "808080"

	// AspectBias nudges the grid toward more columns than rows.
	// Landscape frames read better left to right with extra
	// horizontal room.
	AspectBias = 1.25

	// MaxSheetDim caps the longest side of the composite, px.
	// Keeps output file size bounded for long renders.
	MaxSheetDim = 4096

	GridLineWidth = 1
	LabelSize     = 12
	LabelHeight   = LabelSize + 8 // label strip under each tile
	LabelPad      = 2

	// render defaults
	DefaultFPS     = 2
	DefaultQuality = "low"

	// Path
	PathMediaDir = "media/images"

	SheetDefaultName = "contact_sheet.png"
	SheetSuffix      = "_sheet.png"
)
