package pipeline

// DefaultPalette is the first entry of the palette selector
const DefaultPalette = "plasma"

// DefaultColors is returned for any palette name that is not in the table
var DefaultColors = []string{"#333333", "#cccccc", "#888888", "#bbbbbb", "#dddddd"}

// paletteNames is the selector order offered to users. "orange" resolves but is
// not offered.
var paletteNames = []string{
	"plasma", "cividis", "greens", "inferno", "magma",
	"blues", "reds", "rainbow", "turbo", "viridis",
}

var palettes = map[string][]string{
	"blues":   {"#08306B", "#2171B5", "#4292C6", "#6BAED6", "#9ECAE1"},
	"greens":  {"#00441B", "#006D2C", "#238B45", "#41AB5D", "#74C476"},
	"orange":  {"#F39C12", "#875A12", "#FAB763", "#FDC98F", "#FFE0C1"},
	"reds":    {"#E74C3C", "#781F16", "#F5877E", "#F8B0AB", "#FBD7D3"},
	"cividis": {"#00204C", "#395A96", "#7A8FC6", "#BDC4E0", "#FFFFC8"},
	"inferno": {"#000004", "#420A68", "#932667", "#DD513A", "#FCA50A"},
	"magma":   {"#000004", "#3B0F70", "#8C2981", "#DE4968", "#FE9F6D"},
	"plasma":  {"#0D0887", "#6A00A8", "#B12A90", "#E16462", "#FCA636"},
	"rainbow": {"#E70000", "#FF8C00", "#FFD700", "#008000", "#00CED1"},
	"turbo":   {"#30123B", "#456F87", "#A8D865", "#EED607", "#FA9600"},
	"viridis": {"#440154", "#3B528B", "#21918C", "#5EC962", "#FDE725"},
}

// ResolvePalette returns the five colors of the named palette, or DefaultColors.
// The returned slice is a copy and may be modified by the caller.
func ResolvePalette(name string) []string {
	colors, ok := palettes[name]
	if !ok {
		colors = DefaultColors
	}
	return append([]string(nil), colors...)
}

// IsKnownPalette reports whether name has its own entry in the palette table
func IsKnownPalette(name string) bool {
	_, ok := palettes[name]
	return ok
}

// PaletteNames returns the palette selector options in display order
func PaletteNames() []string {
	return append([]string(nil), paletteNames...)
}
