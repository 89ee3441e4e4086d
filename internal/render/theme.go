package render

// ThemeToken is a semantic color slot resolved to a concrete RGBA by the
// external renderer's own theme table. The core never picks a literal
// color; it only ever names one of these.
type ThemeToken string

const (
	ThemeFlameHot     ThemeToken = "flame_hot"
	ThemeFlameWarm    ThemeToken = "flame_warm"
	ThemeFlameCold    ThemeToken = "flame_cold"
	ThemeFlameNeutral ThemeToken = "flame_neutral"

	ThemeLaneBackground       ThemeToken = "lane_background"
	ThemeLaneBorder           ThemeToken = "lane_border"
	ThemeLaneHeaderBackground ThemeToken = "lane_header_background"
	ThemeLaneHeaderText       ThemeToken = "lane_header_text"

	ThemeTextPrimary   ThemeToken = "text_primary"
	ThemeTextSecondary ThemeToken = "text_secondary"
	ThemeTextMuted     ThemeToken = "text_muted"

	ThemeSelectionHighlight ThemeToken = "selection_highlight"
	ThemeHoverHighlight     ThemeToken = "hover_highlight"

	ThemeBackground ThemeToken = "background"
	ThemeSurface    ThemeToken = "surface"
	ThemeBorder     ThemeToken = "border"

	ThemeTableHeaderBackground ThemeToken = "table_header_background"
	ThemeTableBorder           ThemeToken = "table_border"
	ThemeTableRowEven          ThemeToken = "table_row_even"
	ThemeTableRowOdd           ThemeToken = "table_row_odd"
	ThemeBarFill               ThemeToken = "bar_fill"

	ThemeMinimapBackground ThemeToken = "minimap_background"
	ThemeMinimapViewport   ThemeToken = "minimap_viewport"
)

// colorForDepth cycles the four flame tokens by stack depth, the shared
// coloring rule used by every depth-based view (time-order, left-heavy,
// minimap).
func colorForDepth(depth uint32) ThemeToken {
	switch depth % 4 {
	case 0:
		return ThemeFlameHot
	case 1:
		return ThemeFlameWarm
	case 2:
		return ThemeFlameCold
	default:
		return ThemeFlameNeutral
	}
}
