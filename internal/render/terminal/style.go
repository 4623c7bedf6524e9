package terminal

import "github.com/charmbracelet/lipgloss"

var (
	colorLink   = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorText   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorSearch = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	colorError  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	colorBinary = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}

	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
)

var (
	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)
	styleInfo  = lipgloss.NewStyle().Foreground(colorBright)
	styleBadge = lipgloss.NewStyle().Foreground(colorBinary).Italic(true)

	styleDisplay = lipgloss.NewStyle().Foreground(colorBright)
	styleTarget  = lipgloss.NewStyle().Foreground(colorDim)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)

// labelStyles colors the type column by item kind.
var labelStyles = map[string]lipgloss.Style{
	"0": lipgloss.NewStyle().Foreground(colorText).Bold(true),
	"1": lipgloss.NewStyle().Foreground(colorLink).Bold(true),
	"3": lipgloss.NewStyle().Foreground(colorError).Bold(true),
	"7": lipgloss.NewStyle().Foreground(colorSearch).Bold(true),
	"9": lipgloss.NewStyle().Foreground(colorBinary).Bold(true),
	"g": lipgloss.NewStyle().Foreground(colorBinary).Bold(true),
	"h": lipgloss.NewStyle().Foreground(colorLink).Bold(true),
}

var styleLabelDefault = lipgloss.NewStyle().Foreground(colorDim).Bold(true)
