package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Outcome colors: emerald for pass, rose for fail, blue for turns.
	colorPass = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorFail = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
	colorTurn = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}

	// UI colors.
	colorBright  = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorTool    = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // purple
	colorChanged = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"} // amber
)

var (
	styleTurnBadge   = lipgloss.NewStyle().Foreground(colorTurn).Bold(true)
	styleResultBadge = lipgloss.NewStyle().Foreground(colorPass).Bold(true)

	stylePass = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	styleFail = lipgloss.NewStyle().Foreground(colorFail).Bold(true)

	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)

	styleToolName   = lipgloss.NewStyle().Foreground(colorTool).Bold(true)
	styleToolDetail = lipgloss.NewStyle().Foreground(colorDim)

	styleAdded   = lipgloss.NewStyle().Foreground(colorPass)
	styleChanged = lipgloss.NewStyle().Foreground(colorChanged)
	styleRemoved = lipgloss.NewStyle().Foreground(colorFail)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
