package terminal

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary  = lipgloss.Color("#22D3EE") // Cyan, headers and chart
	colorAccent   = lipgloss.Color("#D946EF") // Fuchsia, tech maturity
	colorSuccess  = lipgloss.Color("#10B981") // Emerald, ready and nominal
	colorWarning  = lipgloss.Color("#F97316") // Orange, elevated risk
	colorDanger   = lipgloss.Color("#FF5252") // Red, failures
	colorMuted    = lipgloss.Color("#64748B") // Slate, labels and axis
	colorText     = lipgloss.Color("#CBD5E1")
	colorEmphasis = lipgloss.Color("#FFFFFF")
)

// Glyphs.
const (
	bulletMarker = "▹"
	barFilled    = "█"
	barEmpty     = "░"
)

// sparkLevels are the eighth-block glyphs of the trend sparkline, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorEmphasis).
			Bold(true)

	styleCategory = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStatusLoading = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusReady = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true)

	styleStatusFailed = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Dashboard styles.
var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleCardLabel = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCardValue = lipgloss.NewStyle().
			Foreground(colorEmphasis).
			Bold(true)

	styleChart = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleAxis = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Content styles.
var (
	styleHeader = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted).
			MarginTop(1)

	styleMarker = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleIndex = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleText = lipgloss.NewStyle().
			Foreground(colorText)

	styleEmphasis = lipgloss.NewStyle().
			Foreground(colorEmphasis).
			Bold(true)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)
)

// barColors maps feasibility rows to their bar colors.
var barColors = map[string]lipgloss.Color{
	"Scalability":   colorPrimary,
	"Tech Maturity": colorAccent,
}
