package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tunedl/internal/domain"
)

// Palette is the set of colors a theme is drawn with
type Palette struct {
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Subtle     lipgloss.Color
	Dim        lipgloss.Color
	Green      lipgloss.Color
	Amber      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
}

// Color palettes
var (
	Light = Palette{
		Accent:     lipgloss.Color("#7C3AED"),
		Background: lipgloss.Color("#F9FAFB"),
		Surface:    lipgloss.Color("#E5E7EB"),
		Text:       lipgloss.Color("#111827"),
		Subtle:     lipgloss.Color("#374151"),
		Dim:        lipgloss.Color("#6B7280"),
		Green:      lipgloss.Color("#047857"),
		Amber:      lipgloss.Color("#B45309"),
		Red:        lipgloss.Color("#B91C1C"),
		Blue:       lipgloss.Color("#1D4ED8"),
	}

	Dark = Palette{
		Accent:     lipgloss.Color("#A78BFA"),
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1F2937"),
		Text:       lipgloss.Color("#F9FAFB"),
		Subtle:     lipgloss.Color("#9CA3AF"),
		Dim:        lipgloss.Color("#6B7280"),
		Green:      lipgloss.Color("#10B981"),
		Amber:      lipgloss.Color("#F59E0B"),
		Red:        lipgloss.Color("#EF4444"),
		Blue:       lipgloss.Color("#60A5FA"),
	}
)

// Status glyphs (unstyled)
const (
	SuccessChar = "✓"
	WarningChar = "!"
	ErrorChar   = "✗"
)

// Styles holds every style the views render with
type Styles struct {
	Palette Palette
	Base    lipgloss.Style // text on the theme background

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Link     lipgloss.Style
	Spinner  lipgloss.Style

	// Borders
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	InvalidBorder  lipgloss.Style

	// Controls
	Button         lipgloss.Style
	FocusedButton  lipgloss.Style
	DisabledButton lipgloss.Style

	// List items
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// New builds the styles for a palette
func New(p Palette) Styles {
	base := lipgloss.NewStyle().Background(p.Background)

	return Styles{
		Palette: p,
		Base:    base.Foreground(p.Text),

		Title: base.
			Foreground(p.Text).
			Bold(true),
		Subtitle: base.
			Foreground(p.Subtle),
		Dim: base.
			Foreground(p.Dim),
		Accent: base.
			Foreground(p.Accent),
		Success: base.
			Foreground(p.Green),
		Warning: base.
			Foreground(p.Amber),
		Error: base.
			Foreground(p.Red),
		Link: base.
			Foreground(p.Blue).
			Underline(true),
		Spinner: base.
			Foreground(p.Accent),

		ActiveBorder: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.Background),
		InactiveBorder: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dim).
			BorderBackground(p.Background),
		InvalidBorder: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Red).
			BorderBackground(p.Background),

		Button: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 2),
		FocusedButton: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Accent).
			Bold(true).
			Padding(0, 2),
		DisabledButton: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.Surface).
			Padding(0, 2),

		SelectedItem: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Accent).
			Padding(0, 1),
		NormalItem: base.
			Foreground(p.Subtle).
			Padding(0, 1),

		Modal: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.Background).
			Padding(1, 2),
		ModalTitle: base.
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		HelpKey: base.
			Foreground(p.Accent),
		HelpDesc: base.
			Foreground(p.Dim),
	}
}

var (
	lightStyles = New(Light)
	darkStyles  = New(Dark)
)

// For returns the styles for a theme
func For(t domain.Theme) Styles {
	if t.IsDark() {
		return darkStyles
	}
	return lightStyles
}
