package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tunedl/internal/tui/styles"
)

// URLInput is the URL text field with an optional history suggestion
type URLInput struct {
	input      textinput.Model
	suggestion string
}

// NewURLInput creates a focused, empty URL field
func NewURLInput() URLInput {
	ti := textinput.New()
	ti.Placeholder = "https://…"
	ti.Prompt = ""
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return URLInput{input: ti}
}

// Value returns the current field contents
func (u URLInput) Value() string {
	return u.input.Value()
}

// SetValue replaces the field contents and moves the cursor to the end
func (u *URLInput) SetValue(v string) {
	u.input.SetValue(v)
	u.input.CursorEnd()
	if v == "" {
		u.suggestion = ""
	}
}

// SetSuggestion sets the history entry offered for completion
func (u *URLInput) SetSuggestion(s string) {
	if s == u.input.Value() {
		s = ""
	}
	u.suggestion = s
}

// Suggestion returns the offered history entry, if any
func (u URLInput) Suggestion() string {
	return u.suggestion
}

// SetWidth sets the visible width of the field
func (u *URLInput) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	u.input.Width = w
}

// Focus gives the field the cursor
func (u *URLInput) Focus() tea.Cmd {
	return u.input.Focus()
}

// Blur removes the cursor
func (u *URLInput) Blur() {
	u.input.Blur()
}

// Focused reports whether the field has the cursor
func (u URLInput) Focused() bool {
	return u.input.Focused()
}

// Update handles input events, returns (field, cmd, changed)
func (u URLInput) Update(msg tea.Msg) (URLInput, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, URLInputKeys.Accept) {
		if u.acceptable(keyMsg) {
			u.SetValue(u.suggestion)
			u.suggestion = ""
			return u, nil, true
		}
	}

	before := u.input.Value()
	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd, u.input.Value() != before
}

// CanAccept reports whether msg would complete the suggestion
func (u URLInput) CanAccept(msg tea.KeyMsg) bool {
	return key.Matches(msg, URLInputKeys.Accept) && u.acceptable(msg)
}

func (u URLInput) acceptable(msg tea.KeyMsg) bool {
	if u.suggestion == "" {
		return false
	}
	// Right arrow only completes from the end of the text
	if msg.Type == tea.KeyRight {
		return u.input.Position() == len([]rune(u.input.Value()))
	}
	return true
}

// View renders the field inside a border that marks focus and validity
func (u URLInput) View(st styles.Styles, invalid bool, width int) string {
	border := st.InactiveBorder
	switch {
	case invalid:
		border = st.InvalidBorder
	case u.input.Focused():
		border = st.ActiveBorder
	}

	field := border.Width(max(width-2, 10)).Render(u.input.View())

	if u.suggestion == "" || !u.input.Focused() {
		return field
	}

	hint := st.Dim.Render("tab ") + st.Accent.Render(u.ghost())
	return lipgloss.JoinVertical(lipgloss.Left, field, " "+hint)
}

// ghost returns the suggestion with the typed prefix dimmed out when it
// extends what was typed
func (u URLInput) ghost() string {
	typed := u.input.Value()
	if typed != "" && len(typed) <= len(u.suggestion) && strings.EqualFold(u.suggestion[:len(typed)], typed) {
		return "…" + u.suggestion[len(typed):]
	}
	return u.suggestion
}
