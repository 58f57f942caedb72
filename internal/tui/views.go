package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	st := styles.For(m.State.Theme)
	if m.ShowHelp {
		return m.renderHelp(st)
	}

	width := m.contentWidth()
	sections := []string{
		m.renderHeader(st, width),
		"",
		st.Subtitle.Render("Track or playlist URL"),
		m.URLInput.View(st, m.State.URL.Invalid, width),
		"",
		m.renderButtons(st),
		"",
	}

	if status := RenderStatus(st, m.State.Download.Status, width); status != "" {
		sections = append(sections, status)
	}
	if files := m.Files.View(st, m.State.Focus == controller.FocusFiles, width); files != "" {
		sections = append(sections, "", files)
	}
	if status := RenderStatus(st, m.State.Organize.Status, width); status != "" {
		sections = append(sections, "", status)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	body = st.Base.Padding(1, 2).Render(body)

	page := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceVertical(m.Height-1, lipgloss.Top, body,
			lipgloss.WithWhitespaceBackground(st.Palette.Background)),
		m.renderFooter(st),
	)

	return lipgloss.Place(m.Width, m.Height, lipgloss.Left, lipgloss.Top, page,
		lipgloss.WithWhitespaceBackground(st.Palette.Background))
}

// renderHeader renders the title and the theme toggle
func (m Model) renderHeader(st styles.Styles, width int) string {
	title := st.Title.Render("tunedl")

	icon := controller.IconFor(m.State.Theme)
	toggle := st.Button.Render(icon.Glyph)
	if m.State.Focus == controller.FocusTheme {
		toggle = st.FocusedButton.Render(icon.Glyph) + st.Dim.Render(" "+icon.Alt)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	return title + st.Base.Render(strings.Repeat(" ", gap)) + toggle
}

// renderButtons renders the download and organize triggers
func (m Model) renderButtons(st styles.Styles) string {
	download := m.renderButton(st, "Download", m.State.Download.Trigger, m.State.Focus == controller.FocusDownload)
	organize := m.renderButton(st, "Organize library", m.State.Organize.Trigger, m.State.Focus == controller.FocusOrganize)
	return download + st.Base.Render("  ") + organize
}

func (m Model) renderButton(st styles.Styles, label string, t controller.Trigger, focused bool) string {
	if t.Spinner {
		label = m.Spinner.View() + " " + label
	}
	switch {
	case t.Disabled:
		return st.DisabledButton.Render(label)
	case focused:
		return st.FocusedButton.Render(label)
	default:
		return st.Button.Render(label)
	}
}

// RenderStatus renders a status region, or "" when nothing is shown
func RenderStatus(st styles.Styles, s controller.Status, width int) string {
	if s.IsEmpty() {
		return ""
	}

	msg := wordWrap(s.Message, width-2)
	switch s.Kind {
	case controller.StatusSuccess:
		return st.Success.Render(styles.SuccessChar + " " + msg)
	case controller.StatusWarning:
		return st.Warning.Render(styles.WarningChar + " " + msg)
	case controller.StatusError:
		return st.Error.Render(styles.ErrorChar + " " + msg)
	}
	return st.Base.Render(msg)
}

// renderFooter renders the notice line, or key hints when there is none
func (m Model) renderFooter(st styles.Styles) string {
	var left string
	switch {
	case m.Notice != "" && m.NoticeIsErr:
		left = st.Error.Render(m.Notice)
	case m.Notice != "":
		left = st.Success.Render(m.Notice)
	default:
		left = m.renderHints(st)
	}

	var right string
	switch m.State.Network {
	case controller.NetworkOnline:
		right = st.Success.Render("● online")
	case controller.NetworkOffline:
		right = st.Error.Render("● offline")
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return st.Base.Render(" ") + left + st.Base.Render(strings.Repeat(" ", gap)) + right + st.Base.Render(" ")
}

func (m Model) renderHints(st styles.Styles) string {
	hints := []struct{ key, desc string }{
		{"enter", "download"},
		{"tab", "next"},
		{"C-o", "organize"},
		{"C-t", "theme"},
		{"F1", "help"},
		{"C-c", "quit"},
	}
	if m.State.Focus == controller.FocusFiles {
		hints = []struct{ key, desc string }{
			{"enter", "save"},
			{"o", "open"},
			{"/", "filter"},
			{"tab", "next"},
			{"?", "help"},
		}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = st.HelpKey.Render(h.key) + st.HelpDesc.Render(" "+h.desc)
	}
	return strings.Join(parts, st.HelpDesc.Render(" · "))
}

// renderHelp renders the help screen
func (m Model) renderHelp(st styles.Styles) string {
	help := `
DOWNLOAD                              GENERAL
  enter        Download (URL field)     tab     Next control
  C-s/M-enter  Download from anywhere   S-tab   Previous control
  esc          Clear the URL            C-t     Toggle theme
  tab          Accept suggestion        ?/F1    This help
                                        C-c     Quit
FILES                                 LIBRARY
  j/k          Up/down                  C-o     Organize library
  /            Filter
  enter        Save to disk
  o            Open link

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		st.Modal.Render(st.Base.Render(help)),
		lipgloss.WithWhitespaceBackground(st.Palette.Background))
}

// wordWrap wraps each line of text at word boundaries, keeping the
// original line breaks
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var lines []string
	for _, src := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		var line strings.Builder
		lineWidth := 0
		for _, word := range strings.Fields(src) {
			w := lipgloss.Width(word)
			if lineWidth > 0 && lineWidth+1+w > width {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteString(" ")
				lineWidth++
			}
			line.WriteString(word)
			lineWidth += w
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
