package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Quit) {
		return m, tea.Quit
	}

	// Any key closes the help screen
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Global keys, active whatever has focus
	switch {
	case key.Matches(msg, Keys.Submit):
		return m, m.dispatch(controller.Event{Name: controller.EventDownloadSubmit})

	case key.Matches(msg, Keys.ToggleTheme):
		return m, m.dispatch(controller.Event{Name: controller.EventThemeToggle})

	case key.Matches(msg, Keys.Organize):
		return m, m.dispatch(controller.Event{Name: controller.EventOrganizeTrigger})

	case key.Matches(msg, Keys.HelpAlt):
		m.ShowHelp = true
		return m, nil
	}

	switch m.State.Focus {
	case controller.FocusURL:
		return m.handleURLKey(msg)
	case controller.FocusFiles:
		if m.Files.IsFilterTyping() {
			return m.handleFilesKey(msg)
		}
	}

	switch {
	case key.Matches(msg, Keys.Clear):
		// Escape clears the URL from anywhere, and an applied filter with it
		if m.Files.IsFiltering() {
			m.Files.ClearFilter()
		}
		return m, m.clearURL()

	case key.Matches(msg, Keys.Next):
		m.State.FocusNext()
		return m, m.syncComponents()

	case key.Matches(msg, Keys.Prev):
		m.State.FocusPrev()
		return m, m.syncComponents()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.QuitSoft):
		return m, tea.Quit
	}

	switch m.State.Focus {
	case controller.FocusFiles:
		return m.handleFilesKey(msg)

	case controller.FocusDownload:
		if key.Matches(msg, Keys.Enter) {
			return m, m.dispatch(controller.Event{Name: controller.EventDownloadSubmit})
		}

	case controller.FocusOrganize:
		if key.Matches(msg, Keys.Enter) {
			return m, m.dispatch(controller.Event{Name: controller.EventOrganizeTrigger})
		}

	case controller.FocusTheme:
		if key.Matches(msg, Keys.Enter) {
			return m, m.dispatch(controller.Event{Name: controller.EventThemeToggle})
		}
	}

	return m, nil
}

// handleURLKey handles keys while the URL field has focus
func (m Model) handleURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.URLInput.CanAccept(msg) {
		var cmd tea.Cmd
		m.URLInput, cmd, _ = m.URLInput.Update(msg)
		return m, tea.Batch(cmd, m.dispatch(controller.Event{Name: controller.EventURLInput, Value: m.URLInput.Value()}))
	}

	switch {
	case key.Matches(msg, Keys.Enter):
		return m, m.dispatch(controller.Event{Name: controller.EventDownloadSubmit})

	case key.Matches(msg, Keys.Clear):
		return m, m.clearURL()

	case key.Matches(msg, Keys.Next):
		m.State.FocusNext()
		return m, m.syncComponents()

	case key.Matches(msg, Keys.Prev):
		m.State.FocusPrev()
		return m, m.syncComponents()
	}

	var cmd tea.Cmd
	var changed bool
	m.URLInput, cmd, changed = m.URLInput.Update(msg)
	if !changed {
		return m, cmd
	}

	m.refreshSuggestion()
	return m, tea.Batch(cmd, m.dispatch(controller.Event{Name: controller.EventURLInput, Value: m.URLInput.Value()}))
}

// handleFilesKey routes keys to the file list and runs the chosen action
func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action components.FileAction
	m.Files, cmd, action = m.Files.Update(msg)

	link, ok := m.Files.Selected()
	if !ok {
		return m, cmd
	}

	switch action {
	case components.FileActionSave:
		return m, tea.Batch(cmd,
			m.setNotice("Saving "+link.Name+"…", false),
			SaveFileCmd(m.svcs.Download, link.Name, m.opts.DownloadDir, m.opts.RequestTimeout),
		)
	case components.FileActionOpen:
		if m.svcs.Opener == nil {
			return m, tea.Batch(cmd, m.setNotice("No opener configured", true))
		}
		return m, tea.Batch(cmd, OpenLinkCmd(m.svcs.Opener, link))
	}
	return m, cmd
}

// clearURL empties a non-empty URL field and gives it focus
func (m *Model) clearURL() tea.Cmd {
	if m.State.URL.Value == "" && m.URLInput.Value() == "" {
		return nil
	}
	m.URLInput.SetSuggestion("")
	return m.dispatch(controller.Event{Name: controller.EventURLClear})
}
