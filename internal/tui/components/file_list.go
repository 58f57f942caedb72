package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// FileAction is what the user asked to do with the selected file
type FileAction int

const (
	FileActionNone FileAction = iota
	FileActionSave
	FileActionOpen
)

// FileList shows the links of the last download with a fuzzy filter
type FileList struct {
	links []controller.Link

	cursor     int
	offset     int
	maxVisible int

	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // nil when no filter query
}

// NewFileList creates an empty file list
func NewFileList() FileList {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 100

	return FileList{
		filterInput: ti,
		maxVisible:  8,
	}
}

// SetLinks replaces the list contents and resets cursor and filter
func (l *FileList) SetLinks(links []controller.Link) {
	l.links = links
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// Links returns every link, ignoring the filter
func (l FileList) Links() []controller.Link {
	return l.links
}

// SetHeight sets how many rows are visible
func (l *FileList) SetHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	l.maxVisible = rows
	l.ensureVisible()
}

// Len returns the number of visible (filtered) entries
func (l FileList) Len() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.links)
}

// Selected returns the link under the cursor
func (l FileList) Selected() (controller.Link, bool) {
	if l.cursor < 0 || l.cursor >= l.Len() {
		return controller.Link{}, false
	}
	return l.links[l.index(l.cursor)], true
}

// IsFiltering returns true if filter mode is active
func (l FileList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l FileList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all files
func (l *FileList) ClearFilter() {
	l.clearFilter()
}

// Update handles keys while the list has focus
func (l FileList) Update(msg tea.KeyMsg) (FileList, tea.Cmd, FileAction) {
	if l.IsFilterTyping() {
		switch msg.Type {
		case tea.KeyEnter:
			// Keep the filter, go back to moving the cursor
			l.filterInput.Blur()
			return l, nil, FileActionNone
		case tea.KeyEsc:
			l.clearFilter()
			return l, nil, FileActionNone
		case tea.KeyUp, tea.KeyDown:
			l.moveCursor(msg.Type)
			return l, nil, FileActionNone
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return l, cmd, FileActionNone
	}

	switch {
	case key.Matches(msg, ListKeys.Up):
		l.moveCursor(tea.KeyUp)
	case key.Matches(msg, ListKeys.Down):
		l.moveCursor(tea.KeyDown)
	case key.Matches(msg, ListKeys.Top):
		l.cursor = 0
		l.ensureVisible()
	case key.Matches(msg, ListKeys.Bottom):
		l.cursor = max(l.Len()-1, 0)
		l.ensureVisible()
	case key.Matches(msg, ListKeys.Filter):
		l.filterActive = true
		return l, l.filterInput.Focus(), FileActionNone
	case key.Matches(msg, ListKeys.Save):
		return l, nil, FileActionSave
	case key.Matches(msg, ListKeys.Open):
		return l, nil, FileActionOpen
	}
	return l, nil, FileActionNone
}

// View renders the list
func (l FileList) View(st styles.Styles, focused bool, width int) string {
	if len(l.links) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(st.Subtitle.Render(fmt.Sprintf("Files (%d)", len(l.links))))
	b.WriteString("\n")

	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	n := l.Len()
	if n == 0 {
		b.WriteString(st.Dim.Render("  no matches"))
		return b.String()
	}

	end := min(l.offset+l.maxVisible, n)
	for i := l.offset; i < end; i++ {
		link := l.links[l.index(i)]
		name := truncate(link.Name, width-4)
		if focused && i == l.cursor {
			b.WriteString(st.SelectedItem.Render(name))
		} else {
			b.WriteString(st.NormalItem.Render(st.Link.Render(name)))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < n {
		b.WriteString("\n")
		b.WriteString(st.Dim.Render(fmt.Sprintf("  ↓ %d more", n-end)))
	}

	return b.String()
}

// Internal methods

func (l FileList) index(visible int) int {
	if l.filteredIdx != nil {
		return l.filteredIdx[visible]
	}
	return visible
}

func (l *FileList) moveCursor(dir tea.KeyType) {
	n := l.Len()
	if n == 0 {
		return
	}
	if dir == tea.KeyUp {
		l.cursor = max(l.cursor-1, 0)
	} else {
		l.cursor = min(l.cursor+1, n-1)
	}
	l.ensureVisible()
}

func (l *FileList) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *FileList) clearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
}

func (l *FileList) applyFilter() {
	query := l.filterInput.Value()
	if query == "" {
		l.filteredIdx = nil
		return
	}

	lowerNames := make([]string, len(l.links))
	for i, link := range l.links {
		lowerNames[i] = strings.ToLower(link.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerNames)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
