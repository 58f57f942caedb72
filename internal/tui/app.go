package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/opener"
	"github.com/mmcdole/tunedl/internal/service"
	"github.com/mmcdole/tunedl/internal/tui/components"
)

// Layout
const (
	MaxContentWidth = 100
	MinContentWidth = 30

	// Rows used by everything except the file list
	ChromeHeight = 16

	NoticeDuration = 4 * time.Second
)

// Services groups the dependencies the model calls into
type Services struct {
	Download     *service.DownloadService
	Organize     *service.OrganizeService
	Preferences  *service.PreferenceService   // optional
	History      *service.HistoryService      // optional
	Connectivity *service.ConnectivityService // optional
	Opener       *opener.Opener               // optional
}

// Options tunes the model
type Options struct {
	DownloadDir     string
	RequestTimeout  time.Duration
	OfflineInterval time.Duration
	DefaultTheme    domain.Theme
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	ShowHelp bool

	// UI state and the handlers that move it
	State      *controller.State
	dispatcher *controller.Dispatcher

	svcs   Services
	opts   Options
	logger *slog.Logger

	// UI Components
	URLInput components.URLInput
	Files    components.FileList
	Spinner  spinner.Model

	// Dimensions
	Width  int
	Height int

	// Footer notice for file actions, separate from the status regions
	Notice      string
	NoticeIsErr bool
	noticeID    int
}

// NewModel creates a new application model
func NewModel(svcs Services, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Minute
	}
	if opts.OfflineInterval <= 0 {
		opts.OfflineInterval = 5 * time.Second
	}

	state := controller.NewState()
	stored, ok := "", false
	if svcs.Preferences != nil {
		stored, ok = svcs.Preferences.Theme()
	}
	controller.InitTheme(state, stored, ok, opts.DefaultTheme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		State:      state,
		dispatcher: controller.NewDispatcher(svcs.Download.FileURL, logger),
		svcs:       svcs,
		opts:       opts,
		logger:     logger,
		URLInput:   components.NewURLInput(),
		Files:      components.NewFileList(),
		Spinner:    sp,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Spinner.Tick, textinput.Blink}
	if m.svcs.Connectivity != nil {
		cmds = append(cmds, CheckConnectivityCmd(m.svcs.Connectivity))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case DownloadDoneMsg:
		resp := msg.Response
		return m, m.dispatch(controller.Event{Name: controller.EventDownloadResult, Download: &resp})

	case OrganizeDoneMsg:
		resp := msg.Response
		return m, m.dispatch(controller.Event{Name: controller.EventOrganizeResult, Organize: &resp})

	case ConnectivityMsg:
		name := controller.EventOffline
		if msg.Online {
			name = controller.EventOnline
		}
		return m, tea.Batch(
			m.dispatch(controller.Event{Name: name}),
			ScheduleConnectivityCmd(m.opts.OfflineInterval),
		)

	case ConnectivityTickMsg:
		if m.svcs.Connectivity == nil {
			return m, nil
		}
		return m, CheckConnectivityCmd(m.svcs.Connectivity)

	case StatusExpireMsg:
		return m, m.dispatch(controller.Event{Name: controller.EventStatusExpire, StatusID: msg.ID})

	case FileSavedMsg:
		return m, m.setNotice("Saved "+msg.Path, false)

	case FileOpenedMsg:
		return m, m.setNotice("Opened "+msg.Name, false)

	case ThemeSavedMsg:
		return m, nil

	case ErrMsg:
		m.logger.Error("action failed", "context", msg.Context, "error", msg.Err)
		return m, m.setNotice(msg.Error(), true)

	case ClearNoticeMsg:
		if msg.ID == m.noticeID {
			m.Notice = ""
			m.NoticeIsErr = false
		}
		return m, nil
	}

	// Cursor blink and anything else the field understands
	var cmd tea.Cmd
	m.URLInput, cmd, _ = m.URLInput.Update(msg)
	return m, cmd
}

// dispatch runs the controller for ev, mirrors the new state into the
// components and turns the returned effect into a command
func (m *Model) dispatch(ev controller.Event) tea.Cmd {
	effect := m.dispatcher.Dispatch(m.State, ev)
	focusCmd := m.syncComponents()
	return tea.Batch(focusCmd, m.effectCmd(effect))
}

// effectCmd carries out what a handler asked for
func (m *Model) effectCmd(e controller.Effect) tea.Cmd {
	switch e.Kind {
	case controller.EffectPersistTheme:
		if m.svcs.Preferences == nil {
			return nil
		}
		return SaveThemeCmd(m.svcs.Preferences, e.Theme)
	case controller.EffectDownload:
		return SubmitDownloadCmd(m.svcs.Download, e.URL, m.opts.RequestTimeout)
	case controller.EffectOrganize:
		return OrganizeCmd(m.svcs.Organize, m.opts.RequestTimeout)
	case controller.EffectExpireStatus:
		return ExpireStatusCmd(e.StatusID, e.Delay)
	}
	return nil
}

// syncComponents copies controller state into the widgets that keep their
// own copy of it
func (m *Model) syncComponents() tea.Cmd {
	if m.URLInput.Value() != m.State.URL.Value {
		m.URLInput.SetValue(m.State.URL.Value)
	}

	if !sameLinks(m.Files.Links(), m.State.Download.Links) {
		m.Files.SetLinks(m.State.Download.Links)
	}

	if m.State.Focus == controller.FocusURL {
		if !m.URLInput.Focused() {
			return m.URLInput.Focus()
		}
		return nil
	}
	m.URLInput.Blur()
	return nil
}

// refreshSuggestion offers the best history match for the typed text
func (m *Model) refreshSuggestion() {
	if m.svcs.History == nil {
		return
	}
	matches := m.svcs.History.Suggest(m.URLInput.Value())
	if len(matches) == 0 {
		m.URLInput.SetSuggestion("")
		return
	}
	m.URLInput.SetSuggestion(matches[0])
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeID++
	m.Notice = text
	m.NoticeIsErr = isErr
	return ClearNoticeCmd(m.noticeID, NoticeDuration)
}

func (m *Model) updateLayout() {
	w := m.contentWidth()
	m.URLInput.SetWidth(w - 4)
	m.Files.SetHeight(m.Height - ChromeHeight)
}

func (m Model) contentWidth() int {
	w := m.Width - 4
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < MinContentWidth {
		w = MinContentWidth
	}
	return w
}

func sameLinks(a, b []controller.Link) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
