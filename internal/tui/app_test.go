package tui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/backend"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/log"
	"github.com/mmcdole/tunedl/internal/opener"
	"github.com/mmcdole/tunedl/internal/service"
	"github.com/mmcdole/tunedl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	model    Model
	store    *store.PreferenceStore
	services Services
	requests int
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	f := &fixture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	st, err := store.NewPreferenceStore("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	f.store = st

	logger := log.NullLogger()
	client := backend.NewClient(srv.URL, 5*time.Second, logger)
	history := service.NewHistoryService(st, 10)

	f.services = Services{
		Download:     service.NewDownloadService(client, history, logger),
		Organize:     service.NewOrganizeService(client, logger),
		Preferences:  service.NewPreferenceService(st, logger),
		History:      history,
		Connectivity: service.NewConnectivityService(client, logger),
		Opener:       opener.New("", logger),
	}
	f.model = NewModel(f.services, Options{DownloadDir: t.TempDir(), DefaultTheme: domain.ThemeLight}, logger)
	f.send(t, tea.WindowSizeMsg{Width: 100, Height: 40})
	return f
}

// send feeds msg to the model and returns the resulting command
func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m
	return cmd
}

func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func TestEmptySubmitShowsErrorWithoutRequest(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, controller.StatusError, f.model.State.Download.Status.Kind)
	assert.Equal(t, controller.MsgEmptyURL, f.model.State.Download.Status.Message)
	assert.Equal(t, 0, f.requests)
}

func TestTypingFlagsInvalidURL(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	f.typeText(t, "not a url")
	assert.Equal(t, "not a url", f.model.State.URL.Value)
	assert.True(t, f.model.State.URL.Invalid)

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, controller.MsgInvalidURL, f.model.State.Download.Status.Message)
}

func TestDownloadRoundTrip(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download", r.URL.Path)
		assert.Equal(t, "https://example.com/track", r.FormValue("url"))
		jsonHandler(http.StatusOK, `{"success":true,"files":["a b.mp3","c.mp3"]}`)(w, r)
	})

	f.typeText(t, "https://example.com/track")
	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, f.model.State.Download.Trigger.Disabled)
	assert.True(t, f.model.State.Download.Trigger.Spinner)

	// Submitting again while loading is a no-op
	assert.Nil(t, f.send(t, tea.KeyMsg{Type: tea.KeyCtrlS}))

	msg := cmd()
	done, ok := msg.(DownloadDoneMsg)
	require.True(t, ok, "got %T", msg)
	assert.NotEmpty(t, done.Response.RequestID)

	f.send(t, done)
	assert.Equal(t, 1, f.requests)
	assert.False(t, f.model.State.Download.Trigger.Loading())
	assert.Equal(t, controller.StatusSuccess, f.model.State.Download.Status.Kind)
	assert.Equal(t, controller.MsgDownloadDone, f.model.State.Download.Status.Message)

	links := f.model.Files.Links()
	require.Len(t, links, 2)
	assert.True(t, strings.HasSuffix(links[0].Href, "/download/a%20b.mp3"))

	// The submitted URL is remembered
	assert.Equal(t, []string{"https://example.com/track"}, f.services.History.URLs())

	view := f.model.View()
	assert.Contains(t, view, controller.MsgDownloadDone)
	assert.Contains(t, view, "a b.mp3")
}

func TestDownloadFailureRendersServerError(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusInternalServerError, `{"error":"yt-dlp exploded"}`))

	f.typeText(t, "https://example.com/track")
	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	f.send(t, cmd())
	assert.Equal(t, controller.StatusError, f.model.State.Download.Status.Kind)
	assert.Equal(t, "yt-dlp exploded", f.model.State.Download.Status.Message)
	assert.Empty(t, f.model.Files.Links())
}

func TestOrganizeRoundTrip(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organize", r.URL.Path)
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.NotNil(t, cmd)
	assert.True(t, f.model.State.Organize.Trigger.Disabled)

	f.send(t, cmd())
	assert.False(t, f.model.State.Organize.Trigger.Disabled)
	assert.Equal(t, controller.MsgOrganizeDone, f.model.State.Organize.Status.Message)
	assert.True(t, f.model.State.Download.Status.IsEmpty())
}

func TestThemeTogglePersists(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))
	assert.Equal(t, domain.ThemeLight, f.model.State.Theme)

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, domain.ThemeDark, f.model.State.Theme)
	require.NotNil(t, cmd)
	assert.IsType(t, ThemeSavedMsg{}, cmd())

	stored, ok := f.store.GetPreference(domain.ThemeKey)
	assert.True(t, ok)
	assert.Equal(t, "dark", stored)

	// A fresh model picks the stored theme up
	m := NewModel(f.services, Options{DefaultTheme: domain.ThemeLight}, log.NullLogger())
	assert.Equal(t, domain.ThemeDark, m.State.Theme)
}

func TestEscapeClearsURLAndFocusesIt(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	f.typeText(t, "https://example.com")
	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.FocusDownload, f.model.State.Focus)
	assert.False(t, f.model.URLInput.Focused())

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, f.model.State.URL.Value)
	assert.Empty(t, f.model.URLInput.Value())
	assert.Equal(t, controller.FocusURL, f.model.State.Focus)
	assert.True(t, f.model.URLInput.Focused())
}

func TestEscapeFromFilteredFilesClearsURLAndFilter(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{"success":true,"files":["a.mp3","b.mp3"]}`))

	f.typeText(t, "https://example.com/album")
	f.send(t, f.send(t, tea.KeyMsg{Type: tea.KeyEnter})())
	require.Len(t, f.model.Files.Links(), 2)

	for i := 0; i < 3; i++ {
		f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, controller.FocusFiles, f.model.State.Focus)

	f.typeText(t, "/")
	f.typeText(t, "b")
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, f.model.Files.IsFiltering())
	require.False(t, f.model.Files.IsFilterTyping())
	require.Equal(t, 1, f.model.Files.Len())

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.Files.IsFiltering())
	assert.Equal(t, 2, f.model.Files.Len())
	assert.Empty(t, f.model.State.URL.Value)
	assert.Equal(t, controller.FocusURL, f.model.State.Focus)
}

func TestEnterOnFocusedButtons(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, controller.FocusOrganize, f.model.State.Focus)

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, f.model.State.Organize.Trigger.Disabled)

	// Files is skipped while empty
	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, controller.FocusTheme, f.model.State.Focus)
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.ThemeDark, f.model.State.Theme)
}

func TestHistorySuggestionAccept(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))
	require.NoError(t, f.services.History.Record("https://soundcloud.com/artist/track"))

	f.typeText(t, "https://sou")
	assert.Equal(t, "https://soundcloud.com/artist/track", f.model.URLInput.Suggestion())

	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.FocusURL, f.model.State.Focus)
	assert.Equal(t, "https://soundcloud.com/artist/track", f.model.URLInput.Value())
	assert.Equal(t, "https://soundcloud.com/artist/track", f.model.State.URL.Value)
	assert.Empty(t, f.model.URLInput.Suggestion())

	// Without a suggestion Tab moves focus
	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.FocusDownload, f.model.State.Focus)
}

func TestConnectivityNotices(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	f.send(t, ConnectivityMsg{Online: true})
	assert.True(t, f.model.State.Download.Status.IsEmpty())

	f.send(t, ConnectivityMsg{Online: false})
	assert.Equal(t, controller.MsgConnectionLost, f.model.State.Download.Status.Message)
	assert.Contains(t, f.model.View(), "offline")

	f.send(t, ConnectivityMsg{Online: true})
	notice := f.model.State.Download.Status
	assert.Equal(t, controller.MsgConnectionRestore, notice.Message)

	f.send(t, StatusExpireMsg{ID: notice.ID - 1})
	assert.Equal(t, notice, f.model.State.Download.Status)

	f.send(t, StatusExpireMsg{ID: notice.ID})
	assert.True(t, f.model.State.Download.Status.IsEmpty())
}

func TestConnectivityProbe(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	cmd := f.send(t, ConnectivityTickMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, ConnectivityMsg{Online: true}, cmd())
}

func TestFooterNotice(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	f.send(t, FileSavedMsg{Name: "a.mp3", Path: "/music/a.mp3"})
	assert.Equal(t, "Saved /music/a.mp3", f.model.Notice)
	id := f.model.noticeID

	f.send(t, ErrMsg{Err: domain.ErrFileNotFound, Context: "saving b.mp3"})
	assert.True(t, f.model.NoticeIsErr)
	assert.Contains(t, f.model.Notice, "saving b.mp3")

	// A stale clear leaves the newer notice alone
	f.send(t, ClearNoticeMsg{ID: id})
	assert.NotEmpty(t, f.model.Notice)

	f.send(t, ClearNoticeMsg{ID: f.model.noticeID})
	assert.Empty(t, f.model.Notice)
}

func TestSaveFileCmd(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/a b.mp3", r.URL.Path)
		fmt.Fprint(w, "audio")
	})

	dir := t.TempDir()
	msg := SaveFileCmd(f.services.Download, "a b.mp3", dir, 5*time.Second)()
	saved, ok := msg.(FileSavedMsg)
	require.True(t, ok, "got %T", msg)
	assert.True(t, strings.HasPrefix(saved.Path, dir))
}

func TestHelpScreen(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	// ? is ordinary text inside the URL field
	f.typeText(t, "?")
	assert.False(t, f.model.ShowHelp)
	assert.Equal(t, "?", f.model.URLInput.Value())

	f.send(t, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, f.model.ShowHelp)
	assert.Contains(t, f.model.View(), "Press any key to return")

	f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, f.model.ShowHelp)
	assert.Equal(t, "?", f.model.URLInput.Value())
}

func TestQuit(t *testing.T) {
	f := newFixture(t, jsonHandler(http.StatusOK, `{}`))

	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
