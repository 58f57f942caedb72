package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/tunedl/internal/domain"
)

// EventName identifies what happened
type EventName string

const (
	EventThemeToggle     EventName = "theme.toggle"
	EventURLInput        EventName = "url.input"
	EventURLClear        EventName = "url.clear"
	EventDownloadSubmit  EventName = "download.submit"
	EventDownloadResult  EventName = "download.result"
	EventOrganizeTrigger EventName = "organize.trigger"
	EventOrganizeResult  EventName = "organize.result"
	EventOnline          EventName = "net.online"
	EventOffline         EventName = "net.offline"
	EventStatusExpire    EventName = "status.expire"
)

// Event carries whatever its handler needs
type Event struct {
	Name     EventName
	Value    string // url.input
	Download *domain.DownloadResponse
	Organize *domain.OrganizeResponse
	StatusID int // status.expire
}

// EffectKind is the side effect the caller must perform
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectPersistTheme
	EffectDownload
	EffectOrganize
	EffectExpireStatus
)

// Effect describes work a handler asks for. Handlers never do I/O.
type Effect struct {
	Kind     EffectKind
	Theme    domain.Theme  // EffectPersistTheme
	URL      string        // EffectDownload
	Delay    time.Duration // EffectExpireStatus
	StatusID int           // EffectExpireStatus
}

// NoticeDuration is how long the "connection restored" notice stays up
const NoticeDuration = 3 * time.Second

// Handler updates the state for one event
type Handler func(*State, Event) Effect

// Dispatcher maps event names to handlers
type Dispatcher struct {
	handlers map[EventName]Handler
	fileURL  func(name string) string
	logger   *slog.Logger
}

// NewDispatcher builds the default handler table. fileURL turns a file
// name into its download link.
func NewDispatcher(fileURL func(name string) string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		fileURL: fileURL,
		logger:  logger,
	}
	d.handlers = map[EventName]Handler{
		EventThemeToggle:     ToggleTheme,
		EventURLInput:        InputURL,
		EventURLClear:        ClearURL,
		EventDownloadSubmit:  SubmitDownload,
		EventDownloadResult:  d.downloadResult,
		EventOrganizeTrigger: TriggerOrganize,
		EventOrganizeResult:  d.organizeResult,
		EventOnline:          WentOnline,
		EventOffline:         WentOffline,
		EventStatusExpire:    ExpireStatus,
	}
	return d
}

// Handle replaces the handler for name
func (d *Dispatcher) Handle(name EventName, h Handler) {
	d.handlers[name] = h
}

// Handler returns the handler registered for name
func (d *Dispatcher) Handler(name EventName) (Handler, bool) {
	h, ok := d.handlers[name]
	return h, ok
}

// Dispatch runs the handler for ev. Unknown events are ignored.
func (d *Dispatcher) Dispatch(s *State, ev Event) Effect {
	h, ok := d.handlers[ev.Name]
	if !ok {
		d.logger.Debug("unhandled event", "event", ev.Name)
		return Effect{}
	}
	return h(s, ev)
}

func (d *Dispatcher) downloadResult(s *State, ev Event) Effect {
	if ev.Download == nil {
		return Effect{}
	}
	return ApplyDownload(s, *ev.Download, d.fileURL, d.logger)
}

func (d *Dispatcher) organizeResult(s *State, ev Event) Effect {
	if ev.Organize == nil {
		return Effect{}
	}
	return ApplyOrganize(s, *ev.Organize, d.logger)
}

func isOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
