// Package controller holds the UI state of tunedl and the handlers that
// move it in response to user and network events. Nothing here touches the
// terminal or the network: handlers mutate State and return an Effect that
// the caller carries out.
package controller

import "github.com/mmcdole/tunedl/internal/domain"

// StatusKind selects how a status message is styled
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Status is one rendered status message. ID increases every time a
// message is shown so a delayed clear can tell whether it is still current.
type Status struct {
	ID      int
	Kind    StatusKind
	Message string
}

// IsEmpty reports whether nothing is shown
func (s Status) IsEmpty() bool {
	return s.Kind == StatusNone && s.Message == ""
}

// Link points at one downloaded file on the service
type Link struct {
	Name string
	Href string
}

// Trigger is the control that starts a request. While Disabled the
// progress indicator is shown and activating the control does nothing.
type Trigger struct {
	Disabled bool
	Spinner  bool
}

// Loading reports whether a request started by this trigger is in flight
func (t Trigger) Loading() bool {
	return t.Disabled || t.Spinner
}

func (t *Trigger) setLoading(loading bool) {
	t.Disabled = loading
	t.Spinner = loading
}

// URLField is the text input holding the URL to download
type URLField struct {
	Value   string
	Invalid bool
}

// DownloadPanel is the download status region and its file links
type DownloadPanel struct {
	Trigger Trigger
	Status  Status
	Links   []Link
}

// OrganizePanel is the organize status region
type OrganizePanel struct {
	Trigger Trigger
	Status  Status
}

// Focus identifies the control receiving key input
type Focus int

const (
	FocusURL Focus = iota
	FocusDownload
	FocusOrganize
	FocusFiles
	FocusTheme
)

var focusOrder = []Focus{FocusURL, FocusDownload, FocusOrganize, FocusFiles, FocusTheme}

// Network is the last known reachability of the service
type Network int

const (
	NetworkUnknown Network = iota
	NetworkOnline
	NetworkOffline
)

// State is the whole UI state
type State struct {
	Theme    domain.Theme
	URL      URLField
	Download DownloadPanel
	Organize OrganizePanel
	Focus    Focus
	Network  Network

	statusSeq int
}

// NewState returns the initial state: light theme, URL field focused
func NewState() *State {
	return &State{
		Theme: domain.ThemeLight,
		Focus: FocusURL,
	}
}

// FocusNext moves focus to the next control, skipping the file list when
// it is empty
func (s *State) FocusNext() {
	s.moveFocus(1)
}

// FocusPrev moves focus to the previous control
func (s *State) FocusPrev() {
	s.moveFocus(-1)
}

func (s *State) moveFocus(step int) {
	idx := 0
	for i, f := range focusOrder {
		if f == s.Focus {
			idx = i
			break
		}
	}
	for range focusOrder {
		idx = (idx + step + len(focusOrder)) % len(focusOrder)
		if focusOrder[idx] == FocusFiles && len(s.Download.Links) == 0 {
			continue
		}
		s.Focus = focusOrder[idx]
		return
	}
}

func (s *State) nextStatus(kind StatusKind, message string) Status {
	s.statusSeq++
	return Status{ID: s.statusSeq, Kind: kind, Message: message}
}

func (s *State) showDownloadStatus(kind StatusKind, message string) Status {
	s.Download.Status = s.nextStatus(kind, message)
	return s.Download.Status
}

func (s *State) showOrganizeStatus(kind StatusKind, message string) Status {
	s.Organize.Status = s.nextStatus(kind, message)
	return s.Organize.Status
}

func (s *State) resetDownloadRegion() {
	s.Download.Status = Status{}
	s.Download.Links = nil
	if s.Focus == FocusFiles {
		s.Focus = FocusDownload
	}
}
