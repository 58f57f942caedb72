package tui

import "github.com/mmcdole/tunedl/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DownloadDoneMsg carries the outcome of a download request
type DownloadDoneMsg struct {
	Response domain.DownloadResponse
}

// OrganizeDoneMsg carries the outcome of an organize request
type OrganizeDoneMsg struct {
	Response domain.OrganizeResponse
}

// ConnectivityMsg reports the result of a reachability probe
type ConnectivityMsg struct {
	Online bool
}

// ConnectivityTickMsg asks for the next reachability probe
type ConnectivityTickMsg struct{}

// StatusExpireMsg asks to clear a download status if it is still shown
type StatusExpireMsg struct {
	ID int
}

// FileSavedMsg signals that a file was written to disk
type FileSavedMsg struct {
	Name string
	Path string
}

// FileOpenedMsg signals that a link was handed to the opener
type FileOpenedMsg struct {
	Name string
}

// ThemeSavedMsg signals that the theme preference was persisted
type ThemeSavedMsg struct{}

// ClearNoticeMsg clears the footer notice if it is still the one shown
type ClearNoticeMsg struct {
	ID int
}
