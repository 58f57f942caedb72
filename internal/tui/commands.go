package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/controller"
	"github.com/mmcdole/tunedl/internal/domain"
	"github.com/mmcdole/tunedl/internal/opener"
	"github.com/mmcdole/tunedl/internal/service"
)

// Command factories for async operations

// SubmitDownloadCmd sends one download request. The timeout bounds the
// whole request; every outcome comes back as a DownloadDoneMsg.
func SubmitDownloadCmd(svc *service.DownloadService, url string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return DownloadDoneMsg{Response: svc.Submit(ctx, url)}
	}
}

// OrganizeCmd sends one organize request
func OrganizeCmd(svc *service.OrganizeService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return OrganizeDoneMsg{Response: svc.Run(ctx)}
	}
}

// CheckConnectivityCmd probes the service once
func CheckConnectivityCmd(svc *service.ConnectivityService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ConnectivityMsg{Online: svc.Check(ctx)}
	}
}

// ScheduleConnectivityCmd asks for the next probe after a delay
func ScheduleConnectivityCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ConnectivityTickMsg{}
	})
}

// SaveThemeCmd persists the theme preference
func SaveThemeCmd(svc *service.PreferenceService, theme domain.Theme) tea.Cmd {
	return func() tea.Msg {
		if err := svc.SaveTheme(theme); err != nil {
			return ErrMsg{Err: err, Context: "saving theme"}
		}
		return ThemeSavedMsg{}
	}
}

// SaveFileCmd writes a downloaded file into dir
func SaveFileCmd(svc *service.DownloadService, name, dir string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		path, err := svc.Save(ctx, name, dir)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving " + name}
		}
		return FileSavedMsg{Name: name, Path: path}
	}
}

// OpenLinkCmd hands a file link to the system opener
func OpenLinkCmd(o *opener.Opener, link controller.Link) tea.Cmd {
	return func() tea.Msg {
		if err := o.Open(link.Href); err != nil {
			return ErrMsg{Err: err, Context: "opening " + link.Name}
		}
		return FileOpenedMsg{Name: link.Name}
	}
}

// ExpireStatusCmd asks to clear a download status after a delay
func ExpireStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return StatusExpireMsg{ID: id}
	})
}

// ClearNoticeCmd returns a command that clears a footer notice after a delay
func ClearNoticeCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearNoticeMsg{ID: id}
	})
}
