package controller

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/tunedl/internal/domain"
)

// InputURL records the field value and flags it invalid when it is
// non-empty and does not parse. The flag is only a visual cue.
func InputURL(s *State, ev Event) Effect {
	s.URL.Value = ev.Value
	trimmed, err := ValidateURL(ev.Value)
	s.URL.Invalid = trimmed != "" && err != nil
	return Effect{}
}

// ClearURL empties the field and focuses it
func ClearURL(s *State, _ Event) Effect {
	s.URL = URLField{}
	s.Focus = FocusURL
	return Effect{}
}

// SubmitDownload validates the field and, when it holds a URL, enters the
// loading state and asks for the request to be sent. Submitting while the
// trigger is disabled does nothing.
func SubmitDownload(s *State, _ Event) Effect {
	if s.Download.Trigger.Disabled {
		return Effect{}
	}

	s.resetDownloadRegion()

	url, err := ValidateURL(s.URL.Value)
	switch {
	case errors.Is(err, domain.ErrEmptyURL):
		s.showDownloadStatus(StatusError, MsgEmptyURL)
		return Effect{}
	case err != nil:
		s.showDownloadStatus(StatusError, MsgInvalidURL)
		return Effect{}
	}

	s.Download.Trigger.setLoading(true)
	return Effect{Kind: EffectDownload, URL: url}
}

// ApplyDownload leaves the loading state and renders the response
func ApplyDownload(s *State, resp domain.DownloadResponse, fileURL func(string) string, logger *slog.Logger) Effect {
	if logger == nil {
		logger = slog.Default()
	}
	s.Download.Trigger.setLoading(false)

	if resp.Err != nil {
		logger.Error("download request failed", "error", resp.Err, "status", resp.StatusCode, "request_id", resp.RequestID)
		s.showDownloadStatus(StatusError, MsgNetworkError)
		return Effect{}
	}

	result := resp.Result
	if !isOK(resp.StatusCode) || result.ExplicitFailure() {
		logger.Error("download error",
			"status", resp.StatusCode,
			"error", result.Error,
			"details", result.Details,
			"message", result.Message,
			"request_id", resp.RequestID,
		)
		s.showDownloadStatus(StatusError, FirstMessage(result, downloadErrorChain...))
		return Effect{}
	}

	kind := StatusSuccess
	if result.Warning {
		kind = StatusWarning
	}

	switch {
	case len(result.Files) > 0:
		s.showDownloadStatus(kind, FirstMessage(result, downloadSuccessChain...))
		s.Download.Links = BuildLinks(result.Files, fileURL)
	case result.ExplicitSuccess():
		s.showDownloadStatus(kind, MsgDownloadNoFiles)
	default:
		s.showDownloadStatus(StatusWarning, MsgDownloadPending)
	}
	return Effect{}
}

// BuildLinks returns one link per file name, in order
func BuildLinks(files []string, fileURL func(string) string) []Link {
	if len(files) == 0 {
		return nil
	}
	links := make([]Link, 0, len(files))
	for _, name := range files {
		links = append(links, Link{Name: name, Href: fileURL(name)})
	}
	return links
}
