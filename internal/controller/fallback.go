package controller

import (
	"strings"

	"github.com/mmcdole/tunedl/internal/domain"
)

// Extractor pulls one candidate message out of a payload
type Extractor[T any] func(T) string

// FirstMessage applies the extractors in order and returns the first
// non-blank result
func FirstMessage[T any](payload T, chain ...Extractor[T]) string {
	for _, extract := range chain {
		if msg := strings.TrimSpace(extract(payload)); msg != "" {
			return msg
		}
	}
	return ""
}

// Fixed always yields msg; use it last in a chain
func Fixed[T any](msg string) Extractor[T] {
	return func(T) string { return msg }
}

// User-facing messages
const (
	MsgEmptyURL          = "Please enter a valid URL"
	MsgInvalidURL        = "Please enter a valid URL format"
	MsgDownloadDone      = "Download completed successfully!"
	MsgDownloadNoFiles   = "Download completed! Check your downloads folder."
	MsgDownloadPending   = "Download may be processing. Please check your downloads folder."
	MsgDownloadFailed    = "Download failed. Please try again."
	MsgOrganizeDone      = "Music organized successfully!"
	MsgOrganizeFailed    = "Organization failed. Please try again."
	MsgNetworkError      = "Network error. Please check your connection and try again."
	MsgConnectionLost    = "Connection lost. Please check your internet connection."
	MsgConnectionRestore = "Connection restored"
)

var (
	downloadSuccessChain = []Extractor[domain.DownloadResult]{
		func(r domain.DownloadResult) string { return r.Message },
		Fixed[domain.DownloadResult](MsgDownloadDone),
	}

	downloadErrorChain = []Extractor[domain.DownloadResult]{
		func(r domain.DownloadResult) string { return r.Error },
		func(r domain.DownloadResult) string { return r.Details },
		Fixed[domain.DownloadResult](MsgDownloadFailed),
	}

	organizeSuccessChain = []Extractor[domain.OrganizeResult]{
		func(r domain.OrganizeResult) string { return r.Message },
		Fixed[domain.OrganizeResult](MsgOrganizeDone),
	}

	organizeErrorChain = []Extractor[domain.OrganizeResult]{
		func(r domain.OrganizeResult) string { return r.Error },
		func(r domain.OrganizeResult) string { return r.Details },
		Fixed[domain.OrganizeResult](MsgOrganizeFailed),
	}
)
