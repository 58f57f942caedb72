package domain

import (
	"context"
	"io"
)

// DownloadRepository talks to the download endpoints of the service
type DownloadRepository interface {
	// Download asks the service to fetch url. It returns the decoded
	// payload and the HTTP status code. A non-nil error means the
	// request did not complete or the body could not be decoded.
	Download(ctx context.Context, url string) (DownloadResult, int, error)

	// FetchFile streams a previously downloaded file into w
	FetchFile(ctx context.Context, name string, w io.Writer) (int64, error)

	// FileURL returns the link for a downloaded file
	FileURL(name string) string
}

// OrganizeRepository triggers library organization on the service
type OrganizeRepository interface {
	// Organize returns the decoded payload and HTTP status code
	Organize(ctx context.Context) (OrganizeResult, int, error)
}

// HealthChecker reports whether the service answers at all
type HealthChecker interface {
	Ping(ctx context.Context) error
}
