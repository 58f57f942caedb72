package domain

// DownloadResponse is the outcome of one POST /download
type DownloadResponse struct {
	Result     DownloadResult
	StatusCode int
	Err        error // transport or decode failure
	RequestID  string
}

// OrganizeResponse is the outcome of one POST /organize
type OrganizeResponse struct {
	Result     OrganizeResult
	StatusCode int
	Err        error
	RequestID  string
}
