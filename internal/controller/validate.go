package controller

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/tunedl/internal/domain"
)

// schemes that need a host, as in the WHATWG URL parser
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// tabs and newlines are dropped anywhere in the input
var stripTabsNewlines = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// code points a domain may not contain once percent-decoded
const forbiddenDomain = " #%/:<>?@[\\]^|"

// IsValidURL reports whether s is an absolute URL a browser would accept.
// Special schemes tolerate missing or extra slashes before the host and
// stray percent signs; they must carry a host and a port no larger than
// 65535.
func IsValidURL(s string) bool {
	s = stripTabsNewlines.Replace(s)
	m := schemePattern.FindString(s)
	if m == "" {
		return false
	}
	scheme := strings.ToLower(strings.TrimSuffix(m, ":"))
	rest := s[len(m):]

	special := specialSchemes[scheme]
	if special {
		rest = strings.TrimLeft(rest, "/\\")
		if i := strings.IndexAny(rest, "?#"); i >= 0 {
			rest = strings.ReplaceAll(rest[:i], "\\", "/") + rest[i:]
		} else {
			rest = strings.ReplaceAll(rest, "\\", "/")
		}
		rest = "//" + rest
	}

	u, err := url.Parse(scheme + ":" + escapeStray(rest))
	if err != nil {
		return false
	}

	if special && u.Hostname() == "" {
		return false
	}
	if u.Host != "" && !validHost(u) {
		return false
	}
	return true
}

func validHost(u *url.URL) bool {
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n > 65535 {
			return false
		}
	}

	host := u.Hostname()
	if strings.HasPrefix(u.Host, "[") {
		return net.ParseIP(host) != nil
	}
	for _, r := range host {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(forbiddenDomain, r) {
			return false
		}
	}
	return true
}

// escapeStray encodes '%' signs that do not start an escape and control
// bytes, both of which browsers percent-encode rather than reject
func escapeStray(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])):
			b.WriteString("%25")
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// ValidateURL checks the trimmed input and returns domain.ErrEmptyURL or
// domain.ErrInvalidURL when it cannot be submitted
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrEmptyURL
	}
	if !IsValidURL(trimmed) {
		return trimmed, domain.ErrInvalidURL
	}
	return trimmed, nil
}
