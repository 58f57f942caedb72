package backend

import (
	"net/url"
	"strings"
)

// componentUnescaper undoes the escapes QueryEscape applies to characters
// that encodeURIComponent leaves alone
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s the way encodeURIComponent does: every
// byte except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped, so '/' and '?'
// in a file name cannot change the route.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// FilePath returns the route for one downloaded file
func FilePath(name string) string {
	return "/download/" + EscapeComponent(name)
}
