package checker

import (
	"net/url"
	"strings"
)

// NormalizeOrigin turns a loosely written origin ("localhost:3000",
// "shop.example/", a full URL) into scheme://host[:port] plus any path
// prefix, with no trailing slash. Page URLs are built by appending registry
// paths to the result, so it must never end in "/". A missing scheme defaults
// to http; query and fragment are dropped.
func NormalizeOrigin(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		// "localhost:3000" parses as scheme "localhost" with an opaque
		// remainder; treat anything that is not http(s) as a bare host.
		parsed, err = url.Parse("http://" + trimmed)
		if err != nil {
			return strings.TrimRight(trimmed, "/")
		}
	}
	if parsed.Host == "" {
		return strings.TrimRight(trimmed, "/")
	}

	origin := parsed.Scheme + "://" + parsed.Host
	if path := strings.TrimRight(parsed.Path, "/"); path != "" {
		origin += path
	}
	return origin
}
