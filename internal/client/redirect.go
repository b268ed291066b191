package client

import (
	"fmt"
	"net/http"
	"strings"
)

// RedirectPolicy controls how the client rehydrates 301/302 responses.
// The transport itself never follows redirects.
type RedirectPolicy int

const (
	// RedirectSingleHop re-issues the request once against Location
	RedirectSingleHop RedirectPolicy = iota
	// RedirectNone surfaces every 301/302 to the caller
	RedirectNone
	// RedirectFull follows up to Config.MaxRedirects hops
	RedirectFull
)

// DefaultMaxRedirects bounds RedirectFull when Config.MaxRedirects is unset
const DefaultMaxRedirects = 10

func (p RedirectPolicy) String() string {
	switch p {
	case RedirectNone:
		return "none"
	case RedirectFull:
		return "full"
	default:
		return "single-hop"
	}
}

// ParseRedirectPolicy parses "none", "single-hop" or "full"
func ParseRedirectPolicy(s string) (RedirectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single-hop", "single", "once":
		return RedirectSingleHop, nil
	case "none", "off":
		return RedirectNone, nil
	case "full", "all":
		return RedirectFull, nil
	default:
		return RedirectSingleHop, fmt.Errorf("invalid redirect policy '%s', must be one of: none, single-hop, full", s)
	}
}

// hopLimit is how many redirects may be followed for one request
func (p RedirectPolicy) hopLimit(max int) int {
	switch p {
	case RedirectNone:
		return 0
	case RedirectFull:
		if max <= 0 {
			return DefaultMaxRedirects
		}
		return max
	default:
		return 1
	}
}

// isRedirect reports whether status is one the client rehydrates. Other
// 3xx codes are surfaced as API errors.
func isRedirect(status int) bool {
	return status == http.StatusMovedPermanently || status == http.StatusFound
}
