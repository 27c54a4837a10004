package helpers

import (
	"net"
	"net/http"
	"strings"

	"neurobiomark/internal/domain"
)

// ClientIP returns the caller's network origin as reported by the reverse proxy:
// the first X-Forwarded-For entry, else X-Real-IP, else domain.UnknownIP.
// The value is informational only; use PeerIP for anything a client must not control.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return domain.UnknownIP
}

// PeerIP returns the address of the peer as seen by the outermost of trustedHops
// proxies. Each trusted proxy appends the address it received the request from to
// X-Forwarded-For, so with n trusted hops the peer is the n-th entry from the right;
// entries left of it are client-supplied. With no trusted hops, or fewer entries
// than hops, the host of r.RemoteAddr is used.
func PeerIP(r *http.Request, trustedHops int) string {
	if trustedHops > 0 {
		var entries []string
		for _, v := range r.Header.Values("X-Forwarded-For") {
			for _, part := range strings.Split(v, ",") {
				entries = append(entries, strings.TrimSpace(part))
			}
		}
		if len(entries) >= trustedHops {
			if ip := entries[len(entries)-trustedHops]; ip != "" {
				return ip
			}
		}
	}
	return remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	if addr = strings.TrimSpace(addr); addr != "" {
		return addr
	}
	return domain.UnknownIP
}
