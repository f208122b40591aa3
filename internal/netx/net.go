// Package netx holds small networking helpers.
package netx

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the peer address of r without its port. Forwarding
// headers are ignored since any client can set them.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if addr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return strings.Trim(addr, "[]")
	}
	return host
}
