// Package metadata captures who is calling: client address and a coarse
// device label derived from the User-Agent. Both end up on audit events.
package metadata

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"
)

// MaxForwardedHeaderLength bounds X-Forwarded-For and X-Real-IP before parsing.
const MaxForwardedHeaderLength = 500

type contextKey int

const (
	keyClientIP contextKey = iota
	keyUserAgent
	keyDevice
)

// Middleware extracts client metadata. Forwarding headers are honoured only
// when the direct peer sits inside one of TrustedProxies.
type Middleware struct {
	trustedProxies []netip.Prefix
}

// New returns a Middleware trusting the given proxy prefixes. With none,
// forwarding headers are ignored.
func New(trustedProxies []netip.Prefix) *Middleware {
	return &Middleware{trustedProxies: trustedProxies}
}

// ParsePrefixes parses a comma-separated CIDR list such as "10.0.0.0/8,127.0.0.1/32".
func ParsePrefixes(raw string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := netip.ParsePrefix(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Handler stores client IP, raw User-Agent and device label in the request context.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.UserAgent()
		ctx := r.Context()
		ctx = context.WithValue(ctx, keyClientIP, m.clientIP(r))
		ctx = context.WithValue(ctx, keyUserAgent, ua)
		ctx = context.WithValue(ctx, keyDevice, DeviceLabel(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) clientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	if remote == "" {
		return "unknown"
	}
	if !m.isTrusted(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if len(xff) > MaxForwardedHeaderLength {
			return remote
		}
		first, _, _ := strings.Cut(xff, ",")
		candidate := strings.TrimSpace(first)
		if _, err := netip.ParseAddr(candidate); err != nil {
			return remote
		}
		return candidate
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && len(xri) <= MaxForwardedHeaderLength {
		if _, err := netip.ParseAddr(xri); err == nil {
			return xri
		}
	}
	return remote
}

func (m *Middleware) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range m.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// DeviceLabel turns a User-Agent into "Browser on OS", e.g. "Chrome on Windows".
func DeviceLabel(userAgent string) string {
	if userAgent == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" && browser != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

func GetClientIP(ctx context.Context) string {
	v, _ := ctx.Value(keyClientIP).(string)
	return v
}

func GetUserAgent(ctx context.Context) string {
	v, _ := ctx.Value(keyUserAgent).(string)
	return v
}

// GetDevice returns the device label, or "" outside an HTTP request.
func GetDevice(ctx context.Context) string {
	v, _ := ctx.Value(keyDevice).(string)
	return v
}
