package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareHandler(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		remoteAddr     string
		trustedProxies []string
		expectedIP     string
		expectedUA     string
	}{
		{
			name: "ignores X-Forwarded-For without trusted proxies",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.1",
				"User-Agent":      "Mozilla/5.0",
			},
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
			expectedUA: "Mozilla/5.0",
		},
		{
			name: "uses first X-Forwarded-For hop from trusted proxy",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.1, 198.51.100.1",
			},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "203.0.113.1",
		},
		{
			name:           "uses X-Real-IP from trusted proxy",
			headers:        map[string]string{"X-Real-IP": "203.0.113.2", "User-Agent": "curl/7.64.1"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "203.0.113.2",
			expectedUA:     "curl/7.64.1",
		},
		{
			name:           "rejects malformed forwarded address",
			headers:        map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.5",
		},
		{
			name:           "rejects oversized forwarded header",
			headers:        map[string]string{"X-Forwarded-For": strings.Repeat("1", MaxForwardedHeaderLength+1)},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.5",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[2001:db8::1]:8080",
			expectedIP: "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefixes, err := ParsePrefixes(strings.Join(tt.trustedProxies, ","))
			require.NoError(t, err)

			var captured context.Context
			handler := New(prefixes).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = r.Context()
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expectedIP, GetClientIP(captured))
			assert.Equal(t, tt.expectedUA, GetUserAgent(captured))
			assert.NotEmpty(t, GetDevice(captured))
		})
	}
}

func TestParsePrefixes(t *testing.T) {
	prefixes, err := ParsePrefixes(" 10.0.0.0/8, ,127.0.0.1/32")
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("127.0.0.1/32")}, prefixes)

	_, err = ParsePrefixes("10.0.0.0/99")
	assert.Error(t, err)
}

func TestDeviceLabel(t *testing.T) {
	t.Run("desktop chrome", func(t *testing.T) {
		ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		assert.Contains(t, DeviceLabel(ua), "Chrome on Windows")
	})

	t.Run("empty user agent", func(t *testing.T) {
		assert.Equal(t, "Unknown Device", DeviceLabel(""))
	})
}

func TestGettersOutsideRequest(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetClientIP(ctx))
	assert.Empty(t, GetUserAgent(ctx))
	assert.Empty(t, GetDevice(ctx))
}
