// Package privacy masks student and client identifiers before they reach
// logs, audit events, or metrics labels.
package privacy

import (
	"fmt"
	"net"
	"strings"
	"unicode/utf8"
)

// AnonymizeIP truncates an address to its network prefix: /24 for IPv4 and
// /48 for IPv6. Returns "unknown" for empty input and "invalid" when the
// address cannot be parsed.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// MaskRegistration keeps the first two characters of a registration number
// and replaces the rest with '*'. Numbers of two characters or fewer are
// fully masked.
func MaskRegistration(number string) string {
	n := utf8.RuneCountInString(number)
	if n == 0 {
		return ""
	}
	if n <= 2 {
		return strings.Repeat("*", n)
	}
	runes := []rune(number)
	return string(runes[:2]) + strings.Repeat("*", n-2)
}
