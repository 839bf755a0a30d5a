package netutil

import (
	"net/netip"
	"strings"
	"unicode/utf8"
)

const MaxUserAgentLength = 512

// NormalizeIP accepts a bare IP or a host:port form ("192.0.2.4:1234",
// "[2001:db8::1]:443") and returns the canonical IP without zone. The
// boolean reports whether it parsed as an IP at all.
func NormalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		return addrPort.Addr().WithZone("").String(), true
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.WithZone("").String(), true
	}
	// Bracketed IPv6 with a junk port, then a bare trailing-colon cut.
	if strings.HasPrefix(raw, "[") {
		if end := strings.LastIndex(raw, "]"); end > 0 {
			if addr, err := netip.ParseAddr(raw[1:end]); err == nil {
				return addr.WithZone("").String(), true
			}
		}
	}
	if idx := strings.LastIndex(raw, ":"); idx > 0 {
		if addr, err := netip.ParseAddr(raw[:idx]); err == nil {
			return addr.WithZone("").String(), true
		}
	}
	return raw, false
}

// TruncateUserAgent caps the stored user agent at MaxUserAgentLength runes
// without splitting multi-byte characters.
func TruncateUserAgent(ua string) string {
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	runes := []rune(ua)
	return string(runes[:MaxUserAgentLength])
}
