package netutil

import (
	"strings"
	"testing"
)

func TestNormalizeIP(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"192.0.2.4", "192.0.2.4", true},
		{"192.0.2.4:1234", "192.0.2.4", true},
		{" 192.0.2.4 ", "192.0.2.4", true},
		{"2001:db8::1", "2001:db8::1", true},
		{"[2001:db8::1]:443", "2001:db8::1", true},
		{"fe80::1%eth0", "fe80::1", true},
		{"[2001:db8::1]:notaport", "2001:db8::1", true},
		{"", "", false},
		{"not-an-ip", "not-an-ip", false},
		{"example.com:443", "example.com:443", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeIP(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeIP(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTruncateUserAgent(t *testing.T) {
	short := "Mozilla/5.0"
	if got := TruncateUserAgent(short); got != short {
		t.Errorf("short agent changed: %q", got)
	}

	long := strings.Repeat("é", MaxUserAgentLength+100)
	got := TruncateUserAgent(long)
	if n := len([]rune(got)); n != MaxUserAgentLength {
		t.Errorf("truncated to %d runes, want %d", n, MaxUserAgentLength)
	}
	for _, r := range got {
		if r != 'é' {
			t.Fatalf("multi-byte rune split, found %q", r)
		}
	}
}
