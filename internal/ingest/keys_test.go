package ingest

import (
	"context"
	"testing"

	"github.com/tinytelemetry/faina/internal/resolve"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user12345session", "user#session"},
		{"item123", "item123"},
		{"page:1:2:3", "page:1:2:3"},
		{"order:2024:item:99", "order:#:item:99"},
		{"a1234b56789c", "a#b#c"},
		{"1234", "#"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeKey(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if again := NormalizeKey(got); again != got {
				t.Errorf("NormalizeKey not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestKeyFormatter_Format(t *testing.T) {
	t.Parallel()

	cache, err := resolve.NewCachingResolver(resolve.StaticResolver{"127.0.0.1": "localhost"})
	if err != nil {
		t.Fatalf("NewCachingResolver: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name     string
		withPort bool
		key      string
		ip       string
		port     string
		expected string
	}{
		{"resolved", false, "foo12345", "127.0.0.1", "6379", "foo#@localhost"},
		{"unresolved falls back to ip", false, "bar", "10.1.2.3", "6379", "bar@10.1.2.3"},
		{"with port", true, "bar", "127.0.0.1", "51000", "bar@localhost:51000"},
		{"with port but none captured", true, "bar", "127.0.0.1", "", "bar@localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewKeyFormatter(cache, tt.withPort)
			if got := f.Format(ctx, tt.key, tt.ip, tt.port); got != tt.expected {
				t.Errorf("Format(%q, %q, %q) = %q, want %q", tt.key, tt.ip, tt.port, got, tt.expected)
			}
		})
	}
}

func TestKeyFormatter_NilAttributorUsesAddress(t *testing.T) {
	t.Parallel()

	f := NewKeyFormatter(nil, false)
	if got := f.Format(context.Background(), "k", "192.0.2.1", ""); got != "k@192.0.2.1" {
		t.Fatalf("Format = %q, want %q", got, "k@192.0.2.1")
	}
}

func TestParseIgnoredCommands(t *testing.T) {
	t.Parallel()

	set := ParseIgnoredCommands(" ping, Info ,,slowlog")
	if len(set) != 3 {
		t.Fatalf("set size = %d, want 3 (%v)", len(set), set)
	}
	for _, cmd := range []string{"PING", "ping", "info", "SlowLog"} {
		if !set.Contains(cmd) {
			t.Errorf("Contains(%q) = false", cmd)
		}
	}
	if set.Contains("GET") {
		t.Error(`Contains("GET") = true`)
	}
	if ParseIgnoredCommands("").Contains("") {
		t.Error("empty list must not ignore anything")
	}
}
