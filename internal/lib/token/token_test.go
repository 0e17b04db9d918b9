package token

import (
	"encoding/base64"
	"testing"
)

func TestNew_Length(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("token is not valid URL-safe base64: %v", err)
	}
	if len(raw) != Size {
		t.Errorf("decoded token has %d bytes, want %d", len(raw), Size)
	}
}

func TestNew_URLSafe(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, c := range tok {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			t.Fatalf("token contains non URL-safe character %q", c)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		tok, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if seen[tok] {
			t.Fatal("New() produced a duplicate token")
		}
		seen[tok] = true
	}
}
