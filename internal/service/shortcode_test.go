package service

import (
	"context"
	"strings"
	"testing"

	"stormboard/internal/repository/memory"
)

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateShortCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != shortCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), shortCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(shortCodeAlphabet, c) {
				t.Fatalf("code %q contains %q, not in alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 31^6 space colliding down to a handful would mean
	// the generator is broken.
	if len(seen) < 90 {
		t.Fatalf("only %d distinct codes out of 100", len(seen))
	}
}

func TestShortCodeAlphabetExcludesAmbiguous(t *testing.T) {
	for _, c := range "01OIL" {
		if strings.ContainsRune(shortCodeAlphabet, c) {
			t.Errorf("alphabet contains ambiguous glyph %q", c)
		}
	}
}

func TestUniqueShortCode(t *testing.T) {
	store := memory.New()
	code, err := uniqueShortCode(context.Background(), store.Sessions())
	if err != nil {
		t.Fatalf("unique code: %v", err)
	}
	if len(code) != shortCodeLength {
		t.Fatalf("code %q has length %d, want %d", code, len(code), shortCodeLength)
	}
}
