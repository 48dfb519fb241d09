package keygen

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
)

var hexKey = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 16; i++ {
		key, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !hexKey.MatchString(key) {
			t.Fatalf("Generate() = %q, want 64 lowercase hex chars", key)
		}
	}
}

func TestGenerateDiffers(t *testing.T) {
	first, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first == second {
		t.Fatalf("two generated keys must differ, both %q", first)
	}
}

func TestGenerateFromDeterministic(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xab}, KeySize))
	key, err := GenerateFrom(src)
	if err != nil {
		t.Fatalf("GenerateFrom() error = %v", err)
	}
	if key != strings.Repeat("ab", KeySize) {
		t.Fatalf("GenerateFrom() = %q", key)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestGenerateFromShortRead(t *testing.T) {
	if _, err := GenerateFrom(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("expected error for short entropy source")
	}
	_, err := GenerateFrom(failingReader{})
	if err == nil || !strings.Contains(err.Error(), "entropy unavailable") {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}
