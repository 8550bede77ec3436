package review

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWordWrap_BreaksAtWidth(t *testing.T) {
	got := wordWrap("alpha beta gamma delta", 11)
	want := "alpha beta\ngamma delta"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
}

func TestWordWrap_CountsRunesNotBytes(t *testing.T) {
	// Each word is 5 runes but 10 bytes; byte counting would put one word
	// per line.
	got := wordWrap("ééééé ööööö ééééé", 11)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("wrapped into %d lines, want 2: %q", len(lines), got)
	}
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > 11 {
			t.Errorf("line %q is %d runes, want <= 11", line, n)
		}
	}
}

func TestWordWrap_Empty(t *testing.T) {
	if got := wordWrap("   ", 10); got != "" {
		t.Errorf("wordWrap(blank) = %q, want empty", got)
	}
}
