package tui

import (
	"strings"
	"testing"
)

func TestFormatFooterPairsKeysAndDescriptions(t *testing.T) {
	out := FormatFooter("y", "Execute", "n", "Cancel")
	if !strings.Contains(out, "y") || !strings.Contains(out, "Execute") {
		t.Fatalf("footer missing first pair: %q", out)
	}
	if !strings.Contains(out, "n") || !strings.Contains(out, "Cancel") {
		t.Fatalf("footer missing second pair: %q", out)
	}
}

func TestFormatFooterIgnoresDanglingKey(t *testing.T) {
	out := FormatFooter("y", "Execute", "dangling")
	if strings.Contains(out, "dangling") {
		t.Fatalf("footer rendered a key with no paired description: %q", out)
	}
}
