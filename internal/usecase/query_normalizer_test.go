package usecase

import (
	"strings"
	"testing"
)

func TestNormalizeSearchText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"trims and collapses spaces", "  linen \t  shirt  ", "linen shirt"},
		{"keeps case", "USB-C Hub", "USB-C Hub"},
		{"drops control characters", "desk\x00lamp\n", "desk lamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeSearchText(tt.input); got != tt.want {
				t.Errorf("normalizeSearchText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("long text is cut at a word boundary", func(t *testing.T) {
		long := strings.Repeat("wireless ", 20)

		got := normalizeSearchText(long)

		if len(got) > maxSearchTextLength {
			t.Errorf("len = %d, want <= %d", len(got), maxSearchTextLength)
		}
		if strings.HasSuffix(got, " ") || !strings.HasSuffix(got, "wireless") {
			t.Errorf("got %q, want whole words", got)
		}
	})
}

func TestContainsFold(t *testing.T) {
	if !containsFold("Leather Jacket", "JACKET") {
		t.Error("expected case-insensitive match")
	}
	if containsFold("Leather Jacket", "coat") {
		t.Error("unexpected match")
	}
}
