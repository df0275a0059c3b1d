package tui

import "testing"

func TestSplitterGlyph(t *testing.T) {
	tests := []struct {
		vertical bool
		want     string
	}{
		{true, "│"},
		{false, "─"},
	}
	for _, tt := range tests {
		if got := splitterGlyph(tt.vertical); got != tt.want {
			t.Errorf("splitterGlyph(%v) = %q, want %q", tt.vertical, got, tt.want)
		}
	}
}
