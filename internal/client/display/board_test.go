package display

import (
	"strings"
	"testing"
)

func TestFormatHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		moves      []string
		blackFirst bool
		want       string
	}{
		{"empty", nil, false, ""},
		{"white first", []string{"e2e4", "e7e5", "g1f3"}, false, "1.e2e4 e7e5 2.g1f3"},
		{"black first", []string{"e7e5", "g1f3", "b8c6"}, true, "1...e7e5 2.g1f3 b8c6"},
	}

	for _, tt := range tests {
		if got := FormatHistory(tt.moves, tt.blackFirst); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestColorBoardKeepsLayout(t *testing.T) {
	Init(true)

	ascii := "  a b c d e f g h\n8 r n b q k b n r  8\n1 R N B Q K B N R  1\n  a b c d e f g h"
	if got := ColorBoard(ascii); got != ascii+"\n" {
		t.Fatalf("with colors disabled the board changed:\n%s", got)
	}
	if !strings.Contains(ColorForStatus("checkmate"), "checkmate") {
		t.Fatalf("status text lost")
	}
}
