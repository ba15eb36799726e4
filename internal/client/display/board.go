// FILE: internal/client/display/board.go
package display

import (
	"fmt"
	"strings"
)

// RenderBoard renders an ASCII board with colored pieces
func RenderBoard(asciiBoard string) {
	fmt.Print(ColorBoard(asciiBoard))
}

// ColorBoard colors the board text returned by the server. File letters
// appear on the first and last lines, everything else is rank rows.
func ColorBoard(asciiBoard string) string {
	lines := strings.Split(strings.TrimRight(asciiBoard, "\n"), "\n")

	var sb strings.Builder
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		isFileLine := i == 0 || i == len(lines)-1

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				sb.WriteString(Cyan(string(char)))
			case char >= 'A' && char <= 'Z':
				// White pieces
				sb.WriteString(Blue(string(char)))
			case char >= 'a' && char <= 'z':
				// Black pieces
				sb.WriteString(Red(string(char)))
			case char >= '1' && char <= '8':
				sb.WriteString(Cyan(string(char)))
			default:
				sb.WriteRune(char)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue("White")
	}
	return Red("Black")
}

// ColorForStatus highlights terminal and check states
func ColorForStatus(status string) string {
	switch status {
	case "checkmate", "stalemate", "draw":
		return Magenta(status)
	case "check":
		return Yellow(status)
	default:
		return Green(status)
	}
}

// FormatHistory renders UCI moves in numbered pairs: 1.e2e4 e7e5 2.g1f3
func FormatHistory(moves []string, firstMoveBlack bool) string {
	var sb strings.Builder
	n := 1
	for i, move := range moves {
		black := (i%2 == 1) != firstMoveBlack
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case !black:
			fmt.Fprintf(&sb, "%d.%s", n, move)
		case i == 0:
			fmt.Fprintf(&sb, "%d...%s", n, move)
		default:
			sb.WriteString(move)
		}
		if black {
			n++
		}
	}
	return sb.String()
}
