package machine

import (
	"fmt"
	"strings"
)

// Move is the head movement applied after a write.
type Move int8

const (
	Left  Move = -1
	Stay  Move = 0
	Right Move = 1
)

// ParseMove accepts L, R and N (or S for stay), case-insensitively.
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	case "N", "S":
		return Stay, nil
	default:
		return Stay, fmt.Errorf("%w: %q", ErrUnknownMove, s)
	}
}

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "N"
	}
}
