package core

import "fmt"

// BoardSize is the number of ranks and files on the board.
const BoardSize = 8

type Color int

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

// Name returns the display form ("White" / "Black").
func (c Color) Name() string {
	if c == ColorWhite {
		return "White"
	}
	return "Black"
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type PieceKind int

const (
	King PieceKind = iota + 1
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

func (k PieceKind) String() string {
	switch k {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	default:
		return "unknown"
	}
}

type State int

const (
	StateRunning State = iota
	StateCheckmate
	StateStalemate
	StateDraw
)

func (s State) String() string {
	switch s {
	case StateCheckmate:
		return "checkmate"
	case StateStalemate:
		return "stalemate"
	case StateDraw:
		return "draw"
	default:
		return "running"
	}
}

// Position identifies a board square by row and column, both in [0,7].
// Row 0 is black's back rank (rank 8), row 7 is white's (rank 1).
type Position struct {
	Row int
	Col int
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Square returns the algebraic form, e.g. {0,0} -> "a8", {7,7} -> "h1".
func (p Position) Square() string {
	return fmt.Sprintf("%c%c", byte('a'+p.Col), byte('8'-p.Row))
}

// ParseSquare converts an algebraic square such as "e2" into a Position.
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square: %q", s)
	}
	return Position{Row: int('8' - s[1]), Col: int(s[0] - 'a')}, nil
}

// Cell carries a caller's source or destination selection: the square and,
// when occupied, the kind of piece the caller saw there. The game trusts only
// the position and re-checks occupancy itself.
type Cell struct {
	Kind     PieceKind
	Occupied bool
	Position Position
}
