package board

import (
	"errors"
	"fmt"
	"strings"

	"chess/internal/core"
)

var (
	ErrNoPiece     = errors.New("no piece at square")
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrNoKing      = errors.New("no king on board")
)

// Board is an 8x8 grid owning zero or one piece per cell. A piece's stored
// position always equals the cell that owns it.
type Board struct {
	squares [core.BoardSize][core.BoardSize]*Piece
}

// New creates a board with the standard initial layout: black's back ranks on
// rows 0-1, white's on rows 6-7, middle rows empty.
func New() *Board {
	b := &Board{}
	b.placeBackRank(core.ColorBlack, 0)
	b.placePawns(core.ColorBlack, 1)
	b.placePawns(core.ColorWhite, core.BoardSize-2)
	b.placeBackRank(core.ColorWhite, core.BoardSize-1)
	return b
}

var backRank = []core.PieceKind{
	core.Rook, core.Knight, core.Bishop, core.Queen,
	core.King, core.Bishop, core.Knight, core.Rook,
}

func (b *Board) placeBackRank(color core.Color, row int) {
	for col, kind := range backRank {
		pos := core.Position{Row: row, Col: col}
		b.squares[row][col] = NewPiece(kind, color, pos)
	}
}

func (b *Board) placePawns(color core.Color, row int) {
	for col := 0; col < core.BoardSize; col++ {
		pos := core.Position{Row: row, Col: col}
		b.squares[row][col] = NewPiece(core.Pawn, color, pos)
	}
}

func (b *Board) InBounds(pos core.Position) bool {
	return pos.InBounds()
}

// PieceAt returns the occupant of pos, or nil for an empty or out-of-bounds
// square.
func (b *Board) PieceAt(pos core.Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.squares[pos.Row][pos.Col]
}

// ApplyMove moves the piece at from to to, returning any captured occupant.
// The caller is responsible for legality; an empty source square is a
// precondition violation.
func (b *Board) ApplyMove(from, to core.Position) (*Piece, error) {
	if !from.InBounds() || !to.InBounds() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from.Square(), to.Square())
	}
	piece := b.squares[from.Row][from.Col]
	if piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from.Square())
	}

	captured := b.squares[to.Row][to.Col]
	b.squares[to.Row][to.Col] = piece
	b.squares[from.Row][from.Col] = nil
	piece.pos = to

	return captured, nil
}

// RevertMove is the inverse of ApplyMove: it returns the moved piece to from
// and restores the captured occupant (if any) to to. Applying then reverting a
// move leaves the board identical to its pre-simulation state.
func (b *Board) RevertMove(from, to core.Position, captured *Piece) error {
	if !from.InBounds() || !to.InBounds() {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from.Square(), to.Square())
	}
	piece := b.squares[to.Row][to.Col]
	if piece == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, to.Square())
	}

	b.squares[from.Row][from.Col] = piece
	piece.pos = from
	b.squares[to.Row][to.Col] = captured
	if captured != nil {
		captured.pos = to
	}

	return nil
}

// FindKing locates the king of the given color. A missing king is an internal
// consistency failure: it cannot occur while a game is running.
func (b *Board) FindKing(color core.Color) (core.Position, error) {
	for row := 0; row < core.BoardSize; row++ {
		for col := 0; col < core.BoardSize; col++ {
			p := b.squares[row][col]
			if p != nil && p.kind == core.King && p.color == color {
				return p.pos, nil
			}
		}
	}
	return core.Position{}, fmt.Errorf("%w: %s", ErrNoKing, color.Name())
}

// Pieces returns every piece of the given color, top-left to bottom-right.
func (b *Board) Pieces(color core.Color) []*Piece {
	var pieces []*Piece
	for row := 0; row < core.BoardSize; row++ {
		for col := 0; col < core.BoardSize; col++ {
			if p := b.squares[row][col]; p != nil && p.color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", core.BoardSize-r))
		for f := 0; f < core.BoardSize; f++ {
			p := b.squares[r][f]
			if p == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", pieceToChar(p)))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", core.BoardSize-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
