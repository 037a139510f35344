package board

import (
	"chess/internal/core"
)

// Piece is owned by the board cell it occupies. Kind and color are fixed at
// creation; the stored position always mirrors the owning cell.
type Piece struct {
	kind  core.PieceKind
	color core.Color
	pos   core.Position
}

func NewPiece(kind core.PieceKind, color core.Color, pos core.Position) *Piece {
	return &Piece{kind: kind, color: color, pos: pos}
}

func (p *Piece) Kind() core.PieceKind {
	return p.kind
}

func (p *Piece) Color() core.Color {
	return p.color
}

func (p *Piece) Position() core.Position {
	return p.pos
}

// Movement deltas shared by the piece geometries.
var (
	straightDirs = []core.Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	diagonalDirs = []core.Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}

	allDirs = []core.Position{
		{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1},
	}

	knightOffsets = []core.Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
)

// AvailableMoves returns every square the piece could reach by its movement
// geometry alone: board bounds and occupancy are respected, king safety is
// not. Filtering moves that leave the mover's own king attacked is the game's
// responsibility. The board is not mutated.
func (p *Piece) AvailableMoves(b *Board) []core.Position {
	switch p.kind {
	case core.King:
		return p.stepMoves(b, allDirs)
	case core.Queen:
		return p.rayMoves(b, allDirs)
	case core.Rook:
		return p.rayMoves(b, straightDirs)
	case core.Bishop:
		return p.rayMoves(b, diagonalDirs)
	case core.Knight:
		return p.stepMoves(b, knightOffsets)
	case core.Pawn:
		return p.pawnMoves(b)
	default:
		return nil
	}
}

// stepMoves applies each offset once, keeping in-bounds squares that are empty
// or hold an opposing piece. Used for kings and knights.
func (p *Piece) stepMoves(b *Board, offsets []core.Position) []core.Position {
	var moves []core.Position
	for _, d := range offsets {
		to := core.Position{Row: p.pos.Row + d.Row, Col: p.pos.Col + d.Col}
		if !b.InBounds(to) {
			continue
		}
		if occ := b.PieceAt(to); occ != nil && occ.color == p.color {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}

// rayMoves extends each direction until the board edge or the first occupied
// square. An opposing occupant is included as a capture; a friendly one stops
// the ray before it.
func (p *Piece) rayMoves(b *Board, dirs []core.Position) []core.Position {
	var moves []core.Position
	for _, d := range dirs {
		to := core.Position{Row: p.pos.Row + d.Row, Col: p.pos.Col + d.Col}
		for b.InBounds(to) {
			occ := b.PieceAt(to)
			if occ == nil {
				moves = append(moves, to)
				to = core.Position{Row: to.Row + d.Row, Col: to.Col + d.Col}
				continue
			}
			if occ.color != p.color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// pawnMoves: one square forward onto an empty square, two from the starting
// rank when both are empty, diagonal steps only as captures. En passant and
// promotion are not part of this rule set.
func (p *Piece) pawnMoves(b *Board) []core.Position {
	dir := 1
	startRow := 1
	if p.color == core.ColorWhite {
		dir = -1
		startRow = core.BoardSize - 2
	}

	var moves []core.Position

	one := core.Position{Row: p.pos.Row + dir, Col: p.pos.Col}
	if b.InBounds(one) && b.PieceAt(one) == nil {
		moves = append(moves, one)

		two := core.Position{Row: p.pos.Row + 2*dir, Col: p.pos.Col}
		if p.pos.Row == startRow && b.PieceAt(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		to := core.Position{Row: p.pos.Row + dir, Col: p.pos.Col + dc}
		if !b.InBounds(to) {
			continue
		}
		if occ := b.PieceAt(to); occ != nil && occ.color != p.color {
			moves = append(moves, to)
		}
	}

	return moves
}
