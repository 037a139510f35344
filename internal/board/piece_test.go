package board

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess/internal/core"
)

func squares(positions []core.Position) []string {
	s := make([]string, 0, len(positions))
	for _, p := range positions {
		s = append(s, p.Square())
	}
	sort.Strings(s)
	return s
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func movesAt(t *testing.T, b *Board, square string) []string {
	t.Helper()
	pos, err := core.ParseSquare(square)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", square, err)
	}
	p := b.PieceAt(pos)
	if p == nil {
		t.Fatalf("no piece on %s", square)
	}
	return squares(p.AvailableMoves(b))
}

func TestRookRaysStopAtOccupiedSquares(t *testing.T) {
	// Rook on d4: black pawn on d6 is a capture that ends the ray, the white
	// pawn on d2 ends the downward ray before itself.
	b := mustBoard(t, "4k3/8/3p4/8/3R4/8/3P4/4K3 w - - 0 1")

	want := sorted([]string{"d5", "d6", "d3", "a4", "b4", "c4", "e4", "f4", "g4", "h4"})
	if diff := cmp.Diff(want, movesAt(t, b, "d4")); diff != "" {
		t.Errorf("rook moves mismatch (-want +got):\n%s", diff)
	}
}

func TestBishopDiagonals(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/3B4/8/8/4K3 w - - 0 1")

	want := sorted([]string{
		"c5", "b6", "a7",
		"e5", "f6", "g7", "h8",
		"c3", "b2", "a1",
		"e3", "f2", "g1",
	})
	if diff := cmp.Diff(want, movesAt(t, b, "d4")); diff != "" {
		t.Errorf("bishop moves mismatch (-want +got):\n%s", diff)
	}
}

func TestQueenIsRookPlusBishop(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")

	pos := core.Position{Row: 4, Col: 3}
	queen := b.PieceAt(pos)

	rook := NewPiece(core.Rook, core.ColorWhite, pos)
	bishop := NewPiece(core.Bishop, core.ColorWhite, pos)
	want := sorted(append(squares(rook.AvailableMoves(b)), squares(bishop.AvailableMoves(b))...))

	if diff := cmp.Diff(want, squares(queen.AvailableMoves(b))); diff != "" {
		t.Errorf("queen moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightOffsets(t *testing.T) {
	center := mustBoard(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	want := sorted([]string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"})
	if diff := cmp.Diff(want, movesAt(t, center, "d4")); diff != "" {
		t.Errorf("center knight mismatch (-want +got):\n%s", diff)
	}

	// Corner knight with a friendly pawn on one of its two targets.
	corner := mustBoard(t, "4k3/8/8/8/8/8/2P5/N3K3 w - - 0 1")
	if diff := cmp.Diff([]string{"b3"}, movesAt(t, corner, "a1")); diff != "" {
		t.Errorf("corner knight mismatch (-want +got):\n%s", diff)
	}
}

func TestKingExcludesFriendlySquares(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/3PP3/4K3 w - - 0 1")

	want := sorted([]string{"d1", "f1", "f2"})
	if diff := cmp.Diff(want, movesAt(t, b, "e1")); diff != "" {
		t.Errorf("king moves mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnInitialDoubleStep(t *testing.T) {
	b := New()

	if diff := cmp.Diff(sorted([]string{"a3", "a4"}), movesAt(t, b, "a2")); diff != "" {
		t.Errorf("white pawn mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sorted([]string{"h6", "h5"}), movesAt(t, b, "h7")); diff != "" {
		t.Errorf("black pawn mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnBlocked(t *testing.T) {
	// Fully blocked: no forward move, and no forward capture.
	blocked := mustBoard(t, "4k3/8/8/3p4/3P4/8/8/4K3 w - - 0 1")
	if got := movesAt(t, blocked, "d4"); len(got) != 0 {
		t.Errorf("blocked pawn moves = %v, want none", got)
	}

	// Double step blocked two ahead: only the single step remains.
	half := mustBoard(t, "4k3/8/8/8/3p4/8/3P4/4K3 w - - 0 1")
	if diff := cmp.Diff([]string{"d3"}, movesAt(t, half, "d2")); diff != "" {
		t.Errorf("half-blocked pawn mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnDiagonalCaptures(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/2p1p3/3P4/8/8/4K3 w - - 0 1")

	want := sorted([]string{"c5", "d5", "e5"})
	if diff := cmp.Diff(want, movesAt(t, b, "d4")); diff != "" {
		t.Errorf("pawn capture mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailableMovesStayInBounds(t *testing.T) {
	boards := []*Board{
		New(),
		mustBoard(t, "q6k/8/8/8/8/8/8/N6K w - - 0 1"),
		mustBoard(t, "rnb1kbnr/8/8/8/8/8/8/RNBQKBNR w - - 0 1"),
	}

	for _, b := range boards {
		for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
			for _, p := range b.Pieces(color) {
				for _, m := range p.AvailableMoves(b) {
					if !m.InBounds() {
						t.Errorf("%s %s on %s produced out-of-bounds move %v",
							color.Name(), p.Kind(), p.Position().Square(), m)
					}
				}
			}
		}
	}
}

func TestAvailableMovesDoNotMutateBoard(t *testing.T) {
	b := New()
	before := snapshot(b)

	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, p := range b.Pieces(color) {
			p.AvailableMoves(b)
		}
	}

	if diff := cmp.Diff(before, snapshot(b)); diff != "" {
		t.Errorf("board mutated by AvailableMoves (-before +after):\n%s", diff)
	}
}
