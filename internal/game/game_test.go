package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess/internal/core"
)

func testPlayers() (*core.Player, *core.Player) {
	white := core.NewPlayer(core.PlayerConfig{Name: "alice"}, core.ColorWhite)
	black := core.NewPlayer(core.PlayerConfig{Name: "bob"}, core.ColorBlack)
	return white, black
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	white, black := testPlayers()
	return New(white, black)
}

func resumeGame(t *testing.T, fen string) *Game {
	t.Helper()
	white, black := testPlayers()
	g, err := NewFromFEN(fen, white, black)
	if err != nil {
		t.Fatalf("NewFromFEN(%q): %v", fen, err)
	}
	return g
}

func cellAt(t *testing.T, g *Game, square string) core.Cell {
	t.Helper()
	pos, err := core.ParseSquare(square)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", square, err)
	}
	return g.CellAt(pos)
}

// move selects from and commits to, failing the test on either error.
func move(t *testing.T, g *Game, from, to string) string {
	t.Helper()
	if _, err := g.MovePieceFrom(cellAt(t, g, from)); err != nil {
		t.Fatalf("MovePieceFrom(%s): %v", from, err)
	}
	msg, err := g.MovePieceTo(cellAt(t, g, to))
	if err != nil {
		t.Fatalf("MovePieceTo(%s): %v", to, err)
	}
	return msg
}

func legalSquares(t *testing.T, g *Game, from string) []string {
	t.Helper()
	moves, err := g.MovePieceFrom(cellAt(t, g, from))
	if err != nil {
		t.Fatalf("MovePieceFrom(%s): %v", from, err)
	}
	squares := make([]string, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.Square())
	}
	return squares
}

func TestNewGameStartsWhiteAndRunning(t *testing.T) {
	g := newTestGame(t)

	if g.GetPlayer() != core.ColorWhite {
		t.Errorf("starting turn = %s, want white", g.GetPlayer().Name())
	}
	if g.State() != core.StateRunning {
		t.Errorf("starting state = %s, want running", g.State())
	}
	if g.IsTheGameOver() {
		t.Error("new game reports game over")
	}
}

func TestPawnInitialLegalDestinations(t *testing.T) {
	g := newTestGame(t)

	got := legalSquares(t, g, "a2")
	want := []string{"a3", "a4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pawn a2 legal moves mismatch (-want +got):\n%s", diff)
	}
}

func TestMovePieceFromRejectsEmptyCell(t *testing.T) {
	g := newTestGame(t)

	_, err := g.MovePieceFrom(cellAt(t, g, "e4"))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestMovePieceFromRejectsOpponentPiece(t *testing.T) {
	g := newTestGame(t)
	fenBefore := g.CurrentFEN()

	_, err := g.MovePieceFrom(cellAt(t, g, "e7"))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("err = %v, want ErrInvalidSelection", err)
	}
	if g.GetPlayer() != core.ColorWhite {
		t.Error("turn changed on rejected selection")
	}
	if g.CurrentFEN() != fenBefore {
		t.Error("board changed on rejected selection")
	}
	if g.State() != core.StateRunning {
		t.Error("state changed on rejected selection")
	}
}

func TestMovePieceToWithoutSelection(t *testing.T) {
	g := newTestGame(t)

	_, err := g.MovePieceTo(cellAt(t, g, "e4"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("err = %v, want ErrIllegalMove", err)
	}
}

func TestMovePieceToRejectsIllegalDestination(t *testing.T) {
	g := newTestGame(t)

	if _, err := g.MovePieceFrom(cellAt(t, g, "a2")); err != nil {
		t.Fatalf("MovePieceFrom: %v", err)
	}

	_, err := g.MovePieceTo(cellAt(t, g, "a5"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("err = %v, want ErrIllegalMove", err)
	}
	if g.GetPlayer() != core.ColorWhite {
		t.Error("turn changed on rejected move")
	}
}

func TestTurnAlternates(t *testing.T) {
	g := newTestGame(t)

	move(t, g, "e2", "e4")
	if g.GetPlayer() != core.ColorBlack {
		t.Fatalf("turn after white's move = %s, want black", g.GetPlayer().Name())
	}

	move(t, g, "e7", "e5")
	if g.GetPlayer() != core.ColorWhite {
		t.Fatalf("turn after black's move = %s, want white", g.GetPlayer().Name())
	}
}

func TestMovePieceFromLeavesBoardUntouched(t *testing.T) {
	g := newTestGame(t)
	fenBefore := g.CurrentFEN()

	// Legality filtering simulates every candidate on the live board; after
	// the call the position must be exactly as before.
	if _, err := g.MovePieceFrom(cellAt(t, g, "b1")); err != nil {
		t.Fatalf("MovePieceFrom: %v", err)
	}
	if got := g.CurrentFEN(); got != fenBefore {
		t.Errorf("FEN after MovePieceFrom = %q, want %q", got, fenBefore)
	}
}

func TestCaptureAndCheckMessages(t *testing.T) {
	g := resumeGame(t, "3k4/8/8/3p4/8/8/8/3RK3 w - - 0 1")

	msg := move(t, g, "d1", "d5")
	if !strings.Contains(msg, "captured") {
		t.Errorf("capture message = %q, want mention of capture", msg)
	}
	if !strings.Contains(msg, "Check") {
		t.Errorf("message = %q, want check marker (rook gives check on d-file)", msg)
	}
	if g.State() != core.StateRunning {
		t.Errorf("state = %s, want running", g.State())
	}
}

func TestPinnedPieceMayNotExposeKing(t *testing.T) {
	// The white knight on e4 is pinned against e1 by the black rook on e8:
	// every knight move would leave the king attacked.
	g := resumeGame(t, "4r2k/8/8/8/4N3/8/8/4K3 w - - 0 1")

	got := legalSquares(t, g, "e4")
	if len(got) != 0 {
		t.Errorf("pinned knight legal moves = %v, want none", got)
	}
}

func TestFoolsMate(t *testing.T) {
	g := newTestGame(t)

	move(t, g, "f2", "f3")
	move(t, g, "e7", "e5")
	move(t, g, "g2", "g4")
	msg := move(t, g, "d8", "h4")

	if g.State() != core.StateCheckmate {
		t.Fatalf("state = %s, want checkmate", g.State())
	}
	if !g.IsTheGameOver() {
		t.Error("IsTheGameOver() = false after checkmate")
	}
	if !strings.Contains(msg, "Checkmate") {
		t.Errorf("message = %q, want checkmate announcement", msg)
	}
	if !strings.Contains(msg, "Black wins") {
		t.Errorf("message = %q, want winner announcement", msg)
	}

	wantMoves := []string{"f2f3", "e7e5", "g2g4", "d8h4"}
	if diff := cmp.Diff(wantMoves, g.Moves()); diff != "" {
		t.Errorf("move history mismatch (-want +got):\n%s", diff)
	}
}

func TestNoMovesAcceptedAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	move(t, g, "f2", "f3")
	move(t, g, "e7", "e5")
	move(t, g, "g2", "g4")
	move(t, g, "d8", "h4")

	_, err := g.MovePieceFrom(cellAt(t, g, "e2"))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("err = %v, want ErrInvalidSelection", err)
	}
}

func TestStalemateFromFEN(t *testing.T) {
	// Black to move: the king on a8 is not attacked but has no safe square.
	g := resumeGame(t, "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")

	if g.State() != core.StateStalemate {
		t.Fatalf("state = %s, want stalemate", g.State())
	}
	if !g.IsTheGameOver() {
		t.Error("IsTheGameOver() = false for stalemate")
	}
}

func TestCheckmateFromFEN(t *testing.T) {
	// Back-rank mate: black king on h8 boxed in by its own pawns, white rook
	// on a8.
	g := resumeGame(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	if g.State() != core.StateCheckmate {
		t.Fatalf("state = %s, want checkmate", g.State())
	}
}

func TestDrawByInsufficientMaterial(t *testing.T) {
	// White must capture the queen; king versus king remains.
	g := resumeGame(t, "4k3/8/8/8/8/8/3q4/3K4 w - - 0 1")

	got := legalSquares(t, g, "d1")
	if diff := cmp.Diff([]string{"d2"}, got); diff != "" {
		t.Errorf("checked king legal moves mismatch (-want +got):\n%s", diff)
	}

	msg, err := g.MovePieceTo(cellAt(t, g, "d2"))
	if err != nil {
		t.Fatalf("MovePieceTo: %v", err)
	}
	if g.State() != core.StateDraw {
		t.Fatalf("state = %s, want draw", g.State())
	}
	if !strings.Contains(msg, "Draw") {
		t.Errorf("message = %q, want draw announcement", msg)
	}
}

func TestHistoryRecordsCaptures(t *testing.T) {
	g := resumeGame(t, "4k3/8/8/3p4/8/8/8/3RK3 w - - 0 1")
	move(t, g, "d1", "d5")

	history := g.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	rec := history[0]
	if rec.Piece != core.Rook || rec.Captured != core.Pawn || rec.Color != core.ColorWhite {
		t.Errorf("record = %+v, want white rook capturing pawn", rec)
	}
	if rec.UCI() != "d1d5" {
		t.Errorf("UCI = %q, want d1d5", rec.UCI())
	}
}
