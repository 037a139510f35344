package game

import (
	"fmt"

	"chess/internal/board"
	"chess/internal/core"
)

// MoveRecord tracks one committed move.
type MoveRecord struct {
	Number   int
	From     core.Position
	To       core.Position
	Piece    core.PieceKind
	Captured core.PieceKind // zero if nothing was captured
	Color    core.Color
	Result   string
	FENAfter string
}

// UCI returns the coordinate form of the move, e.g. "e2e4".
func (r MoveRecord) UCI() string {
	return r.From.Square() + r.To.Square()
}

type selection struct {
	from  core.Position
	moves []core.Position
}

// Game owns the board, the side to move and the outcome state for the
// lifetime of one match. Moves follow a two-phase protocol: MovePieceFrom
// selects a source and returns the legal destinations, MovePieceTo commits
// one of them.
type Game struct {
	board    *board.Board
	player   core.Color
	state    core.State
	selected *selection
	history  []MoveRecord
	players  map[core.Color]*core.Player
}

// New starts a game from the standard initial layout, white to move.
func New(whitePlayer, blackPlayer *core.Player) *Game {
	g := &Game{
		board:  board.New(),
		player: core.ColorWhite,
		state:  core.StateRunning,
		players: map[core.Color]*core.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
	}
	return g
}

// NewFromFEN resumes a game from a FEN position. The terminal conditions are
// evaluated immediately so a resumed mate or stalemate is recognized before
// the first call.
func NewFromFEN(fen string, whitePlayer, blackPlayer *core.Player) (*Game, error) {
	b, turn, err := board.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:  b,
		player: turn,
		state:  core.StateRunning,
		players: map[core.Color]*core.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
	}
	if err := g.evaluateState(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) GetGameBoard() *board.Board {
	return g.board
}

// GetPlayer returns the color whose turn it is.
func (g *Game) GetPlayer() core.Color {
	return g.player
}

func (g *Game) GetPlayerInfo(color core.Color) *core.Player {
	return g.players[color]
}

func (g *Game) State() core.State {
	return g.state
}

// IsTheGameOver reports whether the game reached a terminal state.
func (g *Game) IsTheGameOver() bool {
	return g.state != core.StateRunning
}

// History returns the committed moves in order.
func (g *Game) History() []MoveRecord {
	return g.history
}

// Moves returns the committed moves in coordinate form.
func (g *Game) Moves() []string {
	moves := make([]string, 0, len(g.history))
	for _, r := range g.history {
		moves = append(moves, r.UCI())
	}
	return moves
}

// CurrentFEN exports the current position.
func (g *Game) CurrentFEN() string {
	return g.board.ToFEN(g.player)
}

// CellAt describes the square at pos for a caller building a selection.
func (g *Game) CellAt(pos core.Position) core.Cell {
	cell := core.Cell{Position: pos}
	if p := g.board.PieceAt(pos); p != nil {
		cell.Kind = p.Kind()
		cell.Occupied = true
	}
	return cell
}

// MovePieceFrom validates a source selection and returns the legal
// destinations for the piece on it: the piece's raw candidate moves minus
// every move that would leave the mover's own king attacked. The returned set
// may be empty. On failure nothing is mutated.
func (g *Game) MovePieceFrom(cell core.Cell) ([]core.Position, error) {
	if g.state != core.StateRunning {
		return nil, fmt.Errorf("%w: game is over (%s)", ErrInvalidSelection, g.state)
	}

	piece := g.board.PieceAt(cell.Position)
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece on %s", ErrInvalidSelection, cell.Position.Square())
	}
	if piece.Color() != g.player {
		return nil, fmt.Errorf("%w: %s on %s does not belong to %s",
			ErrInvalidSelection, piece.Kind(), cell.Position.Square(), g.player.Name())
	}

	moves, err := g.legalMoves(piece)
	if err != nil {
		return nil, err
	}

	g.selected = &selection{from: cell.Position, moves: moves}
	return moves, nil
}

// MovePieceTo commits the previously selected piece to the destination cell.
// It returns a message describing the outcome: plain move, capture, check,
// checkmate, stalemate or draw.
func (g *Game) MovePieceTo(cell core.Cell) (string, error) {
	if g.selected == nil {
		return "", fmt.Errorf("%w: no piece selected", ErrIllegalMove)
	}

	to := cell.Position
	if !g.selected.contains(to) {
		return "", fmt.Errorf("%w: %s is not a legal destination for the piece on %s",
			ErrIllegalMove, to.Square(), g.selected.from.Square())
	}

	from := g.selected.from
	mover := g.player
	piece := g.board.PieceAt(from)
	if piece == nil {
		return "", fmt.Errorf("%w: selected square %s is empty", ErrInvariantViolation, from.Square())
	}

	captured, err := g.board.ApplyMove(from, to)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	g.selected = nil
	g.player = core.OppositeColor(mover)

	if err := g.evaluateState(); err != nil {
		return "", err
	}

	msg := g.describeMove(mover, piece.Kind(), from, to, captured)

	record := MoveRecord{
		Number:   len(g.history) + 1,
		From:     from,
		To:       to,
		Piece:    piece.Kind(),
		Color:    mover,
		Result:   msg,
		FENAfter: g.CurrentFEN(),
	}
	if captured != nil {
		record.Captured = captured.Kind()
	}
	g.history = append(g.history, record)

	return msg, nil
}

func (s *selection) contains(pos core.Position) bool {
	for _, m := range s.moves {
		if m == pos {
			return true
		}
	}
	return false
}

func (g *Game) describeMove(mover core.Color, kind core.PieceKind, from, to core.Position, captured *board.Piece) string {
	var msg string
	if captured != nil {
		msg = fmt.Sprintf("%s %s captured %s %s on %s",
			mover.Name(), kind, captured.Color().Name(), captured.Kind(), to.Square())
	} else {
		msg = fmt.Sprintf("%s moved %s from %s to %s",
			mover.Name(), kind, from.Square(), to.Square())
	}

	switch g.state {
	case core.StateCheckmate:
		msg += fmt.Sprintf(". Checkmate, %s wins", mover.Name())
	case core.StateStalemate:
		msg += ". Stalemate"
	case core.StateDraw:
		msg += ". Draw by insufficient material"
	default:
		if inCheck, err := g.isInCheck(g.player); err == nil && inCheck {
			msg += ". Check"
		}
	}
	return msg
}

// legalMoves filters a piece's raw candidate moves through king-safety
// simulation. Checkmate and stalemate evaluation reuse this same routine so
// the rules cannot diverge.
func (g *Game) legalMoves(piece *board.Piece) ([]core.Position, error) {
	var legal []core.Position
	for _, to := range piece.AvailableMoves(g.board) {
		safe, err := g.moveKeepsKingSafe(piece.Color(), piece.Position(), to)
		if err != nil {
			return nil, err
		}
		if safe {
			legal = append(legal, to)
		}
	}
	return legal, nil
}

// moveKeepsKingSafe simulates from->to on the live board, checks whether the
// mover's king is attacked in the resulting position and reverts the board
// before returning on every path.
func (g *Game) moveKeepsKingSafe(mover core.Color, from, to core.Position) (bool, error) {
	captured, err := g.board.ApplyMove(from, to)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	defer g.board.RevertMove(from, to, captured)

	inCheck, err := g.isInCheck(mover)
	if err != nil {
		return false, err
	}
	return !inCheck, nil
}

// isAttacked reports whether any piece of the given color could reach pos by
// its raw geometry alone.
func (g *Game) isAttacked(pos core.Position, by core.Color) bool {
	for _, p := range g.board.Pieces(by) {
		for _, m := range p.AvailableMoves(g.board) {
			if m == pos {
				return true
			}
		}
	}
	return false
}

func (g *Game) isInCheck(color core.Color) (bool, error) {
	kingPos, err := g.board.FindKing(color)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return g.isAttacked(kingPos, core.OppositeColor(color)), nil
}

func (g *Game) hasAnyLegalMove(color core.Color) (bool, error) {
	for _, p := range g.board.Pieces(color) {
		moves, err := g.legalMoves(p)
		if err != nil {
			return false, err
		}
		if len(moves) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// evaluateState decides the outcome for the side to move: checkmate when it
// is in check with no legal move, stalemate when it is not in check with no
// legal move, draw when neither side retains mating material.
func (g *Game) evaluateState() error {
	inCheck, err := g.isInCheck(g.player)
	if err != nil {
		return err
	}
	canMove, err := g.hasAnyLegalMove(g.player)
	if err != nil {
		return err
	}

	switch {
	case inCheck && !canMove:
		g.state = core.StateCheckmate
	case !inCheck && !canMove:
		g.state = core.StateStalemate
	case g.insufficientMaterial():
		g.state = core.StateDraw
	default:
		g.state = core.StateRunning
	}
	return nil
}

// insufficientMaterial reports positions where no checkmate can ever be
// forced: king versus king, optionally with a single bishop or knight on
// either side.
func (g *Game) insufficientMaterial() bool {
	var minor int
	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, p := range g.board.Pieces(color) {
			switch p.Kind() {
			case core.King:
			case core.Bishop, core.Knight:
				minor++
			default:
				return false
			}
		}
	}
	return minor <= 1
}
