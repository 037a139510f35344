package board

import (
	"fmt"
	"strings"

	"chess/internal/core"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// FromFEN parses the placement and side-to-move fields of a FEN string into a
// board. Castling, en passant and the move counters are accepted but ignored:
// they have no meaning under this rule set.
func FromFEN(fen string) (*Board, core.Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, 0, fmt.Errorf("invalid FEN: empty string")
	}

	b := &Board{}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != core.BoardSize {
		return nil, 0, fmt.Errorf("invalid FEN: expected 8 ranks, got %d", len(ranks))
	}

	for r := 0; r < core.BoardSize; r++ {
		file := 0
		for _, ch := range ranks[r] {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= core.BoardSize {
				return nil, 0, fmt.Errorf("invalid FEN: too many pieces in rank %d", core.BoardSize-r)
			}
			kind, color, err := charToPiece(byte(ch))
			if err != nil {
				return nil, 0, err
			}
			pos := core.Position{Row: r, Col: file}
			b.squares[r][file] = NewPiece(kind, color, pos)
			file++
		}
		if file != core.BoardSize {
			return nil, 0, fmt.Errorf("invalid FEN: rank %d has %d files", core.BoardSize-r, file)
		}
	}

	turn := core.ColorWhite
	if len(parts) >= 2 {
		switch parts[1] {
		case "w":
			turn = core.ColorWhite
		case "b":
			turn = core.ColorBlack
		default:
			return nil, 0, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
		}
	}

	return b, turn, nil
}

// ToFEN exports the position with the given side to move. The castling and en
// passant fields are always "-" and the counters are not tracked.
func (b *Board) ToFEN(turn core.Color) string {
	var sb strings.Builder

	for r := 0; r < core.BoardSize; r++ {
		empty := 0
		for f := 0; f < core.BoardSize; f++ {
			p := b.squares[r][f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToChar(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < core.BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return fmt.Sprintf("%s %s - - 0 1", sb.String(), turn)
}

var kindChars = map[core.PieceKind]byte{
	core.King:   'k',
	core.Queen:  'q',
	core.Rook:   'r',
	core.Bishop: 'b',
	core.Knight: 'n',
	core.Pawn:   'p',
}

func pieceToChar(p *Piece) byte {
	ch := kindChars[p.kind]
	if p.color == core.ColorWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

func charToPiece(ch byte) (core.PieceKind, core.Color, error) {
	color := core.ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		color = core.ColorWhite
		ch += 'a' - 'A'
	}
	for kind, kc := range kindChars {
		if kc == ch {
			return kind, color, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid FEN: unknown piece %q", string(ch))
}
