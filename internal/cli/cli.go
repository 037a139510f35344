package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdSquare
	CmdMove
	CmdBoard
	CmdColor
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// LineReader supplies input lines. readline instances satisfy it directly,
// tests use NewScannerReader.
type LineReader interface {
	Readline() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) Readline() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// NewScannerReader wraps a plain reader as a LineReader
func NewScannerReader(input io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(input)}
}

type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// Reads a command synchronously
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err != nil {
		if err == io.EOF {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return c.parseCommand(input), nil
}

func (c *CLI) parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "board":
		return &Command{Type: CmdBoard}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// A bare square selects a piece, a square pair makes a move
		if len(cmd) == 2 && len(args) == 0 {
			return &Command{Type: CmdSquare, Args: []string{cmd}}
		}
		if len(cmd) == 4 && len(args) == 0 {
			return &Command{Type: CmdMove, Args: []string{cmd[:2], cmd[2:]}}
		}
		if len(cmd) == 2 && len(args) == 1 && len(args[0]) == 2 {
			return &Command{Type: CmdMove, Args: []string{cmd, args[0]}}
		}
		return &Command{Type: CmdNone, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

func (c *CLI) ReadLine() string {
	line, err := c.input.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func pieceRune(p *board.Piece) rune {
	var r rune
	switch p.Kind() {
	case core.King:
		r = 'k'
	case core.Queen:
		r = 'q'
	case core.Rook:
		r = 'r'
	case core.Bishop:
		r = 'b'
	case core.Knight:
		r = 'n'
	case core.Pawn:
		r = 'p'
	}
	if p.Color() == core.ColorWhite {
		r = r - 'a' + 'A'
	}
	return r
}

func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < core.BoardSize; f++ {
			piece := b.PieceAt(core.Position{Row: r, Col: f})

			if c.theme == ThemeOff {
				if piece == nil {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", pieceRune(piece)))
				}
			} else {
				bg := theme.darkBg
				if (r+f)%2 == 0 {
					bg = theme.lightBg
				}

				if piece == nil {
					sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				} else {
					color := theme.black
					if piece.Color() == core.ColorWhite {
						color = theme.white
					}
					sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, pieceRune(piece), theme.reset))
				}
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

// ShowLegalMoves prints the destinations for a selected piece
func (c *CLI) ShowLegalMoves(square string, moves []string) {
	if len(moves) == 0 {
		c.ShowMessage(fmt.Sprintf("%s has no legal moves.", square))
		return
	}
	c.ShowMessage(fmt.Sprintf("%s can move to: %s", square, strings.Join(moves, " ")))
	c.ShowMessage("Enter a destination square, or another square to reselect.")
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game
  resume <FEN>     - Resume from a specific board position
  <square>         - Select a piece and list its legal moves (e.g. e2)
  <move>           - Make a move directly (e.g. e2e4 or 'e2 e4')
  board            - Redraw the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  history          - Show game move history and positions
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Commands: new, resume <FEN>, <square>, <move>, board, history, help/?")
	c.ShowMessage("Example: 'e2' to see the pawn's moves, then 'e4' to play it.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	moves := g.Moves()
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", g.CurrentFEN()))
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.State()))
}

func (c *CLI) ShowGameOver(result string) {
	c.ShowMessage(fmt.Sprintf("\nGame over. %s", result))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}
