package cli

import (
	"fmt"
	"strings"

	"chess/internal/cli"
	"chess/internal/core"
	"chess/internal/service"
)

type CLIHandler struct {
	svc      *service.Service
	view     *cli.CLI
	gameID   string
	selected string
}

func New(svc *service.Service, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// Generates the appropriate turn prompt
func (h *CLIHandler) getPrompt() string {
	if h.gameID == "" {
		return "> "
	}
	g, err := h.svc.GetGame(h.gameID)
	if err != nil || g.IsTheGameOver() {
		return "> "
	}
	if h.selected != "" {
		return fmt.Sprintf("[%s %s->]> ", g.GetPlayer().Name(), h.selected)
	}
	return fmt.Sprintf("[%s]> ", g.GetPlayer().Name())
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		if cmd.Raw != "" {
			h.view.ShowMessage("Unrecognized input. Type 'help' for commands.")
		}

	case cli.CmdNew:
		return h.handleNewGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		fen := strings.Join(cmd.Args, " ")
		return h.handleNewGame(fen)

	case cli.CmdSquare:
		h.handleSquare(cmd.Args[0])

	case cli.CmdMove:
		h.handleMove(cmd.Args[0], cmd.Args[1])

	case cli.CmdBoard:
		if h.gameID == "" {
			h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
			return true
		}
		b, _ := h.svc.CurrentBoard(h.gameID)
		h.view.DisplayBoard(b)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			if h.gameID != "" {
				b, _ := h.svc.CurrentBoard(h.gameID)
				h.view.DisplayBoard(b)
			}
		}

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No active game.")
			return true
		}
		g, _ := h.svc.GetGame(h.gameID)
		h.view.ShowGameHistory(g)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

// A bare square either selects a piece or, when a selection is pending,
// completes the move to that square.
func (h *CLIHandler) handleSquare(square string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	if h.selected != "" && h.selected != square {
		from := h.selected
		h.selected = ""
		// Try to complete the move, fall back to reselecting
		if err := h.commitMove(from, square); err == nil {
			return
		}
	}

	moves, err := h.svc.Select(h.gameID, square)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	h.selected = square
	h.view.ShowLegalMoves(square, moves)
}

func (h *CLIHandler) handleMove(from, to string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	h.selected = ""
	if err := h.commitMove(from, to); err != nil {
		h.view.ShowError(err)
	}
}

func (h *CLIHandler) commitMove(from, to string) error {
	result, err := h.svc.Move(h.gameID, from, to)
	if err != nil {
		return err
	}

	h.view.ShowMessage(result)
	b, _ := h.svc.CurrentBoard(h.gameID)
	h.view.DisplayBoard(b)

	g, _ := h.svc.GetGame(h.gameID)
	if g.IsTheGameOver() {
		h.view.ShowGameOver(result)
		h.gameID = ""
		h.selected = ""
	}
	return nil
}

// Starts a new game after asking for player names
func (h *CLIHandler) handleNewGame(fen string) bool {
	h.view.ShowPrompt("White player name (default: White): ")
	whiteName := h.view.ReadLine()
	if whiteName == "" {
		whiteName = "White"
	}

	h.view.ShowPrompt("Black player name (default: Black): ")
	blackName := h.view.ReadLine()
	if blackName == "" {
		blackName = "Black"
	}

	id, err := h.svc.CreateGame(
		core.PlayerConfig{Name: whiteName},
		core.PlayerConfig{Name: blackName},
		fen, "",
	)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %v", err))
		return true
	}

	h.gameID = id
	h.selected = ""
	h.view.ShowMessage("Game started.")

	b, _ := h.svc.CurrentBoard(h.gameID)
	h.view.DisplayBoard(b)

	g, _ := h.svc.GetGame(h.gameID)
	if g.IsTheGameOver() {
		h.view.ShowMessage(fmt.Sprintf("Position is already final: %s", g.State()))
	}
	return true
}
