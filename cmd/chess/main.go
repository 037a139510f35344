// Package main implements a local two-player chess game on the terminal.
package main

import (
	"os"

	"chess/internal/cli"
	"chess/internal/service"
	clitransport "chess/internal/transport/cli"

	"github.com/chzyer/readline"
)

func main() {
	svc := service.New(nil, nil)
	defer svc.Close()

	var input cli.LineReader
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		// Not a terminal, read plain lines
		input = cli.NewScannerReader(os.Stdin)
	} else {
		defer rl.Close()
		input = rl
	}

	view := cli.New(input, os.Stdout)
	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	handler.Run()
}
