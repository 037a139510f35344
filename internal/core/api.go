package core

// Request types

type CreateGameRequest struct {
	White PlayerConfig `json:"white" validate:"required"`
	Black PlayerConfig `json:"black" validate:"required"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type SelectRequest struct {
	Square string `json:"square" validate:"required,len=2"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,len=2"`
	To   string `json:"to" validate:"required,len=2"`
}

// Response types

type GameResponse struct {
	GameID  string          `json:"gameId"`
	FEN     string          `json:"fen"`
	Turn    string          `json:"turn"`  // "w" or "b"
	State   string          `json:"state"` // "running", "checkmate", ...
	Moves   []string        `json:"moves"`
	Players PlayersResponse `json:"players"`
	Result  string          `json:"result,omitempty"` // message for the last move
}

type SelectResponse struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"` // legal destination squares, possibly empty
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
