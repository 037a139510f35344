package service

import (
	"fmt"
	"sync"
	"time"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/game"
	"chess/internal/storage"

	"github.com/google/uuid"
)

// Service is a pure state manager for chess games with optional persistence.
// Each game runs single-threaded: the service lock serializes every operation
// that touches a game instance.
type Service struct {
	games     map[string]*game.Game
	mu        sync.RWMutex
	store     *storage.Store // nil if persistence disabled
	jwtSecret []byte
}

// New creates a new service instance with optional storage
func New(store *storage.Store, jwtSecret []byte) *Service {
	return &Service{
		games:     make(map[string]*game.Game),
		store:     store,
		jwtSecret: jwtSecret,
	}
}

// CreateGame starts a new game and returns its ID. An empty initialFEN means
// the standard starting position.
func (s *Service) CreateGame(whiteConfig, blackConfig core.PlayerConfig, initialFEN, ownerUserID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	whitePlayer := core.NewPlayer(whiteConfig, core.ColorWhite)
	blackPlayer := core.NewPlayer(blackConfig, core.ColorBlack)

	var g *game.Game
	if initialFEN == "" {
		g = game.New(whitePlayer, blackPlayer)
	} else {
		var err error
		g, err = game.NewFromFEN(initialFEN, whitePlayer, blackPlayer)
		if err != nil {
			return "", err
		}
	}

	id := s.generateGameID()
	s.games[id] = g

	if s.store != nil {
		record := storage.GameRecord{
			GameID:       id,
			OwnerUserID:  ownerUserID,
			InitialFEN:   g.CurrentFEN(),
			WhiteName:    whitePlayer.Name,
			BlackName:    blackPlayer.Name,
			StartTimeUTC: time.Now().UTC(),
		}
		s.store.RecordNewGame(record)
	}

	return id, nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	return g, nil
}

// generateGameID creates a new unique game ID. Caller must hold the lock.
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// Select runs the first phase of the move protocol: it validates the source
// square and returns the legal destination squares for the piece on it.
func (s *Service) Select(gameID, square string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}

	pos, err := core.ParseSquare(square)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}

	moves, err := g.MovePieceFrom(g.CellAt(pos))
	if err != nil {
		return nil, err
	}

	squares := make([]string, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.Square())
	}
	return squares, nil
}

// Move runs both phases of the move protocol for from/to squares, commits the
// move and persists the record. It returns the game's result message.
func (s *Service) Move(gameID, from, to string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return "", fmt.Errorf("game not found: %s", gameID)
	}

	fromPos, err := core.ParseSquare(from)
	if err != nil {
		return "", fmt.Errorf("%w: %v", game.ErrInvalidSelection, err)
	}
	toPos, err := core.ParseSquare(to)
	if err != nil {
		return "", fmt.Errorf("%w: %v", game.ErrIllegalMove, err)
	}

	if _, err := g.MovePieceFrom(g.CellAt(fromPos)); err != nil {
		return "", err
	}
	msg, err := g.MovePieceTo(g.CellAt(toPos))
	if err != nil {
		return "", err
	}

	if s.store != nil {
		history := g.History()
		last := history[len(history)-1]
		record := storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   last.Number,
			FromSquare:   last.From.Square(),
			ToSquare:     last.To.Square(),
			Piece:        last.Piece.String(),
			Result:       last.Result,
			FENAfterMove: last.FENAfter,
			PlayerColor:  last.Color.String(),
			MoveTimeUTC:  time.Now().UTC(),
		}
		if last.Captured != 0 {
			record.Captured = last.Captured.String()
		}
		s.store.RecordMove(record)
	}

	return msg, nil
}

// CurrentBoard returns the live board of a game for rendering.
func (s *Service) CurrentBoard(gameID string) (*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	return g.GetGameBoard(), nil
}

// DeleteGame removes a game from memory and, when persistence is enabled,
// from storage.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}

	delete(s.games, gameID)

	if s.store != nil {
		s.store.DeleteGameRecords(gameID)
	}
	return nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
