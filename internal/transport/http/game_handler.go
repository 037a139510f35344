package http

import (
	"errors"
	"strings"

	"chess/internal/core"
	"chess/internal/game"

	"github.com/gofiber/fiber/v2"
)

// CreateGame creates a new game with the given player names and optional
// starting FEN. An authenticated creator becomes the recorded owner.
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.CreateGameRequest)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "request validation did not run",
			Code:  core.ErrInternalError,
		})
	}

	ownerUserID, _ := c.Locals("userID").(string)

	gameID, err := h.svc.CreateGame(req.White, req.Black, req.FEN, ownerUserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "failed to create game",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	}

	g, _ := h.svc.GetGame(gameID)
	return c.Status(fiber.StatusCreated).JSON(h.buildGameResponse(gameID, g, ""))
}

// GetGame retrieves the current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(h.buildGameResponse(gameID, g, ""))
}

// SelectPiece validates a source square and returns the legal destinations
// for the piece on it.
func (h *HTTPHandler) SelectPiece(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	req, ok := c.Locals("validatedBody").(*core.SelectRequest)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "request validation did not run",
			Code:  core.ErrInternalError,
		})
	}

	moves, err := h.svc.Select(gameID, req.Square)
	if err != nil {
		return gameError(c, err)
	}

	return c.JSON(core.SelectResponse{
		Square: req.Square,
		Moves:  moves,
	})
}

// MakeMove commits a move and returns the updated game state with the result
// message.
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	req, ok := c.Locals("validatedBody").(*core.MoveRequest)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "request validation did not run",
			Code:  core.ErrInternalError,
		})
	}

	result, err := h.svc.Move(gameID, req.From, req.To)
	if err != nil {
		return gameError(c, err)
	}

	g, _ := h.svc.GetGame(gameID)
	return c.JSON(h.buildGameResponse(gameID, g, result))
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if err := h.svc.DeleteGame(gameID); err != nil {
		return gameNotFound(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	b, _ := h.svc.CurrentBoard(gameID)
	return c.JSON(core.BoardResponse{
		FEN:   g.CurrentFEN(),
		Board: b.ToASCII(),
	})
}

func (h *HTTPHandler) buildGameResponse(gameID string, g *game.Game, result string) core.GameResponse {
	return core.GameResponse{
		GameID: gameID,
		FEN:    g.CurrentFEN(),
		Turn:   g.GetPlayer().String(),
		State:  g.State().String(),
		Moves:  g.Moves(),
		Players: core.PlayersResponse{
			White: g.GetPlayerInfo(core.ColorWhite),
			Black: g.GetPlayerInfo(core.ColorBlack),
		},
		Result: result,
	}
}

func gameNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
		Error: "game not found",
		Code:  core.ErrGameNotFound,
	})
}

// gameError maps game-layer failures onto the API error envelope.
func gameError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, game.ErrInvalidSelection):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid selection",
			Code:    core.ErrInvalidSelection,
			Details: err.Error(),
		})
	case errors.Is(err, game.ErrIllegalMove):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "illegal move",
			Code:    core.ErrIllegalMove,
			Details: err.Error(),
		})
	case errors.Is(err, game.ErrInvariantViolation):
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "internal game state error",
			Code:    core.ErrInternalError,
			Details: err.Error(),
		})
	case strings.Contains(err.Error(), "not found"):
		return gameNotFound(c)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "request failed",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}
}
