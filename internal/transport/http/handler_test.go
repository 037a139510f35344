package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"chess/internal/core"
	"chess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
)

func newTestApp() *fiber.App {
	svc := service.New(nil, []byte("test-secret-minimum-32-characters-xx"))
	return NewFiberApp(svc, true)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	resp.Body.Close()
	return resp, respBody
}

func createGame(t *testing.T, app *fiber.App) core.GameResponse {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/games", core.CreateGameRequest{
		White: core.PlayerConfig{Name: "alice"},
		Black: core.PlayerConfig{Name: "bob"},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create game status = %d, body %s", resp.StatusCode, body)
	}

	var game core.GameResponse
	if err := json.Unmarshal(body, &game); err != nil {
		t.Fatalf("decode game response: %v", err)
	}
	return game
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, fiber.MethodGet, "/health", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateGameReturnsStartingPosition(t *testing.T) {
	app := newTestApp()

	game := createGame(t, app)
	if game.GameID == "" {
		t.Error("gameId empty")
	}
	if game.Turn != "w" {
		t.Errorf("turn = %q, want w", game.Turn)
	}
	if game.Players.White.Name != "alice" || game.Players.Black.Name != "bob" {
		t.Errorf("players = %+v", game.Players)
	}
}

func TestSelectReturnsLegalMoves(t *testing.T) {
	app := newTestApp()
	game := createGame(t, app)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/games/"+game.GameID+"/select",
		core.SelectRequest{Square: "e2"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("select status = %d, body %s", resp.StatusCode, body)
	}

	var sel core.SelectResponse
	if err := json.Unmarshal(body, &sel); err != nil {
		t.Fatalf("decode select response: %v", err)
	}
	if diff := cmp.Diff([]string{"e3", "e4"}, sel.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveSwitchesTurn(t *testing.T) {
	app := newTestApp()
	game := createGame(t, app)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/games/"+game.GameID+"/moves",
		core.MoveRequest{From: "e2", To: "e4"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("move status = %d, body %s", resp.StatusCode, body)
	}

	var after core.GameResponse
	if err := json.Unmarshal(body, &after); err != nil {
		t.Fatalf("decode game response: %v", err)
	}
	if after.Turn != "b" {
		t.Errorf("turn = %q, want b", after.Turn)
	}
	if len(after.Moves) != 1 || after.Moves[0] != "e2e4" {
		t.Errorf("moves = %v, want [e2e4]", after.Moves)
	}
}

func TestIllegalMoveRejected(t *testing.T) {
	app := newTestApp()
	game := createGame(t, app)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/games/"+game.GameID+"/moves",
		core.MoveRequest{From: "e2", To: "e5"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var apiErr core.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if apiErr.Code != core.ErrIllegalMove {
		t.Errorf("code = %q, want %q", apiErr.Code, core.ErrIllegalMove)
	}
}

func TestUnknownGameReturns404(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/games/no-such-game", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var apiErr core.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if apiErr.Code != core.ErrGameNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, core.ErrGameNotFound)
	}
}

func TestCreateGameValidationFailure(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/games", map[string]any{})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", resp.StatusCode, body)
	}

	var apiErr core.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if apiErr.Code != core.ErrInvalidRequest {
		t.Errorf("code = %q, want %q", apiErr.Code, core.ErrInvalidRequest)
	}
}

func TestDeleteGame(t *testing.T) {
	app := newTestApp()
	game := createGame(t, app)

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/api/v1/games/"+game.GameID, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/games/"+game.GameID, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", resp.StatusCode)
	}
}

func TestAuthEndpointsRequireStorage(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("register without storage status = %d, want 409", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/auth/me", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("me without token status = %d, want 401", resp.StatusCode)
	}
}

func TestUnsupportedMediaType(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/games", bytes.NewReader([]byte("<xml/>")))
	req.Header.Set("Content-Type", "text/xml")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}
