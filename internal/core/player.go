package core

import (
	"github.com/google/uuid"
)

// Player identifies one side of a game.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}

// PlayersResponse for API responses
type PlayersResponse struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, color Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Name:  config.Name,
		Color: color,
	}
}
