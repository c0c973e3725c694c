package models

import "time"

// Gamemode is the play mode a player is currently in.
type Gamemode string

const (
	GamemodeSurvival  Gamemode = "survival"
	GamemodeCreative  Gamemode = "creative"
	GamemodeAdventure Gamemode = "adventure"
	GamemodeSpectator Gamemode = "spectator"
)

// Valid reports whether g is one of the recognized gamemodes.
func (g Gamemode) Valid() bool {
	switch g {
	case GamemodeSurvival, GamemodeCreative, GamemodeAdventure, GamemodeSpectator:
		return true
	}
	return false
}

// Player represents a player in the game
type Player struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Email       string `json:"email"`       // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags
	Activated   int64  `json:"activated"`   // JWT claim: activation timestamp or ban status
	AuthMethod  string `json:"auth_method"` // JWT claim: "password" or "oauth"

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string   `json:"session_id"`
	Gamemode  Gamemode `json:"gamemode"`
}

// IsActive checks if the player account is activated and not banned
func (p *Player) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return p.Activated > 0
}

// IsBanned checks if the player is banned
func (p *Player) IsBanned() bool {
	return p.Activated == -1
}

// IsConnected checks if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Connected
}
