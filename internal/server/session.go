package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coppermine-games/craftd/internal/config"
	"github.com/coppermine-games/craftd/internal/game/furnace"
	"github.com/coppermine-games/craftd/internal/game/item"
	"github.com/coppermine-games/craftd/internal/game/recipe"
	"github.com/coppermine-games/craftd/internal/game/window"
	"github.com/coppermine-games/craftd/internal/network"
	"github.com/coppermine-games/craftd/pkg/models"
)

// Session represents a game session
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players     map[string]*models.Player // playerID -> Player
	connections map[string]*Connection    // playerID -> Connection
	windows     map[string]*window.Window // playerID -> open window
	mu          sync.RWMutex

	// Cook scheduling, driven by the tick loop
	furnaces *furnace.Manager

	// Configuration and loaded game data
	config  *config.Config
	catalog *item.Catalog
}

// NewSession creates a new game session backed by the loaded recipe and
// item data.
func NewSession(id string, cfg *config.Config, catalog *item.Catalog, tags *item.TagRegistry, recipes *recipe.Registry) (*Session, error) {
	log.Printf("Creating session: %s", id)

	session := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]*Connection),
		windows:     make(map[string]*window.Window),
		config:      cfg,
		catalog:     catalog,
	}
	session.furnaces = furnace.NewManager(recipes, tags, cfg.Server.TickRate, session.onCookComplete)

	log.Printf("Session %s created (%d recipes loaded)", id, recipes.Len())
	return session, nil
}

// Run drives the session's tick loop until the context is cancelled.
func (s *Session) Run(ctx context.Context) {
	tickRate := s.config.Server.TickRate
	if tickRate <= 0 {
		tickRate = 20
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.furnaces.Update(now)
		case <-ctx.Done():
			return
		}
	}
}

// AddPlayer adds a player to the session and opens their personal
// inventory window.
func (s *Session) AddPlayer(player *models.Player, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.ID] = player
	s.connections[player.ID] = conn
	s.windows[player.ID] = window.NewPlayerWindow(s.catalog)

	log.Printf("Player %s (%s) joined session %s", player.Username, player.ID, s.ID)
	return nil
}

// RemovePlayer removes a player from the session
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, exists := s.players[playerID]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
		delete(s.players, playerID)
		delete(s.connections, playerID)
		delete(s.windows, playerID)
	}
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// GetPlayers returns all players in the session
func (s *Session) GetPlayers() []*models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*models.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players
}

// Window returns the window currently open for the player.
func (s *Session) Window(playerID string) (*window.Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.windows[playerID]
	return w, exists
}

// Furnaces exposes the session's cook-job manager.
func (s *Session) Furnaces() *furnace.Manager {
	return s.furnaces
}

// PlayerCount returns the number of connected players.
func (s *Session) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified connection
func (s *Session) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}

// BroadcastDropItem announces a dropped item stack to every player. The
// payload carries the item's numeric catalog identity.
func (s *Session) BroadcastDropItem(playerID string, itemID int32) {
	s.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeDropItem,
		Payload: network.DropItemPayload{
			PlayerID: playerID,
			Item:     itemID,
		},
	})
}

// onCookComplete runs on the tick goroutine for each finished cook job.
func (s *Session) onCookComplete(job *furnace.Job) {
	s.mu.RLock()
	conn, exists := s.connections[job.Owner]
	s.mu.RUnlock()

	if !exists {
		// Owner disconnected before the job finished; the result is lost.
		log.Printf("Cook job %s finished for absent player %s", job.ID, job.Owner)
		return
	}

	conn.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeSmeltDone,
		Payload: network.SmeltDonePayload{
			PlayerID:   job.Owner,
			Result:     job.Result,
			Experience: job.Experience,
		},
	})
}
