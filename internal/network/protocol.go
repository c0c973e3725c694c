package network

import (
	"encoding/json"

	"github.com/coppermine-games/craftd/internal/game/item"
)

// Message types - Client → Server
const (
	MsgTypeJoin        = "join"
	MsgTypeLeave       = "leave"
	MsgTypeChat        = "chat"
	MsgTypePing        = "ping"
	MsgTypeClickWindow = "click_window"
	MsgTypeCreativeSet = "creative_inventory_action"
	MsgTypeSmelt       = "smelt"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypePlayerJoined  = "player_joined"
	MsgTypePlayerLeft    = "player_left"
	MsgTypeChatBroadcast = "chat"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
	MsgTypeConfirmAction = "window_confirmation"
	MsgTypeSetSlot       = "set_slot"
	MsgTypeSetCursor     = "cursor_slot"
	MsgTypeWindowItems   = "window_items"
	MsgTypeDropItem      = "drop_item"
	MsgTypeSmeltDone     = "smelt_complete"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// JoinPayload is sent by client to join the session
type JoinPayload struct {
	// Currently empty - join happens automatically after auth
}

// ChatPayload is sent by client to send a chat message
type ChatPayload struct {
	Message string `json:"message"`
}

// ClickWindowPayload is one inbound window gesture. Slot is signed; -1
// means "no slot" (begin/end paint, click outside). ActionNumber is echoed
// back in the confirmation.
type ClickWindowPayload struct {
	WindowID     int32 `json:"window_id"`
	Slot         int16 `json:"slot"`
	Button       uint8 `json:"button"`
	Mode         int32 `json:"mode"`
	ActionNumber int16 `json:"action_number"`
}

// CreativeSetPayload places an arbitrary stack directly into a slot of the
// player's own inventory. Slot -1 discards the held item.
type CreativeSetPayload struct {
	Slot        int16       `json:"slot"`
	ClickedItem *item.Stack `json:"clicked_item"`
}

// SmeltPayload asks the session to start cooking one item in a heat source.
type SmeltPayload struct {
	Heat string  `json:"heat"` // "furnace", "blast_furnace", "smoker", "campfire"
	Item item.ID `json:"item"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID  string `json:"player_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	Gamemode  string `json:"gamemode"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// ChatBroadcastPayload broadcasts a chat message to all clients
type ChatBroadcastPayload struct {
	PlayerID  string `json:"player_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp
}

// ConfirmActionPayload acknowledges one window gesture.
type ConfirmActionPayload struct {
	WindowID     int32 `json:"window_id"`
	ActionNumber int16 `json:"action_number"`
	Accepted     bool  `json:"accepted"`
}

// SetSlotPayload carries the resulting contents of a single slot.
type SetSlotPayload struct {
	WindowID int32       `json:"window_id"`
	Slot     int16       `json:"slot"`
	Item     *item.Stack `json:"item"`
}

// SetCursorPayload carries the stack currently held on the cursor.
type SetCursorPayload struct {
	Item *item.Stack `json:"item"`
}

// WindowItemsPayload refreshes the full window contents.
type WindowItemsPayload struct {
	WindowID int32         `json:"window_id"`
	Items    []*item.Stack `json:"items"`
}

// DropItemPayload is the entity-scoped drop event, carrying the dropped
// item's numeric catalog identity.
type DropItemPayload struct {
	PlayerID string `json:"player_id"`
	Item     int32  `json:"item"`
}

// SmeltDonePayload announces a finished cook job.
type SmeltDonePayload struct {
	PlayerID   string  `json:"player_id"`
	Result     item.ID `json:"result"`
	Experience float32 `json:"experience"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
