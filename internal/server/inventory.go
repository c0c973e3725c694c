package server

import (
	"errors"
	"fmt"

	"github.com/coppermine-games/craftd/internal/game/item"
	"github.com/coppermine-games/craftd/internal/game/window"
	"github.com/coppermine-games/craftd/internal/network"
	"github.com/coppermine-games/craftd/pkg/models"
)

var (
	// ErrNotCreative rejects a creative-set action from a player who is
	// not in creative mode.
	ErrNotCreative = errors.New("cannot use creative inventory action outside of creative mode")
	// ErrNotPlayerWindow rejects a creative-set action against an
	// externally opened container.
	ErrNotPlayerWindow = errors.New("cannot use creative inventory action in external inventories")
)

// Outbound is the set of client-visible effects a window gesture produces.
// A Connection implements it over the websocket; tests substitute a
// recorder.
type Outbound interface {
	ConfirmWindowAction(windowID int32, actionNumber int16, accepted bool)
	SetSlot(windowID int32, slot int16, st *item.Stack)
	SetCursorSlot(st *item.Stack)
	SendWindowItems(windowID int32, items []*item.Stack)
	// DropItem emits the entity-scoped drop event with the item's numeric
	// catalog identity.
	DropItem(itemID int32)
}

// HandleClickWindow routes one inbound gesture to the window operation it
// names and, on success, emits the fixed confirmation sequence: action
// confirmation, the clicked slot's contents (when a slot was named), the
// cursor stack, and the full window contents. Any failure propagates with
// all outbound messages suppressed.
func HandleClickWindow(w *window.Window, catalog *item.Catalog, pkt *network.ClickWindowPayload, out Outbound) error {
	slot := int(pkt.Slot)

	switch pkt.Mode {
	case 0:
		switch pkt.Button {
		case 0:
			if err := w.LeftClick(slot); err != nil {
				return err
			}
		case 1:
			if err := w.RightClick(slot); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unrecognized click: mode %d button %d", pkt.Mode, pkt.Button)
		}

	case 1:
		if err := w.ShiftClick(slot); err != nil {
			return err
		}

	case 4:
		dropped, err := w.DropItem(slot)
		if err != nil {
			return err
		}
		if dropped != nil {
			numeric, _ := catalog.NumericID(dropped.Item)
			out.DropItem(numeric)
		}

	case 5:
		switch pkt.Button {
		case 0:
			w.BeginLeftMousePaint()
		case 4:
			w.BeginRightMousePaint()
		case 1, 5:
			if err := w.AddPaintSlot(slot); err != nil {
				return err
			}
		case 2, 6:
			if err := w.EndPaint(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unrecognized paint operation: button %d", pkt.Button)
		}

	default:
		return fmt.Errorf("unsupported window click mode %d", pkt.Mode)
	}

	// Resolve the slot contents before sending anything, so a bad slot
	// index on a slotless gesture cannot surface after the confirmation.
	var slotContents *item.Stack
	if pkt.Slot >= 0 {
		st, err := w.Item(slot)
		if err != nil {
			return err
		}
		slotContents = st
	}

	out.ConfirmWindowAction(pkt.WindowID, pkt.ActionNumber, true)
	if pkt.Slot >= 0 {
		out.SetSlot(pkt.WindowID, pkt.Slot, slotContents)
	}
	out.SetCursorSlot(w.Cursor())
	out.SendWindowItems(pkt.WindowID, w.Contents())
	return nil
}

// HandleCreativeSet places an arbitrary stack directly into a slot. It is
// legal only in creative mode and only against the player's own personal
// inventory window. Slot -1 discards the held item and is a no-op success.
func HandleCreativeSet(player *models.Player, w *window.Window, pkt *network.CreativeSetPayload) error {
	if player.Gamemode != models.GamemodeCreative {
		return ErrNotCreative
	}
	if pkt.Slot == -1 {
		return nil
	}
	if !w.PlayerOnly() {
		return ErrNotPlayerWindow
	}
	return w.SetItem(int(pkt.Slot), pkt.ClickedItem)
}
