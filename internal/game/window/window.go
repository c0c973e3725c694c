package window

import (
	"errors"

	"github.com/coppermine-games/craftd/internal/game/item"
)

// Package window implements the slot storage and click/drag gesture state
// machine behind an open inventory window. A window is owned exclusively by
// the session it belongs to; callers must not interleave two gestures on
// the same window.

var (
	// ErrSlotOutOfRange is returned for any slot index at or beyond the
	// window's logical slot count.
	ErrSlotOutOfRange = errors.New("window: slot out of range")
	// ErrNoPaintSession is returned by paint operations that require an
	// open session.
	ErrNoPaintSession = errors.New("window: no paint session in progress")
)

// Player window slot layout: crafting output + 2x2 crafting grid (5),
// armor (4), main storage (27), hotbar (9), offhand (1).
const playerSlotCount = 46

// Slots a player contributes to an externally opened container window:
// main storage plus hotbar.
const playerStorageSlots = 36

type paintDirection int

const (
	// paintEven splits the cursor stack as evenly as possible across the
	// touched slots.
	paintEven paintDirection = iota
	// paintSingle places exactly one unit into each touched slot.
	paintSingle
)

// paintSession is the transient state of a multi-slot drag. A nil session
// on the window means idle; there is no separate flag to fall out of sync
// with the touched-slot list.
type paintSession struct {
	direction paintDirection
	slots     []int // touched slots in order, no duplicates
}

// Window is slot storage plus the interaction state machine and the
// cursor-held stack.
type Window struct {
	slots      []*item.Stack
	cursor     *item.Stack
	playerOnly bool
	catalog    *item.Catalog
	paint      *paintSession
}

// NewPlayerWindow creates a window backed only by the player's personal
// inventory.
func NewPlayerWindow(catalog *item.Catalog) *Window {
	return &Window{
		slots:      make([]*item.Stack, playerSlotCount),
		playerOnly: true,
		catalog:    catalog,
	}
}

// NewContainerWindow creates a window pairing an external container's
// slots with the player's storage slots. Container slots come first.
func NewContainerWindow(catalog *item.Catalog, containerSlots int) *Window {
	return &Window{
		slots:   make([]*item.Stack, containerSlots+playerStorageSlots),
		catalog: catalog,
	}
}

// PlayerOnly reports whether the window is backed solely by the player's
// personal inventory.
func (w *Window) PlayerOnly() bool { return w.playerOnly }

// SlotCount returns the window's logical slot count.
func (w *Window) SlotCount() int { return len(w.slots) }

// Item returns the stack at the slot, or nil if empty.
func (w *Window) Item(slot int) (*item.Stack, error) {
	if slot < 0 || slot >= len(w.slots) {
		return nil, ErrSlotOutOfRange
	}
	return w.slots[slot], nil
}

// SetItem replaces the slot's contents.
func (w *Window) SetItem(slot int, st *item.Stack) error {
	if slot < 0 || slot >= len(w.slots) {
		return ErrSlotOutOfRange
	}
	w.slots[slot] = normalize(st)
	return nil
}

// Cursor returns the stack held on the cursor, or nil.
func (w *Window) Cursor() *item.Stack { return w.cursor }

// Contents returns the window's slots in order. Empty slots are nil.
func (w *Window) Contents() []*item.Stack {
	out := make([]*item.Stack, len(w.slots))
	copy(out, w.slots)
	return out
}

func (w *Window) maxStack(id item.ID) int {
	if w.catalog == nil {
		return item.DefaultMaxStackSize
	}
	return w.catalog.MaxStackSize(id)
}

// normalize maps zero-count stacks to empty.
func normalize(st *item.Stack) *item.Stack {
	if st == nil || st.Count <= 0 {
		return nil
	}
	return st
}

// LeftClick exchanges the cursor and the slot. Same-kind stacks merge into
// the slot up to the per-item maximum, with overflow remaining on the
// cursor; anything else swaps wholesale.
func (w *Window) LeftClick(slot int) error {
	if slot < 0 || slot >= len(w.slots) {
		return ErrSlotOutOfRange
	}
	held := w.slots[slot]

	if w.cursor != nil && held != nil && w.cursor.Item == held.Item {
		space := w.maxStack(held.Item) - held.Count
		if space > 0 {
			n := w.cursor.Count
			if n > space {
				n = space
			}
			held.Count += n
			w.cursor.Count -= n
			w.cursor = normalize(w.cursor)
		}
		return nil
	}

	w.slots[slot], w.cursor = w.cursor, held
	return nil
}

// RightClick transfers one unit between cursor and slot. With an empty
// cursor it picks up half the slot's stack, rounded up; with a held stack
// it places a single unit into an empty or same-kind slot. Mismatched
// kinds swap wholesale.
func (w *Window) RightClick(slot int) error {
	if slot < 0 || slot >= len(w.slots) {
		return ErrSlotOutOfRange
	}
	held := w.slots[slot]

	switch {
	case w.cursor == nil && held == nil:
		// Nothing to do.
	case w.cursor == nil:
		take := (held.Count + 1) / 2
		w.cursor = &item.Stack{Item: held.Item, Count: take, Damage: held.Damage}
		held.Count -= take
		w.slots[slot] = normalize(held)
	case held == nil:
		w.slots[slot] = &item.Stack{Item: w.cursor.Item, Count: 1, Damage: w.cursor.Damage}
		w.cursor.Count--
		w.cursor = normalize(w.cursor)
	case w.cursor.Item == held.Item:
		if held.Count < w.maxStack(held.Item) {
			held.Count++
			w.cursor.Count--
			w.cursor = normalize(w.cursor)
		}
	default:
		w.slots[slot], w.cursor = w.cursor, held
	}
	return nil
}

// ShiftClick relocates the slot's stack into the first compatible slot
// elsewhere in the window: an empty slot, or one holding the same kind
// with room to merge. It is a no-op when the slot is empty or no
// destination has capacity; a partial merge leaves the remainder behind.
func (w *Window) ShiftClick(slot int) error {
	if slot < 0 || slot >= len(w.slots) {
		return ErrSlotOutOfRange
	}
	moving := w.slots[slot]
	if moving == nil {
		return nil
	}

	for i, dest := range w.slots {
		if i == slot {
			continue
		}
		if dest == nil {
			w.slots[i] = moving
			w.slots[slot] = nil
			return nil
		}
		if dest.Item != moving.Item {
			continue
		}
		space := w.maxStack(dest.Item) - dest.Count
		if space <= 0 {
			continue
		}
		n := moving.Count
		if n > space {
			n = space
		}
		dest.Count += n
		moving.Count -= n
		w.slots[slot] = normalize(moving)
		return nil
	}
	return nil
}

// BeginLeftMousePaint opens an even-split paint session, discarding any
// session already in progress.
func (w *Window) BeginLeftMousePaint() {
	w.paint = &paintSession{direction: paintEven}
}

// BeginRightMousePaint opens a single-unit paint session, discarding any
// session already in progress.
func (w *Window) BeginRightMousePaint() {
	w.paint = &paintSession{direction: paintSingle}
}

// AddPaintSlot appends a slot to the open session's touched set. Touching
// the same slot twice is a no-op.
func (w *Window) AddPaintSlot(slot int) error {
	if w.paint == nil {
		return ErrNoPaintSession
	}
	if slot < 0 || slot >= len(w.slots) {
		return ErrSlotOutOfRange
	}
	for _, s := range w.paint.slots {
		if s == slot {
			return nil
		}
	}
	w.paint.slots = append(w.paint.slots, slot)
	return nil
}

// EndPaint distributes the cursor stack across the eligible touched slots
// and closes the session. The session is reset unconditionally once
// distribution completes, even when nothing was placed.
func (w *Window) EndPaint() error {
	if w.paint == nil {
		return ErrNoPaintSession
	}
	session := w.paint
	w.paint = nil

	if w.cursor == nil {
		return nil
	}

	eligible := session.slots[:0]
	for _, slot := range session.slots {
		if w.paintEligible(slot) {
			eligible = append(eligible, slot)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	perSlot := 1
	if session.direction == paintEven {
		perSlot = w.cursor.Count / len(eligible)
	}

	for _, slot := range eligible {
		if w.cursor == nil {
			break
		}
		n := perSlot
		if n > w.cursor.Count {
			n = w.cursor.Count
		}
		if n <= 0 {
			break
		}
		dest := w.slots[slot]
		if dest == nil {
			dest = &item.Stack{Item: w.cursor.Item, Damage: w.cursor.Damage}
			w.slots[slot] = dest
		}
		space := w.maxStack(dest.Item) - dest.Count
		if n > space {
			n = space
		}
		dest.Count += n
		w.cursor.Count -= n
		w.slots[slot] = normalize(dest)
		w.cursor = normalize(w.cursor)
	}
	return nil
}

// paintEligible reports whether the slot can receive from the cursor:
// empty, or same kind and not full.
func (w *Window) paintEligible(slot int) bool {
	dest := w.slots[slot]
	if dest == nil {
		return true
	}
	return dest.Item == w.cursor.Item && dest.Count < w.maxStack(dest.Item)
}

// DropItem removes and returns the slot's entire contents, or nil if the
// slot is already empty.
func (w *Window) DropItem(slot int) (*item.Stack, error) {
	if slot < 0 || slot >= len(w.slots) {
		return nil, ErrSlotOutOfRange
	}
	dropped := w.slots[slot]
	w.slots[slot] = nil
	return dropped, nil
}
