package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// DefaultMaxStackSize is used for items the catalog has no entry for.
const DefaultMaxStackSize = 64

// Details captures metadata about an item kind. NumericID is the compact
// identifier carried by wire messages such as the drop event.
type Details struct {
	ID           ID     `json:"id"`
	NumericID    int32  `json:"numericId,omitempty"`
	Name         string `json:"name,omitempty"`
	MaxStackSize int    `json:"maxStackSize,omitempty"`
}

// Catalog stores item details keyed by ID and provides numeric handles for
// the wire. It is populated once at startup and read-only afterwards.
type Catalog struct {
	mu     sync.RWMutex
	items  map[ID]Details
	byNum  map[int32]ID
	nextID int32
}

// NewCatalog constructs an empty catalog and optionally seeds it with
// initial item details.
func NewCatalog(details ...Details) *Catalog {
	c := &Catalog{
		items: make(map[ID]Details, len(details)),
		byNum: make(map[int32]ID, len(details)),
	}
	for _, d := range details {
		_ = c.Register(d) // ignore duplicates during seed
	}
	return c
}

// LoadCatalog reads a JSON array of item details from a file. Any read or
// decode failure aborts the whole load.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog: %w", err)
	}
	var details []Details
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to parse item catalog: %w", err)
	}
	c := NewCatalog()
	for _, d := range details {
		if err := c.Register(d); err != nil {
			return nil, fmt.Errorf("item catalog entry %q: %w", d.ID, err)
		}
	}
	return c, nil
}

// Register inserts or updates metadata for an item. The ID must be
// non-empty.
func (c *Catalog) Register(d Details) error {
	if d.ID == "" {
		return errors.New("item: details missing id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, exists := c.items[d.ID]
	if exists {
		if d.NumericID == 0 {
			d.NumericID = existing.NumericID
		} else if existing.NumericID != 0 && existing.NumericID != d.NumericID {
			return errors.New("item: numeric id mismatch for existing item")
		}
	}

	if d.NumericID == 0 {
		c.nextID++
		d.NumericID = c.nextID
	} else {
		if d.NumericID < 0 {
			return errors.New("item: numeric id must be positive")
		}
		if owner, collision := c.byNum[d.NumericID]; collision && owner != d.ID {
			return errors.New("item: numeric id already assigned to another item")
		}
		if d.NumericID > c.nextID {
			c.nextID = d.NumericID
		}
	}

	if d.MaxStackSize == 0 {
		d.MaxStackSize = DefaultMaxStackSize
	}

	c.items[d.ID] = d
	c.byNum[d.NumericID] = d.ID
	return nil
}

// Lookup returns details for the provided ID, if present.
func (c *Catalog) Lookup(id ID) (Details, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.items[id]
	return d, ok
}

// NumericID returns the compact wire identifier for the provided item.
func (c *Catalog) NumericID(id ID) (int32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.items[id]
	if !ok || d.NumericID == 0 {
		return 0, false
	}
	return d.NumericID, true
}

// MaxStackSize returns the per-item maximum stack count, falling back to
// DefaultMaxStackSize for unknown items.
func (c *Catalog) MaxStackSize(id ID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.items[id]; ok && d.MaxStackSize > 0 {
		return d.MaxStackSize
	}
	return DefaultMaxStackSize
}

// Export copies catalog contents into a slice sorted by numeric ID,
// suitable for sending to clients.
func (c *Catalog) Export() []Details {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Details, 0, len(c.items))
	for _, d := range c.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NumericID != out[j].NumericID {
			return out[i].NumericID < out[j].NumericID
		}
		return out[i].ID < out[j].ID
	})
	return out
}
