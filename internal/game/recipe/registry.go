package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coppermine-games/craftd/internal/game/item"
)

// Registry holds one insertion-ordered collection per recipe kind. Load
// order is match priority: the first matching recipe in a kind's list wins.
// A registry is built once at startup and read-only afterwards; concurrent
// queries need no locking because no write path exists after construction.
type Registry struct {
	blasting     []*CookingRecipe
	campfire     []*CookingRecipe
	smelting     []*CookingRecipe
	smoking      []*CookingRecipe
	stonecutting []*StonecuttingRecipe
	shapeless    []*ShapelessRecipe
	shaped       []*ShapedRecipe
	smithing     []*SmithingRecipe

	strictShapeless bool
}

// Option configures registry construction.
type Option func(*Registry)

// WithStrictShapeless makes shapeless matching require every ingredient
// alternative to be consumed. The default is the historical lenient
// behavior, where supplying fewer items than ingredients still matches.
func WithStrictShapeless() Option {
	return func(r *Registry) {
		r.strictShapeless = true
	}
}

// NewRegistry constructs an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// LoadDir scans a directory (non-recursively) of recipe descriptors and
// builds a registry from them. Any I/O or parse failure aborts the entire
// load; a partial registry is never returned.
func LoadDir(dir string, opts ...Option) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe directory: %w", err)
	}

	r := NewRegistry(opts...)
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, fmt.Errorf("unexpected directory in recipe directory: %s", entry.Name())
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe file %s: %w", entry.Name(), err)
		}
		rec, err := ParseRecipe(data)
		if err != nil {
			return nil, fmt.Errorf("recipe file %s: %w", entry.Name(), err)
		}
		if err := r.Add(rec); err != nil {
			return nil, fmt.Errorf("recipe file %s: %w", entry.Name(), err)
		}
	}
	return r, nil
}

// Add appends a parsed recipe to its kind's collection. Special markers
// parse successfully but are not stored.
func (r *Registry) Add(rec Recipe) error {
	switch v := rec.(type) {
	case *CookingRecipe:
		switch v.CookKind {
		case KindBlasting:
			r.blasting = append(r.blasting, v)
		case KindCampfire:
			r.campfire = append(r.campfire, v)
		case KindSmelting:
			r.smelting = append(r.smelting, v)
		case KindSmoking:
			r.smoking = append(r.smoking, v)
		default:
			return fmt.Errorf("cooking recipe has invalid kind %q", v.CookKind)
		}
	case *StonecuttingRecipe:
		r.stonecutting = append(r.stonecutting, v)
	case *ShapelessRecipe:
		r.shapeless = append(r.shapeless, v)
	case *ShapedRecipe:
		r.shaped = append(r.shaped, v)
	case *SmithingRecipe:
		r.smithing = append(r.smithing, v)
	case *SpecialRecipe:
		// Marker only; no behavior attached.
	default:
		return fmt.Errorf("unsupported recipe type %T", rec)
	}
	return nil
}

// Len returns the number of stored recipes across all kinds.
func (r *Registry) Len() int {
	return len(r.blasting) + len(r.campfire) + len(r.smelting) + len(r.smoking) +
		len(r.stonecutting) + len(r.shapeless) + len(r.shaped) + len(r.smithing)
}

// CookResult is the derived output of a heat-based recipe match. CookTime
// is carried through for downstream timing only.
type CookResult struct {
	Result     item.ID
	Experience float32
	CookTime   int
}

func matchCooking(list []*CookingRecipe, it item.ID, tags *item.TagRegistry) (CookResult, bool) {
	for _, rec := range list {
		if rec.Matches(it, tags) {
			return CookResult{Result: rec.Result, Experience: rec.Experience, CookTime: rec.CookTime}, true
		}
	}
	return CookResult{}, false
}

// MatchBlasting returns the first blasting recipe output for the item.
func (r *Registry) MatchBlasting(it item.ID, tags *item.TagRegistry) (CookResult, bool) {
	return matchCooking(r.blasting, it, tags)
}

// MatchCampfireCooking returns the first campfire recipe output for the item.
func (r *Registry) MatchCampfireCooking(it item.ID, tags *item.TagRegistry) (CookResult, bool) {
	return matchCooking(r.campfire, it, tags)
}

// MatchSmelting returns the first smelting recipe output for the item.
func (r *Registry) MatchSmelting(it item.ID, tags *item.TagRegistry) (CookResult, bool) {
	return matchCooking(r.smelting, it, tags)
}

// MatchSmoking returns the first smoking recipe output for the item.
func (r *Registry) MatchSmoking(it item.ID, tags *item.TagRegistry) (CookResult, bool) {
	return matchCooking(r.smoking, it, tags)
}

// MatchStonecutting returns the configured result stack of the first
// stonecutting recipe accepting the item. Damage is never set.
func (r *Registry) MatchStonecutting(it item.ID, tags *item.TagRegistry) (*item.Stack, bool) {
	for _, rec := range r.stonecutting {
		if rec.Matches(it, tags) {
			return item.NewStack(rec.Result, rec.Count), true
		}
	}
	return nil, false
}

// MatchShapeless returns the result of the first shapeless recipe matching
// the supplied items.
func (r *Registry) MatchShapeless(items []item.ID, tags *item.TagRegistry) (*item.Stack, bool) {
	for _, rec := range r.shapeless {
		if rec.Matches(items, tags, r.strictShapeless) {
			return rec.Result.Stack(), true
		}
	}
	return nil, false
}

// MatchShaped returns the result of the first shaped recipe whose pattern
// the grid holds.
func (r *Registry) MatchShaped(grid Grid, tags *item.TagRegistry) (*item.Stack, bool) {
	for _, rec := range r.shaped {
		if rec.Matches(grid, tags) {
			return rec.Result.Stack(), true
		}
	}
	return nil, false
}

// MatchSmithing returns the result item of the first smithing recipe whose
// base and addition positions both accept their items. Result count and
// damage are discarded.
func (r *Registry) MatchSmithing(base, addition item.ID, tags *item.TagRegistry) (item.ID, bool) {
	for _, rec := range r.smithing {
		if rec.Matches(base, addition, tags) {
			return rec.Result.Item, true
		}
	}
	return "", false
}
