package recipe

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/coppermine-games/craftd/internal/game/item"
)

// Component is a single ingredient predicate: an exact item identity, a tag
// naming a registry-defined set of items, or both. A component matches when
// either test holds.
type Component struct {
	Item item.ID `json:"item,omitempty"`
	Tag  string  `json:"tag,omitempty"`
}

// Matches reports whether the component accepts the item.
func (c Component) Matches(it item.ID, tags *item.TagRegistry) bool {
	if c.Item != "" && c.Item == it {
		return true
	}
	return c.Tag != "" && tags.Contains(it, c.Tag)
}

// Ingredient is a predicate over items: one component, or an ordered set of
// alternative components with any-of semantics. The on-disk form is either
// a single {item|tag} object or an array of them; both decode into the
// alternatives list.
type Ingredient struct {
	Alternatives []Component
}

// UnmarshalJSON accepts the single-object and array descriptor forms.
func (in *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &in.Alternatives)
	}
	var c Component
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return err
	}
	in.Alternatives = []Component{c}
	return nil
}

// MarshalJSON emits the single-object form for one alternative and the
// array form otherwise, preserving descriptor round-trips.
func (in Ingredient) MarshalJSON() ([]byte, error) {
	if len(in.Alternatives) == 1 {
		return json.Marshal(in.Alternatives[0])
	}
	return json.Marshal(in.Alternatives)
}

// Matches reports whether any alternative accepts the item.
func (in Ingredient) Matches(it item.ID, tags *item.TagRegistry) bool {
	for _, c := range in.Alternatives {
		if c.Matches(it, tags) {
			return true
		}
	}
	return false
}

func (in Ingredient) validate() error {
	if len(in.Alternatives) == 0 {
		return errors.New("ingredient has no components")
	}
	for _, c := range in.Alternatives {
		if c.Item == "" && c.Tag == "" {
			return errors.New("ingredient component has neither item nor tag")
		}
	}
	return nil
}

// ResultStack is the fixed output stack of a crafting recipe. A missing
// count means one.
type ResultStack struct {
	Item  item.ID `json:"item"`
	Count int     `json:"count,omitempty"`
}

// Stack converts the result into a concrete item stack with damage unset.
func (r ResultStack) Stack() *item.Stack {
	count := r.Count
	if count == 0 {
		count = 1
	}
	return item.NewStack(r.Item, count)
}
