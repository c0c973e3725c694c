package item

// Package item provides the read-only item catalog and tag registry the
// gameplay core consumes. Item identity is a namespaced string such as
// "minecraft:diamond"; the catalog maps identities to metadata including
// the compact numeric ID used on the wire.

// ID is the namespaced identifier of an item kind.
type ID string

// Stack is a count-bearing instance of one item kind. Damage is present
// only for damageable items and is omitted from the wire when unset.
type Stack struct {
	Item   ID     `json:"item"`
	Count  int    `json:"count"`
	Damage *int32 `json:"damage,omitempty"`
}

// NewStack creates a stack of the given kind and count with no damage.
func NewStack(id ID, count int) *Stack {
	return &Stack{Item: id, Count: count}
}

// Clone returns a deep copy of the stack. Cloning nil yields nil.
func (s *Stack) Clone() *Stack {
	if s == nil {
		return nil
	}
	out := *s
	if s.Damage != nil {
		d := *s.Damage
		out.Damage = &d
	}
	return &out
}
