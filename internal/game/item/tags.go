package item

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TagRegistry names sets of item identities. Tags are built once at startup
// from datapack-style descriptors and queried read-only afterwards.
type TagRegistry struct {
	tags map[string]map[ID]struct{}
}

// NewTagRegistry constructs an empty tag registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{tags: make(map[string]map[ID]struct{})}
}

// AddTag registers the items as members of the named tag, creating the tag
// if needed.
func (t *TagRegistry) AddTag(tag string, items ...ID) {
	set, ok := t.tags[tag]
	if !ok {
		set = make(map[ID]struct{}, len(items))
		t.tags[tag] = set
	}
	for _, it := range items {
		set[it] = struct{}{}
	}
}

// Contains reports whether the item belongs to the named tag. Unknown tags
// contain nothing.
func (t *TagRegistry) Contains(it ID, tag string) bool {
	if t == nil {
		return false
	}
	set, ok := t.tags[tag]
	if !ok {
		return false
	}
	_, ok = set[it]
	return ok
}

// tagDescriptor is the on-disk shape of one tag file. Values are item IDs,
// or "#namespace:tag" references to other tags in the same directory.
type tagDescriptor struct {
	Values []string `json:"values"`
}

// LoadTagDir reads every JSON tag descriptor in a directory
// (non-recursively). The tag name is "minecraft:<basename>". Tag-to-tag
// references are resolved after all files are read; an unreadable file, a
// malformed descriptor or an unresolvable reference aborts the whole load.
func LoadTagDir(dir string) (*TagRegistry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag directory: %w", err)
	}

	raw := make(map[string][]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, fmt.Errorf("unexpected directory in tag directory: %s", entry.Name())
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read tag file %s: %w", entry.Name(), err)
		}
		var desc tagDescriptor
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("failed to parse tag file %s: %w", entry.Name(), err)
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		raw["minecraft:"+base] = desc.Values
	}

	reg := NewTagRegistry()
	resolving := make(map[string]bool)
	var resolve func(tag string) (map[ID]struct{}, error)
	resolve = func(tag string) (map[ID]struct{}, error) {
		if set, ok := reg.tags[tag]; ok {
			return set, nil
		}
		if resolving[tag] {
			return nil, fmt.Errorf("tag reference cycle involving %s", tag)
		}
		values, ok := raw[tag]
		if !ok {
			return nil, fmt.Errorf("reference to unknown tag %s", tag)
		}
		resolving[tag] = true
		set := make(map[ID]struct{}, len(values))
		for _, v := range values {
			if strings.HasPrefix(v, "#") {
				nested, err := resolve(strings.TrimPrefix(v, "#"))
				if err != nil {
					return nil, err
				}
				for it := range nested {
					set[it] = struct{}{}
				}
				continue
			}
			set[ID(v)] = struct{}{}
		}
		delete(resolving, tag)
		reg.tags[tag] = set
		return set, nil
	}

	for tag := range raw {
		if _, err := resolve(tag); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
