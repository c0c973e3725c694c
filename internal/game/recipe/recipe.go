package recipe

import "github.com/coppermine-games/craftd/internal/game/item"

// Kind is the descriptor type string discriminating recipe variants.
type Kind string

const (
	KindBlasting     Kind = "minecraft:blasting"
	KindCampfire     Kind = "minecraft:campfire_cooking"
	KindShaped       Kind = "minecraft:crafting_shaped"
	KindShapeless    Kind = "minecraft:crafting_shapeless"
	KindSmelting     Kind = "minecraft:smelting"
	KindSmithing     Kind = "minecraft:smithing"
	KindSmoking      Kind = "minecraft:smoking"
	KindStonecutting Kind = "minecraft:stonecutting"
)

// specialKinds are recognized discriminators that parse successfully into
// an opaque marker but produce no registry entry.
var specialKinds = map[Kind]struct{}{
	"minecraft:crafting_special_armordye":           {},
	"minecraft:crafting_special_bannerduplicate":    {},
	"minecraft:crafting_special_bookcloning":        {},
	"minecraft:crafting_special_firework_rocket":    {},
	"minecraft:crafting_special_firework_star":      {},
	"minecraft:crafting_special_firework_star_fade": {},
	"minecraft:crafting_special_mapcloning":         {},
	"minecraft:crafting_special_mapextending":       {},
	"minecraft:crafting_special_repairitem":         {},
	"minecraft:crafting_special_shielddecoration":   {},
	"minecraft:crafting_special_shulkerboxcoloring": {},
	"minecraft:crafting_special_tippedarrow":        {},
	"minecraft:crafting_special_suspiciousstew":     {},
}

// Default cook times in ticks, applied when a descriptor omits cookingtime.
const (
	defaultSmeltingTime = 200
	defaultSmokingTime  = 100
	defaultBlastingTime = 100
	defaultCampfireTime = 100
)

// Recipe is one parsed descriptor of any kind.
type Recipe interface {
	Kind() Kind
}

// CookingRecipe covers the four heat-based kinds: smelting, smoking,
// blasting and campfire cooking. They share one shape and differ only in
// discriminator and default cook time.
type CookingRecipe struct {
	CookKind   Kind       `json:"-"`
	Group      string     `json:"group,omitempty"`
	Ingredient Ingredient `json:"ingredient"`
	Result     item.ID    `json:"result"`
	Experience float32    `json:"experience"`
	CookTime   int        `json:"cookingtime,omitempty"`
}

// Kind returns the discriminator the recipe was parsed from.
func (r *CookingRecipe) Kind() Kind { return r.CookKind }

// Matches reports whether the ingredient accepts the input item. Cook time
// plays no role in matching.
func (r *CookingRecipe) Matches(it item.ID, tags *item.TagRegistry) bool {
	return r.Ingredient.Matches(it, tags)
}

// StonecuttingRecipe turns one input item into a fixed count of the result.
type StonecuttingRecipe struct {
	Group      string     `json:"group,omitempty"`
	Ingredient Ingredient `json:"ingredient"`
	Result     item.ID    `json:"result"`
	Count      int        `json:"count"`
}

func (r *StonecuttingRecipe) Kind() Kind { return KindStonecutting }

// Matches reports whether the ingredient accepts the input item.
func (r *StonecuttingRecipe) Matches(it item.ID, tags *item.TagRegistry) bool {
	return r.Ingredient.Matches(it, tags)
}

// ShapelessRecipe matches an unordered collection of input items against a
// multiset of ingredient alternatives.
type ShapelessRecipe struct {
	Group       string      `json:"group,omitempty"`
	Ingredients Ingredient  `json:"ingredients"`
	Result      ResultStack `json:"result"`
}

func (r *ShapelessRecipe) Kind() Kind { return KindShapeless }

// Matches consumes one ingredient alternative per supplied item, scanning
// the remaining alternatives in order and removing the first that accepts
// the item. An item that matches nothing remaining fails the recipe. In
// lenient mode (the historical behavior) leftover alternatives are
// tolerated: supplying fewer items than ingredients still matches. Strict
// mode additionally requires every alternative to be consumed.
func (r *ShapelessRecipe) Matches(items []item.ID, tags *item.TagRegistry, strict bool) bool {
	remaining := append([]Component(nil), r.Ingredients.Alternatives...)
	for _, it := range items {
		found := -1
		for i, c := range remaining {
			if c.Matches(it, tags) {
				found = i
				break
			}
		}
		if found < 0 {
			return false
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	if strict && len(remaining) > 0 {
		return false
	}
	return true
}

// SmithingRecipe upgrades a base item with an addition item. The two
// positions are not interchangeable.
type SmithingRecipe struct {
	Group    string      `json:"group,omitempty"`
	Base     Ingredient  `json:"base"`
	Addition Ingredient  `json:"addition"`
	Result   ResultStack `json:"result"`
}

func (r *SmithingRecipe) Kind() Kind { return KindSmithing }

// Matches requires both positions to satisfy their assigned ingredient.
func (r *SmithingRecipe) Matches(base, addition item.ID, tags *item.TagRegistry) bool {
	return r.Base.Matches(base, tags) && r.Addition.Matches(addition, tags)
}

// SpecialRecipe is the opaque marker for hardcoded crafting behaviors. It
// carries only its discriminator and produces no registry entry.
type SpecialRecipe struct {
	Type Kind `json:"type"`
}

func (r *SpecialRecipe) Kind() Kind { return r.Type }
