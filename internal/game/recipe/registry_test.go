package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coppermine-games/craftd/internal/game/item"
)

func mustParse(t *testing.T, data string) Recipe {
	t.Helper()
	rec, err := ParseRecipe([]byte(data))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return rec
}

func mustAdd(t *testing.T, r *Registry, recipes ...Recipe) {
	t.Helper()
	for _, rec := range recipes {
		if err := r.Add(rec); err != nil {
			t.Fatalf("unexpected add error: %v", err)
		}
	}
}

func TestFirstMatchingRecipeWins(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r,
		mustParse(t, `{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`),
		mustParse(t, `{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:stone","experience":0.1}`),
	)

	res, ok := r.MatchSmelting("minecraft:iron_ore", item.NewTagRegistry())
	if !ok {
		t.Fatalf("expected a smelting match")
	}
	if res.Result != "minecraft:iron_ingot" {
		t.Fatalf("expected the first recipe to win, got %s", res.Result)
	}
}

func TestCookingKindsAreSeparate(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, `{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`))
	tags := item.NewTagRegistry()

	if _, ok := r.MatchBlasting("minecraft:iron_ore", tags); ok {
		t.Fatalf("smelting recipe must not answer blasting queries")
	}
	if _, ok := r.MatchSmoking("minecraft:iron_ore", tags); ok {
		t.Fatalf("smelting recipe must not answer smoking queries")
	}
	if _, ok := r.MatchCampfireCooking("minecraft:iron_ore", tags); ok {
		t.Fatalf("smelting recipe must not answer campfire queries")
	}
	if res, ok := r.MatchSmelting("minecraft:iron_ore", tags); !ok || res.CookTime != 200 {
		t.Fatalf("expected smelting match with default cook time, got %v %v", res, ok)
	}
}

func TestCookingMatchesByTag(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, `{"type":"minecraft:smelting","ingredient":{"tag":"minecraft:logs"},"result":"minecraft:coal","experience":0.15}`))
	tags := item.SampleTags()

	if _, ok := r.MatchSmelting("minecraft:oak_log", tags); !ok {
		t.Fatalf("expected tag member to match")
	}
	if _, ok := r.MatchSmelting("minecraft:stone", tags); ok {
		t.Fatalf("expected non-member not to match")
	}
}

const plankRecipe = `{
	"type": "minecraft:crafting_shapeless",
	"ingredients": [{"tag": "minecraft:logs"}, {"item": "minecraft:stick"}],
	"result": {"item": "minecraft:oak_planks", "count": 4}
}`

func TestMatchShapelessLenient(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, plankRecipe))
	tags := item.SampleTags()

	// Full set matches, in any order
	if _, ok := r.MatchShapeless([]item.ID{"minecraft:stick", "minecraft:oak_log"}, tags); !ok {
		t.Fatalf("expected full ingredient set to match")
	}

	// Leftover ingredient alternatives are tolerated by default
	st, ok := r.MatchShapeless([]item.ID{"minecraft:oak_log"}, tags)
	if !ok {
		t.Fatalf("expected partial set to match in lenient mode")
	}
	if st.Item != "minecraft:oak_planks" || st.Count != 4 {
		t.Fatalf("unexpected result stack %+v", st)
	}

	// An item no remaining alternative accepts fails the recipe
	if _, ok := r.MatchShapeless([]item.ID{"minecraft:oak_log", "minecraft:stone"}, tags); ok {
		t.Fatalf("expected unmatched item to fail the recipe")
	}

	// Each alternative is consumed at most once
	if _, ok := r.MatchShapeless([]item.ID{"minecraft:oak_log", "minecraft:oak_log"}, tags); ok {
		t.Fatalf("expected duplicate item to exhaust the alternative")
	}
}

func TestMatchShapelessStrict(t *testing.T) {
	r := NewRegistry(WithStrictShapeless())
	mustAdd(t, r, mustParse(t, plankRecipe))
	tags := item.SampleTags()

	if _, ok := r.MatchShapeless([]item.ID{"minecraft:oak_log"}, tags); ok {
		t.Fatalf("expected partial set not to match in strict mode")
	}
	if _, ok := r.MatchShapeless([]item.ID{"minecraft:oak_log", "minecraft:stick"}, tags); !ok {
		t.Fatalf("expected full set to match in strict mode")
	}
}

func TestMatchSmithingIsPositional(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, `{
		"type": "minecraft:smithing",
		"base": {"item": "minecraft:diamond_sword"},
		"addition": {"item": "minecraft:netherite_ingot"},
		"result": {"item": "minecraft:netherite_sword"}
	}`))
	tags := item.NewTagRegistry()

	res, ok := r.MatchSmithing("minecraft:diamond_sword", "minecraft:netherite_ingot", tags)
	if !ok || res != "minecraft:netherite_sword" {
		t.Fatalf("expected smithing match, got %q %v", res, ok)
	}
	if _, ok := r.MatchSmithing("minecraft:netherite_ingot", "minecraft:diamond_sword", tags); ok {
		t.Fatalf("expected swapped positions not to match")
	}
}

func TestMatchStonecutting(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, `{
		"type": "minecraft:stonecutting",
		"ingredient": {"item": "minecraft:stone"},
		"result": "minecraft:stone_bricks",
		"count": 2
	}`))

	st, ok := r.MatchStonecutting("minecraft:stone", item.NewTagRegistry())
	if !ok {
		t.Fatalf("expected stonecutting match")
	}
	if st.Item != "minecraft:stone_bricks" || st.Count != 2 {
		t.Fatalf("unexpected result stack %+v", st)
	}
	if st.Damage != nil {
		t.Fatalf("stonecutting results must not carry damage")
	}
}

func TestSpecialRecipesAreNotStored(t *testing.T) {
	r := NewRegistry()
	mustAdd(t, r, mustParse(t, `{"type": "minecraft:crafting_special_armordye"}`))
	if r.Len() != 0 {
		t.Fatalf("expected special marker to be skipped, got %d stored recipes", r.Len())
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_smelt.json", `{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`)
	writeFile(t, dir, "b_special.json", `{"type":"minecraft:crafting_special_repairitem"}`)

	r, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 stored recipe, got %d", r.Len())
	}
}

func TestLoadDirFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`)
	writeFile(t, dir, "bad.json", `{"type":"minecraft:brewing"}`)

	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("expected one bad descriptor to abort the load")
	}
}

func TestLoadDirRejectsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("expected subdirectory to abort the load")
	}
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
