package recipe

import (
	"testing"

	"github.com/coppermine-games/craftd/internal/game/item"
)

func mustParseShaped(t *testing.T, data string) *ShapedRecipe {
	t.Helper()
	rec, err := ParseRecipe([]byte(data))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return rec.(*ShapedRecipe)
}

const stickRecipe = `{
	"type": "minecraft:crafting_shaped",
	"pattern": ["X", "X"],
	"key": {"X": {"tag": "minecraft:planks"}},
	"result": {"item": "minecraft:stick", "count": 4}
}`

func TestShapedMatchesAtAnyOffset(t *testing.T) {
	rec := mustParseShaped(t, stickRecipe)
	tags := item.SampleTags()

	// A 1x2 column pattern fits at six offsets in a 3x3 grid
	for offRow := 0; offRow <= 1; offRow++ {
		for offCol := 0; offCol <= 2; offCol++ {
			var grid Grid
			grid[offRow*GridSize+offCol] = "minecraft:oak_planks"
			grid[(offRow+1)*GridSize+offCol] = "minecraft:oak_planks"
			if !rec.Matches(grid, tags) {
				t.Fatalf("expected match at offset (%d,%d)", offRow, offCol)
			}
		}
	}
}

func TestShapedRejectsStrayItems(t *testing.T) {
	rec := mustParseShaped(t, stickRecipe)
	tags := item.SampleTags()

	var grid Grid
	grid[0] = "minecraft:oak_planks"
	grid[3] = "minecraft:oak_planks"
	grid[8] = "minecraft:stone" // outside the pattern's box
	if rec.Matches(grid, tags) {
		t.Fatalf("expected no match with an item outside the pattern")
	}
}

func TestShapedRejectsMirroredArrangement(t *testing.T) {
	rec := mustParseShaped(t, `{
		"type": "minecraft:crafting_shaped",
		"pattern": ["XY"],
		"key": {
			"X": {"item": "minecraft:iron_ingot"},
			"Y": {"item": "minecraft:stick"}
		},
		"result": {"item": "minecraft:stone_bricks"}
	}`)
	tags := item.NewTagRegistry()

	var grid Grid
	grid[0] = "minecraft:iron_ingot"
	grid[1] = "minecraft:stick"
	if !rec.Matches(grid, tags) {
		t.Fatalf("expected the straight arrangement to match")
	}

	var mirrored Grid
	mirrored[0] = "minecraft:stick"
	mirrored[1] = "minecraft:iron_ingot"
	if rec.Matches(mirrored, tags) {
		t.Fatalf("expected the mirrored arrangement not to match")
	}
}

func TestShapedExplicitEmptyCell(t *testing.T) {
	rec := mustParseShaped(t, `{
		"type": "minecraft:crafting_shaped",
		"pattern": ["X X"],
		"key": {"X": {"item": "minecraft:stone"}},
		"result": {"item": "minecraft:stone_bricks"}
	}`)
	tags := item.NewTagRegistry()

	var grid Grid
	grid[0] = "minecraft:stone"
	grid[2] = "minecraft:stone"
	if !rec.Matches(grid, tags) {
		t.Fatalf("expected match with the middle cell empty")
	}

	grid[1] = "minecraft:stone"
	if rec.Matches(grid, tags) {
		t.Fatalf("expected no match with the explicitly empty cell filled")
	}
}

func TestShapedDescriptorRoundTrip(t *testing.T) {
	rec := mustParseShaped(t, stickRecipe)
	data, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	again := mustParseShaped(t, `{"type": "minecraft:crafting_shaped", `+string(data[1:]))
	if again.Pattern != rec.Pattern {
		t.Fatalf("pattern mismatch after roundtrip: %v vs %v", again.Pattern, rec.Pattern)
	}
	if again.Result != rec.Result {
		t.Fatalf("result mismatch after roundtrip")
	}
}
