package item

// SampleCatalog returns a small catalog of well-known items, used by tests
// and as a fallback when no item catalog file is configured.
func SampleCatalog() *Catalog {
	return NewCatalog(
		Details{ID: "minecraft:stone", NumericID: 1, Name: "Stone"},
		Details{ID: "minecraft:cobblestone", NumericID: 2, Name: "Cobblestone"},
		Details{ID: "minecraft:oak_planks", NumericID: 3, Name: "Oak Planks"},
		Details{ID: "minecraft:oak_log", NumericID: 4, Name: "Oak Log"},
		Details{ID: "minecraft:stick", NumericID: 5, Name: "Stick"},
		Details{ID: "minecraft:coal", NumericID: 6, Name: "Coal"},
		Details{ID: "minecraft:iron_ore", NumericID: 7, Name: "Iron Ore"},
		Details{ID: "minecraft:iron_ingot", NumericID: 8, Name: "Iron Ingot"},
		Details{ID: "minecraft:diamond_ore", NumericID: 9, Name: "Diamond Ore"},
		Details{ID: "minecraft:diamond", NumericID: 10, Name: "Diamond"},
		Details{ID: "minecraft:netherite_ingot", NumericID: 11, Name: "Netherite Ingot"},
		Details{ID: "minecraft:diamond_sword", NumericID: 12, Name: "Diamond Sword", MaxStackSize: 1},
		Details{ID: "minecraft:netherite_sword", NumericID: 13, Name: "Netherite Sword", MaxStackSize: 1},
		Details{ID: "minecraft:stone_bricks", NumericID: 14, Name: "Stone Bricks"},
		Details{ID: "minecraft:porkchop", NumericID: 15, Name: "Raw Porkchop"},
		Details{ID: "minecraft:cooked_porkchop", NumericID: 16, Name: "Cooked Porkchop"},
		Details{ID: "minecraft:ender_pearl", NumericID: 17, Name: "Ender Pearl", MaxStackSize: 16},
	)
}

// SampleTags returns a tag registry matching the sample catalog.
func SampleTags() *TagRegistry {
	t := NewTagRegistry()
	t.AddTag("minecraft:logs", "minecraft:oak_log")
	t.AddTag("minecraft:planks", "minecraft:oak_planks")
	t.AddTag("minecraft:stone_crafting_materials", "minecraft:cobblestone", "minecraft:stone")
	return t
}
