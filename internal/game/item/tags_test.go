package item

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTag(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestTagRegistryContains(t *testing.T) {
	reg := NewTagRegistry()
	reg.AddTag("minecraft:logs", "minecraft:oak_log", "minecraft:birch_log")

	if !reg.Contains("minecraft:oak_log", "minecraft:logs") {
		t.Fatalf("expected oak_log in minecraft:logs")
	}
	if reg.Contains("minecraft:stone", "minecraft:logs") {
		t.Fatalf("expected stone not in minecraft:logs")
	}
	if reg.Contains("minecraft:oak_log", "minecraft:planks") {
		t.Fatalf("unknown tags must contain nothing")
	}

	// A nil registry contains nothing
	var nilReg *TagRegistry
	if nilReg.Contains("minecraft:oak_log", "minecraft:logs") {
		t.Fatalf("nil registry must contain nothing")
	}
}

func TestLoadTagDir(t *testing.T) {
	dir := t.TempDir()
	writeTag(t, dir, "logs.json", `{"values": ["minecraft:oak_log", "minecraft:birch_log"]}`)
	writeTag(t, dir, "planks.json", `{"values": ["minecraft:oak_planks"]}`)

	reg, err := LoadTagDir(dir)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !reg.Contains("minecraft:birch_log", "minecraft:logs") {
		t.Fatalf("expected birch_log in minecraft:logs")
	}
	if !reg.Contains("minecraft:oak_planks", "minecraft:planks") {
		t.Fatalf("expected oak_planks in minecraft:planks")
	}
}

func TestLoadTagDirResolvesReferences(t *testing.T) {
	dir := t.TempDir()
	writeTag(t, dir, "logs.json", `{"values": ["minecraft:oak_log"]}`)
	writeTag(t, dir, "burnable.json", `{"values": ["#minecraft:logs", "minecraft:coal"]}`)

	reg, err := LoadTagDir(dir)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !reg.Contains("minecraft:oak_log", "minecraft:burnable") {
		t.Fatalf("expected referenced tag members to be flattened in")
	}
	if !reg.Contains("minecraft:coal", "minecraft:burnable") {
		t.Fatalf("expected direct member present")
	}
}

func TestLoadTagDirRejectsUnknownReference(t *testing.T) {
	dir := t.TempDir()
	writeTag(t, dir, "burnable.json", `{"values": ["#minecraft:missing"]}`)

	if _, err := LoadTagDir(dir); err == nil {
		t.Fatalf("expected error for unresolvable reference")
	}
}

func TestLoadTagDirRejectsCycles(t *testing.T) {
	dir := t.TempDir()
	writeTag(t, dir, "a.json", `{"values": ["#minecraft:b"]}`)
	writeTag(t, dir, "b.json", `{"values": ["#minecraft:a"]}`)

	if _, err := LoadTagDir(dir); err == nil {
		t.Fatalf("expected error for tag reference cycle")
	}
}

func TestLoadTagDirRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeTag(t, dir, "bad.json", `{`)

	if _, err := LoadTagDir(dir); err == nil {
		t.Fatalf("expected error for malformed descriptor")
	}
}
