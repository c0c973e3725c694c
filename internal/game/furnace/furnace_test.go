package furnace

import (
	"testing"
	"time"

	"github.com/coppermine-games/craftd/internal/game/item"
	"github.com/coppermine-games/craftd/internal/game/recipe"
)

func testRegistry(t *testing.T) *recipe.Registry {
	t.Helper()
	r := recipe.NewRegistry()
	recipes := []string{
		`{"type":"minecraft:smelting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`,
		`{"type":"minecraft:blasting","ingredient":{"item":"minecraft:iron_ore"},"result":"minecraft:iron_ingot","experience":0.7}`,
		`{"type":"minecraft:smoking","ingredient":{"item":"minecraft:porkchop"},"result":"minecraft:cooked_porkchop","experience":0.35}`,
	}
	for _, raw := range recipes {
		rec, err := recipe.ParseRecipe([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if err := r.Add(rec); err != nil {
			t.Fatalf("unexpected add error: %v", err)
		}
	}
	return r
}

func TestStartMatchesByHeatSource(t *testing.T) {
	m := NewManager(testRegistry(t), item.NewTagRegistry(), 20, nil)

	if _, err := m.Start("p1", HeatFurnace, "minecraft:iron_ore"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := m.Start("p1", HeatBlastFurnace, "minecraft:iron_ore"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	// The smoker has no recipe for ore
	if _, err := m.Start("p1", HeatSmoker, "minecraft:iron_ore"); err == nil {
		t.Fatalf("expected error for item the smoker cannot cook")
	}
	if _, err := m.Start("p1", Heat("microwave"), "minecraft:iron_ore"); err == nil {
		t.Fatalf("expected error for unknown heat source")
	}

	if m.ActiveCount() != 2 {
		t.Fatalf("expected 2 active jobs, got %d", m.ActiveCount())
	}
}

func TestUpdateCompletesFinishedJobs(t *testing.T) {
	var done []*Job
	m := NewManager(testRegistry(t), item.NewTagRegistry(), 20, func(j *Job) {
		done = append(done, j)
	})

	if _, err := m.Start("p1", HeatFurnace, "minecraft:iron_ore"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	// Default smelting time is 200 ticks, 10 seconds at 20 tps
	m.Update(time.Now())
	if len(done) != 0 {
		t.Fatalf("expected nothing finished immediately, got %d", len(done))
	}

	m.Update(time.Now().Add(11 * time.Second))
	if len(done) != 1 {
		t.Fatalf("expected 1 finished job, got %d", len(done))
	}
	if done[0].Result != "minecraft:iron_ingot" {
		t.Fatalf("unexpected result %s", done[0].Result)
	}
	if m.ActiveCount() != 0 {
		t.Fatalf("expected no active jobs, got %d", m.ActiveCount())
	}
}

func TestJobProgress(t *testing.T) {
	start := time.Now()
	job := &Job{StartTime: start, EndTime: start.Add(10 * time.Second)}

	if p := job.Progress(start); p != 0.0 {
		t.Fatalf("expected 0.0 at start, got %v", p)
	}
	if p := job.Progress(start.Add(5 * time.Second)); p != 0.5 {
		t.Fatalf("expected 0.5 at midpoint, got %v", p)
	}
	if p := job.Progress(start.Add(20 * time.Second)); p != 1.0 {
		t.Fatalf("expected 1.0 past the end, got %v", p)
	}
}

func TestCompletionOrder(t *testing.T) {
	var done []*Job
	m := NewManager(testRegistry(t), item.NewTagRegistry(), 20, func(j *Job) {
		done = append(done, j)
	})

	// Smoking finishes in 100 ticks, smelting in 200
	if _, err := m.Start("p1", HeatFurnace, "minecraft:iron_ore"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := m.Start("p1", HeatSmoker, "minecraft:porkchop"); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	m.Update(time.Now().Add(time.Minute))
	if len(done) != 2 {
		t.Fatalf("expected both jobs finished, got %d", len(done))
	}
	if done[0].Heat != HeatSmoker || done[1].Heat != HeatFurnace {
		t.Fatalf("expected completion in end-time order, got %s then %s", done[0].Heat, done[1].Heat)
	}
}
