package furnace

import (
	"container/heap"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coppermine-games/craftd/internal/game/item"
	"github.com/coppermine-games/craftd/internal/game/recipe"
)

// Heat identifies the kind of heat source a cook job runs in. Each heat
// source consults its own recipe collection.
type Heat string

const (
	HeatFurnace      Heat = "furnace"
	HeatBlastFurnace Heat = "blast_furnace"
	HeatSmoker       Heat = "smoker"
	HeatCampfire     Heat = "campfire"
)

// JobID uniquely identifies a cook job.
type JobID string

// Job is a single in-flight cook. The recipe's cook time, in ticks, fixes
// EndTime at start.
type Job struct {
	ID         JobID
	Owner      string // player id
	Heat       Heat
	Input      item.ID
	Result     item.ID
	Experience float32
	StartTime  time.Time
	EndTime    time.Time
}

// Progress returns the job's completion fraction (0.0 to 1.0) at now.
func (j *Job) Progress(now time.Time) float64 {
	if !now.After(j.StartTime) {
		return 0.0
	}
	if !now.Before(j.EndTime) {
		return 1.0
	}
	total := j.EndTime.Sub(j.StartTime)
	if total <= 0 {
		return 1.0
	}
	return float64(now.Sub(j.StartTime)) / float64(total)
}

// CompletionFunc receives each finished job, in completion order.
type CompletionFunc func(*Job)

// Manager schedules cook jobs against the recipe registry. External systems
// drive it by calling Update from their tick loop.
type Manager struct {
	recipes    *recipe.Registry
	tags       *item.TagRegistry
	tickRate   int // ticks per second
	onComplete CompletionFunc

	mu     sync.Mutex
	active *jobHeap
	nextID int64
}

// NewManager creates a cook-job manager. tickRate converts recipe cook
// ticks into wall time; onComplete may be nil.
func NewManager(recipes *recipe.Registry, tags *item.TagRegistry, tickRate int, onComplete CompletionFunc) *Manager {
	if tickRate <= 0 {
		tickRate = 20
	}
	return &Manager{
		recipes:    recipes,
		tags:       tags,
		tickRate:   tickRate,
		onComplete: onComplete,
		active:     newJobHeap(),
	}
}

// Start begins cooking one input item in the given heat source. It fails
// when no recipe of that kind accepts the item.
func (m *Manager) Start(owner string, heat Heat, input item.ID) (JobID, error) {
	var (
		res recipe.CookResult
		ok  bool
	)
	switch heat {
	case HeatFurnace:
		res, ok = m.recipes.MatchSmelting(input, m.tags)
	case HeatBlastFurnace:
		res, ok = m.recipes.MatchBlasting(input, m.tags)
	case HeatSmoker:
		res, ok = m.recipes.MatchSmoking(input, m.tags)
	case HeatCampfire:
		res, ok = m.recipes.MatchCampfireCooking(input, m.tags)
	default:
		return "", fmt.Errorf("unknown heat source %q", heat)
	}
	if !ok {
		return "", fmt.Errorf("no %s recipe accepts %s", heat, input)
	}

	now := time.Now()
	duration := time.Duration(res.CookTime) * time.Second / time.Duration(m.tickRate)
	job := &Job{
		ID:         m.generateJobID(),
		Owner:      owner,
		Heat:       heat,
		Input:      input,
		Result:     res.Result,
		Experience: res.Experience,
		StartTime:  now,
		EndTime:    now.Add(duration),
	}

	m.mu.Lock()
	heap.Push(m.active, job)
	m.mu.Unlock()

	return job.ID, nil
}

// Update completes all jobs finished by now. Call this from the game loop.
func (m *Manager) Update(now time.Time) {
	m.mu.Lock()
	finished := m.active.popFinished(now)
	m.mu.Unlock()

	if m.onComplete == nil {
		return
	}
	for _, job := range finished {
		m.onComplete(job)
	}
}

// ActiveCount returns the number of jobs still cooking.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active.Len()
}

func (m *Manager) generateJobID() JobID {
	id := atomic.AddInt64(&m.nextID, 1)
	return JobID(fmt.Sprintf("cook_%d", id))
}
