// Package stream owns chunk lifecycle: which chunks are loaded around the
// player, generation of new chunks, population, and disposal. All records are
// mutated only from the goroutine that calls Update, once per tick; population
// tasks run concurrently but deliver results through a completion queue that
// Update drains on that same goroutine.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/emberwood/terrain-server/internal/populate"
	"github.com/emberwood/terrain-server/internal/scene"
	"github.com/emberwood/terrain-server/internal/terrain"
)

// State is a chunk coordinate's lifecycle state. Coordinates without a record
// are Unloaded; only one transition is ever in flight per coordinate.
type State int

const (
	Loading State = iota
	Loaded
	Unloading
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Unloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// Generator produces chunk surfaces and answers world queries.
// *terrain.Generator satisfies it.
type Generator interface {
	terrain.Query
	Generate(pos terrain.ChunkPos) *terrain.Surface
}

// Mesh wraps a generated surface for scene insertion.
type Mesh struct {
	Surface *terrain.Surface
}

func (m *Mesh) Kind() string { return "terrain" }

// Event is a lifecycle notification for observers (debug viewer, metrics).
type Event struct {
	Kind  string // "loaded" or "unloaded"
	Pos   terrain.ChunkPos
	Biome string
}

// record is the runtime state for one tracked chunk coordinate.
type record struct {
	pos     terrain.ChunkPos
	state   State
	token   uint64
	surface *terrain.Surface
	mesh    scene.Handle
	handles []scene.Handle // populator content, disposed with the chunk
	pending int            // outstanding population tasks
}

// completion is one finished population task, applied on the update goroutine.
type completion struct {
	pos         terrain.ChunkPos
	token       uint64
	populator   string
	renderables []scene.Renderable
	err         error
}

// Manager owns the set of loaded chunks around the player. It is not safe for
// concurrent use: Update and Flush must be called from a single goroutine.
type Manager struct {
	chunkSize      float64
	renderDistance int

	gen  Generator
	scn  scene.Scene
	pops []populate.Populator
	log  *slog.Logger

	records     map[terrain.ChunkPos]*record
	completions chan completion
	inflight    int
	nextToken   uint64

	observer func(Event)
}

// NewManager creates a Manager. renderDistance is the Chebyshev radius, in
// chunks, kept loaded around the player; chunks are unloaded only beyond
// renderDistance+1, a one-chunk hysteresis ring against boundary jitter.
func NewManager(chunkSize float64, renderDistance int, gen Generator, scn scene.Scene, pops []populate.Populator, log *slog.Logger) *Manager {
	return &Manager{
		chunkSize:      chunkSize,
		renderDistance: renderDistance,
		gen:            gen,
		scn:            scn,
		pops:           pops,
		log:            log,
		records:        make(map[terrain.ChunkPos]*record),
		completions:    make(chan completion, 64),
	}
}

// SetObserver registers a lifecycle event callback, invoked synchronously on
// the update goroutine.
func (m *Manager) SetObserver(fn func(Event)) {
	m.observer = fn
}

// Update advances the chunk set for the given player world position: finished
// population results are applied first, then every coordinate within the
// render distance of the player's chunk is loaded, then coordinates beyond the
// hysteresis ring are unloaded. Loads always happen before unloads so the
// player never sees a gap open next to a chunk that has no replacement yet.
func (m *Manager) Update(ctx context.Context, playerX, playerZ float64) {
	m.drain()

	center := terrain.ChunkPos{
		X: int(math.Floor(playerX / m.chunkSize)),
		Z: int(math.Floor(playerZ / m.chunkSize)),
	}

	for dz := -m.renderDistance; dz <= m.renderDistance; dz++ {
		for dx := -m.renderDistance; dx <= m.renderDistance; dx++ {
			pos := terrain.ChunkPos{X: center.X + dx, Z: center.Z + dz}
			if _, tracked := m.records[pos]; !tracked {
				m.load(ctx, pos)
			}
		}
	}

	for pos, rec := range m.records {
		if chebyshev(pos, center) > m.renderDistance+1 {
			m.unload(rec)
		}
	}
}

// chebyshev is max(|Δx|, |Δz|): the loaded region is a square ring, matching
// the grid iteration that enqueues loads. Load and unload thresholds must use
// the same metric or the two regions fall out of symmetry.
func chebyshev(a, b terrain.ChunkPos) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// load transitions a coordinate to Loading: generate the surface, insert the
// base mesh synchronously, and start population tasks. A failure here is
// contained to this chunk; the coordinate rolls back to Unloaded for retry.
func (m *Manager) load(ctx context.Context, pos terrain.ChunkPos) {
	surface, err := m.generate(pos)
	if err != nil {
		m.log.Error("chunk generation failed", "chunk", pos, "error", err)
		return
	}

	m.nextToken++
	rec := &record{
		pos:     pos,
		state:   Loading,
		token:   m.nextToken,
		surface: surface,
		pending: len(m.pops),
	}
	rec.mesh = m.scn.Insert(&Mesh{Surface: surface})
	m.records[pos] = rec

	if rec.pending == 0 {
		m.markLoaded(rec)
		return
	}

	for _, p := range m.pops {
		go m.runPopulator(ctx, p, rec.pos, rec.token, surface)
		m.inflight++
	}
}

// generate calls the terrain generator, converting a panic into an error so
// one bad chunk never takes down the update loop.
func (m *Manager) generate(pos terrain.ChunkPos) (s *terrain.Surface, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return m.gen.Generate(pos), nil
}

// runPopulator executes one population task off the update goroutine. The
// captured token travels with the result so a late completion for a chunk
// that has since been unloaded (or reloaded) is detectable.
func (m *Manager) runPopulator(ctx context.Context, p populate.Populator, pos terrain.ChunkPos, token uint64, surface *terrain.Surface) {
	renderables, err := p.Populate(ctx, &populate.Chunk{Surface: surface, Query: m.gen})
	m.completions <- completion{
		pos:         pos,
		token:       token,
		populator:   p.Name(),
		renderables: renderables,
		err:         err,
	}
}

// drain applies all currently queued completions without blocking.
func (m *Manager) drain() {
	for {
		select {
		case c := <-m.completions:
			m.apply(c)
		default:
			return
		}
	}
}

// Flush blocks until every in-flight population task has completed and been
// applied (or discarded). Used by headless runs at shutdown and by anything
// that needs a settled chunk set.
func (m *Manager) Flush(ctx context.Context) error {
	for m.inflight > 0 {
		select {
		case c := <-m.completions:
			m.apply(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// apply processes one completed population task on the update goroutine.
// Results whose chunk is gone or whose token no longer matches are stale and
// dropped silently; that race is expected under the cooperative model.
func (m *Manager) apply(c completion) {
	m.inflight--

	rec, ok := m.records[c.pos]
	if !ok || rec.token != c.token {
		return // stale: chunk unloaded or reloaded since the task started
	}

	if c.err != nil {
		// A failed populator rolls the whole chunk back to Unloaded so a
		// later Update can retry it; it must never stick in Loading.
		m.log.Error("populator failed", "populator", c.populator, "chunk", c.pos, "error", c.err)
		m.unload(rec)
		return
	}

	for _, r := range c.renderables {
		rec.handles = append(rec.handles, m.scn.Insert(r))
	}

	rec.pending--
	if rec.pending == 0 && rec.state == Loading {
		m.markLoaded(rec)
	}
}

func (m *Manager) markLoaded(rec *record) {
	rec.state = Loaded
	if m.observer != nil {
		m.observer(Event{Kind: "loaded", Pos: rec.pos, Biome: rec.surface.Biome.String()})
	}
}

// unload disposes a chunk's mesh and populator content and drops the record.
// In-flight tasks for it keep running; their results fail the token check on
// arrival and are discarded.
func (m *Manager) unload(rec *record) {
	rec.state = Unloading
	m.scn.Remove(rec.mesh)
	for _, h := range rec.handles {
		m.scn.Remove(h)
	}
	delete(m.records, rec.pos)
	if m.observer != nil {
		m.observer(Event{Kind: "unloaded", Pos: rec.pos, Biome: rec.surface.Biome.String()})
	}
}

// Loaded returns the coordinates currently tracked as Loaded.
func (m *Manager) Loaded() []terrain.ChunkPos {
	out := make([]terrain.ChunkPos, 0, len(m.records))
	for pos, rec := range m.records {
		if rec.state == Loaded {
			out = append(out, pos)
		}
	}
	return out
}

// Tracked returns the number of coordinates in any non-Unloaded state.
func (m *Manager) Tracked() int {
	return len(m.records)
}

// StateOf returns the state of a coordinate and whether it is tracked at all.
func (m *Manager) StateOf(pos terrain.ChunkPos) (State, bool) {
	rec, ok := m.records[pos]
	if !ok {
		return 0, false
	}
	return rec.state, true
}

// SurfaceAt returns the generated surface for a tracked coordinate, for
// consumers that need the height grid or biome of a loaded chunk.
func (m *Manager) SurfaceAt(pos terrain.ChunkPos) (*terrain.Surface, bool) {
	rec, ok := m.records[pos]
	if !ok {
		return nil, false
	}
	return rec.surface, true
}
