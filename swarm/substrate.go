package swarm

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarm/components"
)

// Substrate owns the particle population, the target set, the viewport,
// the pointer and the simulation clock.
type Substrate struct {
	world *ecs.World

	particleMap *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Target,
		components.Motion,
		components.Appearance,
		components.Kind,
	]

	// entities in creation order; the slice index is the particle index
	entities []ecs.Entity

	physics *PhysicsSystem
	params  Params

	targets []Point
	bounds  Bounds
	pointer Pointer
	clock   float32

	renderBuffer []float32
	positions    []Point // scratch for assignment
}

// Option configures a Substrate at construction.
type Option func(*settings)

type settings struct {
	params   Params
	profiles []Profile
	rng      *rand.Rand
}

// WithParams overrides the simulation constants.
func WithParams(p Params) Option {
	return func(s *settings) { s.params = p }
}

// WithProfiles overrides the particle type table.
func WithProfiles(profiles []Profile) Option {
	return func(s *settings) { s.profiles = profiles }
}

// WithRand sets the random source used to create the population.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) { s.rng = rng }
}

// WithSeed seeds the population's random source.
func WithSeed(seed int64) Option {
	return func(s *settings) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a substrate with count particles using default settings and
// a time-seeded random source.
func New(width, height float32, count int) *Substrate {
	return NewWithOptions(width, height, count)
}

// NewWithOptions creates a substrate with count particles spread over the
// viewport. A negative count is treated as zero.
func NewWithOptions(width, height float32, count int, opts ...Option) *Substrate {
	cfg := settings{params: DefaultParams()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	params := cfg.params.normalized()

	world := ecs.NewWorld()
	s := &Substrate{
		world: world,
		particleMap: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Target,
			components.Motion,
			components.Appearance,
			components.Kind,
		](world),
		params: params,
		bounds: Bounds{Width: width, Height: height},
	}
	s.physics = NewPhysicsSystem(world, params)

	population := NewPopulation(count, width, height, cfg.profiles, cfg.rng)
	s.entities = make([]ecs.Entity, 0, len(population))
	for i := range population {
		s.spawn(&population[i])
	}

	s.renderBuffer = make([]float32, len(s.entities)*RecordSize)
	s.positions = make([]Point, len(s.entities))
	return s
}

func (s *Substrate) spawn(p *Particle) {
	pos := components.Position{X: p.X, Y: p.Y}
	vel := components.Velocity{X: p.VX, Y: p.VY}
	tgt := components.Target{X: p.TargetX, Y: p.TargetY, Forming: p.Forming}
	mot := components.Motion{
		Friction:   p.Friction,
		Ease:       p.Ease,
		MaxSpeed:   p.MaxSpeed,
		Attraction: p.Attraction,
	}
	app := components.Appearance{Size: p.Size}
	kind := components.Kind{Type: p.Type}

	e := s.particleMap.NewEntity(&pos, &vel, &tgt, &mot, &app, &kind)
	s.entities = append(s.entities, e)
}

// SetTextCoords replaces the target set with the pairs in flat
// ([x0, y0, x1, y1, ...]) and reassigns every particle. A trailing
// unpaired value is ignored.
func (s *Substrate) SetTextCoords(flat []float32) {
	s.targets = s.targets[:0]
	for i := 0; i+1 < len(flat); i += 2 {
		s.targets = append(s.targets, Point{X: flat[i], Y: flat[i+1]})
	}
	s.assign()
}

// SetTargets replaces the target set with a copy of points and reassigns
// every particle.
func (s *Substrate) SetTargets(points []Point) {
	s.targets = append(s.targets[:0], points...)
	s.assign()
}

// ClearTargets releases every particle to float.
func (s *Substrate) ClearTargets() {
	s.SetTargets(nil)
}

// assign maps particles onto the current targets.
func (s *Substrate) assign() {
	for i, e := range s.entities {
		pos, _, _, _, _, _ := s.particleMap.Get(e)
		s.positions[i] = Point{X: pos.X, Y: pos.Y}
	}

	result := Match(s.positions, s.targets, s.params.GridCellSize, s.params.SearchReach)

	for i, e := range s.entities {
		_, _, tgt, _, _, _ := s.particleMap.Get(e)
		idx := result[i]
		if idx == Unassigned {
			tgt.Forming = false
			continue
		}
		tgt.X = s.targets[idx].X
		tgt.Y = s.targets[idx].Y
		tgt.Forming = true
	}
}

// SetMouse replaces the pointer state.
func (s *Substrate) SetMouse(x, y float32, active bool) {
	s.pointer = Pointer{X: x, Y: y, Active: active}
}

// Resize replaces the viewport bounds. Particles are not moved.
func (s *Substrate) Resize(width, height float32) {
	s.bounds = Bounds{Width: width, Height: height}
}

// Step advances the clock by one fixed increment and integrates every
// particle.
func (s *Substrate) Step() {
	s.clock += s.params.StepDT
	s.physics.Update(s.clock, s.pointer, s.bounds)
}

// ParticleCount returns the fixed number of particles.
func (s *Substrate) ParticleCount() int {
	return len(s.entities)
}

// UpdateRenderBuffer rewrites the render buffer from the current state.
func (s *Substrate) UpdateRenderBuffer() {
	buf := s.renderBuffer
	for i, e := range s.entities {
		pos, _, tgt, _, app, _ := s.particleMap.Get(e)
		rec := buf[i*RecordSize : i*RecordSize+RecordSize : i*RecordSize+RecordSize]
		rec[0] = pos.X
		rec[1] = pos.Y
		rec[2] = app.Size
		rec[3] = formingFlag(tgt.Forming)
	}
}

// RenderBuffer returns the internal render buffer. The slice is reused:
// its contents change on the next UpdateRenderBuffer.
func (s *Substrate) RenderBuffer() []float32 {
	return s.renderBuffer
}

// ExportBuffer returns a copy of the render buffer that the caller owns.
func (s *Substrate) ExportBuffer() []float32 {
	out := make([]float32, len(s.renderBuffer))
	copy(out, s.renderBuffer)
	return out
}

// Stats counts forming and floating particles.
func (s *Substrate) Stats() Stats {
	forming := 0
	for _, e := range s.entities {
		_, _, tgt, _, _, _ := s.particleMap.Get(e)
		if tgt.Forming {
			forming++
		}
	}
	return Stats{
		Particles:  len(s.entities),
		Forming:    forming,
		Floating:   len(s.entities) - forming,
		TextCoords: len(s.targets),
	}
}

// GetStats returns the diagnostic summary string.
func (s *Substrate) GetStats() string {
	return s.Stats().String()
}

// Particle returns a snapshot of particle i. It panics if i is out of range.
func (s *Substrate) Particle(i int) Particle {
	pos, vel, tgt, mot, app, kind := s.particleMap.Get(s.entities[i])
	return Particle{
		X:          pos.X,
		Y:          pos.Y,
		VX:         vel.X,
		VY:         vel.Y,
		TargetX:    tgt.X,
		TargetY:    tgt.Y,
		Forming:    tgt.Forming,
		Size:       app.Size,
		Friction:   mot.Friction,
		Ease:       mot.Ease,
		MaxSpeed:   mot.MaxSpeed,
		Attraction: mot.Attraction,
		Type:       kind.Type,
	}
}

// Particles returns snapshots of all particles in index order.
func (s *Substrate) Particles() []Particle {
	out := make([]Particle, len(s.entities))
	for i := range s.entities {
		out[i] = s.Particle(i)
	}
	return out
}

// TypeCounts returns the number of particles of each type.
func (s *Substrate) TypeCounts() map[ParticleType]int {
	return CountTypes(s.Particles())
}

// Targets returns the current target set. Callers must not modify it.
func (s *Substrate) Targets() []Point { return s.targets }

// TargetCount returns the number of target coordinates.
func (s *Substrate) TargetCount() int { return len(s.targets) }

// Clock returns the simulation time.
func (s *Substrate) Clock() float32 { return s.clock }

// Bounds returns the viewport.
func (s *Substrate) Bounds() Bounds { return s.bounds }

// Pointer returns the current pointer state.
func (s *Substrate) Pointer() Pointer { return s.pointer }

// Params returns the simulation constants in use.
func (s *Substrate) Params() Params { return s.params }
