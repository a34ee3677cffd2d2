package scenes

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// LifeName is the command line name of the Game of Life scene.
const LifeName = "life"

// Game of Life defaults.
const (
	DefaultGridSize         = 300
	DefaultBoxSize          = float32(20)
	DefaultAliveProbability = 0.6
)

var (
	aliveColor = [3]float32{1, 1, 1}
	deadColor  = [3]float32{0, 0, 0}
)

// GameOfLife runs Conway's B3/S23 rules on a square grid laid out in the XY plane.
// Alive and dead cells are two instanced primitives; cells outside the grid count as dead.
// Each generation is computed in row bands on a worker pool.
type GameOfLife struct {
	size      int
	boxSize   float32
	ratio     float32
	aliveProb float64
	seed      uint64
	grid      []bool
	next      []bool
	initial   []bool

	interval time.Duration
	elapsed  time.Duration

	workers int
	pool    worker.DynamicWorkerPool

	alive, dead, frame scene.Handle
}

var _ scene.Scene = &GameOfLife{}

// NewGameOfLife creates a 300x300 grid seeded with a 60% alive probability, stepping every frame.
//
// Parameters:
//   - options: functional options to configure the simulation
//
// Returns:
//   - *GameOfLife: the scene
func NewGameOfLife(options ...LifeOption) *GameOfLife {
	g := &GameOfLife{
		size:      DefaultGridSize,
		boxSize:   DefaultBoxSize,
		aliveProb: DefaultAliveProbability,
		seed:      uint64(time.Now().UnixNano()),
		workers:   max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(g)
	}
	g.ratio = g.boxSize / float32(g.size)
	g.grid = make([]bool, g.size*g.size)
	g.next = make([]bool, g.size*g.size)
	if g.initial != nil {
		copy(g.grid, g.initial)
	} else {
		rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
		for i := range g.grid {
			g.grid[i] = rng.Float64() < g.aliveProb
		}
	}
	// Queue size of 256 comfortably holds one task per row band.
	g.pool = worker.NewDynamicWorkerPool(g.workers, 256, 1*time.Second)
	return g
}

func (g *GameOfLife) Name() string {
	return LifeName
}

func (g *GameOfLife) Setup(r scene.Registry) error {
	if g.size <= 0 {
		return errors.New("game of life grid must have at least one cell")
	}
	half := g.ratio / 2
	p1 := mgl32.Vec3{-half, -half, 0}
	p2 := mgl32.Vec3{half, half, 1}

	alive, dead := g.instances()
	g.alive = r.Add(shape.Rect(p1, p2, aliveColor, alive))
	g.dead = r.Add(shape.Rect(p1, p2, deadColor, dead))

	const delta = 0.5
	g.frame = r.Add(shape.Rect(
		mgl32.Vec3{-delta, -delta, 0.01},
		mgl32.Vec3{g.boxSize + delta, g.boxSize + delta, 0.99},
		frameColor,
		[]shape.Instance{shape.IdentityInstance()},
	))
	return nil
}

func (g *GameOfLife) Update(r scene.Registry, dt float32) {
	g.elapsed += time.Duration(dt * float32(time.Second))
	if g.elapsed < g.interval {
		return
	}
	g.elapsed = 0

	g.Step()

	alive, dead := g.instances()
	if p := r.Get(g.alive); p != nil {
		p.SetInstances(alive)
	}
	if p := r.Get(g.dead); p != nil {
		p.SetInstances(dead)
	}
}

func (g *GameOfLife) Shapes() []scene.Handle {
	return []scene.Handle{g.alive, g.dead, g.frame}
}

// Step advances the grid by one generation. Rows are split into one band per worker and the
// call returns once every band is written.
func (g *GameOfLife) Step() {
	if g.size <= 0 {
		return
	}
	bands := min(g.workers, g.size)
	rowsPerBand := (g.size + bands - 1) / bands

	var wg sync.WaitGroup
	for id, y0 := 0, 0; y0 < g.size; id, y0 = id+1, y0+rowsPerBand {
		y1 := min(y0+rowsPerBand, g.size)
		wg.Add(1)
		g.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				g.stepRows(y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()

	g.grid, g.next = g.next, g.grid
}

// stepRows writes rows [y0, y1) of the next generation. Bands never share rows of next.
func (g *GameOfLife) stepRows(y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < g.size; x++ {
			n := g.neighbours(x, y)
			alive := g.grid[y*g.size+x]
			g.next[y*g.size+x] = n == 3 || (alive && n == 2)
		}
	}
}

func (g *GameOfLife) neighbours(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= g.size || ny >= g.size {
				continue
			}
			if g.grid[ny*g.size+nx] {
				count++
			}
		}
	}
	return count
}

func (g *GameOfLife) instances() (alive, dead []shape.Instance) {
	for i, v := range g.grid {
		x, y := i%g.size, i/g.size
		inst := shape.IdentityInstance().WithTranslation(mgl32.Vec3{float32(x) * g.ratio, float32(y) * g.ratio, 0})
		if v {
			alive = append(alive, inst)
		} else {
			dead = append(dead, inst)
		}
	}
	return alive, dead
}

// Alive reports whether the cell at (x, y) is alive. Cells outside the grid are dead.
func (g *GameOfLife) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.grid[y*g.size+x]
}

// Population returns the number of alive cells.
func (g *GameOfLife) Population() int {
	n := 0
	for _, v := range g.grid {
		if v {
			n++
		}
	}
	return n
}

// LifeOption is a functional option for configuring a GameOfLife scene.
type LifeOption func(g *GameOfLife)

// WithGridSize sets the number of cells per side.
//
// Parameters:
//   - size: cells per side
//
// Returns:
//   - LifeOption: option function to apply
func WithGridSize(size int) LifeOption {
	return func(g *GameOfLife) {
		g.size = size
	}
}

// WithAliveProbability sets the chance that a cell starts alive.
//
// Parameters:
//   - p: probability in 0..1
//
// Returns:
//   - LifeOption: option function to apply
func WithAliveProbability(p float64) LifeOption {
	return func(g *GameOfLife) {
		g.aliveProb = p
	}
}

// WithSeed makes the starting grid reproducible.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - LifeOption: option function to apply
func WithSeed(seed uint64) LifeOption {
	return func(g *GameOfLife) {
		g.seed = seed
	}
}

// WithGrid sets the starting grid explicitly, row-major, len size*size.
// Shorter slices leave the remaining cells dead.
//
// Parameters:
//   - cells: the starting cells
//
// Returns:
//   - LifeOption: option function to apply
func WithGrid(cells []bool) LifeOption {
	return func(g *GameOfLife) {
		g.initial = cells
	}
}

// WithStepInterval limits how often a generation is computed. Zero steps every frame.
//
// Parameters:
//   - interval: minimum time between generations
//
// Returns:
//   - LifeOption: option function to apply
func WithStepInterval(interval time.Duration) LifeOption {
	return func(g *GameOfLife) {
		g.interval = interval
	}
}

// WithWorkers sets the number of row bands computed in parallel.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LifeOption: option function to apply
func WithWorkers(n int) LifeOption {
	return func(g *GameOfLife) {
		g.workers = max(n, 1)
	}
}
