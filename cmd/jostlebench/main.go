// Command jostlebench runs a crowd of agents wandering a single walled
// layer for a fixed number of ticks, printing the per-phase diagnostics
// Store at the end. It exists to exercise World under a realistic agent
// count outside of the test suite, and to demonstrate the optional TOML
// config file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/andrewhickman/jostle"
	"github.com/andrewhickman/jostle/tile"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml"
)

// benchConfig is the optional on-disk shape jostlebench accepts. Unlike
// jostle.Config, which carries a *slog.Logger and is always constructed in
// code, this is plain data a user can hand-edit, the same split the
// teacher draws between its whitelist file and its in-process Config.
type benchConfig struct {
	Agents   int     `toml:"agents"`
	Ticks    int     `toml:"ticks"`
	TileSize float32 `toml:"tile_size"`
	Radius   float32 `toml:"radius"`
	Seed     int64   `toml:"seed"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{Agents: 512, Ticks: 600, TileSize: 1, Radius: 0.3, Seed: 1}
}

func loadBenchConfig(path string) (benchConfig, error) {
	conf := defaultBenchConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}
		return conf, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(contents, &conf); err != nil {
		return conf, fmt.Errorf("decode config: %w", err)
	}
	return conf, nil
}

func main() {
	configPath := flag.String("config", "jostlebench.toml", "path to an optional TOML config file")
	flag.Parse()

	conf, err := loadBenchConfig(*configPath)
	if err != nil {
		slog.Default().Error("failed to load config, using defaults", "error", err)
		conf = defaultBenchConfig()
	}

	walls := ringWalls{radius: int32(conf.Agents/8 + 4)}
	w := jostle.NewWorld(jostle.Config{Log: slog.Default()})
	layer := w.NewLayer(conf.TileSize, walls)

	rng := rand.New(rand.NewSource(conf.Seed))
	agents := make([]jostle.AgentID, conf.Agents)
	for i := range agents {
		a := w.NewAgent(conf.Radius)
		w.Attach(a, layer)
		tr, _ := w.Transform(a)
		tr.SetXY(mgl32.Vec2{
			X: (rng.Float32() - 0.5) * conf.TileSize * float32(walls.radius),
			Y: (rng.Float32() - 0.5) * conf.TileSize * float32(walls.radius),
		})
		w.SetVelocity(a, randomVelocity(rng))
		agents[i] = a
	}

	const dt = 1.0 / 30
	start := time.Now()
	for tick := 0; tick < conf.Ticks; tick++ {
		if tick%90 == 0 {
			for _, a := range agents {
				w.SetVelocity(a, randomVelocity(rng))
			}
		}
		w.Step(dt)
		w.Render(0)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d agents, %d ticks in %s (%.2f ticks/ms)\n", conf.Agents, conf.Ticks, elapsed, float64(conf.Ticks)/float64(elapsed.Milliseconds()+1))
	for name, sample := range w.Diagnostics().Snapshot() {
		fmt.Printf("  %-20s last=%-12s mean=%-12s n=%d\n", name, sample.Last, sample.Mean, sample.Count)
	}
}

func randomVelocity(rng *rand.Rand) mgl32.Vec2 {
	angle := float64(rng.Float32()) * 2 * math.Pi
	return mgl32.Vec2{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}
}

// ringWalls classifies every tile outside a square ring as solid, so the
// crowd stays bounded without needing a real map asset for the demo.
type ringWalls struct {
	radius int32
}

func (r ringWalls) IsSolid(_ tile.LayerID, pos tile.IVec2) bool {
	return pos.X < -r.radius || pos.X > r.radius || pos.Y < -r.radius || pos.Y > r.radius
}
