package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/saltyslugs/saltyslugs/ecs/system"
	"github.com/saltyslugs/saltyslugs/prefabs"
	"github.com/saltyslugs/saltyslugs/scene"
)

type Game struct {
	frames int
	debug  bool

	scene   *scene.Scene
	input   *system.InputSystem
	watcher *prefabs.Watcher
}

func NewGame(cfg scene.Config, debug, watch bool) (*Game, error) {
	sc := scene.New(cfg)
	if err := sc.OnActivate(); err != nil {
		return nil, err
	}

	w, h := sc.Size()
	g := &Game{
		debug: debug,
		scene: sc,
		input: system.NewInputSystem(sc, float64(w), float64(h)),
	}

	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir, prefabs.DiskDir+"/scripts")
		if err != nil {
			slog.Warn("prefab hot reload disabled", "dir", prefabs.DiskDir, "err", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.reload()
	g.input.Update(g.scene.World())
	g.scene.OnTick(time.Second / time.Duration(ebiten.TPS()))

	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Poll() {
		if err := g.scene.Reload(change.Name); err != nil {
			slog.Error("hot reload", "prefab", change.Name, "err", err)
		}
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			slog.Warn("prefab watcher", "err", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background())
	g.scene.Draw(screen)

	if g.debug {
		st := g.scene.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"Frames: %d    TPS: %.2f\nParticles: %d (spawned %d)\nSlug: (%.1f, %.1f) %s facing %d",
			g.frames, ebiten.ActualTPS(),
			st.Particles, st.Spawned,
			st.Position.X, st.Position.Y, st.State, st.Facing,
		))
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.scene.Size()
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
