package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/saltyslugs/saltyslugs/scene"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	spawner := flag.String("spawner", "", "spawner mode (rain|fall) or prefab file; overrides scene.yaml")
	camera := flag.Bool("camera", false, "follow the slug with a camera")
	watch := flag.Bool("watch", false, "hot reload prefabs from ./prefabs")
	seed := flag.Uint64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}

	game, err := NewGame(scene.Config{
		Spawner: *spawner,
		Camera:  *camera,
		Rand:    rng,
	}, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.scene.Size()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w/2, h/2)
	ebiten.SetWindowTitle("Salty Slugs")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
