// Command atlasview previews an embedded animation atlas with the same clip
// playback the game uses.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/saltyslugs/saltyslugs/assets"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/ecs/system"
)

const viewSize = 512

type viewer struct {
	name string
	anim *component.Animation
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if v.anim.Phase == component.AnimationStopped {
			v.anim.Start(v.name)
		} else {
			v.anim.Stop()
		}
	}
	system.Advance(v.anim, time.Second/time.Duration(ebiten.TPS()))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	frame := v.anim.Image()
	if frame != nil {
		b := frame.Bounds()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
		op.GeoM.Translate(float64(viewSize-b.Dx())/2, float64(viewSize-b.Dy())/2)
		screen.DrawImage(frame, op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  %s\nspace: start/stop",
		v.name, v.anim.Frame+1, len(v.anim.Clips[v.name].Frames), v.anim.Phase))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	atlas := flag.String("atlas", "player_walk", "atlas name in assets/ (without .atlas)")
	perFrame := flag.Duration("frame", 150*time.Millisecond, "time per frame")
	restore := flag.Bool("restore", true, "show frame 0 when stopped")
	flag.Parse()

	frames, err := assets.LoadAtlas(*atlas)
	if err != nil {
		log.Fatal(err)
	}

	anim := &component.Animation{
		Clips: map[string]component.AnimationClip{
			*atlas: {
				Name:         *atlas,
				Frames:       frames,
				TimePerFrame: *perFrame,
				Loop:         true,
				Restore:      *restore,
			},
		},
		Current: *atlas,
	}
	anim.Start(*atlas)

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Atlas Preview")
	if err := ebiten.RunGame(&viewer{name: *atlas, anim: anim}); err != nil {
		log.Fatal(err)
	}
}
