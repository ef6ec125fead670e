package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws Image centred on OriginX/OriginY. When Width and Height are
// set the image is stretched to that size before the transform scale. Fade
// runs from 0 (opaque) to 1 (invisible).
type Sprite struct {
	Image   *ebiten.Image
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
	Fade    float64
}

var SpriteComponent = NewComponent[Sprite]()
