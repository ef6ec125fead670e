package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
)

// PointerHandler receives pointer events in scene coordinates.
type PointerHandler interface {
	OnInputDown(p cp.Vector)
	OnInputMoved(p cp.Vector)
	OnInputUp(p cp.Vector)
}

// InputSystem polls ebiten touches, with the left mouse button as a pointer
// fallback, and forwards them to a PointerHandler. A touch that disappears,
// whether released or cancelled, is reported as up.
type InputSystem struct {
	handler PointerHandler
	screenW float64
	screenH float64

	touchIDs  []ebiten.TouchID
	touches   map[ebiten.TouchID]cp.Vector
	mouseDown bool
	lastMouse cp.Vector
}

func NewInputSystem(handler PointerHandler, screenW, screenH float64) *InputSystem {
	return &InputSystem{
		handler: handler,
		screenW: screenW,
		screenH: screenH,
		touches: map[ebiten.TouchID]cp.Vector{},
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.handler == nil {
		return
	}

	camX, camY, zoom := CameraView(w)
	toScene := func(x, y int) cp.Vector {
		return ScreenToScene(float64(x), float64(y), i.screenW, i.screenH, camX, camY, zoom)
	}

	i.touchIDs = ebiten.AppendTouchIDs(i.touchIDs[:0])
	seen := make(map[ebiten.TouchID]struct{}, len(i.touchIDs))
	for _, id := range i.touchIDs {
		seen[id] = struct{}{}
		p := toScene(ebiten.TouchPosition(id))
		prev, ok := i.touches[id]
		i.touches[id] = p
		switch {
		case !ok:
			i.handler.OnInputDown(p)
		case prev != p:
			i.handler.OnInputMoved(p)
		}
	}
	for id, p := range i.touches {
		if _, ok := seen[id]; !ok {
			delete(i.touches, id)
			i.handler.OnInputUp(p)
		}
	}
	if len(i.touchIDs) > 0 {
		return
	}

	p := toScene(ebiten.CursorPosition())
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		i.mouseDown = true
		i.handler.OnInputDown(p)
	case i.mouseDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		i.mouseDown = false
		i.handler.OnInputUp(p)
	case i.mouseDown && p != i.lastMouse:
		i.handler.OnInputMoved(p)
	}
	i.lastMouse = p
}

// ScreenToScene maps screen pixels (origin top-left, Y down) to scene
// coordinates (origin at the camera, Y up).
func ScreenToScene(sx, sy, screenW, screenH, camX, camY, zoom float64) cp.Vector {
	if zoom <= 0 {
		zoom = 1
	}
	return cp.Vector{
		X: (sx-screenW/2)/zoom + camX,
		Y: (screenH/2-sy)/zoom + camY,
	}
}

// SceneToScreen is the inverse of ScreenToScene.
func SceneToScreen(x, y, screenW, screenH, camX, camY, zoom float64) (float64, float64) {
	if zoom <= 0 {
		zoom = 1
	}
	return (x-camX)*zoom + screenW/2, screenH/2 - (y-camY)*zoom
}
