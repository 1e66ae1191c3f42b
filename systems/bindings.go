package systems

import "github.com/hajimehoshi/ebiten/v2"

// ActionID is a logical movement action.
type ActionID int

const (
	ActionMoveLeft ActionID = iota
	ActionMoveRight
	ActionMoveForward
	ActionMoveBack
	ActionRise
	ActionSink
)

// Bindings maps each action to the keys that trigger it. Forward is -Z,
// which is up on the top-down view.
var Bindings = map[ActionID][]ebiten.Key{
	ActionMoveLeft:    {ebiten.KeyA, ebiten.KeyLeft},
	ActionMoveRight:   {ebiten.KeyD, ebiten.KeyRight},
	ActionMoveForward: {ebiten.KeyW, ebiten.KeyUp},
	ActionMoveBack:    {ebiten.KeyS, ebiten.KeyDown},
	ActionRise:        {ebiten.KeySpace},
	ActionSink:        {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
}

var boundKeys = func() map[ebiten.Key]bool {
	keys := make(map[ebiten.Key]bool)
	for _, ks := range Bindings {
		for _, k := range ks {
			keys[k] = true
		}
	}
	return keys
}()

func actionPressed(action ActionID) bool {
	for _, k := range Bindings[action] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// axis returns -1, 0 or 1 from a pair of opposing actions.
func axis(negative, positive ActionID) float32 {
	var v float32
	if actionPressed(negative) {
		v--
	}
	if actionPressed(positive) {
		v++
	}
	return v
}
