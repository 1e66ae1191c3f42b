package netcomponents

import "github.com/yohamta/donburi"

// RenderTransformData is where an actor is drawn this frame: the predicted
// position for the local actor, the interpolated one for remote actors.
type RenderTransformData struct {
	X, Y, Z float64
}

var RenderTransform = donburi.NewComponentType[RenderTransformData]()
