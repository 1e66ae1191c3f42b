package systems

import (
	"errors"
	"log"
	"time"

	"github.com/automoto/netsync/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// resendInterval is how often a held direction is re-sent so prediction and
// the server keep integrating it.
const resendInterval = 50 * time.Millisecond

type netInputState struct {
	axes     [3]float32
	lastSend time.Time
	keys     []ebiten.Key // reused each tick to avoid allocation
}

// NewNetworkInputSystem returns an ECS system that turns key edges into
// inputs: each change of the movement axes is stamped, predicted and sent.
// While a direction is held it is re-sent every resendInterval.
func NewNetworkInputSystem(sync *network.Sync) func(*ecs.ECS) {
	state := &netInputState{}

	return func(_ *ecs.ECS) {
		now := time.Now()
		held := state.axes != [3]float32{}
		if !state.keyEdge() && !(held && now.Sub(state.lastSend) >= resendInterval) {
			return
		}

		axes := [3]float32{
			axis(ActionMoveLeft, ActionMoveRight),
			axis(ActionSink, ActionRise),
			axis(ActionMoveForward, ActionMoveBack),
		}
		if axes == state.axes && !held {
			return
		}

		in := sync.StampInput(axes[0], axes[1], axes[2])
		if err := sync.ApplyInput(in); err != nil {
			if !errors.Is(err, network.ErrInputOutOfOrder) {
				log.Printf("[netinput] apply: %v", err)
			}
			return
		}
		state.axes = axes
		state.lastSend = now
	}
}

// keyEdge reports whether any bound key was pressed or released this tick.
func (s *netInputState) keyEdge() bool {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	s.keys = inpututil.AppendJustReleasedKeys(s.keys)
	for _, k := range s.keys {
		if boundKeys[k] {
			return true
		}
	}
	return false
}
