package network

import (
	"log"

	"github.com/automoto/netsync/shared/messages"
)

const maxPendingInputs = 256

// PendingInputs holds inputs that were applied locally but are not yet
// covered by an acknowledged snapshot. Timestamps are strictly increasing.
type PendingInputs struct {
	inputs []messages.Input
}

// Push appends in. The caller guarantees in.T is past the newest entry.
// When the queue is full the oldest input is discarded.
func (p *PendingInputs) Push(in messages.Input) {
	if len(p.inputs) >= maxPendingInputs {
		log.Printf("[sync] pending input queue full, dropping t=%d", p.inputs[0].T)
		p.inputs = append(p.inputs[:0], p.inputs[1:]...)
	}
	p.inputs = append(p.inputs, in)
}

// Newest returns the most recently queued input.
func (p *PendingInputs) Newest() (messages.Input, bool) {
	if len(p.inputs) == 0 {
		return messages.Input{}, false
	}
	return p.inputs[len(p.inputs)-1], true
}

// Prune removes every input with T <= ack and returns how many were removed.
func (p *PendingInputs) Prune(ack int64) int {
	i := 0
	for i < len(p.inputs) && p.inputs[i].T <= ack {
		i++
	}
	if i > 0 {
		p.inputs = append(p.inputs[:0], p.inputs[i:]...)
	}
	return i
}

// Shift moves every queued timestamp by delta. Order is preserved.
func (p *PendingInputs) Shift(delta int64) {
	for i := range p.inputs {
		p.inputs[i].T += delta
	}
}

// All returns the queued inputs in timestamp order. The slice is owned by
// the queue.
func (p *PendingInputs) All() []messages.Input {
	return p.inputs
}

// Len returns the number of unacknowledged inputs.
func (p *PendingInputs) Len() int {
	return len(p.inputs)
}
