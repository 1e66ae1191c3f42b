package messages

import "github.com/automoto/netsync/shared/netconfig"

// Input is one edge-triggered control change from the local player. Axes are
// per-second velocity components in [-1, 1]. T is milliseconds on the
// server's clock as estimated by the client.
type Input struct {
	T  int64   `json:"t"`
	AX float32 `json:"ax"`
	AY float32 `json:"ay"`
	AZ float32 `json:"az"`
}

// InputEnvelope is the client-to-server frame carrying an Input.
type InputEnvelope struct {
	Type string `json:"type"`
	Data Input  `json:"data"`
}

// NewInputEnvelope wraps in for sending.
func NewInputEnvelope(in Input) InputEnvelope {
	return InputEnvelope{Type: netconfig.MsgInput, Data: in}
}
