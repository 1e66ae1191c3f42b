package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

// ErrMalformed marks an inbound frame that is not valid JSON or does not
// match the message schemas. Such frames are dropped, never fatal.
var ErrMalformed = errors.New("malformed server message")

// ErrUnknownType marks a well-formed envelope with an unrecognized type.
var ErrUnknownType = errors.New("unknown message type")

// Inbound is one decoded server-to-client message. Exactly one field is set.
type Inbound struct {
	Snapshot *messages.Snapshot
	Welcome  *messages.Welcome
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Decode parses a server frame. Raw snapshots have no envelope; anything
// carrying a "type" field is routed by it.
func Decode(b []byte) (Inbound, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Inbound{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	if _, typed := obj["type"]; !typed {
		if err := snapshotSchema.Validate(doc); err != nil {
			return Inbound{}, fmt.Errorf("%w: snapshot: %v", ErrMalformed, err)
		}
		var snap messages.Snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return Inbound{}, fmt.Errorf("%w: snapshot: %v", ErrMalformed, err)
		}
		return Inbound{Snapshot: &snap}, nil
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: envelope: %v", ErrMalformed, err)
	}
	switch env.Type {
	case netconfig.MsgWelcome:
		if err := welcomeSchema.Validate(doc); err != nil {
			return Inbound{}, fmt.Errorf("%w: welcome: %v", ErrMalformed, err)
		}
		var w messages.Welcome
		if err := json.Unmarshal(env.Data, &w); err != nil {
			return Inbound{}, fmt.Errorf("%w: welcome: %v", ErrMalformed, err)
		}
		return Inbound{Welcome: &w}, nil
	default:
		return Inbound{}, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// EncodeInput serializes an input frame.
func EncodeInput(in messages.Input) ([]byte, error) {
	b, err := json.Marshal(messages.NewInputEnvelope(in))
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	return b, nil
}
