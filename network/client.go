package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/protocol"
	"github.com/coder/websocket"
)

// ClientState is the connection state of a Client.
type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "unknown"
}

const (
	inboundQueueSize = 64
	writeTimeout     = 2 * time.Second
	readLimit        = 1 << 20
)

// Inbound is one item handed from the reader to the frame loop: a decoded
// server message, or the Opened marker queued when a new connection opens
// and before any of its messages.
type Inbound struct {
	protocol.Inbound
	Opened bool
}

// ErrAlreadyConnected is returned by Connect while a dial is already running
// or the connection is open.
var ErrAlreadyConnected = errors.New("already connected")

// Client manages the websocket connection to the game server.
// All shared fields are protected by mu; writes are serialized by wmu so
// queued inputs always leave in order.
type Client struct {
	mu  sync.RWMutex
	wmu sync.Mutex

	url   string
	token string

	state     ClientState
	lastError error
	conn      *websocket.Conn
	cancel    context.CancelFunc
	outbox    []messages.Input

	inboundCh chan Inbound
}

// NewClient creates a client for url. A non-empty token is offered as the
// websocket subprotocol, which the server reads as its auth token.
func NewClient(url, token string) *Client {
	return &Client{
		url:       url,
		token:     token,
		state:     StateDisconnected,
		inboundCh: make(chan Inbound, inboundQueueSize),
	}
}

// Connect dials the server in a background goroutine. The returned channel
// yields nil once the connection is open, or the dial error.
func (c *Client) Connect(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		done <- ErrAlreadyConnected
		return done
	}
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	go func() {
		opts := &websocket.DialOptions{}
		if c.token != "" {
			opts.Subprotocols = []string{c.token}
		}
		conn, _, err := websocket.Dial(ctx, c.url, opts)
		if err != nil {
			err = fmt.Errorf("connection failed: %w", err)
			c.setError(err)
			log.Printf("[client] %v", err)
			done <- err
			return
		}
		conn.SetReadLimit(readLimit)

		readCtx, cancel := context.WithCancel(context.Background())
		c.mu.Lock()
		c.conn = conn
		c.cancel = cancel
		c.state = StateConnected
		c.mu.Unlock()
		log.Printf("[client] connected to %s", c.url)

		if err := c.flush(); err != nil {
			log.Printf("[client] flush queued inputs: %v", err)
		}
		c.deliver(Inbound{Opened: true})
		go c.readLoop(readCtx, conn)
		done <- nil
	}()

	return done
}

// Disconnect closes the connection. Queued inputs are kept for the next
// Connect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	cancel := c.cancel
	c.conn = nil
	c.cancel = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}

// SendInput queues in and, if connected, writes every queued input in
// order. Offline, the input waits in the queue and nil is returned.
func (c *Client) SendInput(in messages.Input) error {
	c.wmu.Lock()
	if len(c.outbox) >= maxPendingInputs {
		c.outbox = append(c.outbox[:0], c.outbox[1:]...)
	}
	c.outbox = append(c.outbox, in)
	c.wmu.Unlock()

	return c.flush()
}

// flush writes queued inputs until the queue is empty or a write fails.
func (c *Client) flush() error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return nil
	}

	for len(c.outbox) > 0 {
		payload, err := protocol.EncodeInput(c.outbox[0])
		if err != nil {
			// Unencodable inputs would block the queue forever.
			c.outbox = c.outbox[1:]
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			return fmt.Errorf("write input: %w", err)
		}
		c.outbox = c.outbox[1:]
	}
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.dropped(conn, err)
			return
		}
		in, err := protocol.Decode(data)
		if err != nil {
			log.Printf("[client] dropping message: %v", err)
			continue
		}
		c.deliver(Inbound{Inbound: in})
	}
}

// deliver hands a message to the frame loop. When the frame loop falls
// behind, the oldest undelivered message is discarded.
func (c *Client) deliver(in Inbound) {
	for {
		select {
		case c.inboundCh <- in:
			return
		default:
		}
		select {
		case <-c.inboundCh:
			log.Println("[client] inbound queue full, dropped oldest message")
		default:
		}
	}
}

func (c *Client) dropped(conn *websocket.Conn, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	log.Printf("[client] disconnected: %v", err)
	if c.cancel != nil {
		c.cancel()
	}
	c.conn = nil
	c.cancel = nil
	if c.state != StateError {
		c.state = StateDisconnected
	}
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// State returns the current connection state.
func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Connected reports whether the connection is open.
func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

// LastError returns the most recent dial error, or nil.
func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Queued returns the number of inputs waiting to be written.
func (c *Client) Queued() int {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return len(c.outbox)
}

// DrainInbound returns all received server messages in arrival order,
// non-blocking.
func (c *Client) DrainInbound() []Inbound {
	return drainChan(c.inboundCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
