package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/automoto/netsync/shared/netconfig"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix   = "NETSYNC_"
	defaultHost = "localhost:8080"
	wsPath      = "/ws"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrBadEndpoint   = errors.New("bad endpoint")
)

// Client holds every knob of the netsync client. Values come from Defaults,
// then remembered Settings, then an optional YAML file, then NETSYNC_*
// environment variables.
type Client struct {
	ServerURL string `yaml:"server_url" env:"SERVER_URL"`
	Host      string `yaml:"host" env:"HOST"`
	Token     string `yaml:"token" env:"TOKEN"`

	RenderDelay    time.Duration `yaml:"render_delay" env:"RENDER_DELAY"`
	MaxSnapshots   int           `yaml:"max_snapshots" env:"MAX_SNAPSHOTS"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay" env:"RECONNECT_DELAY"`

	// Arena is a TMX path; empty selects the embedded default arena.
	Arena      string  `yaml:"arena" env:"ARENA"`
	PlayerSize float64 `yaml:"player_size" env:"PLAYER_SIZE"`

	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Client {
	return Client{
		Host:           defaultHost,
		RenderDelay:    netconfig.DefaultRenderDelay,
		MaxSnapshots:   netconfig.DefaultMaxSnapshots,
		ReconnectDelay: netconfig.DefaultReconnectDelay,
		PlayerSize:     1,
		Width:          960,
		Height:         720,
	}
}

// Load builds the client configuration on top of saved settings. An empty
// path skips the file. A saved server URL is used only when neither the file
// nor the environment sets server_url or host.
func Load(path string, saved Settings) (Client, error) {
	cfg := Defaults()
	cfg.Host = ""
	saved.applyBase(&cfg)
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		log.Printf("[config] loaded %s", path)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
		if cfg.ServerURL == "" {
			saved.applyServer(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first unusable value.
func (c Client) Validate() error {
	switch {
	case c.RenderDelay < 0:
		return fmt.Errorf("%w: render_delay %v is negative", ErrInvalidConfig, c.RenderDelay)
	case c.MaxSnapshots < 2:
		return fmt.Errorf("%w: max_snapshots %d, need at least 2 to interpolate", ErrInvalidConfig, c.MaxSnapshots)
	case c.ReconnectDelay <= 0:
		return fmt.Errorf("%w: reconnect_delay must be positive", ErrInvalidConfig)
	case c.PlayerSize <= 0:
		return fmt.Errorf("%w: player_size must be positive", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.ServerURL == "" && c.Host == "":
		return fmt.Errorf("%w: neither server_url nor host is set", ErrInvalidConfig)
	}
	if c.ServerURL != "" {
		if _, err := checkEndpoint(c.ServerURL); err != nil {
			return fmt.Errorf("%w: server_url: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Endpoint picks the websocket URL: an explicit value (command line) wins,
// then ServerURL, then one derived from Host.
func (c Client) Endpoint(explicit string) (string, error) {
	switch {
	case explicit != "":
		return checkEndpoint(explicit)
	case c.ServerURL != "":
		return checkEndpoint(c.ServerURL)
	case c.Host != "":
		return checkEndpoint("ws://" + c.Host + wsPath)
	}
	return "", fmt.Errorf("%w: nothing configured", ErrBadEndpoint)
}

func checkEndpoint(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadEndpoint, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("%w: scheme %q, want ws or wss", ErrBadEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrBadEndpoint, raw)
	}
	return u.String(), nil
}
