package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata"
)

const (
	appName     = "netsync"
	settingsKey = "settings"
)

// ItemStore is the slice of gdata.Manager the settings code uses.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Settings is what the client remembers between runs.
type Settings struct {
	ServerURL     string `json:"serverUrl"`
	RenderDelayMS int64  `json:"renderDelayMs"`
}

// OpenStore opens the per-user gdata storage for the client.
func OpenStore() (ItemStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return m, nil
}

// LoadSettings reads saved settings. Missing or unreadable data yields the
// zero Settings.
func LoadSettings(store ItemStore) Settings {
	if store == nil {
		return Settings{}
	}
	data, err := store.LoadItem(settingsKey)
	if err != nil {
		log.Printf("[config] could not load settings: %v", err)
		return Settings{}
	}
	if data == nil {
		return Settings{}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[config] could not parse saved settings: %v", err)
		return Settings{}
	}
	return s
}

// SaveSettings writes s to the store.
func SaveSettings(store ItemStore, s Settings) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// applyBase lays remembered values that sit under the file and environment
// layers.
func (s Settings) applyBase(cfg *Client) {
	if s.RenderDelayMS > 0 {
		cfg.RenderDelay = time.Duration(s.RenderDelayMS) * time.Millisecond
	}
}

// applyServer fills the server URL when neither the file nor the
// environment named a server or host.
func (s Settings) applyServer(cfg *Client) {
	if s.ServerURL == "" {
		return
	}
	if _, err := checkEndpoint(s.ServerURL); err != nil {
		log.Printf("[config] ignoring saved server url: %v", err)
		return
	}
	cfg.ServerURL = s.ServerURL
}

// Remember captures the settings worth keeping from a working session.
func Remember(cfg Client, endpoint string) Settings {
	return Settings{
		ServerURL:     endpoint,
		RenderDelayMS: cfg.RenderDelay.Milliseconds(),
	}
}
