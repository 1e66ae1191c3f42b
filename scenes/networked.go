package scenes

import (
	"context"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/automoto/netsync/config"
	"github.com/automoto/netsync/network"
	"github.com/automoto/netsync/shared/leveldata"
	"github.com/automoto/netsync/shared/netmirror"
	"github.com/automoto/netsync/shared/netphysics"
	"github.com/automoto/netsync/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	layerDefault ecs.LayerID = iota
)

const dialTimeout = 5 * time.Second

type NetworkedScene struct {
	ecsWorld *ecs.ECS
	cfg      config.Client
	endpoint string
	arena    *leveldata.Arena
	store    config.ItemStore

	netClient *network.Client
	netSync   *network.Sync
	mirror    *netmirror.Mirror

	dialing    <-chan error
	cancelDial context.CancelFunc
	lastDial   time.Time
	once       sync.Once
}

// NewNetworkedScene creates the play scene. store may be nil, in which case
// nothing is remembered between runs.
func NewNetworkedScene(c config.Client, endpoint string, arena *leveldata.Arena, store config.ItemStore) *NetworkedScene {
	return &NetworkedScene{
		cfg:      c,
		endpoint: endpoint,
		arena:    arena,
		store:    store,
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)
	ns.maintainConnection()
	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

// Close drops the connection.
func (ns *NetworkedScene) Close() {
	if ns.cancelDial != nil {
		ns.cancelDial()
	}
	if ns.netClient != nil {
		ns.netClient.Disconnect()
	}
}

func (ns *NetworkedScene) configure() {
	world := donburi.NewWorld()
	ns.netClient = network.NewClient(ns.endpoint, ns.cfg.Token)
	ns.mirror = netmirror.New(world, nil)
	ns.netSync = network.NewSync(network.SyncConfig{
		RenderDelay:  ns.cfg.RenderDelay,
		MaxSnapshots: ns.cfg.MaxSnapshots,
		Resolver:     netphysics.NewResolver(ns.arena, ns.cfg.PlayerSize),
		Sender:       ns.netClient,
		Lifecycle:    ns.mirror,
	})

	// Order matters: reconcile, then predict new input, then write positions.
	ns.ecsWorld = ecs.NewECS(world)
	ns.ecsWorld.AddSystem(systems.NewNetSyncSystem(ns.netClient, ns.netSync, ns.mirror))
	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(ns.netSync))
	ns.ecsWorld.AddSystem(systems.NewRenderTickSystem(ns.netSync, ns.mirror))
	ns.ecsWorld.AddRenderer(layerDefault, systems.NewNetRenderer(ns.arena, ns.cfg.PlayerSize))
	ns.ecsWorld.AddRenderer(layerDefault, systems.NewNetHUD(ns.netClient, ns.netSync))
}

// maintainConnection dials when disconnected, at most once per
// ReconnectDelay, and remembers the endpoint once a dial succeeds.
func (ns *NetworkedScene) maintainConnection() {
	if ns.dialing != nil {
		select {
		case err := <-ns.dialing:
			ns.dialing = nil
			ns.cancelDial()
			if err != nil {
				return
			}
			if err := config.SaveSettings(ns.store, config.Remember(ns.cfg, ns.endpoint)); err != nil {
				log.Printf("[networked] %v", err)
			}
		default:
		}
		return
	}

	switch ns.netClient.State() {
	case network.StateConnected, network.StateConnecting:
		return
	}
	if !ns.lastDial.IsZero() && time.Since(ns.lastDial) < ns.cfg.ReconnectDelay {
		return
	}

	ns.lastDial = time.Now()
	log.Printf("[networked] connecting to %s", ns.endpoint)
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	ns.cancelDial = cancel
	ns.dialing = ns.netClient.Connect(ctx)
}
