package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/netsync/assets"
	"github.com/automoto/netsync/config"
	"github.com/automoto/netsync/fonts"
	"github.com/automoto/netsync/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
	width  int
	height int
}

func NewGame(scene Scene, width, height int) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
		width:  width,
		height: height,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, g.width, g.height)
	return g.width, g.height
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	server := flag.String("server", "", "websocket URL of the game server (overrides config)")
	flag.Parse()

	store, err := config.OpenStore()
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	cfg, err := config.Load(*configPath, config.LoadSettings(store))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	endpoint, err := cfg.Endpoint(*server)
	if err != nil {
		log.Fatalf("No usable server endpoint: %v", err)
	}

	arena, err := assets.LoadArena(cfg.Arena)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	fonts.LoadDefaults()

	scene := scenes.NewNetworkedScene(cfg, endpoint, arena, store)
	defer scene.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("netsync")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(scene, cfg.Width, cfg.Height)); err != nil {
		log.Fatal(err)
	}
}
