package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/unicycle/assets"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs/render"
	"github.com/milk9111/unicycle/ecs/system"
	"github.com/milk9111/unicycle/game"
	"github.com/milk9111/unicycle/levels"
	"github.com/milk9111/unicycle/prefabs"
)

const appName = "unicycle"

var (
	defaultClear    = color.NRGBA{R: 0x9f, G: 0xd3, B: 0xe6, A: 0xff}
	defaultPlatform = color.NRGBA{R: 0x4a, G: 0x3b, B: 0x2c, A: 0xff}
	defaultOverlay  = color.NRGBA{A: 0xff}
)

type options struct {
	level   string
	debug   bool
	seed    uint64
	bounded bool
}

type Game struct {
	session  *game.Session
	renderer *render.Renderer
	overlay  *overlayUI
	library  *assets.Library
	watcher  *prefabs.Watcher

	debug       bool
	drawPhysics bool
}

func NewGame(opts options) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	level, err := spec.Level()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.level != "" {
		if level, err = levels.ParseLevel(opts.level); err != nil {
			return nil, fmt.Errorf("game: -level: %w", err)
		}
	}
	if opts.seed != 0 {
		spec.Seed = opts.seed
	}

	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	sounds, err := prefabs.LoadSoundsSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	library, err := assets.Load(spec, sounds)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	decor, err := prefabs.LoadScript("decor.tengo")
	if err != nil {
		log.Printf("game: decor disabled: %v", err)
	}

	var progress system.ProgressStore
	if store, err := system.OpenGdataStore(appName); err != nil {
		log.Printf("game: progress will not be saved: %v", err)
	} else {
		progress = store
	}

	debug := opts.debug || spec.DebugDraw
	session, err := game.NewSession(game.Config{
		Level:       level,
		Bounded:     opts.bounded || spec.Bounded(),
		Resume:      spec.Resume,
		Debug:       debug,
		Seed:        spec.Seed,
		Tuning:      player.Tuning(),
		DecorScript: decor,
		Keys:        keyboard{},
		Mixer:       library.Mixer,
		Progress:    progress,
		Ready:       library.Mixer.Ready,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		session: session,
		renderer: render.NewRenderer(render.Palette{
			Clear:    spec.Colors.Clear.Or(defaultClear),
			Platform: spec.Colors.Platform.Or(defaultPlatform),
			Overlay:  spec.Colors.Overlay.Or(defaultOverlay),
		}),
		overlay:     newOverlayUI(),
		library:     library,
		debug:       debug,
		drawPhysics: debug,
	}

	if debug {
		if g.watcher, err = prefabs.NewWatcher(); err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.drawPhysics = !g.drawPhysics
	}
	g.reload()

	g.overlay.Update(g.session.World())
	g.session.Update()
	return nil
}

// reload applies prefab edits picked up by the watcher. They take effect at
// the next level start.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch name {
		case "player.yaml":
			player, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			g.session.SetTuning(player.Tuning())
			log.Printf("game: reloaded %s", name)
		case "decor.tengo":
			src, err := prefabs.LoadScript(name)
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			g.session.SetDecorScript(src)
			log.Printf("game: reloaded %s", name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	g.renderer.Draw(w, screen)
	g.overlay.Draw(screen)

	if !g.debug {
		return
	}
	if g.drawPhysics {
		render.DrawPhysicsDebug(g.session.Physics().Space(), w, screen)
	}
	render.DrawStateDebug(w, screen, fmt.Sprint(g.session.Machine().Stack().States()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: %v", err)
		}
	}
}
