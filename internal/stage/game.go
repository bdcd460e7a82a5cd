// Package stage hosts particle fields in an ebiten window: it provides the
// container size, the offscreen surfaces and the per-frame cadence, and
// mounts one page section at a time.
package stage

import (
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/particle-field/internal/config"
	"github.com/olivierh59500/particle-field/internal/field"
)

// Section is one mountable page section.
type Section struct {
	Preset config.Preset
	Fill   color.Color // page colour behind the field
}

// Config for a Game.
type Config struct {
	Width, Height int
	Sections      []Section
	Seed          int64  // 0 picks a random seed
	PresetFile    string // target of the save and load keys
	Logger        *slog.Logger
}

// layer is a surface the game composites onto the screen and disposes on
// release. *Surface is the only production implementation.
type layer interface {
	field.Surface
	Image() *ebiten.Image
	Dispose()
}

// Game is the ebiten game that mounts sections. Keys:
// Tab/Right next section, Left previous, R remount, S save preset,
// L load preset, Escape quit.
type Game struct {
	cfg    Config
	logger *slog.Logger
	hub    frameHub
	rng    *rand.Rand

	newLayer func(width, height int) (layer, error)

	width, height int
	current       int
	started       bool
	anim          *field.Animation
	surfaces      map[field.Surface]layer
}

// NewGame returns a game showing cfg.Sections[0]. Nothing is mounted until
// the first Update.
func NewGame(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Game{
		cfg:      cfg,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		newLayer: newSurfaceLayer,
		width:    cfg.Width,
		height:   cfg.Height,
		surfaces: make(map[field.Surface]layer),
	}
}

func newSurfaceLayer(width, height int) (layer, error) {
	s, err := NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Bounds returns the current container size.
func (g *Game) Bounds() (int, int) {
	return g.width, g.height
}

// Acquire creates a surface composited by Draw until released.
func (g *Game) Acquire(width, height int) (field.Surface, error) {
	s, err := g.newLayer(width, height)
	if err != nil {
		return nil, err
	}
	g.surfaces[s] = s
	return s, nil
}

// Release disposes a surface obtained from Acquire. Unknown surfaces are
// ignored.
func (g *Game) Release(fs field.Surface) {
	s, ok := g.surfaces[fs]
	if !ok {
		return
	}
	delete(g.surfaces, fs)
	s.Dispose()
}

// Every registers a per-frame callback run from Update.
func (g *Game) Every(fn func()) func() {
	return g.hub.Every(fn)
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if len(g.cfg.Sections) == 0 {
		return ebiten.Termination
	}
	g.start()

	if err := g.handleInput(); err != nil {
		return err
	}

	g.hub.tick()
	return nil
}

func (g *Game) handleInput() error {
	n := len(g.cfg.Sections)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.unmount()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.show((g.current + 1) % n)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.show((g.current + n - 1) % n)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.show(g.current)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.savePreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.loadPreset()
	}
	return nil
}

// start mounts the first section once. A failed mount is not retried.
func (g *Game) start() {
	if g.started {
		return
	}
	g.started = true
	g.mount()
}

// show unmounts the current section and mounts section i with a fresh field.
func (g *Game) show(i int) {
	g.unmount()
	g.current = i
	g.mount()
}

func (g *Game) mount() {
	sec := g.cfg.Sections[g.current]
	opts, err := sec.Preset.Options()
	if err != nil {
		g.logger.Error("invalid preset", "preset", sec.Preset.Name, "error", err)
		return
	}
	g.anim = field.Start(g, opts, g.rng, g.logger)
	g.logger.Info("section mounted", "preset", sec.Preset.Name, "particles", opts.Count, "state", g.anim.State())
}

func (g *Game) unmount() {
	if g.anim == nil {
		return
	}
	g.anim.Stop()
	g.anim = nil
}

func (g *Game) savePreset() {
	if g.cfg.PresetFile == "" {
		return
	}
	p := g.cfg.Sections[g.current].Preset
	if err := config.Save(g.cfg.PresetFile, p); err != nil {
		g.logger.Error("save preset failed", "error", err)
		return
	}
	g.logger.Info("preset saved", "preset", p.Name, "path", g.cfg.PresetFile)
}

func (g *Game) loadPreset() {
	if g.cfg.PresetFile == "" {
		return
	}
	p, err := config.Load(g.cfg.PresetFile)
	if err != nil {
		g.logger.Error("load preset failed", "error", err)
		return
	}
	g.cfg.Sections[g.current].Preset = p
	g.logger.Info("preset loaded", "preset", p.Name, "path", g.cfg.PresetFile)
	g.show(g.current)
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	if len(g.cfg.Sections) > 0 {
		if fill := g.cfg.Sections[g.current].Fill; fill != nil {
			screen.Fill(fill)
		}
	}
	if l := g.mounted(); l != nil {
		screen.DrawImage(l.Image(), nil)
	}
}

// mounted returns the layer of the running section, or nil when nothing is
// shown.
func (g *Game) mounted() layer {
	if g.anim == nil || g.anim.State() != field.StateActive {
		return nil
	}
	return g.surfaces[g.anim.Surface()]
}

// Layout tracks the window size; a change resizes the mounted field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.anim != nil {
			g.anim.Resize(outsideWidth, outsideHeight)
		}
	}
	return g.width, g.height
}
