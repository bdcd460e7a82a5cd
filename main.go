// Command particle-field shows the animated particle backgrounds of the
// site's page sections in a window.
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-field/internal/config"
	"github.com/olivierh59500/particle-field/internal/stage"
)

// Page colours behind each section's field.
var sectionFill = map[string]color.Color{
	"hero":       color.RGBA{0xef, 0xf6, 0xff, 0xff},
	"stats":      color.RGBA{0xff, 0xff, 0xff, 0xff},
	"commitment": color.RGBA{0xd1, 0xfa, 0xe5, 0xff},
	"brands":     color.RGBA{0xf8, 0xfa, 0xfc, 0xff},
	"pricing":    color.RGBA{0xff, 0xff, 0xff, 0xff},
}

func main() {
	var (
		presets = flag.String("preset", strings.Join(config.Names(), ","), "comma separated sections to show, in order")
		file    = flag.String("config", "", "preset JSON file; loaded as the first section if it exists, target of S/L keys")
		seed    = flag.Int64("seed", 0, "random seed, 0 for a random one")
		width   = flag.Int("width", 1280, "window width")
		height  = flag.Int("height", 720, "window height")
		tps     = flag.Int("tps", 60, "frames per second")
		twinkle = flag.Float64("twinkle", 0, "radius noise amplitude applied to every section")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var sections []stage.Section
	if *file != "" {
		if _, err := os.Stat(*file); err == nil {
			p, err := config.Load(*file)
			if err != nil {
				slog.Error("failed to load preset", "path", *file, "error", err)
				os.Exit(1)
			}
			sections = append(sections, stage.Section{Preset: p, Fill: sectionFill[p.Name]})
		}
	}
	for _, name := range strings.Split(*presets, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := config.Lookup(name)
		if err != nil {
			slog.Error("bad -preset", "error", err, "known", config.Names())
			os.Exit(1)
		}
		sections = append(sections, stage.Section{Preset: p, Fill: sectionFill[name]})
	}
	if len(sections) == 0 {
		slog.Error("no sections to show")
		os.Exit(1)
	}
	if *twinkle > 0 {
		for i := range sections {
			sections[i].Preset.Twinkle = *twinkle
		}
	}

	game := stage.NewGame(stage.Config{
		Width:      *width,
		Height:     *height,
		Sections:   sections,
		Seed:       *seed,
		PresetFile: *file,
		Logger:     logger,
	})

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Particle Field")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)

	slog.Info("starting", "sections", len(sections), "seed", *seed)
	if err := ebiten.RunGame(game); err != nil {
		slog.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
