// Package config holds the particle field presets of each page section and
// reads and writes them as JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/olivierh59500/particle-field/internal/field"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidPreset = errors.New("invalid preset")
)

// Pick modes as written in preset files.
const (
	PickIndex  = "index"
	PickRandom = "random"
	PickHue    = "hue" // random hue at the saturation and lightness of palette[0]
)

// Preset is the serialisable form of field.Options for one usage site.
type Preset struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	RadiusMin float64 `json:"radius_min"`
	RadiusMax float64 `json:"radius_max"`
	Palette   []Color `json:"palette"`
	Pick      string  `json:"pick,omitempty"`
	Accent    Color   `json:"accent"`
	LineWidth float64 `json:"line_width,omitempty"`

	Glow       float64   `json:"glow,omitempty"`
	Background *Gradient `json:"background,omitempty"`
	Twinkle    float64   `json:"twinkle,omitempty"`
}

// Gradient is a two-stop diagonal background.
type Gradient struct {
	From Color `json:"from"`
	To   Color `json:"to"`
}

var (
	siteBlue  = Color{Hex: "#3498db", Alpha: 1}
	siteGreen = Color{Hex: "#10b981", Alpha: 1}
)

// Defaults returns the built-in presets keyed by name.
func Defaults() map[string]Preset {
	return map[string]Preset{
		"hero": {
			Name: "hero", Count: 60, Distance: 100, Speed: 2,
			RadiusMin: 1, RadiusMax: 4,
			Palette: []Color{{Hex: "#3498db", Alpha: 0.5}},
			Accent:  siteBlue,
		},
		"stats": {
			Name: "stats", Count: 60, Distance: 100, Speed: 1,
			RadiusMin: 1, RadiusMax: 3,
			Palette: []Color{{Hex: "#3498db", Alpha: 0.5}},
			Accent:  siteBlue,
		},
		"commitment": {
			Name: "commitment", Count: 50, Distance: 80, Speed: 0.8,
			RadiusMin: 1, RadiusMax: 3,
			Palette: []Color{{Hex: "#10b981", Alpha: 0.4}},
			Accent:  siteGreen,
		},
		"brands": {
			Name: "brands", Count: 80, Distance: 120, Speed: 2,
			RadiusMin: 1, RadiusMax: 4,
			Palette: []Color{{Hex: "#d92626", Alpha: 1}}, // hsl(0, 70%, 50%)
			Pick:    PickHue,
			Accent:  siteBlue,
		},
		"pricing": {
			Name: "pricing", Count: 80, Distance: 120, Speed: 0.8,
			RadiusMin: 1, RadiusMax: 4,
			Palette: []Color{
				{Hex: "#3498db", Alpha: 0.6},
				{Hex: "#3b82f6", Alpha: 0.6},
				{Hex: "#1d4ed8", Alpha: 0.6},
				{Hex: "#60a5fa", Alpha: 0.6},
			},
			Pick:      PickRandom,
			Accent:    siteBlue,
			LineWidth: 0.5,
			Glow:      3,
			Background: &Gradient{
				From: Color{Hex: "#eff6ff", Alpha: 0.8},
				To:   Color{Hex: "#dbeafe", Alpha: 0.8},
			},
		},
	}
}

// Names returns the built-in preset names in sorted order.
func Names() []string {
	d := Defaults()
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in preset with the given name.
func Lookup(name string) (Preset, error) {
	p, ok := Defaults()[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Validate checks the constraints a field relies on.
func (p Preset) Validate() error {
	switch {
	case p.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidPreset, p.Count)
	case p.Distance <= 0:
		return fmt.Errorf("%w: distance must be positive, got %g", ErrInvalidPreset, p.Distance)
	case p.Speed < 0:
		return fmt.Errorf("%w: speed must not be negative, got %g", ErrInvalidPreset, p.Speed)
	case p.RadiusMin <= 0 || p.RadiusMax < p.RadiusMin:
		return fmt.Errorf("%w: radius range [%g, %g]", ErrInvalidPreset, p.RadiusMin, p.RadiusMax)
	case len(p.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidPreset)
	case p.Pick != "" && p.Pick != PickIndex && p.Pick != PickRandom && p.Pick != PickHue:
		return fmt.Errorf("%w: pick mode %q", ErrInvalidPreset, p.Pick)
	case p.Glow < 0 || p.Twinkle < 0 || p.LineWidth < 0:
		return fmt.Errorf("%w: negative glow, twinkle or line width", ErrInvalidPreset)
	}
	return nil
}

// Options converts the preset into field options.
func (p Preset) Options() (field.Options, error) {
	if err := p.Validate(); err != nil {
		return field.Options{}, err
	}

	palette := make([]color.NRGBA, len(p.Palette))
	for i, c := range p.Palette {
		nc, err := c.NRGBA()
		if err != nil {
			return field.Options{}, fmt.Errorf("%w: palette[%d]: %w", ErrInvalidPreset, i, err)
		}
		palette[i] = nc
	}
	accent, err := p.Accent.NRGBA()
	if err != nil {
		return field.Options{}, fmt.Errorf("%w: accent: %w", ErrInvalidPreset, err)
	}

	opts := field.Options{
		Count:     p.Count,
		Distance:  p.Distance,
		Speed:     p.Speed,
		RadiusMin: p.RadiusMin,
		RadiusMax: p.RadiusMax,
		Palette:   palette,
		Accent:    accent,
		LineWidth: p.LineWidth,
		Glow:      p.Glow,
		Twinkle:   p.Twinkle,
	}
	switch p.Pick {
	case PickRandom:
		opts.Pick = field.PickRandom
	case PickHue:
		opts.Pick = field.PickHue
	}

	if p.Background != nil {
		from, err := p.Background.From.NRGBA()
		if err != nil {
			return field.Options{}, fmt.Errorf("%w: background: %w", ErrInvalidPreset, err)
		}
		to, err := p.Background.To.NRGBA()
		if err != nil {
			return field.Options{}, fmt.Errorf("%w: background: %w", ErrInvalidPreset, err)
		}
		opts.Background = &field.Gradient{From: from, To: to}
	}
	return opts, nil
}

// Load reads a preset from a JSON file and checks that it converts to field
// options, colours included.
func Load(filename string) (Preset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s: %w", filename, err)
	}
	if _, err := p.Options(); err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", filename, err)
	}
	return p, nil
}

// Save writes p to filename as indented JSON.
func Save(filename string, p Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
