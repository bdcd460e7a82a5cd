package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/particle-field/internal/field"
)

func TestDefaults_Valid(t *testing.T) {
	for name, p := range Defaults() {
		if p.Name != name {
			t.Errorf("preset %q has name %q", name, p.Name)
		}
		opts, err := p.Options()
		if err != nil {
			t.Errorf("preset %q: %v", name, err)
			continue
		}
		if opts.Count < 50 || opts.Count > 80 {
			t.Errorf("preset %q count %d outside 50..80", name, opts.Count)
		}
		if opts.Distance < 80 || opts.Distance > 120 {
			t.Errorf("preset %q distance %g outside 80..120", name, opts.Distance)
		}
	}
}

func TestNames_Sorted(t *testing.T) {
	want := []string{"brands", "commitment", "hero", "pricing", "stats"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("commitment")
	if err != nil {
		t.Fatal(err)
	}
	opts, err := p.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Count != 50 || opts.Distance != 80 || opts.Speed != 0.8 {
		t.Errorf("commitment = %+v", opts)
	}
	if want := (color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}); opts.Accent != want {
		t.Errorf("accent = %v, want %v", opts.Accent, want)
	}
	if want := (color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 102}); opts.Palette[0] != want {
		t.Errorf("fill = %v, want %v", opts.Palette[0], want)
	}

	if _, err := Lookup("footer"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Lookup(footer) error = %v, want ErrUnknownPreset", err)
	}
}

func TestPricingOptions(t *testing.T) {
	p, _ := Lookup("pricing")
	opts, err := p.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Pick != field.PickRandom || len(opts.Palette) != 4 {
		t.Errorf("pick %v with %d colours", opts.Pick, len(opts.Palette))
	}
	if opts.LineWidth != 0.5 || opts.Glow != 3 {
		t.Errorf("line width %g glow %g", opts.LineWidth, opts.Glow)
	}
	if opts.Background == nil {
		t.Fatal("no background")
	}
	if want := (color.NRGBA{R: 0xef, G: 0xf6, B: 0xff, A: 204}); opts.Background.From != want {
		t.Errorf("background from = %v, want %v", opts.Background.From, want)
	}
}

func TestValidate(t *testing.T) {
	base, _ := Lookup("hero")
	tests := []struct {
		name string
		edit func(*Preset)
	}{
		{"zero count", func(p *Preset) { p.Count = 0 }},
		{"zero distance", func(p *Preset) { p.Distance = 0 }},
		{"negative speed", func(p *Preset) { p.Speed = -1 }},
		{"zero radius", func(p *Preset) { p.RadiusMin = 0 }},
		{"inverted radius", func(p *Preset) { p.RadiusMax = 0.5 }},
		{"empty palette", func(p *Preset) { p.Palette = nil }},
		{"bad pick", func(p *Preset) { p.Pick = "cycle" }},
		{"negative glow", func(p *Preset) { p.Glow = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.Palette = append([]Color(nil), base.Palette...)
			tt.edit(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("Validate() = %v, want ErrInvalidPreset", err)
			}
		})
	}
}

func TestOptions_BadColor(t *testing.T) {
	p, _ := Lookup("hero")
	p.Accent = Color{Hex: "blue", Alpha: 1}
	if _, err := p.Options(); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("Options() = %v, want ErrInvalidPreset", err)
	}
}

func TestColor_NRGBA(t *testing.T) {
	c, err := Color{Hex: "#3498db", Alpha: 0.5}.NRGBA()
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 128}); c != want {
		t.Errorf("NRGBA = %v, want %v", c, want)
	}
	c, _ = Color{Hex: "#000000", Alpha: 3}.NRGBA()
	if c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
}

func TestBrandsHuePick(t *testing.T) {
	p, _ := Lookup("brands")
	opts, err := p.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Pick != field.PickHue || len(opts.Palette) != 1 {
		t.Fatalf("pick %v with %d colours, want hue pick over one base colour", opts.Pick, len(opts.Palette))
	}
	if want := (color.NRGBA{R: 0xd9, G: 0x26, B: 0x26, A: 0xff}); opts.Palette[0] != want {
		t.Errorf("base = %v, want %v", opts.Palette[0], want)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.json")
	p, _ := Lookup("pricing")
	p.Twinkle = 0.25

	if err := Save(path, p); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "pricing" || got.Count != 80 || got.Twinkle != 0.25 || got.Background == nil || len(got.Palette) != 4 {
		t.Errorf("loaded %+v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("malformed JSON accepted")
	}

	badHex := filepath.Join(dir, "badhex.json")
	p, _ := Lookup("hero")
	p.Accent = Color{Hex: "#zzzzzz", Alpha: 1}
	if err := Save(badHex, p); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badHex); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("bad colour error = %v, want ErrInvalidPreset", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"name":"x","count":0}`), 0644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("invalid preset error = %v, want ErrInvalidPreset", err)
	}
}

func TestLoad_MissingAlphaIsOpaque(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.json")
	data := `{"name":"hero","count":60,"distance":100,"speed":2,"radius_min":1,"radius_max":4,
		"palette":[{"hex":"#3498db","alpha":0.5}],"accent":{"hex":"#3498db"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Accent.Alpha != 1 {
		t.Errorf("accent alpha = %g, want 1", p.Accent.Alpha)
	}
	if p.Palette[0].Alpha != 0.5 {
		t.Errorf("palette alpha = %g, want 0.5", p.Palette[0].Alpha)
	}
}
