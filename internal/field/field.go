// Package field animates a bounded 2-D particle field in which nearby
// particles are joined by lines that fade out with distance.
package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PickMode selects how a particle's colour is taken from the palette.
type PickMode int

const (
	PickByIndex PickMode = iota // palette[i % len(palette)]
	PickRandom                  // uniform pick from the palette
	PickHue                     // palette[0] with a uniformly random hue
)

// Options are the per-usage constants of a field. They are fixed for the
// lifetime of a Field.
type Options struct {
	Count     int     // number of particles
	Distance  float64 // connection threshold in pixels
	Speed     float64 // velocity components are drawn from [-Speed/2, Speed/2)
	RadiusMin float64
	RadiusMax float64
	Palette   []color.NRGBA
	Pick      PickMode
	Accent    color.NRGBA // base colour of connection lines
	LineWidth float64

	Glow       float64   // halo radius as a multiple of the particle radius, 0 disables
	Background *Gradient // painted after clear when set
	Twinkle    float64   // amplitude of the noise applied to drawn radii, 0 disables
}

// Particle is a single animated point.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity, per frame
	Radius float64
	Color  color.NRGBA
}

// Field owns a fixed set of particles and the surface dimensions they bounce in.
type Field struct {
	width, height float64
	particles     []Particle
	opts          Options
	frame         uint64
	noise         *perlin.Perlin
}

// New creates a field of opts.Count particles scattered over
// [0,width) x [0,height). All randomness is drawn from rng, so the same seed
// always yields the same field.
func New(width, height float64, opts Options, rng *rand.Rand) *Field {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	opts.Palette = append([]color.NRGBA(nil), opts.Palette...)

	f := &Field{
		width:     width,
		height:    height,
		opts:      opts,
		particles: make([]Particle, opts.Count),
	}

	spread := opts.RadiusMax - opts.RadiusMin
	for i := range f.particles {
		p := &f.particles[i]
		p.X = rng.Float64() * width
		p.Y = rng.Float64() * height
		p.VX = (rng.Float64() - 0.5) * opts.Speed
		p.VY = (rng.Float64() - 0.5) * opts.Speed
		p.Radius = opts.RadiusMin + rng.Float64()*spread
		p.Color = f.pickColor(i, rng)
	}

	if opts.Twinkle > 0 {
		f.noise = perlin.NewPerlin(2, 2, 3, rng.Int63())
	}

	return f
}

func (f *Field) pickColor(i int, rng *rand.Rand) color.NRGBA {
	n := len(f.opts.Palette)
	if n == 0 {
		return color.NRGBA{A: 0xff}
	}
	switch f.opts.Pick {
	case PickRandom:
		return f.opts.Palette[rng.Intn(n)]
	case PickHue:
		return withHue(f.opts.Palette[0], rng.Float64()*360)
	}
	return f.opts.Palette[i%n]
}

// withHue keeps the HSL saturation, lightness and alpha of c and replaces its hue.
func withHue(c color.NRGBA, hue float64) color.NRGBA {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	_, s, l := base.Hsl()
	r, g, b := colorful.Hsl(hue, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

// FromParticles builds a field around an explicit particle set instead of a
// random one. opts.Count is taken from len(particles).
func FromParticles(width, height float64, opts Options, particles []Particle) *Field {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	opts.Count = len(particles)
	return &Field{
		width:     width,
		height:    height,
		opts:      opts,
		particles: append([]Particle(nil), particles...),
	}
}

// Advance moves every particle by one frame. A coordinate that leaves
// [0, dimension] has that axis's velocity negated. The position is left where
// it landed, so a particle may sit just outside the surface for one frame.
func (f *Field) Advance() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > f.width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > f.height {
			p.VY = -p.VY
		}
	}
	f.frame++
}

// Render draws the current state onto c: background, particles, then the
// connections between every pair closer than the threshold.
func (f *Field) Render(c Canvas) {
	c.Clear()
	if f.opts.Background != nil {
		c.FillGradient(*f.opts.Background)
	}

	for i := range f.particles {
		p := &f.particles[i]
		if f.opts.Glow > 0 {
			c.FillGlow(p.X, p.Y, p.Radius*f.opts.Glow, p.Color)
		}
		c.FillCircle(p.X, p.Y, p.Radius*f.twinkle(i), p.Color)
	}

	d := f.opts.Distance
	for i := 0; i < len(f.particles); i++ {
		p1 := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			p2 := &f.particles[j]
			dist := math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
			if dist >= d {
				continue
			}
			c.StrokeLine(p1.X, p1.Y, p2.X, p2.Y, Stroke{
				Width: f.opts.LineWidth,
				Color: f.opts.Accent,
				Alpha: 1 - dist/d,
			})
		}
	}
}

// twinkle returns the radius scale for particle i in the current frame.
func (f *Field) twinkle(i int) float64 {
	if f.noise == nil {
		return 1
	}
	n := math.Max(-1, math.Min(1, f.noise.Noise2D(float64(i)*0.37, float64(f.frame)*0.05)))
	s := 1 + f.opts.Twinkle*n
	if s < 0 {
		return 0
	}
	return s
}

// Resize changes the bounds used by later boundary checks. Particles are not
// moved: one left outside a shrunk surface stays there until its own motion
// brings it back.
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height
}

// Size returns the current bounds.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Len returns the number of particles, which never changes.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

// Frame returns the number of Advance calls so far.
func (f *Field) Frame() uint64 {
	return f.frame
}
