package field

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stroke describes a connection line. Alpha in [0,1] multiplies Color's own alpha.
type Stroke struct {
	Width float64
	Color color.NRGBA
	Alpha float64
}

// NRGBA returns the stroke colour with Alpha applied.
func (s Stroke) NRGBA() color.NRGBA {
	c := s.Color
	c.A = uint8(clamp01(s.Alpha)*float64(c.A) + 0.5)
	return c
}

// Gradient is a linear gradient running from the top-left corner of the
// surface to the bottom-right one.
type Gradient struct {
	From, To color.NRGBA
}

// At returns the gradient colour at t in [0,1]. RGB is blended with
// go-colorful, alpha is interpolated linearly.
func (g Gradient) At(t float64) color.NRGBA {
	t = clamp01(t)
	from := colorful.Color{R: float64(g.From.R) / 255, G: float64(g.From.G) / 255, B: float64(g.From.B) / 255}
	to := colorful.Color{R: float64(g.To.R) / 255, G: float64(g.To.G) / 255, B: float64(g.To.B) / 255}
	r, gg, b := from.BlendRgb(to, t).Clamped().RGB255()
	a := float64(g.From.A) + (float64(g.To.A)-float64(g.From.A))*t
	return color.NRGBA{R: r, G: gg, B: b, A: uint8(a + 0.5)}
}

// AtPoint returns the gradient colour at pixel (x, y) of a w x h surface.
func (g Gradient) AtPoint(x, y, w, h float64) color.NRGBA {
	den := w*w + h*h
	if den == 0 {
		return g.From
	}
	return g.At((x*w + y*h) / den)
}

// Canvas is what a field draws onto.
type Canvas interface {
	Clear()
	FillGradient(g Gradient)
	FillCircle(x, y, radius float64, c color.NRGBA)
	FillGlow(x, y, radius float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1 float64, s Stroke)
}

// Surface is a Canvas owned by a host view, sized to its container.
type Surface interface {
	Canvas
	Size() (width, height int)
	Resize(width, height int) error
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
