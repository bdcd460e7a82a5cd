package stage

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-field/internal/field"
)

// ErrNoSurface is returned when a surface cannot be created for the
// requested size.
var ErrNoSurface = errors.New("no drawing surface")

const glowSize = 64 // side of the glow sprite in pixels

// Surface is an offscreen ebiten image a field draws onto. The stage
// composites it onto the screen every frame.
type Surface struct {
	img  *ebiten.Image
	glow *ebiten.Image

	// cached background, rebuilt when the gradient or size changes
	bg         *ebiten.Image
	bgGradient field.Gradient
}

// NewSurface allocates a width x height surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoSurface, width, height)
	}
	return &Surface{img: ebiten.NewImage(width, height)}, nil
}

// Image returns the backing image.
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image. Its content is discarded, the next
// frame redraws it.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoSurface, width, height)
	}
	if w, h := s.Size(); w == width && h == height {
		return nil
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(width, height)
	s.dropBackground()
	return nil
}

// Dispose frees the GPU resources of the surface.
func (s *Surface) Dispose() {
	s.img.Deallocate()
	s.dropBackground()
	if s.glow != nil {
		s.glow.Deallocate()
		s.glow = nil
	}
}

func (s *Surface) dropBackground() {
	if s.bg != nil {
		s.bg.Deallocate()
		s.bg = nil
	}
}

func (s *Surface) Clear() {
	s.img.Clear()
}

func (s *Surface) FillGradient(g field.Gradient) {
	if s.bg == nil || s.bgGradient != g {
		s.dropBackground()
		w, h := s.Size()
		s.bg = ebiten.NewImage(w, h)
		s.bg.WritePixels(gradientPixels(g, w, h))
		s.bgGradient = g
	}
	s.img.DrawImage(s.bg, nil)
}

func (s *Surface) FillCircle(x, y, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), c, true)
}

func (s *Surface) FillGlow(x, y, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	if s.glow == nil {
		s.glow = ebiten.NewImage(glowSize, glowSize)
		s.glow.WritePixels(glowPixels(glowSize))
	}
	half := float64(glowSize) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(radius/half, radius/half)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(s.glow, op)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st field.Stroke) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(st.Width), st.NRGBA(), true)
}

// gradientPixels renders g into premultiplied RGBA bytes.
func gradientPixels(g field.Gradient, w, h int) []byte {
	pix := make([]byte, 4*w*h)
	fw, fh := float64(w), float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.AtPoint(float64(x), float64(y), fw, fh)
			r, gg, b, a := c.RGBA()
			i := 4 * (y*w + x)
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(gg >> 8)
			pix[i+2] = byte(b >> 8)
			pix[i+3] = byte(a >> 8)
		}
	}
	return pix
}

// glowPixels renders a white radial fade, opaque at the centre and clear at
// the edge, in premultiplied RGBA bytes.
func glowPixels(size int) []byte {
	pix := make([]byte, 4*size*size)
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			a := byte(0)
			if d < 1 {
				a = byte(math.Round((1 - d) * 255))
			}
			i := 4 * (y*size + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = a, a, a, a
		}
	}
	return pix
}
