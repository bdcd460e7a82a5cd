package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a hex colour plus an opacity, the way the section stylesheets
// write rgba() values.
type Color struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

// NRGBA parses the colour. Alpha is clamped to [0,1].
func (c Color) NRGBA() (color.NRGBA, error) {
	cc, err := colorful.Hex(c.Hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", c.Hex, err)
	}
	r, g, b := cc.Clamped().RGB255()
	a := math.Max(0, math.Min(1, c.Alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}, nil
}

// UnmarshalJSON decodes a colour. A missing alpha means opaque.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw struct {
		Hex   string   `json:"hex"`
		Alpha *float64 `json:"alpha"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Hex = raw.Hex
	c.Alpha = 1
	if raw.Alpha != nil {
		c.Alpha = *raw.Alpha
	}
	return nil
}
