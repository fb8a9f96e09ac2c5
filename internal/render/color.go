package render

import (
	"image/color"
	"math"
)

// speedColor maps a particle speed to a hue running from blue at rest to red
// at twice the thermal speed
func speedColor(speed, thermalSpeed float64) color.RGBA {
	f := 1.0
	if thermalSpeed > 0 {
		f = math.Min(speed/(2*thermalSpeed), 1)
	}
	r, g, b := hsvToRGB(240*(1-f), 1, 1)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// hsvToRGB converts hue in degrees, saturation and value in [0, 1] to RGB
// components in [0, 1]
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
