package tilegrid

import "github.com/chewxy/math32"

// colorVector builds the RGBA uniform consumed by the textured color shader.
// Channels are normalized to [0, 1]; premultiplication happens in the shader.
func colorVector(c RGB, opacity uint8) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(opacity) / 255,
	}
}

// colorScale returns the per-channel scale for drawing a bitmap tinted by c at
// opacity. Opacity scales every channel of a premultiplied bitmap; for a
// straight bitmap it scales alpha only and the blend state applies it.
func colorScale(c RGB, opacity uint8, premultiplied bool) [4]float32 {
	v := colorVector(c, opacity)
	if premultiplied {
		v[0] *= v[3]
		v[1] *= v[3]
		v[2] *= v[3]
	}
	return v
}

// opacityScaled returns c with every channel multiplied by opacity/255.
func opacityScaled(c RGB, opacity uint8) RGB {
	o := uint32(opacity)
	return RGB{
		R: uint8(uint32(c.R) * o / 255),
		G: uint8(uint32(c.G) * o / 255),
		B: uint8(uint32(c.B) * o / 255),
	}
}

// multiplyChannel scales an 8-bit channel by another, rounding to nearest.
func multiplyChannel(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

// unitToByte converts a float in [0, 255] produced by a tween into a channel
// value, clamping and rounding.
func unitToByte(v float32) uint8 {
	v = math32.Max(0, math32.Min(255, v))
	return uint8(math32.Floor(v + 0.5))
}
