package compose

import "image/color"

// divergingStops are the anchor colors of a red-yellow-green diverging scale,
// evenly spaced over [0,1]. Low index values (bare soil, water) render red,
// mid values yellow, high values (dense vegetation) green.
var divergingStops = [][3]float64{
	{165, 0, 38},
	{215, 48, 39},
	{253, 174, 97},
	{255, 255, 191},
	{166, 217, 106},
	{26, 152, 80},
	{0, 104, 55},
}

// DivergingRgb maps a position t in [0,1] onto the diverging scale by linear
// interpolation between the two surrounding stops. t outside [0,1] is clamped
// to the scale's endpoints.
func DivergingRgb(t float64) color.RGBA {
	if t <= 0 {
		return stopColor(0)
	}
	if t >= 1 {
		return stopColor(len(divergingStops) - 1)
	}

	scaled := t * float64(len(divergingStops)-1)
	lower := int(scaled)
	frac := scaled - float64(lower)

	a := divergingStops[lower]
	b := divergingStops[lower+1]

	return color.RGBA{
		R: uint8(a[0] + (b[0]-a[0])*frac + 0.5),
		G: uint8(a[1] + (b[1]-a[1])*frac + 0.5),
		B: uint8(a[2] + (b[2]-a[2])*frac + 0.5),
		A: 255,
	}
}

func stopColor(i int) color.RGBA {
	return color.RGBA{
		R: uint8(divergingStops[i][0]),
		G: uint8(divergingStops[i][1]),
		B: uint8(divergingStops[i][2]),
		A: 255,
	}
}
