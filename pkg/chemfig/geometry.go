package chemfig

import (
	"math"
	"strconv"
)

// comparePositions returns the distance and the direction, in degrees
// counter-clockwise from east, of the vector from (x1,y1) to (x2,y2).
// The angle lies in (-90, 270].
func comparePositions(x1, y1, x2, y2 float64) (length, angle float64) {
	dx, dy := x2-x1, y2-y1
	length = math.Sqrt(dx*dx + dy*dy)

	if dx == 0 {
		if dy < 0 {
			return length, 270
		}
		return length, 90
	}

	raw := math.Atan(math.Abs(dy/dx)) * 180 / math.Pi
	switch {
	case dy >= 0 && dx > 0:
		angle = raw
	case dy >= 0:
		angle = 180 - raw
	case dx > 0:
		angle = -raw
	default:
		angle = 180 + raw
	}
	return length, angle
}

// mod360 maps an angle into [0, 360).
func mod360(a float64) float64 {
	m := math.Mod(a, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// modInt is the non-negative remainder of a divided by n.
func modInt(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// roundInt rounds half to even.
func roundInt(x float64) int {
	return int(math.RoundToEven(x))
}

// roundTo rounds x to the given number of decimals, half to even.
func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.RoundToEven(x*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return x
	}
	return r
}

// formatNum renders a number the way it should appear in chemfig code:
// integral values without a decimal point, others in shortest form.
func formatNum(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// cotan100 returns 100 times the cotangent of a (degrees), rounded. A
// zero tangent yields 0.
func cotan100(a float64) int {
	t := math.Tan(a * math.Pi / 180)
	if t == 0 {
		return 0
	}
	return roundInt(100 / t)
}

// circularDistance is the smaller angle between a and b, in [0, 180].
func circularDistance(a, b float64) float64 {
	d := mod360(a - b)
	return math.Min(d, 360-d)
}
