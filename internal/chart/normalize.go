// Package chart maps raw numeric series onto a fixed virtual canvas for
// sparkline rendering. Normalization is pure: no state, same input always
// yields the same points.
package chart

// Point is one plotted coordinate on the virtual canvas. Larger input
// values map to smaller Y (they plot higher).
type Point struct {
	X float64
	Y float64
}

// Options describes the virtual canvas geometry.
type Options struct {
	Width  float64
	Height float64
	Pad    float64 // vertical padding inside the canvas
}

// DefaultOptions is the canvas geometry used by the dashboard sparklines.
func DefaultOptions() Options {
	return Options{Width: 100, Height: 40, Pad: 4}
}

// Normalize maps values onto the canvas. Fewer than two values yield nil:
// there is nothing drawable. X coordinates span [0, Width] left to right;
// Y coordinates stay within the padded band [Pad, Height-Pad]. A flat
// series does not divide by zero: the span is floored to 1, placing every
// point at the same Y.
func Normalize(values []float64, opts Options) []Point {
	if len(values) < 2 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	band := opts.Height - 2*opts.Pad
	step := opts.Width / float64(len(values)-1)

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{
			X: float64(i) * step,
			Y: opts.Height - opts.Pad - (v-min)/span*band,
		}
	}
	return points
}
