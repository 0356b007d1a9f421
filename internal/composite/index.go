// Package composite computes the market pulse index: a single normalized
// 0-100-baselined value per sample, combining volume, open-interest, and
// breadth deltas relative to the earliest sample in the window.
package composite

import "github.com/quantdeck/quantdeck/internal/model"

// Sample is one computed index point.
type Sample struct {
	Timestamp string
	Value     float64
}

// Index computes the composite index over rows as delivered by the API
// (newest first). Rows are reversed so the earliest sample becomes the
// baseline; the output runs earliest to latest. An empty input yields an
// empty output.
func Index(rows []model.Row) []Sample {
	if len(rows) == 0 {
		return nil
	}

	ordered := make([]model.Row, len(rows))
	for i, row := range rows {
		ordered[len(rows)-1-i] = row
	}

	baseVolume := baselineField(ordered[0], model.FieldVolumeDelta)
	baseOI := baselineField(ordered[0], model.FieldOIDelta)
	baseBreadth := baselineField(ordered[0], model.FieldBreadthDelta)

	samples := make([]Sample, len(ordered))
	for i, row := range ordered {
		volume, _ := row.Float(model.FieldVolumeDelta)
		oi, _ := row.Float(model.FieldOIDelta)
		breadth, _ := row.Float(model.FieldBreadthDelta)

		sum := volume/baseVolume + oi/baseOI + breadth/baseBreadth
		samples[i] = Sample{
			Timestamp: row.Str(model.FieldTimestamp),
			Value:     100 * sum / 3,
		}
	}
	return samples
}

// baselineField reads a baseline delta, substituting 1 for zero or missing
// values so later ratios never divide by zero.
func baselineField(row model.Row, field string) float64 {
	v, ok := row.Float(field)
	if !ok || v == 0 {
		return 1
	}
	return v
}

// Latest returns the most recent index value, or false when the series is
// empty. An absent value is displayed as absent, not zero.
func Latest(samples []Sample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1].Value, true
}

// Values extracts the index values in series order, for charting.
func Values(samples []Sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return values
}
