package recmap

import "math"

// --------------------------------------------------------------------------
// Statistics
// --------------------------------------------------------------------------

// Stats holds the standard estimators over a series of float64 samples.
type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes the standard deviation, minimum, maximum and mean
// from an array of float64 values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	min := values[0]
	max := values[0]

	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}
	// population formula
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	var minMaxRatio float64 = 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
		MinMaxRatio:  minMaxRatio,
	}
}

// ProbeStats describes the health of a map's slot array: how full it is and
// how far the stored keys sit from their home slots. A mean probe distance
// near zero means most lookups hit on the first probe; a distance close to
// the bucket size means the table is due for growth.
type ProbeStats struct {
	Slots      int     `json:"slots"`       // length of the slot array
	Pairs      int     `json:"pairs"`       // number of live pairs
	BucketSize int     `json:"bucket_size"` // probes per lookup
	Occupancy  float64 `json:"occupancy"`   // pairs / (slots / 2)
	Distances  Stats   `json:"distances"`   // probe distance estimators
}

// Statistics computes probe statistics for the map's current slot array.
// The scan is read-only and touches every live pair once.
func (m *Map) Statistics() ProbeStats {
	data := m.data
	if data == nil {
		return ProbeStats{}
	}

	slots := data.slots
	stats := ProbeStats{
		Slots:      len(slots),
		Pairs:      data.size,
		BucketSize: bucketSize(len(slots)),
		Occupancy:  float64(data.size) / float64(len(slots)/2),
	}

	distances := make([]float64, 0, data.size)
	for i := 0; i < len(slots); i += 2 {
		key := slots[i]
		if key == nil {
			continue
		}
		home := int(hashKey(key)) & data.mask
		// probe steps from the home slot to the actual slot, modulo the
		// masked index space
		distance := ((i - home) & data.mask) >> 1
		distances = append(distances, float64(distance))
	}
	stats.Distances = NewStats(distances)
	return stats
}
