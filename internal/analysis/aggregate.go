package analysis

import (
	"math"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// Summarize reduces a sample batch to its summary statistics in one
// streaming pass. Mean and variance use Welford's online update rather than
// sum-then-divide: batches of thousands of near-zero-mean microvolt samples
// lose precision under naive accumulation.
//
// Returns domain.ErrEmptyBatch for a batch with no samples. Reordering the
// samples changes none of the outputs beyond floating-point rounding of the
// standard deviation.
func Summarize(batch domain.SampleBatch) (domain.SampleStatistics, error) {
	if len(batch.Samples) == 0 {
		return domain.SampleStatistics{}, domain.ErrEmptyBatch
	}

	var (
		mean = 0.0
		m2   = 0.0
		min  = batch.Samples[0]
		max  = batch.Samples[0]
	)
	for i, v := range batch.Samples {
		n := float64(i + 1)
		delta := v - mean
		mean += delta / n
		m2 += delta * (v - mean)

		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	stddev := 0.0
	if n := len(batch.Samples); n > 1 {
		stddev = math.Sqrt(m2 / float64(n-1))
	}

	return domain.SampleStatistics{
		MeanVolt:    mean,
		MinVolt:     min,
		MaxVolt:     max,
		StdDevVolt:  stddev,
		SampleCount: len(batch.Samples),
	}, nil
}
