package input

import "math"

// DefaultThresholdDB is the level above which a sample buffer counts as a
// trigger.
const DefaultThresholdDB = -30.0

// Loudness returns the RMS level of 16-bit PCM samples in dBFS. Silence and
// empty buffers report -Inf.
func Loudness(samples []int16) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, raw := range samples {
		s := float64(raw) / 32768.0
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	return 20 * math.Log10(rms)
}

// IsLoud reports whether samples exceed thresholdDB.
func IsLoud(samples []int16, thresholdDB float64) bool {
	return Loudness(samples) > thresholdDB
}
