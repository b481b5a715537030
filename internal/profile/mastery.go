package profile

// DefaultSmoothing is the fixed smoothing constant for mastery updates.
// Each attempt moves the score 30% of the way toward that attempt's
// accuracy, so mastery tracks a trend rather than the latest result.
const DefaultSmoothing = 0.3

// UpdateScore folds one quiz accuracy into a mastery score using an
// exponential moving average. The result is clamped to [0, 1].
func UpdateScore(score, accuracy float64) float64 {
	next := score + DefaultSmoothing*(accuracy-score)
	return clamp(next, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
