package calculation

// bisect finds the smallest x in [lo, hi] with f(x) >= target, assuming f is
// non-decreasing. It returns false when even f(hi) falls short.
func bisect(f func(float64) float64, target, lo, hi float64) (float64, bool) {
	if f(lo) >= target {
		return lo, true
	}
	if f(hi) < target {
		return hi, false
	}

	const (
		maxIterations = 100
		tolerance     = 1e-9
	)
	for i := 0; i < maxIterations; i++ {
		mid := lo + (hi-lo)/2
		if f(mid) >= target {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo < tolerance {
			break
		}
	}
	return hi, true
}
