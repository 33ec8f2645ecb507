package scope

// Downsample reduces values to at most maxPoints by decimation, always keeping
// the first and the last value so the newest reading stays on screen.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates.
// Apply the same maxPoints to x and y to keep pairs aligned.
func Downsample(dst []float64, values []float64, maxPoints int) []float64 {
	n := len(values)
	if maxPoints <= 0 || n <= maxPoints {
		if cap(dst) >= n {
			dst = dst[:n]
		} else {
			dst = make([]float64, n)
		}
		copy(dst, values)
		return dst
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]float64, 0, maxPoints)
	}

	if maxPoints == 1 {
		return append(dst, values[n-1])
	}

	step := float64(n-1) / float64(maxPoints-1)
	for i := 0; i < maxPoints; i++ {
		dst = append(dst, values[int(float64(i)*step+0.5)])
	}

	return dst
}
