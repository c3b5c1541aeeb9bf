package oracle

import "math"

// CountingWidth returns the counting register width t = ceil(log2(sqrt(N)+1)).
func CountingWidth(spaceSize int) int {
	return int(math.Ceil(math.Log2(math.Sqrt(float64(spaceSize)) + 1)))
}

// CorrectMSB flips the most significant bit of a width-bit outcome.
//
// The amplification block implements −G rather than G (the diffusion is
// H^n(−D)H^n). Only the 2^0 controlled block sees the extra −1, which
// shifts every eigenphase by one half and flips the top counting bit.
func CorrectMSB(y, width int) int {
	return y ^ (1 << (width - 1))
}

// CountingDistribution returns the corrected outcome distribution of phase
// counting for m marked elements out of spaceSize with a width-bit register.
//
// The uniform start state splits evenly over the two eigenvectors of −G, with
// eigenphases 1/2 ± θ/π (as fractions of a turn). Each eigenphase φ yields
// outcome y with the Fejér weight |Σ_k e^{2πik(φ−y/T)}|²/T², T = 2^t.
func CountingDistribution(spaceSize, m, width int) []float64 {
	size := 1 << width
	theta := Angle(spaceSize, m)
	phases := [2]float64{0.5 + theta/math.Pi, 0.5 - theta/math.Pi}

	raw := make([]float64, size)
	for y := 0; y < size; y++ {
		for _, phi := range phases {
			raw[y] += 0.5 * fejer(phi-float64(y)/float64(size), size)
		}
	}

	probs := make([]float64, size)
	total := 0.0
	for y, p := range raw {
		probs[CorrectMSB(y, width)] = p
		total += p
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}

// fejer returns |Σ_k e^{2πikδ}|²/T² in closed form, sin²(πTδ)/(T²·sin²(πδ)).
func fejer(delta float64, size int) float64 {
	s := math.Sin(math.Pi * delta)
	if math.Abs(s) < 1e-12 {
		return 1
	}
	n := float64(size)
	num := math.Sin(math.Pi * n * delta)
	return (num * num) / (n * n * s * s)
}
