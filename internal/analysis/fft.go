package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data by radix-2
// Cooley-Tukey recursion. The input length must be a power of two; use
// TruncatePow2 to trim arbitrary series first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the first half of the
// transform, one entry per frequency bin.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// TruncatePow2 trims data to the largest power-of-two prefix.
func TruncatePow2(data []float64) []float64 {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	return data[:n]
}

// DominantFrequency locates the strongest non-DC bin of the power
// spectrum of data sampled at interval dt and returns its frequency in
// Hz along with the bin magnitude. Returns 0, 0 when the series is too
// short to resolve anything.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	data = TruncatePow2(data)
	if len(data) < 4 || dt <= 0 {
		return 0, 0
	}

	ps := PowerSpectrum(data)

	best, bestMag := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 {
		return 0, 0
	}

	freq := float64(best) / (float64(len(data)) * dt)
	return freq, bestMag
}
