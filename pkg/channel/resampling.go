// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// sinc is the normalized cardinal sine sin(pi*x)/(pi*x)
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// DelayResamplingMatrix builds the sinc matrix mapping numSamplesIn input
// samples, shifted by a continuous delay, onto numSamplesOut output samples
// of the samplingRate grid. Entry (k, n) is the cardinal sine evaluated at
// the fractional offset between output instant k and delayed input instant n.
func DelayResamplingMatrix(samplingRate float64, numSamplesIn int, delay float64, numSamplesOut int) *mat.Dense {
	filter := mat.NewDense(numSamplesOut, numSamplesIn, nil)
	for k := 0; k < numSamplesOut; k++ {
		for n := 0; n < numSamplesIn; n++ {
			offset := (float64(k)-float64(n))/samplingRate - delay
			filter.Set(k, n, sinc(offset*samplingRate))
		}
	}
	return filter
}

// interpolationFilter builds one normalized resampling filter row per
// resolvable path, spanning the full delay-tap axis. Each row spreads a
// path's gain across all taps instead of rounding its delay to the grid.
func (c *MultipathFadingChannel) interpolationFilter(samplingRate float64) *mat.Dense {
	numTaps := int(c.maxDelay*samplingRate) + 1
	filter := mat.NewDense(len(c.delays), numTaps, nil)

	for pathIdx, delay := range c.delays {
		resampling := DelayResamplingMatrix(samplingRate, 1, delay, numTaps)
		norm := mat.Norm(resampling, 2)
		for tap := 0; tap < numTaps; tap++ {
			filter.Set(pathIdx, tap, resampling.At(tap, 0)/norm)
		}
	}
	return filter
}
