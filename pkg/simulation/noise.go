// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"math"
	"math/rand"
)

// Awgn adds white Gaussian noise to a multi-stream signal at the given
// signal-to-noise ratio. The noise power is calibrated against the measured
// mean power of the input, so a silent signal passes through untouched.
func Awgn(signal [][]complex128, snrDb float64, rng *rand.Rand) [][]complex128 {
	power := 0.0
	numSamples := 0
	for _, stream := range signal {
		for _, s := range stream {
			power += real(s)*real(s) + imag(s)*imag(s)
		}
		numSamples += len(stream)
	}
	if numSamples == 0 || power == 0 {
		return signal
	}
	power /= float64(numSamples)

	// per-component deviation of circularly symmetric noise
	sigma := math.Sqrt(power / (2 * math.Pow(10, snrDb/10)))

	noisy := make([][]complex128, len(signal))
	for a, stream := range signal {
		noisy[a] = make([]complex128, len(stream))
		for n, s := range stream {
			noisy[a][n] = s + complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())
		}
	}
	return noisy
}
