// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"gonum.org/v1/gonum/mat"
)

// ImpulseResponse is one channel realization, indexed by
// (time sample, rx antenna, tx antenna, delay tap). Instances are produced
// fresh per query and never mutated after being handed to the caller.
type ImpulseResponse struct {
	numSamples int
	numRx      int
	numTx      int
	numTaps    int
	data       []complex128
}

func newImpulseResponse(numSamples, numRx, numTx, numTaps int) *ImpulseResponse {
	return &ImpulseResponse{
		numSamples: numSamples,
		numRx:      numRx,
		numTx:      numTx,
		numTaps:    numTaps,
		data:       make([]complex128, numSamples*numRx*numTx*numTaps),
	}
}

// Dims returns the tensor extents (samples, rx antennas, tx antennas, delay taps)
func (h *ImpulseResponse) Dims() (numSamples, numRx, numTx, numTaps int) {
	return h.numSamples, h.numRx, h.numTx, h.numTaps
}

func (h *ImpulseResponse) index(n, rx, tx, tap int) int {
	return ((n*h.numRx+rx)*h.numTx+tx)*h.numTaps + tap
}

// At returns the complex gain at (time sample, rx antenna, tx antenna, delay tap)
func (h *ImpulseResponse) At(n, rx, tx, tap int) complex128 {
	return h.data[h.index(n, rx, tx, tap)]
}

func (h *ImpulseResponse) set(n, rx, tx, tap int, v complex128) {
	h.data[h.index(n, rx, tx, tap)] = v
}

func (h *ImpulseResponse) add(n, rx, tx, tap int, v complex128) {
	h.data[h.index(n, rx, tx, tap)] += v
}

// scale multiplies every tensor entry by g
func (h *ImpulseResponse) scale(g complex128) {
	if g == 1 {
		return
	}
	for i := range h.data {
		h.data[i] *= g
	}
}

// PathGains extracts the time-by-delay gain matrix of one antenna pair
func (h *ImpulseResponse) PathGains(rx, tx int) *mat.CDense {
	gains := mat.NewCDense(h.numSamples, h.numTaps, nil)
	for n := 0; n < h.numSamples; n++ {
		for tap := 0; tap < h.numTaps; tap++ {
			gains.Set(n, tap, h.At(n, rx, tx, tap))
		}
	}
	return gains
}

// antennaGains extracts the rx-by-tx gain matrix at one time/delay instant
func (h *ImpulseResponse) antennaGains(n, tap int) *mat.CDense {
	gains := mat.NewCDense(h.numRx, h.numTx, nil)
	for rx := 0; rx < h.numRx; rx++ {
		for tx := 0; tx < h.numTx; tx++ {
			gains.Set(rx, tx, h.At(n, rx, tx, tap))
		}
	}
	return gains
}

func (h *ImpulseResponse) setAntennaGains(n, tap int, gains *mat.CDense) {
	for rx := 0; rx < h.numRx; rx++ {
		for tx := 0; tx < h.numTx; tx++ {
			h.set(n, rx, tx, tap, gains.At(rx, tx))
		}
	}
}

// Apply convolves a transmit signal with the response. The receive stream at
// antenna r is the sum over transmit antennas t of the time-variant
// convolution of stream t with the (r, t) tap gains; linear convolution, so
// the output is numSamples + numTaps - 1 long.
func (h *ImpulseResponse) Apply(txSignal [][]complex128) [][]complex128 {
	rxSignal := make([][]complex128, h.numRx)
	for rx := range rxSignal {
		rxSignal[rx] = make([]complex128, h.numSamples+h.numTaps-1)
	}
	for rx := 0; rx < h.numRx; rx++ {
		for tx := 0; tx < h.numTx; tx++ {
			for n := 0; n < h.numSamples; n++ {
				x := txSignal[tx][n]
				if x == 0 {
					continue
				}
				base := h.index(n, rx, tx, 0)
				for tap := 0; tap < h.numTaps; tap++ {
					rxSignal[rx][n+tap] += h.data[base+tap] * x
				}
			}
		}
	}
	return rxSignal
}
