// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package channel implements the stochastic propagation channels linking
// simulated transceivers: a sum-of-sinusoids multipath fading model, a
// single-target radar model and an ideal pass-through baseline, all behind
// one impulse-response/propagate contract.
package channel

import (
	"fmt"

	"github.com/BismarkCT/hermespy/pkg/model"
)

// Channel is the contract shared by all channel flavors. An impulse response
// describes the channel state over the requested time window; Propagate runs
// an input signal through that state.
type Channel interface {
	// ImpulseResponse samples the channel state at the given timestamps,
	// with delays resolved on the samplingRate grid.
	ImpulseResponse(timestamps []float64, samplingRate float64) (*ImpulseResponse, error)

	// Propagate convolves the per-transmit-antenna input signal with a fresh
	// channel realization and returns the received signal together with the
	// channel state that produced it.
	Propagate(txSignal [][]complex128, samplingRate float64) ([][]complex128, *ImpulseResponse, error)
}

// FromModel builds a channel instance from its serialized configuration.
// The seed feeds the channel's private random stream.
func FromModel(cfg *model.ChannelModel, seed int64) (Channel, error) {
	switch cfg.Type {
	case model.ChannelTypeMultipath:
		return NewMultipathFadingChannelFromModel(cfg, seed)
	case model.ChannelTypeRadar:
		return NewRadarChannelFromModel(cfg)
	case model.ChannelTypeIdeal:
		return NewIdealChannel(cfg.TxAntennas, cfg.RxAntennas, cfg.GainOrDefault())
	default:
		return nil, fmt.Errorf("unknown channel type %q", cfg.Type)
	}
}

// IdealChannel passes each transmit antenna straight through to the matching
// receive antenna with a scalar gain. It serves as the validation baseline.
type IdealChannel struct {
	numTxAntennas int
	numRxAntennas int
	gain          float64
}

// NewIdealChannel creates an ideal pass-through channel
func NewIdealChannel(numTxAntennas, numRxAntennas int, gain float64) (*IdealChannel, error) {
	if numTxAntennas < 1 || numRxAntennas < 1 {
		return nil, fmt.Errorf("antenna counts must be at least one")
	}
	return &IdealChannel{numTxAntennas: numTxAntennas, numRxAntennas: numRxAntennas, gain: gain}, nil
}

// ImpulseResponse returns a single-tap identity response scaled by the gain
func (c *IdealChannel) ImpulseResponse(timestamps []float64, samplingRate float64) (*ImpulseResponse, error) {
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("at least one timestamp is required")
	}
	h := newImpulseResponse(len(timestamps), c.numRxAntennas, c.numTxAntennas, 1)
	for n := range timestamps {
		for a := 0; a < c.numRxAntennas && a < c.numTxAntennas; a++ {
			h.set(n, a, a, 0, complex(c.gain, 0))
		}
	}
	return h, nil
}

// Propagate applies the identity response to the input signal
func (c *IdealChannel) Propagate(txSignal [][]complex128, samplingRate float64) ([][]complex128, *ImpulseResponse, error) {
	timestamps, err := propagationTimestamps(txSignal, c.numTxAntennas, samplingRate)
	if err != nil {
		return nil, nil, err
	}
	h, err := c.ImpulseResponse(timestamps, samplingRate)
	if err != nil {
		return nil, nil, err
	}
	return h.Apply(txSignal), h, nil
}

// propagationTimestamps validates a transmit signal against the configured
// antenna count and derives the sample-time grid from its length.
func propagationTimestamps(txSignal [][]complex128, numTxAntennas int, samplingRate float64) ([]float64, error) {
	if samplingRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %v", samplingRate)
	}
	if len(txSignal) != numTxAntennas {
		return nil, fmt.Errorf("transmit signal has %d stream(s), channel expects %d", len(txSignal), numTxAntennas)
	}
	numSamples := len(txSignal[0])
	if numSamples == 0 {
		return nil, fmt.Errorf("transmit signal is empty")
	}
	for a, stream := range txSignal {
		if len(stream) != numSamples {
			return nil, fmt.Errorf("transmit stream %d has %d samples, expected %d", a, len(stream), numSamples)
		}
	}
	timestamps := make([]float64, numSamples)
	for n := range timestamps {
		timestamps[n] = float64(n) / samplingRate
	}
	return timestamps, nil
}
