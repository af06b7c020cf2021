// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/BismarkCT/hermespy/pkg/model"
	"github.com/BismarkCT/hermespy/pkg/utils"
)

// RadarChannel models the monostatic echo of a single point target: a
// two-way range delay, a Doppler shift from the radial velocity and an
// amplitude from the target cross-section. Without a target the channel is
// silent. It implements the same contract as the fading channel so radar
// and communication links run through one propagation path.
type RadarChannel struct {
	targetExists     bool
	targetRange      float64
	targetVelocity   float64
	carrierFrequency float64
	crossSection     float64
	gain             float64
	numTxAntennas    int
	numRxAntennas    int
}

// NewRadarChannel creates a single-target radar channel. The cross-section
// is a linear power gain; range is in meters, velocity in m/s (positive
// moving away), carrier frequency in Hz.
func NewRadarChannel(targetRange, targetVelocity, carrierFrequency, crossSection float64,
	numTxAntennas, numRxAntennas int) (*RadarChannel, error) {

	if targetRange < 0 {
		return nil, fmt.Errorf("target range must be greater or equal to zero")
	}
	if carrierFrequency <= 0 {
		return nil, fmt.Errorf("carrier frequency must be positive")
	}
	if crossSection < 0 {
		return nil, fmt.Errorf("cross section must be greater or equal to zero")
	}
	if numTxAntennas < 1 || numRxAntennas < 1 {
		return nil, fmt.Errorf("antenna counts must be at least one")
	}
	return &RadarChannel{
		targetExists:     true,
		targetRange:      targetRange,
		targetVelocity:   targetVelocity,
		carrierFrequency: carrierFrequency,
		crossSection:     crossSection,
		gain:             1.0,
		numTxAntennas:    numTxAntennas,
		numRxAntennas:    numRxAntennas,
	}, nil
}

// NewRadarChannelFromModel creates a radar channel from its serialized
// configuration. A configuration without a target yields a silent channel.
func NewRadarChannelFromModel(cfg *model.ChannelModel) (*RadarChannel, error) {
	if !cfg.Radar.TargetExists {
		if cfg.TxAntennas < 1 || cfg.RxAntennas < 1 {
			return nil, fmt.Errorf("antenna counts must be at least one")
		}
		return &RadarChannel{
			gain:          cfg.GainOrDefault(),
			numTxAntennas: cfg.TxAntennas,
			numRxAntennas: cfg.RxAntennas,
		}, nil
	}
	c, err := NewRadarChannel(cfg.Radar.TargetRange, cfg.Radar.TargetVelocity,
		cfg.Radar.CarrierFrequency, utils.DbToLin(cfg.Radar.CrossSectionDb),
		cfg.TxAntennas, cfg.RxAntennas)
	if err != nil {
		return nil, err
	}
	c.gain = cfg.GainOrDefault()
	return c, nil
}

// SetGain modifies the scalar channel power gain
func (c *RadarChannel) SetGain(gain float64) { c.gain = gain }

// Delay returns the two-way propagation delay to the target in seconds
func (c *RadarChannel) Delay() float64 {
	return 2 * c.targetRange / utils.SpeedOfLight
}

// DopplerShift returns the two-way Doppler shift of the echo in Hz
func (c *RadarChannel) DopplerShift() float64 {
	return -2 * c.targetVelocity * c.carrierFrequency / utils.SpeedOfLight
}

// ImpulseResponse places the target echo at its delay tap with a
// time-varying Doppler phase ramp. Without a target the response is zero.
func (c *RadarChannel) ImpulseResponse(timestamps []float64, samplingRate float64) (*ImpulseResponse, error) {
	if samplingRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %v", samplingRate)
	}
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("at least one timestamp is required")
	}
	if !c.targetExists {
		return newImpulseResponse(len(timestamps), c.numRxAntennas, c.numTxAntennas, 1), nil
	}

	delayIdx := int(c.Delay() * samplingRate)
	h := newImpulseResponse(len(timestamps), c.numRxAntennas, c.numTxAntennas, delayIdx+1)

	amplitude := complex(c.gain*math.Sqrt(c.crossSection), 0)
	doppler := c.DopplerShift()
	for n, t := range timestamps {
		echo := amplitude * cmplx.Exp(complex(0, 2*math.Pi*doppler*t))
		for rx := 0; rx < c.numRxAntennas; rx++ {
			for tx := 0; tx < c.numTxAntennas; tx++ {
				h.set(n, rx, tx, delayIdx, echo)
			}
		}
	}
	return h, nil
}

// Propagate runs the transmit signal through the target echo
func (c *RadarChannel) Propagate(txSignal [][]complex128, samplingRate float64) ([][]complex128, *ImpulseResponse, error) {
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
