// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"

	"github.com/BismarkCT/hermespy/pkg/model"
	"gonum.org/v1/gonum/mat"
)

// delayResolutionError bounds the tolerated mis-registration of a path delay
// on the sample grid under the nearest-sample policy
const delayResolutionError = 0.4

// MultipathFadingChannel is a time-variant stochastic fading channel with
// Rayleigh/Rice paths and uncorrelated scattering. The scattered component
// of each path follows Jakes' Doppler spectrum, synthesized as a sum of
// sinusoids with random phases. Antenna correlation follows the Kronecker
// model. Realizations in different drops are independent.
type MultipathFadingChannel struct {
	delays       []float64
	powerProfile []float64
	riceFactors  []float64

	// per-path specular/scattered amplitude split, derived from the rice factors
	losGains  []float64
	nlosGains []float64

	maxDelay            float64
	numSinusoids        int
	dopplerFrequency    float64
	losDopplerFrequency *float64
	losAngle            *float64
	interpolateSignals  bool
	gain                float64

	numTxAntennas int
	numRxAntennas int
	txPrecoding   *mat.CDense
	rxPostcoding  *mat.CDense

	// private random stream; every draw advances it, so reproducibility
	// requires reseeding before each call that should repeat
	rng *rand.Rand
}

// NewMultipathFadingChannel creates a fading channel from the per-path
// delay/power/rice-factor triples. Paths are sorted by ascending delay.
// The seed initializes the channel's private random stream.
func NewMultipathFadingChannel(delays, powerProfile, riceFactors []float64,
	numTxAntennas, numRxAntennas int, seed int64) (*MultipathFadingChannel, error) {

	if len(delays) != len(powerProfile) || len(powerProfile) != len(riceFactors) {
		return nil, fmt.Errorf("delays, power profile and rice factor vectors must be of equal length")
	}
	if len(delays) < 1 {
		return nil, fmt.Errorf("configuration must contain at least one delay tap")
	}
	if numTxAntennas < 1 || numRxAntennas < 1 {
		return nil, fmt.Errorf("antenna counts must be at least one")
	}
	for _, d := range delays {
		if d < 0 {
			return nil, fmt.Errorf("delays must be greater or equal to zero")
		}
	}
	for _, p := range powerProfile {
		if p < 0 {
			return nil, fmt.Errorf("power profile factors must be greater or equal to zero")
		}
	}
	for _, k := range riceFactors {
		if k < 0 {
			return nil, fmt.Errorf("rice factors must be greater or equal to zero")
		}
	}

	numPaths := len(delays)
	c := &MultipathFadingChannel{
		delays:        append([]float64(nil), delays...),
		powerProfile:  append([]float64(nil), powerProfile...),
		riceFactors:   append([]float64(nil), riceFactors...),
		numSinusoids:  20,
		gain:          1.0,
		numTxAntennas: numTxAntennas,
		numRxAntennas: numRxAntennas,
		rng:           rand.New(rand.NewSource(seed)),
	}

	order := make([]int, numPaths)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return delays[order[i]] < delays[order[j]] })
	for i, idx := range order {
		c.delays[i] = delays[idx]
		c.powerProfile[i] = powerProfile[idx]
		c.riceFactors[i] = riceFactors[idx]
	}

	c.maxDelay = c.delays[numPaths-1]
	c.losGains = make([]float64, numPaths)
	c.nlosGains = make([]float64, numPaths)
	for i, k := range c.riceFactors {
		if math.IsInf(k, 1) {
			c.losGains[i] = 1.0
			c.nlosGains[i] = 0.0
		} else {
			c.losGains[i] = math.Sqrt(k / (1 + k))
			c.nlosGains[i] = 1 / math.Sqrt(1+k)
		}
	}
	return c, nil
}

// NewMultipathFadingChannelFromModel creates a fading channel from its
// serialized configuration
func NewMultipathFadingChannelFromModel(cfg *model.ChannelModel, seed int64) (*MultipathFadingChannel, error) {
	c, err := NewMultipathFadingChannel(cfg.Delays, cfg.PowerProfile, cfg.RiceFactors,
		cfg.TxAntennas, cfg.RxAntennas, seed)
	if err != nil {
		return nil, err
	}
	if err := c.SetNumSinusoids(cfg.NumSinusoidsOrDefault()); err != nil {
		return nil, err
	}
	c.SetGain(cfg.GainOrDefault())
	c.SetDopplerFrequency(cfg.DopplerFrequency)
	c.SetLosDopplerFrequency(cfg.LosDopplerFrequency)
	c.SetLosAngle(cfg.LosAngle)
	c.SetInterpolateSignals(cfg.InterpolateSignals)
	return c, nil
}

// Delays returns the configured path delays in ascending order
func (c *MultipathFadingChannel) Delays() []float64 { return c.delays }

// PowerProfile returns the configured linear-scale path powers
func (c *MultipathFadingChannel) PowerProfile() []float64 { return c.powerProfile }

// RiceFactors returns the configured per-path rice factors
func (c *MultipathFadingChannel) RiceFactors() []float64 { return c.riceFactors }

// MaxDelay returns the largest configured path delay in seconds
func (c *MultipathFadingChannel) MaxDelay() float64 { return c.maxDelay }

// NumResolvablePaths returns the number of configured paths
func (c *MultipathFadingChannel) NumResolvablePaths() int { return len(c.delays) }

// NumSinusoids returns the number of sinusoids per scattered component
func (c *MultipathFadingChannel) NumSinusoids() int { return c.numSinusoids }

// SetNumSinusoids modifies the number of sinusoids per scattered component
func (c *MultipathFadingChannel) SetNumSinusoids(num int) error {
	if num < 0 {
		return fmt.Errorf("number of sinusoids must be greater or equal to zero")
	}
	c.numSinusoids = num
	return nil
}

// DopplerFrequency returns the maximum Doppler shift in Hz
func (c *MultipathFadingChannel) DopplerFrequency() float64 { return c.dopplerFrequency }

// SetDopplerFrequency modifies the maximum Doppler shift in Hz
func (c *MultipathFadingChannel) SetDopplerFrequency(frequency float64) {
	c.dopplerFrequency = frequency
}

// LosDopplerFrequency returns the Doppler shift of the specular component,
// falling back to the global Doppler frequency when not configured
func (c *MultipathFadingChannel) LosDopplerFrequency() float64 {
	if c.losDopplerFrequency == nil {
		return c.dopplerFrequency
	}
	return *c.losDopplerFrequency
}

// SetLosDopplerFrequency overrides the specular-component Doppler shift;
// nil restores the fallback to the global Doppler frequency
func (c *MultipathFadingChannel) SetLosDopplerFrequency(frequency *float64) {
	c.losDopplerFrequency = frequency
}

// LosAngle returns the configured specular angle of arrival, nil if the
// angle is drawn at random per realization
func (c *MultipathFadingChannel) LosAngle() *float64 { return c.losAngle }

// SetLosAngle fixes the specular angle of arrival; nil re-enables random draws
func (c *MultipathFadingChannel) SetLosAngle(angle *float64) { c.losAngle = angle }

// Gain returns the scalar channel power gain
func (c *MultipathFadingChannel) Gain() float64 { return c.gain }

// SetGain modifies the scalar channel power gain
func (c *MultipathFadingChannel) SetGain(gain float64) { c.gain = gain }

// InterpolateSignals reports whether delays are spread over the tap axis by
// the sinc interpolation filter instead of rounded to the nearest sample
func (c *MultipathFadingChannel) InterpolateSignals() bool { return c.interpolateSignals }

// SetInterpolateSignals selects the delay placement policy
func (c *MultipathFadingChannel) SetInterpolateSignals(interpolate bool) {
	c.interpolateSignals = interpolate
}

// Reseed resets the channel's private random stream. Fixing the seed before
// a call makes its realization reproducible.
func (c *MultipathFadingChannel) Reseed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// MinSamplingRate recommends a sampling rate keeping the nearest-sample
// policy's delay mis-registration below the resolution-error bound. It
// returns 0 (unconstrained) when interpolation is enabled or when path
// delays coincide.
//
// TODO: the bound behind this formula has not been verified; treat the
// recommendation as a heuristic, not a guarantee.
func (c *MultipathFadingChannel) MinSamplingRate() float64 {
	if c.interpolateSignals {
		return 0
	}
	minGap := math.Inf(1)
	for i := 1; i < len(c.delays); i++ {
		if gap := c.delays[i] - c.delays[i-1]; gap < minGap {
			minGap = gap
		}
	}
	if minGap == 0 || math.IsInf(minGap, 1) {
		return 0
	}
	return (1 - delayResolutionError) / minGap
}

// tap generates one fading gain sequence at the requested timestamps,
// implementing the sum-of-sinusoids Doppler spectrum for the scattered
// component plus the specular component. A path without any scattered
// component is deterministic and consumes no randomness, so a pure specular
// channel realizes identically regardless of the stream state.
func (c *MultipathFadingChannel) tap(timestamps []float64, losGain, nlosGain float64) []complex128 {
	gains := make([]complex128, len(timestamps))

	if nlosGain > 0 {
		nlosDoppler := c.dopplerFrequency
		angles := make([]float64, c.numSinusoids)
		phases := make([]float64, c.numSinusoids)
		for s := range angles {
			angles[s] = c.rng.Float64() * 2 * math.Pi
		}
		for s := range phases {
			phases[s] = c.rng.Float64() * 2 * math.Pi
		}
		for s := 0; s < c.numSinusoids; s++ {
			frequency := nlosDoppler * math.Cos((2*math.Pi*float64(s)+angles[s])/float64(c.numSinusoids))
			for i, t := range timestamps {
				gains[i] += cmplx.Exp(complex(0, frequency*t+phases[s]))
			}
		}
		// an empty sinusoid sum leaves the scattered component silent
		if c.numSinusoids > 0 {
			scale := complex(nlosGain/math.Sqrt(float64(c.numSinusoids)), 0)
			for i := range gains {
				gains[i] *= scale
			}
		}

		losAngle := 0.0
		if c.losAngle != nil {
			losAngle = *c.losAngle
		} else {
			losAngle = c.rng.Float64() * 2 * math.Pi
		}
		losPhase := c.rng.Float64() * 2 * math.Pi
		if losGain > 0 {
			losDoppler := c.LosDopplerFrequency()
			for i, t := range timestamps {
				gains[i] += complex(losGain, 0) * cmplx.Exp(complex(0, losDoppler*t*math.Cos(losAngle)+losPhase))
			}
		}
		return gains
	}

	// pure specular path: unit magnitude, deterministic phase ramp
	losAngle := 0.0
	if c.losAngle != nil {
		losAngle = *c.losAngle
	}
	losDoppler := c.LosDopplerFrequency()
	for i, t := range timestamps {
		gains[i] = complex(losGain, 0) * cmplx.Exp(complex(0, losDoppler*t*math.Cos(losAngle)))
	}
	return gains
}

// ImpulseResponse synthesizes the channel state tensor at the requested
// timestamps. Each path's gain sequence is scaled by the square root of its
// profile power and deposited on the delay-tap axis, either at the nearest
// sample or spread by the interpolation filter. Repeated calls draw
// independent realizations.
func (c *MultipathFadingChannel) ImpulseResponse(timestamps []float64, samplingRate float64) (*ImpulseResponse, error) {
	if samplingRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %v", samplingRate)
	}
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("at least one timestamp is required")
	}

	maxDelayInSamples := int(c.maxDelay * samplingRate)
	h := newImpulseResponse(len(timestamps), c.numRxAntennas, c.numTxAntennas, maxDelayInSamples+1)

	var filter *mat.Dense
	if c.interpolateSignals {
		filter = c.interpolationFilter(samplingRate)
	}

	for pathIdx := range c.delays {
		weight := complex(math.Sqrt(c.powerProfile[pathIdx]), 0)
		for rx := 0; rx < c.numRxAntennas; rx++ {
			for tx := 0; tx < c.numTxAntennas; tx++ {
				gains := c.tap(timestamps, c.losGains[pathIdx], c.nlosGains[pathIdx])

				if filter != nil {
					for n, g := range gains {
						g *= weight
						for tap := 0; tap <= maxDelayInSamples; tap++ {
							h.add(n, rx, tx, tap, g*complex(filter.At(pathIdx, tap), 0))
						}
					}
				} else {
					delayIdx := int(c.delays[pathIdx] * samplingRate)
					for n, g := range gains {
						h.add(n, rx, tx, delayIdx, g*weight)
					}
				}
			}
		}
	}

	h.scale(complex(c.gain, 0))
	c.applyCorrelation(h)
	return h, nil
}

// SisoImpulseResponse returns the time-by-delay gain matrix of the first
// antenna pair, the common channel-state query for single-antenna links
func (c *MultipathFadingChannel) SisoImpulseResponse(timestamps []float64, samplingRate float64) (*mat.CDense, error) {
	h, err := c.ImpulseResponse(timestamps, samplingRate)
	if err != nil {
		return nil, err
	}
	return h.PathGains(0, 0), nil
}

// Propagate runs the transmit signal through a fresh channel realization
func (c *MultipathFadingChannel) Propagate(txSignal [][]complex128, samplingRate float64) ([][]complex128, *ImpulseResponse, error) {
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
