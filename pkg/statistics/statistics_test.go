// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package statistics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKolmogorovSmirnov(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	samples := make([]float64, 2000)
	for i := range samples {
		samples[i] = rng.NormFloat64()
	}

	_, pValue := KolmogorovSmirnov(samples, NormalCDF(0, 1))
	assert.Greater(t, pValue, 0.05)

	// a unit mean shift is far outside the sampling noise of 2000 draws
	_, pValue = KolmogorovSmirnov(samples, NormalCDF(1, 1))
	assert.Less(t, pValue, 0.001)

	_, pValue = KolmogorovSmirnov(nil, NormalCDF(0, 1))
	assert.Equal(t, 1.0, pValue)
}

func TestMarcumQ(t *testing.T) {
	assert.Equal(t, 1.0, MarcumQ(2, 0, 1))

	// Q_1(0, b) collapses to exp(-b^2/2)
	assert.InDelta(t, math.Exp(-2), MarcumQ(0, 2, 1), 1e-12)

	assert.Greater(t, MarcumQ(1, 0.5, 1), MarcumQ(1, 1.5, 1))
	assert.InDelta(t, 0.0, MarcumQ(1, 50, 1), 1e-9)
}

func TestRiceCDF(t *testing.T) {
	cdf := RiceCDF(math.Sqrt2*0.5, 0.5)

	assert.Equal(t, 0.0, cdf(0))
	assert.Equal(t, 0.0, cdf(-1))
	assert.InDelta(t, 1.0, cdf(10), 1e-9)

	mid := cdf(0.8)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
	assert.Greater(t, cdf(1.2), mid)
}

func TestDecorrelationInterval(t *testing.T) {
	// first zero of J0 sits at the dimensionless lag 2.404825...
	interval, err := DecorrelationInterval(200)
	assert.NoError(t, err)
	assert.InDelta(t, 2.404825557695773/200, interval, 1e-8)

	// the zero scales inversely with the Doppler frequency
	slower, err := DecorrelationInterval(50)
	assert.NoError(t, err)
	assert.InDelta(t, 4*interval, slower, 1e-8)

	_, err = DecorrelationInterval(0)
	assert.Error(t, err)
}

func TestRmsDelaySpread(t *testing.T) {
	powers := []float64{1, 0, 0, 0.5, 0.25}
	shifted := append(make([]float64, 3), powers...)

	// shifting the whole profile leaves the spread untouched
	assert.InDelta(t, RmsDelaySpread(powers, 1e6), RmsDelaySpread(shifted, 1e6), 1e-12)

	assert.Equal(t, 0.0, RmsDelaySpread([]float64{0, 1, 0}, 1e6))
	assert.Equal(t, 0.0, RmsDelaySpread(nil, 1e6))
}

func TestCrossCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{-1, -2, -3, -4, -5}

	assert.InDelta(t, 1.0, CrossCorrelation(x, x), 1e-12)
	assert.InDelta(t, -1.0, CrossCorrelation(x, y), 1e-12)
}

func TestMeanPower(t *testing.T) {
	samples := []complex128{1, 1i, complex(1, 1)}
	assert.InDelta(t, 4.0/3.0, MeanPower(samples), 1e-12)
	assert.Equal(t, 0.0, MeanPower(nil))
}
