// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package statistics provides the distribution checks backing the channel
// model's statistical contracts: Kolmogorov-Smirnov normality tests, a
// Rice goodness-of-fit built on the Marcum-Q function and delay-spread
// metrics.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/davidkleiven/gononlin/nonlin"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"
)

// KolmogorovSmirnov runs a one-sample KS test of the samples against the
// given cumulative distribution function, returning the KS statistic and the
// asymptotic p-value
func KolmogorovSmirnov(samples []float64, cdf func(float64) float64) (statistic, pValue float64) {
	n := len(samples)
	if n == 0 {
		return 0, 1
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	for i, x := range sorted {
		f := cdf(x)
		if d := float64(i+1)/float64(n) - f; d > statistic {
			statistic = d
		}
		if d := f - float64(i)/float64(n); d > statistic {
			statistic = d
		}
	}

	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * statistic
	return statistic, ksProbability(lambda)
}

// ksProbability is the asymptotic Kolmogorov distribution tail
func ksProbability(lambda float64) float64 {
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-12 {
			break
		}
	}
	return math.Max(0, math.Min(1, 2*sum))
}

// NormalCDF returns the cumulative distribution function of a Gaussian with
// the given mean and standard deviation
func NormalCDF(mean, stddev float64) func(float64) float64 {
	return func(x float64) float64 {
		return 0.5 * math.Erfc(-(x-mean)/(stddev*math.Sqrt2))
	}
}

// RiceCDF returns the cumulative distribution function of a Rice
// distribution with non-centrality nu and scale sigma
func RiceCDF(nu, sigma float64) func(float64) float64 {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return 1 - MarcumQ(nu/sigma, x/sigma, 1)
	}
}

// MarcumQ computes the generalized Marcum-Q function Q_m(a, b) through its
// relationship with the noncentral chi-squared survival function: a Poisson
// mixture of regularized upper incomplete gamma terms.
func MarcumQ(a, b, m float64) float64 {
	if b <= 0 {
		return 1
	}
	lambda := a * a / 2
	halfB2 := b * b / 2

	weight := math.Exp(-lambda)
	q := 0.0
	accumulated := 0.0
	for j := 0; j < 10000; j++ {
		if j > 0 {
			weight *= lambda / float64(j)
		}
		q += weight * mathext.GammaIncRegComp(m+float64(j), halfB2)
		accumulated += weight
		if accumulated > 1-1e-14 {
			break
		}
	}
	return math.Max(0, math.Min(1, q))
}

// CrossCorrelation returns the sample Pearson correlation of two sequences
func CrossCorrelation(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}

// MeanPower returns the average squared magnitude of a complex sequence
func MeanPower(samples []complex128) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += real(s)*real(s) + imag(s)*imag(s)
	}
	return sum / float64(len(samples))
}

// RmsDelaySpread computes the root-mean-square delay spread of a power
// delay profile whose taps sit on the samplingRate grid
func RmsDelaySpread(tapPowers []float64, samplingRate float64) float64 {
	totalPower := 0.0
	meanDelay := 0.0
	for tap, p := range tapPowers {
		delay := float64(tap) / samplingRate
		totalPower += p
		meanDelay += p * delay
	}
	if totalPower == 0 {
		return 0
	}
	meanDelay /= totalPower

	spread := 0.0
	for tap, p := range tapPowers {
		delay := float64(tap) / samplingRate
		spread += p * (delay - meanDelay) * (delay - meanDelay)
	}
	return math.Sqrt(spread / totalPower)
}

// DecorrelationInterval locates the first zero of the fading autocorrelation
// J0(fd*tau), the sample spacing at which a faded path decorrelates. The
// search runs on the dimensionless lag u = fd*tau so the solver tuning does
// not depend on the Doppler frequency.
func DecorrelationInterval(dopplerFrequency float64) (float64, error) {
	if dopplerFrequency <= 0 {
		return 0, fmt.Errorf("doppler frequency must be positive, got %v", dopplerFrequency)
	}

	problem := nonlin.Problem{
		F: func(out, x []float64) {
			out[0] = math.J0(x[0])
		},
	}
	solver := nonlin.NewtonKrylov{
		// Maximum number of Newton iterations
		Maxiter: 1000,

		// Stepsize used to approximate jacobian with finite differences
		StepSize: 1e-2,

		// Tolerance for the solution
		Tol: 1e-7,
	}

	res, err := solver.Solve(problem, []float64{2.4})
	if err != nil {
		return 0, fmt.Errorf("decorrelation interval search failed for %v Hz: %w", dopplerFrequency, err)
	}
	if !res.Converged {
		return 0, fmt.Errorf("decorrelation interval search did not converge for %v Hz", dopplerFrequency)
	}
	return res.X[0] / dopplerFrequency, nil
}
