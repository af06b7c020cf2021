// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0
//

package utils

import "math"

// SpeedOfLight - propagation speed used for range/delay conversions, in m/s
const SpeedOfLight = 2.99792458e8

// DbToLin converts a power ratio from dB to linear scale
func DbToLin(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinToDb converts a power ratio from linear scale to dB
func LinToDb(lin float64) float64 {
	return 10 * math.Log10(lin)
}

// DbToLinAmplitude converts an amplitude ratio from dB to linear scale
func DbToLinAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinToDbAmplitude converts an amplitude ratio from linear scale to dB
func LinToDbAmplitude(lin float64) float64 {
	return 20 * math.Log10(lin)
}

// DbToLinSlice converts a whole power profile from dB to linear scale
func DbToLinSlice(db []float64) []float64 {
	lin := make([]float64, len(db))
	for i, v := range db {
		lin[i] = DbToLin(v)
	}
	return lin
}

// LinToDbSlice converts a whole power profile from linear scale to dB
func LinToDbSlice(lin []float64) []float64 {
	db := make([]float64, len(lin))
	for i, v := range lin {
		db[i] = LinToDb(v)
	}
	return db
}

// SampleTimes returns the timestamp grid n/samplingRate for n = 0..numSamples-1
func SampleTimes(numSamples int, samplingRate float64) []float64 {
	timestamps := make([]float64, numSamples)
	for n := range timestamps {
		timestamps[n] = float64(n) / samplingRate
	}
	return timestamps
}

// SpacedTimes returns numSamples timestamps spaced by interval seconds
func SpacedTimes(numSamples int, interval float64) []float64 {
	timestamps := make([]float64, numSamples)
	for n := range timestamps {
		timestamps[n] = float64(n) * interval
	}
	return timestamps
}
