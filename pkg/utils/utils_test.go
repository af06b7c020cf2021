// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0
//

package utils

import (
	"math"
	"testing"

	"gotest.tools/assert"
)

const tolerance = 1e-12

func TestDbToLin(t *testing.T) {
	assert.Assert(t, math.Abs(DbToLin(0)-1.0) < tolerance)
	assert.Assert(t, math.Abs(DbToLin(10)-10.0) < tolerance)
	assert.Assert(t, math.Abs(DbToLin(-3)-0.5011872336272722) < tolerance)
}

func TestLinToDbRoundTrip(t *testing.T) {
	for _, db := range []float64{-20, -3, 0, 3, 10, 17.5} {
		assert.Assert(t, math.Abs(LinToDb(DbToLin(db))-db) < 1e-9)
		assert.Assert(t, math.Abs(LinToDbAmplitude(DbToLinAmplitude(db))-db) < 1e-9)
	}
}

func TestAmplitudeConversion(t *testing.T) {
	// 6 dB is a factor of two in amplitude, four in power
	assert.Assert(t, math.Abs(DbToLinAmplitude(6.0205999132796)-2.0) < 1e-9)
	assert.Assert(t, math.Abs(DbToLin(6.0205999132796)-4.0) < 1e-9)
}

func TestDbToLinSlice(t *testing.T) {
	lin := DbToLinSlice([]float64{0, 10, 20})
	assert.Equal(t, 3, len(lin))
	assert.Assert(t, math.Abs(lin[0]-1) < tolerance)
	assert.Assert(t, math.Abs(lin[1]-10) < tolerance)
	assert.Assert(t, math.Abs(lin[2]-100) < tolerance)

	db := LinToDbSlice(lin)
	for i, want := range []float64{0, 10, 20} {
		assert.Assert(t, math.Abs(db[i]-want) < 1e-9)
	}
}

func TestSampleTimes(t *testing.T) {
	timestamps := SampleTimes(4, 1e6)
	assert.Equal(t, 4, len(timestamps))
	assert.Equal(t, 0.0, timestamps[0])
	assert.Assert(t, math.Abs(timestamps[3]-3e-6) < tolerance)

	spaced := SpacedTimes(3, 0.5)
	assert.Equal(t, 1.0, spaced[2])
}
