// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel(t *testing.T) {
	model := &Model{}
	err := LoadConfig(model, "test")
	assert.NoError(t, err)
	t.Log(model)
	assert.Equal(t, int64(42), model.Seed)
	assert.Equal(t, 10, model.NumDrops)
	assert.Equal(t, 1e6, model.SamplingRate)
	assert.Equal(t, 3, len(model.Channels))

	multipath, err := model.GetChannel("cost259-tux")
	assert.NoError(t, err)
	assert.Equal(t, ChannelTypeMultipath, multipath.Type)
	assert.Equal(t, 3, len(multipath.Delays))
	assert.Equal(t, 20, multipath.NumSinusoidsOrDefault())
	assert.Equal(t, 1.0, multipath.GainOrDefault())
	assert.Equal(t, 200.0, multipath.DopplerFrequency)

	// powerProfile is configured in dB, derived to linear post-load
	assert.InDelta(t, 1.0, multipath.PowerProfile[0], 1e-9)
	assert.InDelta(t, 0.501187, multipath.PowerProfile[1], 1e-6)
	assert.InDelta(t, 0.125893, multipath.PowerProfile[2], 1e-6)

	specular, err := model.GetChannel("specular")
	assert.NoError(t, err)
	assert.True(t, math.IsInf(specular.RiceFactors[0], 1))
	assert.Equal(t, 2.0, specular.GainOrDefault())
	assert.Equal(t, 20, specular.NumSinusoidsOrDefault())

	radar, err := model.GetChannel("surveillance")
	assert.NoError(t, err)
	assert.Equal(t, ChannelTypeRadar, radar.Type)
	assert.Equal(t, 1500.0, radar.Radar.TargetRange)
	assert.Equal(t, 9e9, radar.Radar.CarrierFrequency)

	_, err = model.GetChannel("missing")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	model := &Model{}
	err := LoadConfigFile(model, "test.yaml")
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	err = SaveConfig(model, path)
	assert.NoError(t, err)

	restored := &Model{}
	err = LoadConfigFile(restored, path)
	assert.NoError(t, err)

	original := model.Channels["cost259-tux"]
	reloaded := restored.Channels["cost259-tux"]
	assert.Equal(t, len(original.PowerProfile), len(reloaded.PowerProfile))
	for i := range original.PowerProfile {
		assert.InDelta(t, original.PowerProfile[i], reloaded.PowerProfile[i], 1e-9)
		assert.InDelta(t, original.PowerProfileDb[i], reloaded.PowerProfileDb[i], 1e-9)
	}
	assert.Equal(t, original.Delays, reloaded.Delays)
	assert.Equal(t, original.RiceFactors, reloaded.RiceFactors)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
