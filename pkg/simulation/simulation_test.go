// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/BismarkCT/hermespy/pkg/model"
	"github.com/BismarkCT/hermespy/pkg/statistics"
	"github.com/stretchr/testify/assert"
)

func testScenario() *model.Model {
	return &model.Model{
		Name:         "test",
		Seed:         5,
		NumDrops:     4,
		NumSamples:   64,
		SamplingRate: 1e6,
		Channels: map[string]model.ChannelModel{
			"fading": {
				Type:             model.ChannelTypeMultipath,
				Active:           true,
				TxAntennas:       1,
				RxAntennas:       1,
				Delays:           []float64{0},
				PowerProfile:     []float64{1},
				RiceFactors:      []float64{0},
				DopplerFrequency: 200,
			},
			"ignored": {
				Type:   model.ChannelTypeIdeal,
				Active: false,
			},
		},
	}
}

func TestCampaignRun(t *testing.T) {
	result, err := NewCampaign(testScenario()).Run()
	assert.NoError(t, err)

	assert.Equal(t, "test", result.Scenario)
	assert.Len(t, result.Channels, 1)
	assert.Equal(t, "fading", result.Channels[0].Name)
	assert.Len(t, result.Channels[0].Drops, 4)
	for _, d := range result.Channels[0].Drops {
		assert.NotEmpty(t, d.ID)
	}
}

func TestCampaignReproducibility(t *testing.T) {
	first, err := NewCampaign(testScenario()).Run()
	assert.NoError(t, err)
	second, err := NewCampaign(testScenario()).Run()
	assert.NoError(t, err)

	// drop identifiers are fresh per run, received powers are not
	for i := range first.Channels[0].Drops {
		assert.Equal(t, first.Channels[0].Drops[i].Seed, second.Channels[0].Drops[i].Seed)
		assert.Equal(t, first.Channels[0].Drops[i].RxPowerDb, second.Channels[0].Drops[i].RxPowerDb)
	}
	assert.Equal(t, first.Channels[0].MeanRxPowerDb, second.Channels[0].MeanRxPowerDb)
}

func TestCampaignIdealChannelPower(t *testing.T) {
	scenario := testScenario()
	scenario.Channels = map[string]model.ChannelModel{
		"ideal": {
			Type:       model.ChannelTypeIdeal,
			Active:     true,
			TxAntennas: 1,
			RxAntennas: 1,
		},
	}
	result, err := NewCampaign(scenario).Run()
	assert.NoError(t, err)

	// the unit-power pilot passes through unscaled
	assert.InDelta(t, 0.0, result.Channels[0].MeanRxPowerDb, 1e-9)
}

func TestCampaignValidation(t *testing.T) {
	scenario := testScenario()
	scenario.NumDrops = 0
	_, err := NewCampaign(scenario).Run()
	assert.Error(t, err)

	scenario = testScenario()
	scenario.NumSamples = 0
	_, err = NewCampaign(scenario).Run()
	assert.Error(t, err)

	scenario = testScenario()
	broken := scenario.Channels["fading"]
	broken.Delays = nil
	broken.PowerProfile = nil
	broken.RiceFactors = nil
	scenario.Channels["fading"] = broken
	_, err = NewCampaign(scenario).Run()
	assert.Error(t, err)
}

func TestAwgn(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	signal := pilotWaveform(1, 4096, 1e6)

	noisy := Awgn(signal, 10, rng)
	assert.Len(t, noisy[0], 4096)

	// 10 dB SNR adds a tenth of the signal power in noise
	assert.InDelta(t, 1.1, statistics.MeanPower(noisy[0]), 0.02)

	silent := [][]complex128{make([]complex128, 16)}
	assert.Equal(t, silent, Awgn(silent, 10, rng))
}

func TestPlotDropPowers(t *testing.T) {
	dir := t.TempDir()
	powers := []float64{-1.5, 0.2, -0.7, 0.9, -0.3}

	assert.NoError(t, PlotDropPowers("fading", powers, dir))

	_, err := os.Stat(filepath.Join(dir, "fading_power.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "fading_distribution.png"))
	assert.NoError(t, err)
}

func TestPilotWaveform(t *testing.T) {
	tx := pilotWaveform(2, 32, 1e6)
	assert.Len(t, tx, 2)
	for _, stream := range tx {
		assert.InDelta(t, 1.0, statistics.MeanPower(stream), 1e-12)
	}
}
