// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"

	"github.com/BismarkCT/hermespy/pkg/utils"
)

// Channel model flavors
const (
	ChannelTypeMultipath = "multipath"
	ChannelTypeRadar     = "radar"
	ChannelTypeIdeal     = "ideal"
)

// Model simulation scenario
type Model struct {
	Name         string                  `mapstructure:"name" yaml:"name"`
	Seed         int64                   `mapstructure:"seed" yaml:"seed"`
	NumDrops     int                     `mapstructure:"numDrops" yaml:"numDrops"`
	NumSamples   int                     `mapstructure:"numSamples" yaml:"numSamples"`
	SamplingRate float64                 `mapstructure:"samplingRate" yaml:"samplingRate"`
	SnrDb        *float64                `mapstructure:"snrDb" yaml:"snrDb,omitempty"`
	Channels     map[string]ChannelModel `mapstructure:"channels" yaml:"channels"`
	Plots        PlotLayout              `mapstructure:"plots" yaml:"plots"`
}

// PlotLayout controls optional campaign plot output
type PlotLayout struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir"`
}

// ChannelModel is the serialized configuration of one propagation channel.
// The power profile is configured in dB and converted to linear scale
// post-load; the linear form is what the channel core consumes.
type ChannelModel struct {
	Type                string     `mapstructure:"type" yaml:"type"`
	Active              bool       `mapstructure:"active" yaml:"active"`
	Gain                *float64   `mapstructure:"gain" yaml:"gain,omitempty"`
	TxAntennas          int        `mapstructure:"txAntennas" yaml:"txAntennas"`
	RxAntennas          int        `mapstructure:"rxAntennas" yaml:"rxAntennas"`
	Delays              []float64  `mapstructure:"delays" yaml:"delays,flow"`
	PowerProfileDb      []float64  `mapstructure:"powerProfile" yaml:"powerProfile,flow"`
	RiceFactors         []float64  `mapstructure:"riceFactors" yaml:"riceFactors,flow"`
	NumSinusoids        *int       `mapstructure:"numSinusoids" yaml:"numSinusoids,omitempty"`
	DopplerFrequency    float64    `mapstructure:"dopplerFrequency" yaml:"dopplerFrequency"`
	LosDopplerFrequency *float64   `mapstructure:"losDopplerFrequency" yaml:"losDopplerFrequency,omitempty"`
	LosAngle            *float64   `mapstructure:"losAngle" yaml:"losAngle,omitempty"`
	InterpolateSignals  bool       `mapstructure:"interpolateSignals" yaml:"interpolateSignals"`
	Radar               RadarModel `mapstructure:"radar" yaml:"radar,omitempty"`

	// linear-scale power profile, derived post-load from "PowerProfileDb"
	PowerProfile []float64 `mapstructure:"-" yaml:"-"`
}

// RadarModel configures the single-target radar channel variant
type RadarModel struct {
	TargetExists     bool    `mapstructure:"targetExists" yaml:"targetExists"`
	TargetRange      float64 `mapstructure:"targetRange" yaml:"targetRange"`
	TargetVelocity   float64 `mapstructure:"targetVelocity" yaml:"targetVelocity"`
	CarrierFrequency float64 `mapstructure:"carrierFrequency" yaml:"carrierFrequency"`
	CrossSectionDb   float64 `mapstructure:"crossSectionDb" yaml:"crossSectionDb"`
}

// GetChannel gets a channel configuration by name
func (m *Model) GetChannel(name string) (ChannelModel, error) {
	if c, ok := m.Channels[name]; ok {
		return c, nil
	}
	return ChannelModel{}, fmt.Errorf("channel model %s not found", name)
}

// GainOrDefault returns the configured channel gain, defaulting to 1.0
func (c *ChannelModel) GainOrDefault() float64 {
	if c.Gain == nil {
		return 1.0
	}
	return *c.Gain
}

// NumSinusoidsOrDefault returns the configured sinusoid count, defaulting to 20
func (c *ChannelModel) NumSinusoidsOrDefault() int {
	if c.NumSinusoids == nil {
		return 20
	}
	return *c.NumSinusoids
}

// Derive fills the fields computed from the serialized representation
func (c *ChannelModel) Derive() {
	c.PowerProfile = utils.DbToLinSlice(c.PowerProfileDb)
}

// Restore refreshes the serialized representation from the derived fields,
// so a loaded-and-saved model round-trips
func (c *ChannelModel) Restore() {
	if len(c.PowerProfile) > 0 {
		c.PowerProfileDb = utils.LinToDbSlice(c.PowerProfile)
	}
}
