// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package simulation drives Monte-Carlo link campaigns: it realizes every
// active channel of a scenario over independent drops, propagates a pilot
// waveform through each realization and aggregates the received statistics.
package simulation

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"sync"

	"github.com/BismarkCT/hermespy/pkg/channel"
	"github.com/BismarkCT/hermespy/pkg/model"
	"github.com/BismarkCT/hermespy/pkg/statistics"
	"github.com/BismarkCT/hermespy/pkg/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DropResult captures one independent channel realization
type DropResult struct {
	ID        string
	Drop      int
	Seed      int64
	RxPowerDb float64
}

// ChannelResult aggregates the drops of one scenario channel
type ChannelResult struct {
	Name          string
	Drops         []DropResult
	MeanRxPowerDb float64
}

// Result is the outcome of a full campaign run
type Result struct {
	Scenario string
	Channels []ChannelResult
}

// Campaign runs the Monte-Carlo drops of one scenario. The parent random
// stream only hands out per-drop seeds, so results do not depend on the
// order in which drops are scheduled.
type Campaign struct {
	scenario *model.Model
	rng      *rand.Rand
}

// NewCampaign creates a campaign from a loaded scenario
func NewCampaign(scenario *model.Model) *Campaign {
	return &Campaign{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(scenario.Seed)),
	}
}

// Run executes every active channel of the scenario and returns the
// aggregated drop statistics. Channels are processed in name order so that
// seed assignment is reproducible for a fixed scenario seed.
func (c *Campaign) Run() (*Result, error) {
	if c.scenario.NumDrops < 1 {
		return nil, fmt.Errorf("scenario must configure at least one drop")
	}
	if c.scenario.NumSamples < 1 {
		return nil, fmt.Errorf("scenario must configure at least one sample per drop")
	}

	names := make([]string, 0, len(c.scenario.Channels))
	for name, cfg := range c.scenario.Channels {
		if cfg.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := &Result{Scenario: c.scenario.Name}
	for _, name := range names {
		cfg, err := c.scenario.GetChannel(name)
		if err != nil {
			return nil, err
		}
		channelResult, err := c.runChannel(name, &cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", name, err)
		}
		result.Channels = append(result.Channels, *channelResult)
		log.Infof("channel %s: %d drops, mean rx power %.2f dB",
			name, len(channelResult.Drops), channelResult.MeanRxPowerDb)
	}

	if c.scenario.Plots.Enabled {
		if err := c.plotResult(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *Campaign) runChannel(name string, cfg *model.ChannelModel) (*ChannelResult, error) {
	numDrops := c.scenario.NumDrops
	seeds := make([]int64, numDrops)
	for drop := range seeds {
		seeds[drop] = c.rng.Int63()
	}

	tx := pilotWaveform(cfg.TxAntennas, c.scenario.NumSamples, c.scenario.SamplingRate)

	var wg sync.WaitGroup
	var mu sync.Mutex
	drops := make([]DropResult, numDrops)
	errs := make([]error, 0)

	for drop := 0; drop < numDrops; drop++ {
		wg.Add(1)
		go func(drop int) {
			defer wg.Done()

			ch, err := channel.FromModel(cfg, seeds[drop])
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			rx, _, err := ch.Propagate(tx, c.scenario.SamplingRate)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			if c.scenario.SnrDb != nil {
				rx = Awgn(rx, *c.scenario.SnrDb, rand.New(rand.NewSource(seeds[drop])))
			}

			power := 0.0
			for _, stream := range rx {
				power += statistics.MeanPower(stream)
			}
			power /= float64(len(rx))

			drops[drop] = DropResult{
				ID:        uuid.New().String(),
				Drop:      drop,
				Seed:      seeds[drop],
				RxPowerDb: utils.LinToDb(power),
			}
		}(drop)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	mean := 0.0
	for _, d := range drops {
		mean += d.RxPowerDb
	}
	return &ChannelResult{
		Name:          name,
		Drops:         drops,
		MeanRxPowerDb: mean / float64(numDrops),
	}, nil
}

// pilotWaveform generates the unit-power probe transmitted in every drop, a
// complex exponential at an eighth of the sampling rate with a fixed phase
// offset per antenna
func pilotWaveform(numTxAntennas, numSamples int, samplingRate float64) [][]complex128 {
	tx := make([][]complex128, numTxAntennas)
	for a := range tx {
		tx[a] = make([]complex128, numSamples)
		offset := 2 * math.Pi * float64(a) / float64(numTxAntennas)
		for n := range tx[a] {
			t := float64(n) / samplingRate
			tx[a][n] = cmplx.Exp(complex(0, 2*math.Pi*samplingRate/8*t+offset))
		}
	}
	return tx
}
