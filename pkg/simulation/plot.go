// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotResult renders the per-drop received power of every channel
func (c *Campaign) plotResult(result *Result) error {
	outputDir := c.scenario.Plots.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return err
	}
	for _, channelResult := range result.Channels {
		powersDb := make([]float64, len(channelResult.Drops))
		for i, d := range channelResult.Drops {
			powersDb[i] = d.RxPowerDb
		}
		if err := PlotDropPowers(channelResult.Name, powersDb, outputDir); err != nil {
			return err
		}
	}
	return nil
}

// PlotDropPowers saves a received-power trace over drops and its histogram
// as PNG files in the output directory
func PlotDropPowers(name string, powersDb []float64, outputDir string) error {
	trace := make(plotter.XYs, len(powersDb))
	for i, p := range powersDb {
		trace[i].X = float64(i)
		trace[i].Y = p
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Channel: %s", name)
	p.X.Label.Text = "Drop"
	p.Y.Label.Text = "Received Power (dB)"

	line, points, err := plotter.NewLinePoints(trace)
	if err != nil {
		return err
	}
	p.Add(line, points)
	p.Legend.Add("Received Power", line, points)

	traceFilename := filepath.Join(outputDir, fmt.Sprintf("%s_power.png", name))
	if err := p.Save(15*vg.Inch, 10*vg.Inch, traceFilename); err != nil {
		return err
	}
	log.Infof("plot saved to %s", traceFilename)

	distribution := make(plotter.Values, len(powersDb))
	copy(distribution, powersDb)

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Received Power Distribution: %s", name)
	pl.X.Label.Text = "Received Power (dB)"
	pl.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(distribution, 50)
	if err != nil {
		return err
	}
	pl.Add(h)

	distributionFilename := filepath.Join(outputDir, fmt.Sprintf("%s_distribution.png", name))
	if err := pl.Save(15*vg.Inch, 10*vg.Inch, distributionFilename); err != nil {
		return err
	}
	log.Infof("histogram plot saved to %s", distributionFilename)
	return nil
}
