// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Command hermes runs link-level Monte-Carlo campaigns over the stochastic
// channel models of a scenario file.
package main

import (
	"os"

	"github.com/BismarkCT/hermespy/pkg/model"
	"github.com/BismarkCT/hermespy/pkg/simulation"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	scenarioName string
	scenarioFile string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hermes",
	Short: "Run link-level channel simulation campaigns",
	Long: `Hermes realizes the propagation channels of a scenario over independent
Monte-Carlo drops, propagates a pilot waveform through every realization and
reports the received power statistics per channel.

Scenarios are YAML files resolved either by name through the standard search
paths (., ./scenarios, $HOME/.hermespy, /etc/hermespy) or by explicit path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		scenario := &model.Model{}
		var err error
		if scenarioFile != "" {
			err = model.LoadConfigFile(scenario, scenarioFile)
		} else {
			err = model.LoadConfig(scenario, scenarioName)
		}
		if err != nil {
			return err
		}

		result, err := simulation.NewCampaign(scenario).Run()
		if err != nil {
			return err
		}

		for _, channelResult := range result.Channels {
			log.Infof("%s: mean received power %.2f dB over %d drop(s)",
				channelResult.Name, channelResult.MeanRxPowerDb, len(channelResult.Drops))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&scenarioName, "scenario", "s", "scenario", "scenario name resolved through the search paths")
	rootCmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "explicit scenario file path, overrides --scenario")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
