// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// LoadConfig loads the named scenario model using the viper search paths
func LoadConfig(model *Model, name string) error {
	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./" + name)
	viper.AddConfigPath(".")
	viper.AddConfigPath("./scenarios")
	viper.AddConfigPath("$HOME/.hermespy")
	viper.AddConfigPath("/etc/hermespy")

	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	if err := viper.Unmarshal(model); err != nil {
		return err
	}

	for name, ch := range model.Channels {
		ch.Derive()
		model.Channels[name] = ch
	}
	log.Infof("Loaded scenario model %s with %d channel(s)", name, len(model.Channels))
	return nil
}

// LoadConfigFile loads a scenario model from an explicit file path
func LoadConfigFile(model *Model, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, model); err != nil {
		return err
	}
	for name, ch := range model.Channels {
		ch.Derive()
		model.Channels[name] = ch
	}
	return nil
}

// SaveConfig writes the scenario model back out as YAML, restoring the
// dB-scale power profiles first
func SaveConfig(model *Model, path string) error {
	for name, ch := range model.Channels {
		ch.Restore()
		model.Channels[name] = ch
	}
	data, err := yaml.Marshal(model)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
