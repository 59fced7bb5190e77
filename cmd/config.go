// elPrep: a high-performance tool for analyzing SAM/BAM files.
// Copyright (c) 2017-2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/exascience/elmetrics/metrics"
	"github.com/exascience/elmetrics/report"
)

// SortConfig configures the external coordinate sort of the
// alignment summary.
type SortConfig struct {
	Enabled bool          `yaml:"enabled"`
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds the parameters of a metrics run that can be given in
// a YAML configuration file. Command line flags override the values
// of the file.
type Config struct {
	MaxIndelLength    int        `yaml:"max_indel_length"`
	PrimaryOnly       bool       `yaml:"primary_only"`
	Threads           int        `yaml:"threads"`
	Parquet           bool       `yaml:"parquet"`
	HeaderBeforeTrack bool       `yaml:"header_before_track"`
	Sort              SortConfig `yaml:"sort"`
}

// DefaultConfig returns the configuration used when no configuration
// file is given.
func DefaultConfig() *Config {
	return &Config{
		MaxIndelLength: metrics.DefaultMaxIndelLength,
		Sort: SortConfig{
			Command: append([]string(nil), report.DefaultSortCommand...),
			Timeout: report.DefaultSortTimeout,
		},
	}
}

// ReadConfig reads a YAML configuration file. Keys that are not
// present in the file keep their default values; unknown keys are an
// error.
func ReadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open the config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse the config file %v: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %v: %w", filename, err)
	}
	return config, nil
}

// Validate checks the configuration for values that cannot be used.
func (config *Config) Validate() error {
	if config.MaxIndelLength < 0 {
		return fmt.Errorf("max_indel_length must not be negative, got %v", config.MaxIndelLength)
	}
	if config.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %v", config.Threads)
	}
	if config.Sort.Enabled && len(config.Sort.Command) == 0 {
		return errors.New("sort is enabled, but sort.command is empty")
	}
	if config.Sort.Timeout < 0 {
		return fmt.Errorf("sort.timeout must not be negative, got %v", config.Sort.Timeout)
	}
	return nil
}

// Sorter returns the post-processor for the configured external sort.
func (config *Config) Sorter() *report.ExternalSort {
	return &report.ExternalSort{Command: config.Sort.Command, Timeout: config.Sort.Timeout}
}
