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

package report

import (
	"bufio"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/exascience/elmetrics/metrics"
	"github.com/exascience/elmetrics/utils"
)

// OperationCounts is the manifest entry for one CIGAR operation.
type OperationCounts struct {
	Bases      int64 `yaml:"bases"`
	Alignments int64 `yaml:"alignments"`
}

// A Manifest describes one run: its parameters, what it counted, and
// which files it produced. It is written as YAML to the output
// directory.
type Manifest struct {
	RunID          string    `yaml:"run_id"`
	Program        string    `yaml:"program"`
	Version        string    `yaml:"version"`
	Started        time.Time `yaml:"started"`
	Finished       time.Time `yaml:"finished"`
	Input          string    `yaml:"input"`
	MaxIndelLength int       `yaml:"max_indel_length"`
	Extended       bool      `yaml:"extended"`
	Threads        int       `yaml:"threads"`

	RecordsRead    int64 `yaml:"records_read"`
	RecordsSkipped int64 `yaml:"records_skipped"`
	Alignments     int64 `yaml:"alignments"`
	NotPrimary     int64 `yaml:"not_primary"`
	Unqualified    int64 `yaml:"unqualified"`
	Qualified      int64 `yaml:"qualified"`
	Unmapped       int64 `yaml:"unmapped"`
	Supplementary  int64 `yaml:"supplementary"`
	SummaryRows    int   `yaml:"summary_rows"`
	KeyCollisions  int64 `yaml:"key_collisions"`

	Operations map[string]OperationCounts `yaml:"operations,omitempty"`
	Files      []string                   `yaml:"files"`
	Warnings   []string                   `yaml:"warnings,omitempty"`
}

// NewManifest returns a Manifest with a fresh run id.
func NewManifest(input string, maxIndelLength int, extended bool, threads int) *Manifest {
	return &Manifest{
		RunID:          uuid.NewString(),
		Program:        utils.ProgramName,
		Version:        utils.ProgramVersion,
		Started:        time.Now(),
		Input:          input,
		MaxIndelLength: maxIndelLength,
		Extended:       extended,
		Threads:        threads,
	}
}

// SetResults copies the counts of a finished collection into the
// manifest.
func (m *Manifest) SetResults(c *metrics.Collector) {
	m.Alignments = c.Stats.Alignments
	m.NotPrimary = c.Stats.NotPrimary
	m.Unqualified = c.Stats.Unqualified
	m.Qualified = c.Stats.Qualified
	m.Unmapped = c.Stats.Unmapped
	m.Supplementary = c.Stats.Supplementary
	m.SummaryRows = c.Summary.Len()
	m.KeyCollisions = c.Summary.Collisions()
	m.Operations = make(map[string]OperationCounts)
	c.Audit.Range(func(operation byte, bases, records int64) {
		m.Operations[string(operation)] = OperationCounts{Bases: bases, Alignments: records}
	})
}

// Write writes the manifest as YAML.
func (m *Manifest) Write(filename string) error {
	if m.Finished.IsZero() {
		m.Finished = time.Now()
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return writeFile(filename, func(w *bufio.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
