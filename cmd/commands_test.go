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
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"github.com/exascience/elmetrics/report"
)

func newTestApp() *cli.App {
	return &cli.App{
		Name: "elmetrics",
		Commands: []*cli.Command{
			MetricsCommand(),
			SortSummaryCommand(),
			ChromosomesCommand(),
		},
	}
}

func readManifest(t *testing.T, output string) *report.Manifest {
	var manifest report.Manifest
	if err := yaml.Unmarshal([]byte(readOutput(t, filepath.Join(output, report.ManifestFilename))), &manifest); err != nil {
		t.Fatal(err)
	}
	return &manifest
}

func TestMetricsCommand(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(0))
	input := writeInput(t, metricsSam)
	output := filepath.Join(t.TempDir(), "out")
	if err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", input, "-o", output, "-l", "0", "--nr-of-threads", "1"}); err != nil {
		t.Fatal(err)
	}
	manifest := readManifest(t, output)
	if manifest.MaxIndelLength != 0 || manifest.Qualified != 2 || manifest.RunID == "" {
		t.Error("metrics command manifest failed", manifest)
	}
	if _, err := os.Stat(filepath.Join(output, report.SummaryFilename(0))); err != nil {
		t.Error("metrics command summary failed", err)
	}
}

func TestMetricsCommandConfig(t *testing.T) {
	input := writeInput(t, metricsSam)
	config := writeConfig(t, "max_indel_length: 7\nprimary_only: true\n")
	output := filepath.Join(t.TempDir(), "out")
	if err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", input, "-o", output, "-c", config, "--max-indel-length", "9"}); err != nil {
		t.Fatal(err)
	}
	manifest := readManifest(t, output)
	if manifest.MaxIndelLength != 9 {
		t.Error("explicit flag did not override config", manifest.MaxIndelLength)
	}
	if manifest.Extended {
		t.Error("config value was lost", manifest.Extended)
	}
}

func TestMetricsCommandMissingFlags(t *testing.T) {
	if err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", writeInput(t, metricsSam)}); err == nil {
		t.Error("metrics command without output succeeded")
	}
}

func TestMetricsCommandInvalidConfig(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out")
	err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", writeInput(t, metricsSam), "-o", output, "-l", "-3"})
	if err == nil {
		t.Error("negative max indel length accepted")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("invalid configuration created an output directory")
	}
}

func TestChromosomesCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out")
	if err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", writeInput(t, metricsSam), "-o", output}); err != nil {
		t.Fatal(err)
	}
	summary := filepath.Join(output, report.SummaryFilename(50))
	if err := newTestApp().Run([]string{"elmetrics", "chromosomes", "-i", summary}); err != nil {
		t.Error("chromosomes command failed", err)
	}
	if err := newTestApp().Run([]string{"elmetrics", "chromosomes", "-i", filepath.Join(output, "missing.tsv")}); err == nil {
		t.Error("chromosomes command accepted a missing file")
	}
}

func TestSortSummaryCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out")
	if err := newTestApp().Run([]string{"elmetrics", "metrics", "-i", writeInput(t, metricsSam), "-o", output}); err != nil {
		t.Fatal(err)
	}
	summary := filepath.Join(output, report.SummaryFilename(50))
	config := writeConfig(t, "sort:\n  command: [elmetrics-no-such-sort-command]\n")
	err := newTestApp().Run([]string{"elmetrics", "sort-summary", "-i", summary, "-c", config})
	if err == nil || !strings.Contains(err.Error(), "elmetrics-no-such-sort-command") {
		t.Error("sort-summary with a missing command failed", err)
	}
}
