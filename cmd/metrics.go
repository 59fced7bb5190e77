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
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/exascience/elmetrics/internal"
	"github.com/exascience/elmetrics/metrics"
	"github.com/exascience/elmetrics/report"
	"github.com/exascience/elmetrics/sam"
)

// MetricsOptions are the resolved parameters of one metrics run.
type MetricsOptions struct {
	Input   string
	Output  string
	Config  *Config
	Timed   bool
	Profile string
	// Stats receives the run statistics tables. Nothing is printed
	// when Stats is nil.
	Stats io.Writer
}

// MetricsCommand returns the command that computes the alignment
// metrics of a SAM or BAM file.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Compute identity, length, and per-alignment metrics of a SAM or BAM file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The SAM or BAM file to analyze, a .bam extension selects BAM",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The output directory, which must not exist yet",
				Required: true,
				Category: "Required",
			},
			&cli.IntFlag{
				Name:     "max-indel-length",
				Aliases:  []string{"l"},
				Usage:    "Insertions and deletions longer than this are large indels instead of mismatches, 0 disables large indels",
				Value:    metrics.DefaultMaxIndelLength,
				Category: "Optional",
			},
			&cli.IntFlag{
				Name:     "nr-of-threads",
				Usage:    "The number of worker threads, 0 uses all available cores",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "sort",
				Usage:    "Also write a coordinate-sorted copy of the alignment summary",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "parquet",
				Usage:    "Also write the alignment summary as a Parquet file",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "primary-only",
				Usage:    "Drop secondary and supplementary records while reading",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "A YAML configuration file, explicit flags override its values",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "log-path",
				Usage:    "Also write the log to a file below this directory",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "timed",
				Usage:    "Log the elapsed time of every phase",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "profile",
				Usage:    "Write a CPU profile of every phase to files with this prefix",
				Category: "Optional",
			},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("log-path") {
				if err := setLogOutput(c.String("log-path")); err != nil {
					return err
				}
			}
			config, err := resolveConfig(c)
			if err != nil {
				return err
			}
			_, err = RunMetrics(c.Context, MetricsOptions{
				Input:   c.String("input"),
				Output:  c.String("output"),
				Config:  config,
				Timed:   c.Bool("timed"),
				Profile: c.String("profile"),
				Stats:   os.Stderr,
			})
			return err
		},
	}
}

// resolveConfig reads the configuration file, if any, and applies
// the flags that were given explicitly on the command line.
func resolveConfig(c *cli.Context) (config *Config, err error) {
	if c.IsSet("config") {
		if config, err = ReadConfig(c.String("config")); err != nil {
			return nil, err
		}
	} else {
		config = DefaultConfig()
	}
	if c.IsSet("max-indel-length") {
		config.MaxIndelLength = c.Int("max-indel-length")
	}
	if c.IsSet("nr-of-threads") {
		config.Threads = c.Int("nr-of-threads")
	}
	if c.IsSet("sort") {
		config.Sort.Enabled = c.Bool("sort")
	}
	if c.IsSet("parquet") {
		config.Parquet = c.Bool("parquet")
	}
	if c.IsSet("primary-only") {
		config.PrimaryOnly = c.Bool("primary-only")
	}
	return config, config.Validate()
}

// collect reads all alignments of the input file into a Collector. A
// single thread processes the records in sequence; otherwise a pargo
// pipeline processes batches in parallel.
func collect(input *sam.InputFile, config *Config) (collector *metrics.Collector, err error) {
	if config.Threads == 1 {
		collector = metrics.NewCollector(config.MaxIndelLength)
		err = input.ForEach(collector.Process)
		return collector, err
	}
	return metrics.RunPipeline(input, config.MaxIndelLength)
}

// RunMetrics performs one metrics run and returns its manifest. When
// any alignment cannot be interpreted, the run is aborted before any
// output file is written. A run that fails while its output directory
// is still empty removes that directory again.
func RunMetrics(ctx context.Context, opts MetricsOptions) (manifest *report.Manifest, err error) {
	config := opts.Config
	if config == nil {
		config = DefaultConfig()
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	if !checkExist("--input", opts.Input) {
		return nil, fmt.Errorf("invalid input file %v", opts.Input)
	}
	if opts.Output == "" {
		return nil, errors.New("missing output directory")
	}
	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("%w, while resolving output directory %v", err, opts.Output)
	}
	inputPath, err := internal.FullPathname(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("%w, while resolving input file %v", err, opts.Input)
	}
	if err = report.CreateOutputDirectory(output); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			removeIfEmpty(output)
		}
	}()
	if config.Threads > 0 {
		runtime.GOMAXPROCS(config.Threads)
	}

	extended := !config.PrimaryOnly
	manifest = report.NewManifest(inputPath, config.MaxIndelLength, extended, runtime.GOMAXPROCS(0))
	log.Printf("Computing metrics of %v with a maximum indel length of %v.\n", opts.Input, config.MaxIndelLength)

	var phase int64
	var collector *metrics.Collector
	phase++
	err = timedRun(opts.Timed, opts.Profile, "Reading alignments and collecting metrics.", phase, func() (err error) {
		input, err := sam.Open(opts.Input, extended)
		if err != nil {
			return err
		}
		defer func() {
			if nerr := input.Close(); err == nil {
				err = nerr
			}
		}()
		collector, err = collect(input, config)
		manifest.RecordsRead = input.Read
		manifest.RecordsSkipped = input.Skipped
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w, while processing %v", err, opts.Input)
	}
	log.Printf("Read %v records, skipped %v secondary or supplementary records.\n",
		internal.FormatCount(manifest.RecordsRead), internal.FormatCount(manifest.RecordsSkipped))
	log.Printf("Collected %v alignments, %v with mapping quality of at least 1.\n",
		internal.FormatCount(collector.Stats.Alignments), internal.FormatCount(collector.Stats.Qualified))
	manifest.SetResults(collector)
	if n := collector.Summary.Collisions(); n > 0 {
		warning := fmt.Sprintf("%v alignment summary rows were replaced by later alignments with the same key", internal.FormatCount(n))
		log.Println("Warning:", warning)
		manifest.Warnings = append(manifest.Warnings, warning)
	}

	summaryPath := filepath.Join(output, report.SummaryFilename(config.MaxIndelLength))
	phase++
	err = timedRun(opts.Timed, opts.Profile, "Writing reports.", phase, func() error {
		identityPath := filepath.Join(output, report.IdentityDistributionFilename)
		if err := report.WriteIdentityDistribution(identityPath, collector.Identities); err != nil {
			return err
		}
		lengthPath := filepath.Join(output, report.LengthDistributionFilename)
		if err := report.WriteLengthDistribution(lengthPath, collector.Lengths); err != nil {
			return err
		}
		if err := report.WriteSummary(summaryPath, collector.Summary, config.HeaderBeforeTrack); err != nil {
			return err
		}
		manifest.Files = append(manifest.Files, filepath.Base(identityPath), filepath.Base(lengthPath), filepath.Base(summaryPath))
		if config.Parquet {
			parquetPath := report.ParquetSummaryFilename(summaryPath)
			if err := report.WriteSummaryParquet(parquetPath, collector.Summary); err != nil {
				return err
			}
			manifest.Files = append(manifest.Files, filepath.Base(parquetPath))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if config.Sort.Enabled {
		phase++
		_ = timedRun(opts.Timed, opts.Profile, "Sorting alignment summary.", phase, func() error {
			sorter := config.Sorter()
			if sortedPath, err := sortSummary(ctx, sorter, summaryPath); err != nil {
				warning := fmt.Sprintf("%v; the unsorted summary is complete, sort it manually with: %v", err, sorter.ManualCommand(summaryPath))
				log.Println("Warning:", warning)
				manifest.Warnings = append(manifest.Warnings, warning)
			} else {
				manifest.Files = append(manifest.Files, filepath.Base(sortedPath))
			}
			return nil
		})
	}

	if err = manifest.Write(filepath.Join(output, report.ManifestFilename)); err != nil {
		return nil, err
	}
	if opts.Stats != nil {
		if err = report.PrintRunStatistics(opts.Stats, collector); err != nil {
			return nil, err
		}
	}
	log.Printf("Wrote metrics to %v.\n", output)
	return manifest, nil
}

// removeIfEmpty removes the output directory of a failed run when the
// run did not write anything into it.
func removeIfEmpty(path string) {
	entries, err := os.ReadDir(path)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("Warning: could not remove output directory %v: %v\n", path, err)
	}
}

func sortSummary(ctx context.Context, processor report.PostProcessor, summaryPath string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return processor.Process(ctx, summaryPath)
}
