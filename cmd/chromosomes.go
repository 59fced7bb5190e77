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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/exascience/elmetrics/bed"
	"github.com/exascience/elmetrics/report"
)

// ChromosomesCommand returns the command that prints per-chromosome
// statistics of an alignment summary.
func ChromosomesCommand() *cli.Command {
	return &cli.Command{
		Name:  "chromosomes",
		Usage: "Print per-chromosome statistics of an alignment summary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The alignment summary TSV file written by the metrics command",
				Required: true,
				Category: "Required",
			},
		},
		Action: func(c *cli.Context) error {
			input := c.String("input")
			if !checkExist("--input", input) {
				return fmt.Errorf("invalid input file %v", input)
			}
			summary, err := bed.ParseSummary(input)
			if err != nil {
				return err
			}
			return report.PrintChromosomeStatistics(os.Stdout, summary.Stats())
		},
	}
}
