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

// elmetrics computes alignment-quality metrics of SAM and BAM files:
// a per-alignment identity distribution, a read-length distribution,
// and a per-alignment summary in bedGraph-compatible form.
//
// Please see https://github.com/exascience/elmetrics for a
// documentation of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/exascience/elmetrics/cmd"
	"github.com/exascience/elmetrics/utils"
)

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	app := &cli.App{
		Name:    utils.ProgramName,
		Usage:   "Compute alignment-quality metrics of SAM and BAM files",
		Version: utils.ProgramVersion,
		Commands: []*cli.Command{
			cmd.MetricsCommand(),
			cmd.SortSummaryCommand(),
			cmd.ChromosomesCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
