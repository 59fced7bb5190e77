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
	"log"

	"github.com/urfave/cli/v2"
)

// SortSummaryCommand returns the command that runs the external
// coordinate sort on an existing alignment summary.
func SortSummaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "sort-summary",
		Usage: "Write a coordinate-sorted copy of an alignment summary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The alignment summary TSV file written by the metrics command",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "A YAML configuration file, for sort.command and sort.timeout",
				Category: "Optional",
			},
		},
		Action: func(c *cli.Context) (err error) {
			config := DefaultConfig()
			if c.IsSet("config") {
				if config, err = ReadConfig(c.String("config")); err != nil {
					return err
				}
			}
			input := c.String("input")
			if !checkExist("--input", input) {
				return fmt.Errorf("invalid input file %v", input)
			}
			sorter := config.Sorter()
			sortedPath, err := sortSummary(c.Context, sorter, input)
			if err != nil {
				log.Println("Sort it manually with:", sorter.ManualCommand(input))
				return err
			}
			log.Println("Wrote sorted alignment summary to", sortedPath)
			return nil
		},
	}
}
