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
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/exascience/elmetrics/bed"
	"github.com/exascience/elmetrics/internal"
	"github.com/exascience/elmetrics/metrics"
)

// PrintRunStatistics prints what a collection counted as two tables:
// the alignments by treatment, and the CIGAR operations seen in
// interpreted alignments.
func PrintRunStatistics(w io.Writer, c *metrics.Collector) error {
	total := c.Stats.Alignments
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Alignments", "Count", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"total", internal.FormatCount(total), internal.FormatPercentage(total, total)},
		{"not primary (skipped)", internal.FormatCount(c.Stats.NotPrimary), internal.FormatPercentage(c.Stats.NotPrimary, total)},
		{"primary, MAPQ 0 (length only)", internal.FormatCount(c.Stats.Unqualified), internal.FormatPercentage(c.Stats.Unqualified, total)},
		{"primary, MAPQ >= 1", internal.FormatCount(c.Stats.Qualified), internal.FormatPercentage(c.Stats.Qualified, total)},
		{"unmapped", internal.FormatCount(c.Stats.Unmapped), internal.FormatPercentage(c.Stats.Unmapped, total)},
		{"supplementary", internal.FormatCount(c.Stats.Supplementary), internal.FormatPercentage(c.Stats.Supplementary, total)},
		{"summary rows", internal.FormatCount(int64(c.Summary.Len())), internal.FormatPercentage(int64(c.Summary.Len()), c.Stats.Qualified)},
		{"key collisions", internal.FormatCount(c.Summary.Collisions()), internal.FormatPercentage(c.Summary.Collisions(), c.Stats.Qualified)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	operations := tablewriter.NewWriter(w)
	operations.Header([]string{"CIGAR operation", "Bases", "Alignments"})
	operations.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data = nil
	c.Audit.Range(func(operation byte, bases, records int64) {
		data = append(data, []string{strconv.QuoteRune(rune(operation)), internal.FormatCount(bases), internal.FormatCount(records)})
	})
	if err := operations.Bulk(data); err != nil {
		return err
	}
	return operations.Render()
}

// PrintChromosomeStatistics prints one table row per chromosome of an
// alignment summary.
func PrintChromosomeStatistics(w io.Writer, stats []bed.ChromStats) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Chromosome", "Alignments", "Aligned bases", "Mean identity", "Min identity", "Max identity"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(stats))
	for _, s := range stats {
		data = append(data, []string{
			s.Chrom,
			internal.FormatCount(int64(s.Regions)),
			internal.FormatCount(s.AlignedBases),
			strconv.FormatFloat(s.MeanValue, 'f', 4, 64),
			strconv.FormatFloat(s.MinValue, 'f', 4, 64),
			strconv.FormatFloat(s.MaxValue, 'f', 4, 64),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
