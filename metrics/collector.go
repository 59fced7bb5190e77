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

package metrics

import (
	"github.com/exascience/elmetrics/sam"
)

// Stats counts the alignments a Collector has seen, by how they were
// treated.
type Stats struct {
	Alignments int64
	// NotPrimary alignments are skipped entirely.
	NotPrimary int64
	// Unqualified alignments are primary, but have a mapping quality
	// of 0. They only contribute to the length distribution.
	Unqualified int64
	// Qualified alignments are primary, and have a mapping quality of
	// at least 1.
	Qualified int64

	// Unmapped and Supplementary count flagged alignments across all
	// of the above. They do not change how an alignment is treated.
	Unmapped      int64
	Supplementary int64
}

func (s *Stats) count(aln *sam.Alignment) {
	s.Alignments++
	if aln.IsUnmapped() {
		s.Unmapped++
	}
	if aln.IsSupplementary() {
		s.Supplementary++
	}
}

func (s *Stats) merge(other Stats) {
	s.Alignments += other.Alignments
	s.NotPrimary += other.NotPrimary
	s.Unqualified += other.Unqualified
	s.Qualified += other.Qualified
	s.Unmapped += other.Unmapped
	s.Supplementary += other.Supplementary
}

// A Collector aggregates the metrics of a stream of alignments.
type Collector struct {
	MaxIndelLength int
	Identities     *Distribution[float64]
	Lengths        *Distribution[int64]
	Summary        *SummaryTable
	Audit          *OperatorAudit
	Stats          Stats
}

// NewCollector allocates and initializes an empty Collector.
func NewCollector(maxIndelLength int) *Collector {
	return &Collector{
		MaxIndelLength: maxIndelLength,
		Identities:     NewDistribution[float64](),
		Lengths:        NewDistribution[int64](),
		Summary:        NewSummaryTable(),
		Audit:          NewOperatorAudit(),
	}
}

// Process adds one alignment to the collector.
//
// Alignments that are not primary are skipped. Primary alignments,
// including supplementary ones, are counted in the length
// distribution by their query length. Primary alignments with a
// mapping quality of at least 1 are also interpreted: their identity
// is counted in the identity distribution, and their metrics are
// upserted into the summary table.
//
// Process returns the error of Interpret, if any. The collector is
// not modified for an alignment that fails.
func (c *Collector) Process(aln *sam.Alignment) error {
	if aln.IsNotPrimary() {
		c.Stats.count(aln)
		c.Stats.NotPrimary++
		return nil
	}
	if aln.MAPQ < 1 {
		c.Stats.count(aln)
		c.Stats.Unqualified++
		c.Lengths.Increment(int64(aln.QueryLength))
		return nil
	}
	counters, err := Interpret(aln, c.MaxIndelLength)
	if err != nil {
		return err
	}
	c.Stats.count(aln)
	c.Stats.Qualified++
	c.Lengths.Increment(int64(aln.QueryLength))
	row := NewSummaryRow(aln, counters)
	c.Identities.Increment(row.Identity)
	c.Summary.Upsert(row)
	c.Audit.Add(aln)
	return nil
}

// Merge adds everything other collected to c, as if the alignments
// seen by other were processed by c after its own.
func (c *Collector) Merge(other *Collector) {
	c.Identities.Merge(other.Identities)
	c.Lengths.Merge(other.Lengths)
	c.Summary.Merge(other.Summary)
	c.Audit.Merge(other.Audit)
	c.Stats.merge(other.Stats)
}
