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
	"strconv"

	"github.com/exascience/elmetrics/sam"
)

// A SummaryRow holds the metrics of one alignment, as reported in the
// alignment summary.
type SummaryRow struct {
	RefName          string
	Start            int64
	End              int64
	Identity         float64
	Matches          int64
	Mismatches       int64
	IndelCount       int64
	IndelTotalLength int64
	InferredLength   int64
	MAPQ             byte
	Key              string
}

// Key returns the key that identifies an alignment in a SummaryTable:
// the reference name, start, end, matches, mismatches and read name,
// separated by underscores.
func Key(refName string, start, end, matches, mismatches int64, qname string) string {
	buf := make([]byte, 0, len(refName)+len(qname)+48)
	buf = append(buf, refName...)
	buf = append(buf, '_')
	buf = strconv.AppendInt(buf, start, 10)
	buf = append(buf, '_')
	buf = strconv.AppendInt(buf, end, 10)
	buf = append(buf, '_')
	buf = strconv.AppendInt(buf, matches, 10)
	buf = append(buf, '_')
	buf = strconv.AppendInt(buf, mismatches, 10)
	buf = append(buf, '_')
	buf = append(buf, qname...)
	return string(buf)
}

// NewSummaryRow combines an alignment and its counters into a
// SummaryRow.
func NewSummaryRow(aln *sam.Alignment, c Counters) SummaryRow {
	start := int64(aln.POS)
	return SummaryRow{
		RefName:          aln.RNAME,
		Start:            start,
		End:              c.End,
		Identity:         Identity(c.Matches, c.Mismatches),
		Matches:          c.Matches,
		Mismatches:       c.Mismatches,
		IndelCount:       c.IndelCount,
		IndelTotalLength: c.IndelTotalLength,
		InferredLength:   c.InferredLength,
		MAPQ:             aln.MAPQ,
		Key:              Key(aln.RNAME, start, c.End, c.Matches, c.Mismatches, aln.QNAME),
	}
}

// A SummaryTable holds at most one SummaryRow per key. When a row is
// upserted for a key that is already present, the new row replaces
// the old one, and the collision is counted.
//
// Rows are kept in order of first insertion of their key, so that
// output is reproducible, but no other ordering is guaranteed.
type SummaryTable struct {
	index      map[string]int
	rows       []SummaryRow
	collisions int64
}

// NewSummaryTable allocates and initializes an empty SummaryTable.
func NewSummaryTable() *SummaryTable {
	return &SummaryTable{index: make(map[string]int)}
}

// Upsert inserts row, or replaces the row with the same key. It
// returns true if a row was replaced.
func (t *SummaryTable) Upsert(row SummaryRow) (replaced bool) {
	if i, ok := t.index[row.Key]; ok {
		t.rows[i] = row
		t.collisions++
		return true
	}
	t.index[row.Key] = len(t.rows)
	t.rows = append(t.rows, row)
	return false
}

// Get returns the row for the given key.
func (t *SummaryTable) Get(key string) (SummaryRow, bool) {
	if i, ok := t.index[key]; ok {
		return t.rows[i], true
	}
	return SummaryRow{}, false
}

// Len returns the number of rows.
func (t *SummaryTable) Len() int {
	return len(t.rows)
}

// Collisions returns how many upserts replaced an existing row.
func (t *SummaryTable) Collisions() int64 {
	return t.collisions
}

// Rows returns the rows of the table. The returned slice must not be
// modified.
func (t *SummaryTable) Rows() []SummaryRow {
	return t.rows
}

// Merge upserts all rows of other into t, as if the alignments that
// produced other were processed after the ones that produced t.
func (t *SummaryTable) Merge(other *SummaryTable) {
	t.collisions += other.collisions
	for _, row := range other.rows {
		t.Upsert(row)
	}
}
