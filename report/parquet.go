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
	"os"
	"sort"

	psort "github.com/exascience/pargo/sort"
	"github.com/parquet-go/parquet-go"

	"github.com/exascience/elmetrics/bed"
	"github.com/exascience/elmetrics/metrics"
)

// A SummaryRecord is the Parquet representation of a summary row.
type SummaryRecord struct {
	Chrom                 string  `parquet:"chr,snappy,dict"`
	StartPos              int64   `parquet:"start_pos,snappy"`
	EndPos                int64   `parquet:"end_pos,snappy"`
	Identity              float64 `parquet:"identity,snappy"`
	Matches               int64   `parquet:"matches,snappy"`
	Nonmatches            int64   `parquet:"nonmatches,snappy"`
	LargeIndels           int64   `parquet:"large_indels,snappy"`
	LargeIndelTotalLength int64   `parquet:"large_indel_total_length,snappy"`
	InferredLen           int64   `parquet:"inferred_len,snappy"`
	MAPQ                  int32   `parquet:"mapq,snappy"`
	AlignmentName         string  `parquet:"alignment_name,snappy"`
}

// CoordinateLess orders summary rows by reference name (see
// bed.ChromLess), start, end and key.
func CoordinateLess(row1, row2 *metrics.SummaryRow) bool {
	switch {
	case row1.RefName != row2.RefName:
		return bed.ChromLess(row1.RefName, row2.RefName)
	case row1.Start != row2.Start:
		return row1.Start < row2.Start
	case row1.End != row2.End:
		return row1.End < row2.End
	default:
		return row1.Key < row2.Key
	}
}

// summaryRowSorter implements psort.StableSorter for summary rows.
type summaryRowSorter []*metrics.SummaryRow

func (s summaryRowSorter) SequentialSort(i, j int) {
	rows := s[i:j]
	sort.SliceStable(rows, func(i, j int) bool {
		return CoordinateLess(rows[i], rows[j])
	})
}

func (s summaryRowSorter) NewTemp() psort.StableSorter {
	return make(summaryRowSorter, len(s))
}

func (s summaryRowSorter) Len() int {
	return len(s)
}

func (s summaryRowSorter) Less(i, j int) bool {
	return CoordinateLess(s[i], s[j])
}

func (s summaryRowSorter) Assign(p psort.StableSorter) func(i, j, len int) {
	dst, src := s, p.(summaryRowSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// SortedRows returns pointers to the rows of the table, sorted in
// parallel by CoordinateLess.
func SortedRows(table *metrics.SummaryTable) []*metrics.SummaryRow {
	rows := table.Rows()
	sorted := make(summaryRowSorter, len(rows))
	for i := range rows {
		sorted[i] = &rows[i]
	}
	psort.StableSort(sorted)
	return sorted
}

// WriteSummaryParquet writes the summary table as a Parquet file, with
// rows in coordinate order.
func WriteSummaryParquet(filename string, table *metrics.SummaryTable) (err error) {
	rows := SortedRows(table)
	records := make([]SummaryRecord, len(rows))
	for i, row := range rows {
		records[i] = SummaryRecord{
			Chrom:                 row.RefName,
			StartPos:              row.Start,
			EndPos:                row.End,
			Identity:              row.Identity,
			Matches:               row.Matches,
			Nonmatches:            row.Mismatches,
			LargeIndels:           row.IndelCount,
			LargeIndelTotalLength: row.IndelTotalLength,
			InferredLen:           row.InferredLength,
			MAPQ:                  int32(row.MAPQ),
			AlignmentName:         row.Key,
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return &FileWriteError{Path: filename, Err: err}
	}
	defer func() {
		if nerr := file.Close(); err == nil && nerr != nil {
			err = &FileWriteError{Path: filename, Err: nerr}
		}
	}()
	writer := parquet.NewGenericWriter[SummaryRecord](file)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return &FileWriteError{Path: filename, Err: err}
	}
	if err := writer.Close(); err != nil {
		return &FileWriteError{Path: filename, Err: err}
	}
	return nil
}
