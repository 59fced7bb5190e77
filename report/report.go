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
	"strconv"
	"strings"

	"github.com/exascience/elmetrics/bed"
	"github.com/exascience/elmetrics/metrics"
)

func writeDistribution[K int64 | float64](filename string, d *metrics.Distribution[K], appendKey func([]byte, K) []byte) error {
	return writeFile(filename, func(w *bufio.Writer) (err error) {
		var buf []byte
		d.Range(func(key K, count int64) bool {
			buf = appendKey(buf[:0], key)
			buf = append(buf, ',')
			buf = strconv.AppendInt(buf, count, 10)
			buf = append(buf, '\n')
			_, err = w.Write(buf)
			return err == nil
		})
		return err
	})
}

// WriteIdentityDistribution writes an identity distribution as lines
// of the form <identity>,<count>, in ascending order of identity.
func WriteIdentityDistribution(filename string, d *metrics.Distribution[float64]) error {
	return writeDistribution(filename, d, AppendIdentity)
}

// WriteLengthDistribution writes a read-length distribution as lines
// of the form <length>,<count>, in ascending order of length.
func WriteLengthDistribution(filename string, d *metrics.Distribution[int64]) error {
	return writeDistribution(filename, d, func(buf []byte, length int64) []byte {
		return strconv.AppendInt(buf, length, 10)
	})
}

// SummaryHeader lists the columns of an alignment summary file.
var SummaryHeader = []string{
	"#chr", "start_pos", "end_pos", "identity", "matches", "nonmatches",
	"largeINDELs", "largeINDEL_total_length", "inferred_len", "mapq", "alignmentName",
}

// SummaryPreambleLines is the number of lines before the first row of
// an alignment summary file.
const SummaryPreambleLines = 2

// AppendSummaryRow appends one tab-separated summary row, including
// the trailing newline.
func AppendSummaryRow(buf []byte, row metrics.SummaryRow) []byte {
	buf = append(buf, row.RefName...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, row.Start, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, row.End, 10)
	buf = append(buf, '\t')
	buf = AppendIdentity(buf, row.Identity)
	for _, value := range [...]int64{row.Matches, row.Mismatches, row.IndelCount, row.IndelTotalLength, row.InferredLength, int64(row.MAPQ)} {
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, value, 10)
	}
	buf = append(buf, '\t')
	buf = append(buf, row.Key...)
	return append(buf, '\n')
}

// WriteSummary writes the summary table as a tab-separated file: the
// identity track declaration line, the column header, and one line
// per row. If headerBeforeTrack is true, the column header comes
// first.
func WriteSummary(filename string, table *metrics.SummaryTable, headerBeforeTrack bool) error {
	return writeFile(filename, func(w *bufio.Writer) error {
		preamble := []string{bed.IdentityTrack().String(), strings.Join(SummaryHeader, "\t")}
		if headerBeforeTrack {
			preamble[0], preamble[1] = preamble[1], preamble[0]
		}
		for _, line := range preamble {
			if _, err := w.WriteString(line); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		var buf []byte
		for _, row := range table.Rows() {
			buf = AppendSummaryRow(buf[:0], row)
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
		return nil
	})
}
