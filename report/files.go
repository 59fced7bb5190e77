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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Names of the files written to the output directory.
const (
	IdentityDistributionFilename = "identity_distribution.csv"
	LengthDistributionFilename   = "length_distribution.csv"
	ManifestFilename             = "run.yaml"
)

// SummaryFilename returns the name of the alignment summary file for
// the given maximum indel length.
func SummaryFilename(maxIndelLength int) string {
	return fmt.Sprintf("alignment_summary_%dbpMaxIndel.tsv", maxIndelLength)
}

// SortedSummaryFilename returns the path of the coordinate-sorted
// derivative of the given summary path.
func SortedSummaryFilename(summaryPath string) string {
	return strings.TrimSuffix(summaryPath, ".tsv") + ".sorted.tsv"
}

// ParquetSummaryFilename returns the path of the Parquet export of the
// given summary path.
func ParquetSummaryFilename(summaryPath string) string {
	return strings.TrimSuffix(summaryPath, ".tsv") + ".parquet"
}

// CreateOutputDirectory creates the output directory of a run, and
// any missing parent directories. The output directory itself must
// not exist yet.
func CreateOutputDirectory(path string) error {
	if _, err := os.Stat(path); err == nil {
		return &OutputDirectoryExistsError{Path: path}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	if err := os.Mkdir(path, 0700); err != nil {
		if errors.Is(err, os.ErrExist) {
			return &OutputDirectoryExistsError{Path: path}
		}
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}

// writeFile creates the named file and calls write with a buffered
// writer for it. All errors are reported as a *FileWriteError.
func writeFile(filename string, write func(w *bufio.Writer) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return &FileWriteError{Path: filename, Err: err}
	}
	defer func() {
		if nerr := file.Close(); err == nil && nerr != nil {
			err = &FileWriteError{Path: filename, Err: nerr}
		}
	}()
	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		return &FileWriteError{Path: filename, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &FileWriteError{Path: filename, Err: err}
	}
	return nil
}

// AppendIdentity appends the decimal representation of an identity
// score: the shortest representation that reads back as the same
// value, without exponent, so 0.25, 0.6666667, 1 and 0.
func AppendIdentity(buf []byte, identity float64) []byte {
	return strconv.AppendFloat(buf, identity, 'f', -1, 64)
}
