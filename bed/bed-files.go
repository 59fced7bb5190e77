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

package bed

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseSummary reads an alignment summary file, as written by the
// report package, or any other bedGraph-like file with a value in the
// fourth column. Lines starting with # are header lines; the last one
// is kept as the column header. "track" and "browser" lines are
// declarations; the last track line is kept.
func ParseSummary(filename string) (summary *Summary, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()

	summary = NewSummary()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for lineNr := 1; scanner.Scan(); lineNr++ {
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			summary.Header = strings.Split(line, "\t")
		case strings.HasPrefix(line, "track"):
			track, err := ParseTrack(line)
			if err != nil {
				return nil, fmt.Errorf("%w, in line %v of %v", err, lineNr, filename)
			}
			summary.Track = track
		case strings.HasPrefix(line, "browser"):
			continue
		default:
			region, err := NewRegion(strings.Split(line, "\t"))
			if err != nil {
				return nil, fmt.Errorf("%w, in line %v of %v", err, lineNr, filename)
			}
			summary.AddRegion(region)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Make sure regions are sorted.
	summary.sortRegions()
	return summary, nil
}
