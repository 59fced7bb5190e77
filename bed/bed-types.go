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
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// A TrackField is one key=value pair of a track declaration line.
type TrackField struct {
	Key, Value string
}

// A Track is a struct for representing the track declaration line of
// BED and bedGraph files. See
// https://genome.ucsc.edu/goldenPath/help/customTrack.html#TRACK
type Track struct {
	// Fields are kept in declaration order.
	Fields []TrackField
}

// NewTrack allocates and initializes a new Track.
func NewTrack(fields ...TrackField) *Track {
	return &Track{Fields: fields}
}

// IdentityTrack is the track declaration of alignment summaries: a
// bedGraph track named "identity" with automatic scaling.
func IdentityTrack() *Track {
	return NewTrack(
		TrackField{"type", "bedGraph"},
		TrackField{"name", "identity"},
		TrackField{"autoScale", "on"},
	)
}

// Get returns the value of the given field.
func (track *Track) Get(key string) (string, bool) {
	for _, field := range track.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func quoteTrackValue(key, value string) bool {
	switch key {
	case "name", "description":
		return true
	}
	return strings.ContainsAny(value, " \t")
}

// String formats the track declaration line, without a trailing
// newline. Values of name and description fields, and values that
// contain whitespace, are quoted.
func (track *Track) String() string {
	var sb strings.Builder
	sb.WriteString("track")
	for _, field := range track.Fields {
		sb.WriteByte(' ')
		sb.WriteString(field.Key)
		sb.WriteByte('=')
		if quoteTrackValue(field.Key, field.Value) {
			sb.WriteByte('"')
			sb.WriteString(field.Value)
			sb.WriteByte('"')
		} else {
			sb.WriteString(field.Value)
		}
	}
	return sb.String()
}

// ParseTrack parses a track declaration line.
func ParseTrack(line string) (*Track, error) {
	rest := strings.TrimSpace(line)
	if rest != "track" && !strings.HasPrefix(rest, "track ") {
		return nil, fmt.Errorf("invalid track line %q", line)
	}
	rest = strings.TrimSpace(rest[len("track"):])
	track := NewTrack()
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("invalid track field in %q", line)
		}
		key := rest[:eq]
		rest = rest[eq+1:]
		var value string
		if strings.HasPrefix(rest, "\"") {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in track line %q", line)
			}
			value, rest = rest[1:end+1], rest[end+2:]
		} else if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
			value, rest = rest[:sp], rest[sp:]
		} else {
			value, rest = rest, ""
		}
		track.Fields = append(track.Fields, TrackField{key, value})
		rest = strings.TrimSpace(rest)
	}
	return track, nil
}

// A Region is one data line of an alignment summary: an interval on
// a reference sequence with its identity value. The remaining columns
// are kept as strings in OptionalFields.
type Region struct {
	Chrom          string
	Start          int64
	End            int64
	Value          float64
	OptionalFields []string
}

// NewRegion parses the columns of one data line into a Region.
func NewRegion(fields []string) (*Region, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("expected at least 4 columns, got %v", len(fields))
	}
	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if end < start {
		return nil, errors.New("end before start")
	}
	value, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return &Region{
		Chrom:          fields[0],
		Start:          start,
		End:            end,
		Value:          value,
		OptionalFields: fields[4:],
	}, nil
}

// A Summary is an alignment summary file read back into memory.
type Summary struct {
	Track     *Track
	Header    []string
	RegionMap map[string][]*Region
}

// NewSummary allocates and initializes an empty Summary.
func NewSummary() *Summary {
	return &Summary{RegionMap: make(map[string][]*Region)}
}

// AddRegion adds a region to the summary region map.
func (summary *Summary) AddRegion(region *Region) {
	summary.RegionMap[region.Chrom] = append(summary.RegionMap[region.Chrom], region)
}

func (summary *Summary) sortRegions() {
	for _, regions := range summary.RegionMap {
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].Start < regions[j].Start
		})
	}
}

// ChromLess orders reference names the way genome browsers list them:
// names of the form chr<N> by number first, then all other names
// alphabetically.
func ChromLess(chrom1, chrom2 string) bool {
	n1, err1 := strconv.Atoi(strings.TrimPrefix(chrom1, "chr"))
	n2, err2 := strconv.Atoi(strings.TrimPrefix(chrom2, "chr"))
	switch {
	case err1 == nil && err2 == nil:
		if n1 != n2 {
			return n1 < n2
		}
		return chrom1 < chrom2
	case err1 == nil:
		return true
	case err2 == nil:
		return false
	default:
		return chrom1 < chrom2
	}
}

// Chroms returns the reference names of the summary, ordered by
// ChromLess.
func (summary *Summary) Chroms() []string {
	chroms := make([]string, 0, len(summary.RegionMap))
	for chrom := range summary.RegionMap {
		chroms = append(chroms, chrom)
	}
	sort.Slice(chroms, func(i, j int) bool { return ChromLess(chroms[i], chroms[j]) })
	return chroms
}

// ChromStats summarizes the regions of one reference sequence.
type ChromStats struct {
	Chrom   string
	Regions int
	// AlignedBases is the sum of the region lengths. Overlapping
	// regions are counted separately.
	AlignedBases int64
	MeanValue    float64
	MinValue     float64
	MaxValue     float64
}

// Stats returns per-reference statistics, ordered by ChromLess.
func (summary *Summary) Stats() []ChromStats {
	chroms := summary.Chroms()
	stats := make([]ChromStats, 0, len(chroms))
	for _, chrom := range chroms {
		regions := summary.RegionMap[chrom]
		s := ChromStats{Chrom: chrom, Regions: len(regions), MinValue: regions[0].Value, MaxValue: regions[0].Value}
		var sum float64
		for _, region := range regions {
			sum += region.Value
			s.AlignedBases += region.End - region.Start
			s.MinValue = min(s.MinValue, region.Value)
			s.MaxValue = max(s.MaxValue, region.Value)
		}
		s.MeanValue = sum / float64(len(regions))
		stats = append(stats, s)
	}
	return stats
}
