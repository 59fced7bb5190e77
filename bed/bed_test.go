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
	"os"
	"path/filepath"
	"testing"
)

func TestIdentityTrack(t *testing.T) {
	if line := IdentityTrack().String(); line != `track type=bedGraph name="identity" autoScale=on` {
		t.Error("IdentityTrack failed", line)
	}
}

func TestParseTrack(t *testing.T) {
	track, err := ParseTrack(`track type=bedGraph name="identity score" autoScale=on`)
	if err != nil {
		t.Fatal(err)
	}
	if len(track.Fields) != 3 {
		t.Fatal("ParseTrack field count failed", track.Fields)
	}
	if value, _ := track.Get("name"); value != "identity score" {
		t.Error("ParseTrack quoted value failed", value)
	}
	if value, _ := track.Get("autoScale"); value != "on" {
		t.Error("ParseTrack last value failed", value)
	}
	if _, ok := track.Get("color"); ok {
		t.Error("ParseTrack invented a field")
	}
	if _, err := ParseTrack("tracks type=bedGraph"); err == nil {
		t.Error("ParseTrack accepted an invalid line")
	}
	if _, err := ParseTrack(`track name="identity`); err == nil {
		t.Error("ParseTrack accepted an unterminated quote")
	}
	roundTrip, err := ParseTrack(IdentityTrack().String())
	if err != nil || roundTrip.String() != IdentityTrack().String() {
		t.Error("ParseTrack round trip failed")
	}
}

func TestChromLess(t *testing.T) {
	if !ChromLess("chr2", "chr10") {
		t.Error("ChromLess 1 failed")
	}
	if ChromLess("chr10", "chr2") {
		t.Error("ChromLess 2 failed")
	}
	if !ChromLess("chr22", "chrX") {
		t.Error("ChromLess 3 failed")
	}
	if !ChromLess("chrM", "chrX") {
		t.Error("ChromLess 4 failed")
	}
}

const testSummary = "track type=bedGraph name=\"identity\" autoScale=on\n" +
	"#chr\tstart_pos\tend_pos\tidentity\tmatches\tnonmatches\tlargeINDELs\tlargeINDEL_total_length\tinferred_len\tmapq\talignmentName\n" +
	"chr10\t500\t600\t0.5\t50\t50\t0\t0\t100\t60\tchr10_500_600_50_50_r3\n" +
	"chr2\t300\t400\t1\t100\t0\t0\t0\t100\t60\tchr2_300_400_100_0_r2\n" +
	"chr2\t100\t200\t0.75\t75\t25\t0\t0\t100\t60\tchr2_100_200_75_25_r1\n"

func TestParseSummary(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "summary.tsv")
	if err := os.WriteFile(filename, []byte(testSummary), 0666); err != nil {
		t.Fatal(err)
	}
	summary, err := ParseSummary(filename)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Track == nil || summary.Track.String() != IdentityTrack().String() {
		t.Error("ParseSummary track failed")
	}
	if len(summary.Header) != 11 || summary.Header[0] != "#chr" {
		t.Error("ParseSummary header failed", summary.Header)
	}
	chr2 := summary.RegionMap["chr2"]
	if len(chr2) != 2 || chr2[0].Start != 100 || chr2[1].Start != 300 {
		t.Error("ParseSummary region order failed")
	}
	if chr2[0].OptionalFields[6] != "chr2_100_200_75_25_r1" {
		t.Error("ParseSummary optional fields failed", chr2[0].OptionalFields)
	}
	stats := summary.Stats()
	if len(stats) != 2 || stats[0].Chrom != "chr2" || stats[1].Chrom != "chr10" {
		t.Fatal("Stats order failed", stats)
	}
	if stats[0].Regions != 2 || stats[0].AlignedBases != 200 || stats[0].MeanValue != 0.875 || stats[0].MinValue != 0.75 || stats[0].MaxValue != 1 {
		t.Error("Stats values failed", stats[0])
	}
}

func TestParseSummaryInvalid(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "summary.tsv")
	if err := os.WriteFile(filename, []byte("chr1\t200\t100\t0.5\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSummary(filename); err == nil {
		t.Error("ParseSummary accepted end before start")
	}
}
