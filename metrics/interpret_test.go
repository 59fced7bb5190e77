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
	"errors"
	"strings"
	"testing"

	htssam "github.com/biogo/hts/sam"

	"github.com/exascience/elmetrics/sam"
)

func newTestAlignment(t testing.TB, qname string, flag uint16, mapq byte, pos int32, cigar string) *sam.Alignment {
	packed, err := htssam.ParseCigar([]byte(cigar))
	if err != nil {
		t.Fatal(err)
	}
	ops := sam.DecodeCigar(packed)
	return sam.NewAlignment(qname, "chr1", flag, mapq, pos, queryLength(ops), ops)
}

func queryLength(ops []sam.CigarOperation) (length int32) {
	for _, op := range ops {
		switch op.Operation {
		case 'M', 'I', 'S', '=', 'X':
			length += int32(op.Length)
		}
	}
	return length
}

func TestInterpretScenario(t *testing.T) {
	aln := newTestAlignment(t, "read1", 0, 10, 100, "10=2X60D5I")
	c, err := Interpret(aln, 50)
	if err != nil {
		t.Fatal(err)
	}
	if c.Matches != 10 {
		t.Error("matches failed", c.Matches)
	}
	if c.Mismatches != 7 {
		t.Error("mismatches failed", c.Mismatches)
	}
	if c.IndelCount != 1 || c.IndelTotalLength != 60 {
		t.Error("large indels failed", c.IndelCount, c.IndelTotalLength)
	}
	if c.End != 172 {
		t.Error("end failed", c.End)
	}
	if c.InferredLength != 17 {
		t.Error("inferred length failed", c.InferredLength)
	}
	if Identity(c.Matches, c.Mismatches) != 0.5882353 {
		t.Error("identity failed", Identity(c.Matches, c.Mismatches))
	}
}

func TestInterpretIndelThreshold(t *testing.T) {
	c, err := Interpret(newTestAlignment(t, "r", 0, 60, 0, "10=50I"), 50)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mismatches != 50 || c.IndelCount != 0 || c.IndelTotalLength != 0 {
		t.Error("insertion of 50 failed", c)
	}
	c, err = Interpret(newTestAlignment(t, "r", 0, 60, 0, "10=51I"), 50)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mismatches != 0 || c.IndelCount != 1 || c.IndelTotalLength != 51 {
		t.Error("insertion of 51 failed", c)
	}
	if c.InferredLength != 61 {
		t.Error("inferred length with large insertion failed", c.InferredLength)
	}
	c, err = Interpret(newTestAlignment(t, "r", 0, 60, 0, "10=51D"), 50)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mismatches != 0 || c.IndelCount != 1 || c.IndelTotalLength != 51 || c.End != 61 || c.InferredLength != 10 {
		t.Error("deletion of 51 failed", c)
	}
}

func TestInterpretZeroThreshold(t *testing.T) {
	c, err := Interpret(newTestAlignment(t, "r", 0, 60, 0, "10=500I3D"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mismatches != 503 || c.IndelCount != 0 || c.IndelTotalLength != 0 {
		t.Error("zero threshold failed", c)
	}
}

func TestInterpretClipsAndSkips(t *testing.T) {
	c, err := Interpret(newTestAlignment(t, "r", 0, 60, 5, "5H3S10=100N2P10=4S"), 50)
	if err != nil {
		t.Fatal(err)
	}
	if c.Matches != 20 || c.Mismatches != 0 {
		t.Error("matches with clips failed", c)
	}
	if c.InferredLength != 32 {
		t.Error("inferred length with clips failed", c.InferredLength)
	}
	if c.End != 25 {
		t.Error("end with skips failed", c.End)
	}
}

func TestInterpretEmpty(t *testing.T) {
	aln := sam.NewAlignment("r", "*", sam.Unmapped, 0, 7, 0, nil)
	c, err := Interpret(aln, 50)
	if err != nil {
		t.Fatal(err)
	}
	if c != (Counters{End: 7}) {
		t.Error("empty CIGAR failed", c)
	}
}

func TestInterpretAmbiguous(t *testing.T) {
	for _, cigar := range []string{"100M", "10=5M", "5S10=2X1M", "1M10="} {
		_, err := Interpret(newTestAlignment(t, "ambiguous", 0, 60, 0, cigar), 50)
		var ambiguous *AmbiguousCigarError
		if !errors.As(err, &ambiguous) {
			t.Error("M rejection failed for", cigar, err)
			continue
		}
		if ambiguous.QNAME != "ambiguous" || ambiguous.Cigar != cigar {
			t.Error("M rejection details failed", ambiguous.QNAME, ambiguous.Cigar)
		}
		if !strings.Contains(err.Error(), cigar) {
			t.Error("M rejection message failed", err)
		}
	}
}

func TestInterpretUnknown(t *testing.T) {
	aln := sam.NewAlignment("r", "chr1", 0, 60, 0, 10, []sam.CigarOperation{{Length: 10, Operation: '='}, {Length: 1, Operation: 'B'}})
	_, err := Interpret(aln, 50)
	var unknown *UnknownCigarOperationError
	if !errors.As(err, &unknown) || unknown.Operation != 'B' || unknown.Cigar != "10=1B" {
		t.Error("unknown operation failed", err)
	}
}

func BenchmarkInterpret(b *testing.B) {
	aln := newTestAlignment(b, "r", 0, 60, 1000, "5S100=1X200=3I50=60D300=2X10=7S")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Interpret(aln, DefaultMaxIndelLength); err != nil {
			b.Fatal(err)
		}
	}
}
