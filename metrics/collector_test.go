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
	"fmt"
	"math/rand"
	"testing"

	"github.com/exascience/elmetrics/sam"
)

func TestCollectorFiltering(t *testing.T) {
	c := NewCollector(DefaultMaxIndelLength)
	alns := []*sam.Alignment{
		newTestAlignment(t, "secondary", sam.Secondary, 60, 0, "10="),
		newTestAlignment(t, "multi", 0, 0, 0, "8=2X"),
		newTestAlignment(t, "supplementary", sam.Supplementary, 60, 0, "4H6="),
		newTestAlignment(t, "primary", sam.First, 60, 0, "10=10X"),
		newTestAlignment(t, "unmapped", sam.Unmapped, 0, -1, "*"),
	}
	for _, aln := range alns {
		if err := c.Process(aln); err != nil {
			t.Fatal(err)
		}
	}
	if c.Stats.Alignments != 5 || c.Stats.NotPrimary != 1 || c.Stats.Unqualified != 2 || c.Stats.Qualified != 2 {
		t.Error("Stats failed", c.Stats)
	}
	if c.Stats.Unmapped != 1 || c.Stats.Supplementary != 1 {
		t.Error("flag counts failed", c.Stats)
	}
	if c.Lengths.Total() != 4 || c.Lengths.Count(0) != 1 || c.Lengths.Count(10) != 1 || c.Lengths.Count(6) != 1 || c.Lengths.Count(20) != 1 {
		t.Error("length distribution failed", c.Lengths.Keys())
	}
	if c.Identities.Total() != 2 || c.Identities.Count(1) != 1 || c.Identities.Count(0.5) != 1 {
		t.Error("identity distribution failed", c.Identities.Keys())
	}
	if c.Summary.Len() != 2 {
		t.Error("summary table failed", c.Summary.Len())
	}
	for _, row := range c.Summary.Rows() {
		if row.MAPQ == 0 {
			t.Error("summary table contains a MAPQ 0 alignment")
		}
	}
}

func TestCollectorKeyOverwrite(t *testing.T) {
	c := NewCollector(DefaultMaxIndelLength)
	first := newTestAlignment(t, "read", 0, 10, 100, "10=")
	second := newTestAlignment(t, "read", 0, 30, 100, "2S10=")
	for _, aln := range []*sam.Alignment{first, second} {
		if err := c.Process(aln); err != nil {
			t.Fatal(err)
		}
	}
	if c.Summary.Len() != 1 || c.Summary.Collisions() != 1 {
		t.Fatal("key overwrite failed", c.Summary.Len())
	}
	row := c.Summary.Rows()[0]
	if row.MAPQ != 30 || row.InferredLength != 12 {
		t.Error("later alignment did not win", row)
	}
	if c.Identities.Count(1) != 2 {
		t.Error("identity distribution lost an alignment")
	}
}

func TestCollectorAmbiguous(t *testing.T) {
	c := NewCollector(DefaultMaxIndelLength)
	err := c.Process(newTestAlignment(t, "r", 0, 60, 0, "100M"))
	var ambiguous *AmbiguousCigarError
	if !errors.As(err, &ambiguous) {
		t.Error("ambiguous CIGAR not rejected", err)
	}
	if c.Stats.Alignments != 0 || c.Lengths.Len() != 0 {
		t.Error("failed alignment was collected")
	}
	if err := c.Process(newTestAlignment(t, "r", 0, 0, 0, "100M")); err != nil {
		t.Error("MAPQ 0 alignment was interpreted", err)
	}
}

func makeRandomAlignments(t testing.TB, n int) []*sam.Alignment {
	rnd := rand.New(rand.NewSource(42))
	alns := make([]*sam.Alignment, n)
	for i := range alns {
		var flag uint16
		switch rnd.Intn(10) {
		case 0:
			flag = sam.Secondary
		case 1:
			flag = sam.Supplementary
		}
		cigar := fmt.Sprintf("%dS%d=%dX%dI%dD%d=", rnd.Intn(5), 1+rnd.Intn(50), rnd.Intn(3), rnd.Intn(80), rnd.Intn(80), 1+rnd.Intn(20))
		alns[i] = newTestAlignment(t, fmt.Sprintf("read%d", rnd.Intn(50)), flag, byte(rnd.Intn(4)), int32(rnd.Intn(20)), cigar)
		if i > 0 && i%100 == 0 {
			// repeat an earlier alignment, possibly from another batch, so that keys collide
			aln := *alns[i/2]
			aln.FLAG = 0
			aln.MAPQ = byte(1 + rnd.Intn(60))
			alns[i] = &aln
		}
	}
	return alns
}

func collectorsEqual(c1, c2 *Collector) bool {
	if c1.Stats != c2.Stats || c1.Audit.Bases != c2.Audit.Bases || c1.Audit.Records != c2.Audit.Records {
		return false
	}
	if c1.Identities.Len() != c2.Identities.Len() || c1.Lengths.Len() != c2.Lengths.Len() {
		return false
	}
	for _, key := range c1.Identities.Keys() {
		if c1.Identities.Count(key) != c2.Identities.Count(key) {
			return false
		}
	}
	for _, key := range c1.Lengths.Keys() {
		if c1.Lengths.Count(key) != c2.Lengths.Count(key) {
			return false
		}
	}
	if c1.Summary.Len() != c2.Summary.Len() || c1.Summary.Collisions() != c2.Summary.Collisions() {
		return false
	}
	for i, row := range c1.Summary.Rows() {
		if row != c2.Summary.Rows()[i] {
			return false
		}
	}
	return true
}

func TestRunPipeline(t *testing.T) {
	alns := makeRandomAlignments(t, 100000)
	sequential := NewCollector(DefaultMaxIndelLength)
	for _, aln := range alns {
		if err := sequential.Process(aln); err != nil {
			t.Fatal(err)
		}
	}
	if sequential.Summary.Collisions() == 0 {
		t.Fatal("test data without key collisions")
	}
	parallel, err := RunPipeline(alns, DefaultMaxIndelLength)
	if err != nil {
		t.Fatal(err)
	}
	if !collectorsEqual(sequential, parallel) {
		t.Error("RunPipeline differs from sequential processing")
	}
}

func TestRunPipelineAmbiguous(t *testing.T) {
	alns := makeRandomAlignments(t, 10000)
	alns[7777] = newTestAlignment(t, "ambiguous", 0, 60, 0, "100M")
	_, err := RunPipeline(alns, DefaultMaxIndelLength)
	var ambiguous *AmbiguousCigarError
	if !errors.As(err, &ambiguous) {
		t.Error("RunPipeline did not report ambiguous CIGAR", err)
	}
}

func TestOperatorAudit(t *testing.T) {
	audit := NewOperatorAudit()
	audit.Add(newTestAlignment(t, "r", 0, 60, 0, "5S10=3N10="))
	audit.Add(newTestAlignment(t, "r", 0, 60, 0, "10=1X"))
	var operations []byte
	audit.Range(func(operation byte, bases, records int64) {
		operations = append(operations, operation)
		switch operation {
		case '=':
			if bases != 30 || records != 2 {
				t.Error("audit of = failed", bases, records)
			}
		case 'N':
			if bases != 3 || records != 1 {
				t.Error("audit of N failed", bases, records)
			}
		}
	})
	if string(operations) != "=XSN" {
		t.Error("audit operations failed", string(operations))
	}
}
