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
	"strings"

	"github.com/willf/bitset"

	"github.com/exascience/elmetrics/sam"
)

// AuditedOperations lists the CIGAR operations tracked by an
// OperatorAudit, in reporting order. The last entry collects
// operations that could not be decoded.
const AuditedOperations = "=XIDSHMNPB?"

// An OperatorAudit records, per CIGAR operation, the total number of
// bases it covers and the number of alignments that contain it.
// Operations that do not contribute to any counter, such as N and P,
// are thereby still accounted for.
type OperatorAudit struct {
	Bases   [len(AuditedOperations)]int64
	Records [len(AuditedOperations)]int64
	seen    *bitset.BitSet
}

// NewOperatorAudit allocates and initializes an empty OperatorAudit.
func NewOperatorAudit() *OperatorAudit {
	return &OperatorAudit{seen: bitset.New(uint(len(AuditedOperations)))}
}

func auditIndex(operation byte) int {
	if i := strings.IndexByte(AuditedOperations, operation); i >= 0 {
		return i
	}
	return len(AuditedOperations) - 1
}

// Add records the CIGAR operations of the given alignment.
func (audit *OperatorAudit) Add(aln *sam.Alignment) {
	audit.seen.ClearAll()
	aln.ForEachCigar(func(operation byte, length uint32) bool {
		i := auditIndex(operation)
		audit.Bases[i] += int64(length)
		audit.seen.Set(uint(i))
		return true
	})
	for i, ok := audit.seen.NextSet(0); ok; i, ok = audit.seen.NextSet(i + 1) {
		audit.Records[i]++
	}
}

// Merge adds the totals of other to audit.
func (audit *OperatorAudit) Merge(other *OperatorAudit) {
	for i := range audit.Bases {
		audit.Bases[i] += other.Bases[i]
		audit.Records[i] += other.Records[i]
	}
}

// Range calls f for each operation that was seen at least once, in
// the order of AuditedOperations.
func (audit *OperatorAudit) Range(f func(operation byte, bases, records int64)) {
	for i := range audit.Records {
		if audit.Records[i] > 0 {
			f(AuditedOperations[i], audit.Bases[i], audit.Records[i])
		}
	}
}
