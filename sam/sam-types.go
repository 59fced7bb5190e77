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

package sam

import (
	"fmt"
	"strconv"
)

// An Alignment represents one alignment record, as delivered by a
// record source. Alignments are constructed once and are read-only
// afterwards.
type Alignment struct {
	QNAME string
	RNAME string
	FLAG  uint16
	MAPQ  byte
	// POS is the leftmost reference coordinate, in the coordinate
	// convention of the record source (0-based for SAM/BAM input
	// read through Open).
	POS int32
	// QueryLength is the length of SEQ as reported by the source,
	// independent of the CIGAR string.
	QueryLength int32
	Cigar       []CigarOperation
}

// NewAlignment allocates and initializes a new Alignment.
func NewAlignment(qname, rname string, flag uint16, mapq byte, pos, queryLength int32, cigar []CigarOperation) *Alignment {
	return &Alignment{
		QNAME:       qname,
		RNAME:       rname,
		FLAG:        flag,
		MAPQ:        mapq,
		POS:         pos,
		QueryLength: queryLength,
		Cigar:       cigar,
	}
}

// Bit values for the FLAG field of an Alignment.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

func (aln *Alignment) IsUnmapped() bool      { return (aln.FLAG & Unmapped) != 0 }
func (aln *Alignment) IsFirstMate() bool     { return (aln.FLAG & First) != 0 }
func (aln *Alignment) IsSecondMate() bool    { return (aln.FLAG & Last) != 0 }
func (aln *Alignment) IsNotPrimary() bool    { return (aln.FLAG & Secondary) != 0 }
func (aln *Alignment) IsPrimary() bool       { return !aln.IsNotPrimary() }
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

// String returns a short description of the alignment for log and
// error messages.
func (aln *Alignment) String() string {
	return fmt.Sprintf("%v %v:%v MAPQ=%v FLAG=%v CIGAR=%v", aln.QNAME, aln.RNAME, aln.POS, aln.MAPQ, aln.FLAG, FormatCigar(aln.Cigar))
}

// A CigarOperation is one decoded operator of a CIGAR string.
type CigarOperation struct {
	Length    uint32
	Operation byte
}

// FormatCigar returns the textual representation of a slice of CIGAR
// operations.
func FormatCigar(cigar []CigarOperation) string {
	if len(cigar) == 0 {
		return "*"
	}
	var buf []byte
	for _, op := range cigar {
		buf = append(strconv.AppendUint(buf, uint64(op.Length), 10), op.Operation)
	}
	return string(buf)
}
