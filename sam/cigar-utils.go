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
	htssam "github.com/biogo/hts/sam"
)

// ForEachCigar calls f once for each CIGAR operation of the
// alignment, from left to right. If f returns false, the walk stops
// early. ForEachCigar can be called any number of times.
func (aln *Alignment) ForEachCigar(f func(operation byte, length uint32) bool) {
	for _, op := range aln.Cigar {
		if !f(op.Operation, op.Length) {
			return
		}
	}
}

// UnknownOperation is the operation character assigned to packed
// CIGAR operations whose type code is not defined by the SAM format.
const UnknownOperation = '?'

// Indexed by the 4-bit operation code of a packed BAM CIGAR operation.
var cigarTypeTable = [16]byte{
	'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X', 'B',
	UnknownOperation, UnknownOperation, UnknownOperation,
	UnknownOperation, UnknownOperation, UnknownOperation,
}

// DecodeCigar decodes packed BAM CIGAR operations, as delivered by
// biogo/hts, into CigarOperations. Each operation is decoded exactly
// once.
func DecodeCigar(cigar htssam.Cigar) []CigarOperation {
	if len(cigar) == 0 {
		return nil
	}
	ops := make([]CigarOperation, len(cigar))
	for i, co := range cigar {
		ops[i] = CigarOperation{
			Length:    uint32(co.Len()),
			Operation: cigarTypeTable[uint32(co)&0xf],
		}
	}
	return ops
}
