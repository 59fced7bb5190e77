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

package utils

import (
	"bufio"
	"io"

	"github.com/biogo/hts/bgzf"
)

// IsGzip checks whether the given reader produces a gzip stream by
// looking at the first two bytes, without consuming them.
func IsGzip(buf *bufio.Reader) (bool, error) {
	magic, err := buf.Peek(2)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// HandleBGZF checks if the given reader produces a gzip stream. It
// then either returns a bgzf.Reader, or returns the given reader
// unchanged. The returned closer is nil when buf is returned.
func HandleBGZF(buf *bufio.Reader) (io.Reader, io.Closer, error) {
	ok, err := IsGzip(buf)
	if err != nil || !ok {
		return buf, nil, err
	}
	r, err := bgzf.NewReader(buf, 0)
	if err != nil {
		return nil, nil, err
	}
	return r, r, nil
}
