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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/biogo/hts/bam"
	htssam "github.com/biogo/hts/sam"

	"github.com/exascience/elmetrics/utils"
)

type (
	// recordReader is the common interface of the biogo/hts SAM and
	// BAM readers.
	recordReader interface {
		Read() (*htssam.Record, error)
	}

	// InputFile represents a SAM or BAM file for input. It yields
	// Alignment values in file order.
	//
	// InputFile implements the pargo pipeline.Source interface, so it
	// can directly feed a pargo pipeline.
	InputFile struct {
		rc       io.Closer
		reader   recordReader
		extended bool
		data     []*Alignment
		err      error

		// Read is the number of records read from the file so far.
		Read int64
		// Skipped is the number of records not delivered because they
		// are secondary or supplementary, and the file was not opened
		// for extended input.
		Skipped int64
	}
)

// SAM file extensions.
const (
	SamExt  = ".sam"
	BamExt  = ".bam"
	cramExt = ".cram"
)

// Open a SAM or BAM file for input.
//
// If the filename extension is not .bam, then .sam is always
// assumed, either plain or BGZF-compressed. If the name is
// "/dev/stdin", then the input is read from os.Stdin.
//
// If extended is false, secondary and supplementary records are
// skipped by the InputFile and never delivered.
func Open(name string, extended bool) (*InputFile, error) {
	switch filepath.Ext(name) {
	case BamExt:
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		reader, err := bam.NewReader(bufio.NewReader(file), 0)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("%w, while opening BAM file %v", err, name)
		}
		return &InputFile{
			rc:       multiCloser{reader, file},
			reader:   reader,
			extended: extended,
		}, nil
	case cramExt:
		return nil, fmt.Errorf("CRAM format not supported when opening %v", name)
	default:
		var file *os.File
		if name == "/dev/stdin" {
			file = os.Stdin
		} else {
			var err error
			if file, err = os.Open(name); err != nil {
				return nil, err
			}
		}
		var closers multiCloser
		if file != os.Stdin {
			closers = append(closers, file)
		}
		text, bgzfReader, err := utils.HandleBGZF(bufio.NewReader(file))
		if bgzfReader != nil {
			closers = append(multiCloser{bgzfReader}, closers...)
		}
		var reader *htssam.Reader
		if err == nil {
			reader, err = htssam.NewReader(text)
		}
		if err != nil {
			_ = closers.Close()
			return nil, fmt.Errorf("%w, while opening SAM file %v", err, name)
		}
		return &InputFile{rc: closers, reader: reader, extended: extended}, nil
	}
}

type multiCloser []io.Closer

func (closers multiCloser) Close() (err error) {
	for _, c := range closers {
		if nerr := c.Close(); err == nil {
			err = nerr
		}
	}
	return err
}

// Close closes the SAM/BAM input file.
func (f *InputFile) Close() error {
	if f.rc == nil {
		return nil
	}
	return f.rc.Close()
}

// FromRecord converts a biogo/hts record into an Alignment. The
// CIGAR operations are decoded once, here.
func FromRecord(rec *htssam.Record) *Alignment {
	rname := "*"
	if rec.Ref != nil {
		rname = rec.Ref.Name()
	}
	return &Alignment{
		QNAME:       rec.Name,
		RNAME:       rname,
		FLAG:        uint16(rec.Flags),
		MAPQ:        rec.MapQ,
		POS:         int32(rec.Pos),
		QueryLength: int32(rec.Seq.Length),
		Cigar:       DecodeCigar(rec.Cigar),
	}
}

// Next returns the next alignment of the file, or io.EOF when the
// file is exhausted.
func (f *InputFile) Next() (*Alignment, error) {
	for {
		rec, err := f.reader.Read()
		if err != nil {
			return nil, err
		}
		f.Read++
		if !f.extended && rec.Flags&(htssam.Secondary|htssam.Supplementary) != 0 {
			f.Skipped++
			continue
		}
		return FromRecord(rec), nil
	}
}

// Err implements the method of the pipeline.Source interface.
func (f *InputFile) Err() error {
	return f.err
}

// Prepare implements the method of the pipeline.Source interface.
func (*InputFile) Prepare(_ context.Context) (size int) {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
func (f *InputFile) Fetch(size int) (fetched int) {
	alns := make([]*Alignment, 0, size)
	for fetched = 0; fetched < size; fetched++ {
		aln, err := f.Next()
		if err != nil {
			if err != io.EOF {
				f.err = fmt.Errorf("%w, while reading alignment %v", err, f.Read+1)
			}
			break
		}
		alns = append(alns, aln)
	}
	f.data = alns
	return fetched
}

// Data implements the method of the pipeline.Source interface.
func (f *InputFile) Data() interface{} {
	return f.data
}

// ForEach calls visit once for each remaining alignment of the
// file, in file order. It stops at the first error returned by visit,
// and returns that error.
func (f *InputFile) ForEach(visit func(*Alignment) error) error {
	for {
		aln, err := f.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w, while reading alignment %v", err, f.Read+1)
		}
		if err := visit(aln); err != nil {
			return err
		}
	}
}

// ForEachRecord opens the named SAM or BAM file and calls visit once
// for each alignment, in file order. It stops at the first error
// returned by visit, and returns that error.
func ForEachRecord(name string, extended bool, visit func(*Alignment) error) (err error) {
	input, err := Open(name, extended)
	if err != nil {
		return err
	}
	defer func() {
		nerr := input.Close()
		if err == nil {
			err = nerr
		}
	}()
	if err := input.ForEach(visit); err != nil {
		return fmt.Errorf("%w, in %v", err, name)
	}
	return nil
}
