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

package report

import "fmt"

// An OutputDirectoryExistsError is returned when the output directory
// of a run already exists.
type OutputDirectoryExistsError struct {
	Path string
}

func (err *OutputDirectoryExistsError) Error() string {
	return fmt.Sprintf("output directory %v already exists", err.Path)
}

// A FileWriteError is returned when an output file or directory
// cannot be created or written.
type FileWriteError struct {
	Path string
	Err  error
}

func (err *FileWriteError) Error() string {
	return fmt.Sprintf("%v, while writing %v", err.Err, err.Path)
}

func (err *FileWriteError) Unwrap() error {
	return err.Err
}

// An ExternalSortUnavailable error is returned when the external sort
// command cannot be started.
type ExternalSortUnavailable struct {
	Command string
	Err     error
}

func (err *ExternalSortUnavailable) Error() string {
	return fmt.Sprintf("external sort command %v unavailable: %v", err.Command, err.Err)
}

func (err *ExternalSortUnavailable) Unwrap() error {
	return err.Err
}

// An ExternalSortFailed error is returned when the external sort
// command does not complete successfully. ExitCode is -1 if the
// command was killed, for example because it timed out, or was never
// started because the summary could not be opened.
type ExternalSortFailed struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (err *ExternalSortFailed) Error() string {
	if err.Stderr != "" {
		return fmt.Sprintf("external sort command %v failed with exit code %v: %v", err.Command, err.ExitCode, err.Stderr)
	}
	return fmt.Sprintf("external sort command %v failed with exit code %v: %v", err.Command, err.ExitCode, err.Err)
}

func (err *ExternalSortFailed) Unwrap() error {
	return err.Err
}
