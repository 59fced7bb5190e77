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

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// A PostProcessor derives a new report from a written alignment
// summary file, and returns the path of the derived file. The
// summary file itself is left untouched, and remains valid if
// Process fails.
type PostProcessor interface {
	Process(ctx context.Context, summaryPath string) (string, error)
}

// DefaultSortCommand sorts tab-separated lines by reference name, and
// then numerically by start position.
var DefaultSortCommand = []string{"sort", "-k1,1", "-k2,2n"}

// DefaultSortTimeout bounds the run time of the external sort command.
const DefaultSortTimeout = time.Hour

// An ExternalSort is a PostProcessor that sorts the rows of an
// alignment summary by coordinate using an external sort command, in
// the C locale. The preamble lines are copied unchanged. The result
// is written next to the summary, see SortedSummaryFilename.
type ExternalSort struct {
	Command []string
	Timeout time.Duration
}

// NewExternalSort returns an ExternalSort with the default command
// and timeout.
func NewExternalSort() *ExternalSort {
	return &ExternalSort{Command: DefaultSortCommand, Timeout: DefaultSortTimeout}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ManualCommand returns a shell command line that performs the same
// sort, for users to run by hand when Process fails.
func (s *ExternalSort) ManualCommand(summaryPath string) string {
	in, out := shellQuote(summaryPath), shellQuote(SortedSummaryFilename(summaryPath))
	return fmt.Sprintf("(head -n %d %v && tail -n +%d %v | LC_ALL=C %v) > %v",
		SummaryPreambleLines, in, SummaryPreambleLines+1, in, strings.Join(s.Command, " "), out)
}

// Process implements the PostProcessor interface.
//
// It returns an *ExternalSortUnavailable error if the command cannot
// be started, and an *ExternalSortFailed error if it exits with a
// non-zero status or times out.
func (s *ExternalSort) Process(ctx context.Context, summaryPath string) (sortedPath string, err error) {
	if len(s.Command) == 0 {
		return "", &ExternalSortUnavailable{Err: errors.New("no sort command configured")}
	}
	command := strings.Join(s.Command, " ")
	in, err := os.Open(summaryPath)
	if err != nil {
		return "", &ExternalSortFailed{Command: command, ExitCode: -1, Err: fmt.Errorf("%w, while opening summary %v", err, summaryPath)}
	}
	defer func() {
		_ = in.Close()
	}()
	reader := bufio.NewReader(in)

	sortedPath = SortedSummaryFilename(summaryPath)
	tmpPath := filepath.Join(filepath.Dir(sortedPath), "."+uuid.NewString()+".tmp")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return "", &FileWriteError{Path: tmpPath, Err: err}
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()
	for i := 0; i < SummaryPreambleLines; i++ {
		line, err := reader.ReadString('\n')
		if _, werr := tmp.WriteString(line); werr != nil {
			return "", &FileWriteError{Path: tmpPath, Err: werr}
		}
		if err != nil {
			break
		}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, s.Command[0], s.Command[1:]...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stdin = reader
	cmd.Stdout = tmp
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return "", &ExternalSortFailed{Command: command, ExitCode: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String()), Err: err}
		case ctx.Err() != nil:
			return "", &ExternalSortFailed{Command: command, ExitCode: -1, Err: ctx.Err()}
		default:
			return "", &ExternalSortUnavailable{Command: command, Err: err}
		}
	}
	if err := tmp.Close(); err != nil {
		return "", &FileWriteError{Path: tmpPath, Err: err}
	}
	tmp = nil
	if err := os.Rename(tmpPath, sortedPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", &FileWriteError{Path: sortedPath, Err: err}
	}
	return sortedPath, nil
}
