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

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/exascience/elmetrics/utils"
)

// ProgramMessage is the first line printed when the elmetrics binary
// is called.
var ProgramMessage = fmt.Sprint(
	"\n", utils.ProgramName, " version ", utils.ProgramVersion,
	" compiled with ", runtime.Version(),
	" - see ", utils.ProgramURL, " for more information.\n",
)

func logCheckFile(parameter, format string, v ...interface{}) {
	if parameter != "" {
		log.Printf(format+" for command line parameter %v.\n", append(v, parameter)...)
	} else {
		log.Printf(format+".\n", v...)
	}
}

func checkExist(parameter, filename string) bool {
	if len(filename) == 0 {
		logCheckFile(parameter, "Error: Missing filename")
		return false
	}
	if filename[0] == '-' {
		logCheckFile(parameter, "Error: Missing filename before %v", filename)
		return false
	}
	if filename == "/dev/stdin" {
		return true
	}
	if _, err := os.Stat(filename); err == nil {
		return true
	} else if os.IsNotExist(err) {
		logCheckFile(parameter, "Error: File %v does not exist", filename)
		return false
	} else if os.IsPermission(err) {
		logCheckFile(parameter, "Error: No permission to read file %v", filename)
		return false
	} else {
		logCheckFile(parameter, "Error %v when trying to access file %v", err, filename)
		return false
	}
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/%v/%v-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log",
		utils.ProgramName, utils.ProgramName,
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput creates a log file below path, or below $HOME when
// path is empty, and duplicates all output of the standard logger and
// of stderr into that file.
func setLogOutput(path string) (err error) {
	logPath := createLogFilename()
	var fullPath string
	if path == "" {
		fullPath = filepath.Join(os.Getenv("HOME"), logPath)
	} else {
		fullPath = filepath.Join(path, logPath)
	}
	if err = os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return fmt.Errorf("%w, while creating log directory", err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("%w, while creating log file", err)
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return fmt.Errorf("%w, while duplicating stderr", err)
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err = unix.Dup2(int(f.Fd()), 2); err != nil {
		return fmt.Errorf("%w, while redirecting stderr to %v", err, fullPath)
	}

	log.SetOutput(io.MultiWriter(f, ferr))
	log.Println("Created log file at", fullPath)
	log.Println("Command line:", os.Args)
	return nil
}

// timedRun runs one phase of a command. When timed is set, the phase
// message and its elapsed time are logged. When profile is not
// empty, a CPU profile of the phase is written to
// <profile><phase>.prof.
func timedRun(timed bool, profile, msg string, phase int64, f func() error) (err error) {
	if profile != "" {
		filename := profile + strconv.FormatInt(phase, 10) + ".prof"
		file, ferr := os.Create(filename)
		if ferr != nil {
			return fmt.Errorf("%w, while creating profile %v", ferr, filename)
		}
		defer func() {
			if nerr := file.Close(); err == nil {
				err = nerr
			}
		}()
		if perr := pprof.StartCPUProfile(file); perr != nil {
			return fmt.Errorf("%w, while starting profile %v", perr, filename)
		}
		defer pprof.StopCPUProfile()
	}
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			log.Println("Elapsed time: ", time.Since(start))
		}()
	}
	return f()
}
