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

package internal

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators, as in 1,234,567.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercentage formats part/total as a percentage with two
// decimals. It returns "-" if total is 0.
func FormatPercentage(part, total int64) string {
	if total == 0 {
		return "-"
	}
	return printer.Sprintf("%.2f%%", 100*float64(part)/float64(total))
}
