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

import "slices"

// A Distribution counts how often each key occurs. Counts are only
// ever incremented.
type Distribution[K int64 | float64] struct {
	counts map[K]int64
}

// NewDistribution allocates and initializes an empty Distribution.
func NewDistribution[K int64 | float64]() *Distribution[K] {
	return &Distribution[K]{counts: make(map[K]int64)}
}

// Increment adds one occurrence of key.
func (d *Distribution[K]) Increment(key K) {
	d.counts[key]++
}

// Count returns the number of occurrences of key.
func (d *Distribution[K]) Count(key K) int64 {
	return d.counts[key]
}

// Len returns the number of distinct keys.
func (d *Distribution[K]) Len() int {
	return len(d.counts)
}

// Total returns the sum of all counts.
func (d *Distribution[K]) Total() (total int64) {
	for _, count := range d.counts {
		total += count
	}
	return total
}

// Merge adds the counts of other to d, key by key.
func (d *Distribution[K]) Merge(other *Distribution[K]) {
	for key, count := range other.counts {
		d.counts[key] += count
	}
}

// Keys returns all keys in ascending order.
func (d *Distribution[K]) Keys() []K {
	keys := make([]K, 0, len(d.counts))
	for key := range d.counts {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Range calls f for each key and its count, in ascending key order.
// Range stops early if f returns false.
func (d *Distribution[K]) Range(f func(key K, count int64) bool) {
	for _, key := range d.Keys() {
		if !f(key, d.counts[key]) {
			return
		}
	}
}
