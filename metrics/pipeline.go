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
	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/elmetrics/sam"
)

const (
	minBatchSize = 4096
	maxBatchSize = 262144
)

// CollectAlignments returns a pargo pipeline.Filter that collects
// slices of Alignment pointers into a fresh, private Collector per
// batch. The first error stops the pipeline.
func CollectAlignments(maxIndelLength int) pipeline.Filter {
	return func(p *pipeline.Pipeline, _ pipeline.NodeKind, _ *int) (receiver pipeline.Receiver, _ pipeline.Finalizer) {
		receiver = func(_ int, data interface{}) interface{} {
			batch := NewCollector(maxIndelLength)
			for _, aln := range data.([]*sam.Alignment) {
				if err := batch.Process(aln); err != nil {
					p.SetErr(err)
					break
				}
			}
			return batch
		}
		return
	}
}

// MergeInto returns a pargo pipeline.Filter that merges the Collector
// batches it receives into result. It must be used in an ordered
// node, so that batches are merged in file order.
func MergeInto(result *Collector) pipeline.Filter {
	return pipeline.Receive(func(_ int, data interface{}) interface{} {
		result.Merge(data.(*Collector))
		return nil
	})
}

// RunPipeline collects all alignments delivered by source, which is
// either a pargo pipeline.Source such as a *sam.InputFile, or a slice
// of Alignment pointers. Batches of alignments are collected in
// parallel and merged in source order, so the result is the same as
// calling Process on each alignment in sequence.
//
// RunPipeline returns the collected metrics, and the first error
// that occurred, if any. After an error, the returned Collector is
// incomplete.
func RunPipeline(source interface{}, maxIndelLength int) (*Collector, error) {
	result := NewCollector(maxIndelLength)
	var p pipeline.Pipeline
	p.Source(source)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, CollectAlignments(maxIndelLength)),
		pipeline.StrictOrd(MergeInto(result)),
	)
	p.Run()
	return result, p.Err()
}
