// Package sam represents alignment records of SAM/BAM files, as far
// as needed for computing alignment metrics, and provides record
// sources that stream such records from .sam/.bam files.
//
// An Alignment carries the read name, reference name, FLAG, MAPQ,
// leftmost position, the query length reported by the file, and the
// decoded CIGAR operations. Files are read with the biogo/hts
// library. An InputFile implements the pargo pipeline.Source
// interface, so that alignments can be processed in parallel by a
// pargo pipeline, see https://godoc.org/github.com/ExaScience/pargo/pipeline
// for details. ForEachRecord is a simpler sequential alternative.
package sam
