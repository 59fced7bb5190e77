// Package metrics derives alignment quality metrics from the CIGAR
// operations of alignment records.
//
// Interpret walks the CIGAR operations of one alignment and counts
// matches, mismatches and large indels, and reconstructs the read
// length and the reference end position. Identity turns matches and
// mismatches into a fixed-precision identity score. A Collector
// aggregates per-alignment results into an identity distribution, a
// read-length distribution and a SummaryTable with one row per
// unique alignment key.
//
// Alignments are independent of each other, so RunPipeline can
// process them in parallel using a pargo pipeline. Each batch of
// alignments is collected privately, and batches are merged in file
// order, which gives the same result as processing all alignments
// sequentially with Collector.Process.
package metrics
