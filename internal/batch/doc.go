// Package batch fans the evaluator out over many videos with bounded
// concurrency and per-item fault isolation. One video's failure becomes a
// synthetic failed report; it never aborts or reorders the rest of the
// run.
package batch
