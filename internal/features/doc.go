// Package features defines the canonical feature vector for one video and
// the builder that assembles it from external analyzer output. Metric
// identifiers form a closed set; behavior for each metric lives in
// exhaustive tables here and in the scoring package, so adding a metric is
// a compile-checked table edit. A metric absent from a vector means "no
// evidence", which is distinct from a measured value of zero.
package features
