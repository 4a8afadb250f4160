// Package calibration loads optional trained weighting artifacts and
// applies them to scalar evidence vectors. A missing, unreadable, or
// schema-invalid artifact is the normal case, not an error: the loader
// reports absence through its boolean return and callers wire that branch
// to their hand-tuned fallback by construction.
package calibration
