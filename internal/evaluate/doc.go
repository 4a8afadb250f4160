// Package evaluate runs a configurable set of named quality checks against
// one video and aggregates the outcomes into a pass/fail validation
// report. Checks are mutually independent and run concurrently; a check's
// internal failure is converted into a failed result rather than
// propagated, so a report is always produced. The check identifier set is
// closed: behavior per check lives in exhaustive tables keyed by CheckID.
package evaluate
