// Package preflight provides readiness checks for the external tools and
// filesystem paths that reelcheck depends on.
//
// These checks run in two contexts:
//   - Evaluation commands call RunAll before starting work. A failed check
//     surfaces misconfiguration up front instead of as a wall of failed
//     analyzer subprocesses.
//   - The CLI "reelcheck status" command uses the individual check
//     functions to display environment health.
package preflight
