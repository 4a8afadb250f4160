// Package analyzers invokes the external Python analyzer scripts that
// produce raw quality signals. Every analyzer follows the same subprocess
// contract: JSON on stdout, an {"error": {"message": ...}} payload plus a
// nonzero exit on failure, and a hard per-invocation time box. Analyzer
// failures are classified but never fatal; callers treat a failed analyzer
// as missing evidence.
package analyzers
