// Package services defines the shared error taxonomy for reelcheck.
// Sentinel errors classify failures at the point they occur; callers use
// errors.Is to decide whether a failure invalidates input, reflects a broken
// external tool, or is merely missing evidence (which is never an error).
package services
