// Package ffprobe wraps the ffprobe binary for container inspection.
// The feature builder uses it to collect video-intrinsic metadata
// (duration, resolution, frame rate) before any analyzer runs.
package ffprobe
