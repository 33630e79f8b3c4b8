// Package diagnostics provides non-essential instrumentation for the
// decoders: a stable per-frame fingerprint used to correlate captured
// sessions (see package capture) and to deduplicate crash reports.
//
// Fingerprinting is not part of the decode path itself — a stream never
// consults it — so a bug here cannot corrupt a decoded record.
package diagnostics

import "github.com/cespare/xxhash/v2"

// Fingerprint returns the xxHash64 of a frame's raw body bytes. Two frames
// with identical bytes (e.g. the same ping re-logged into two files) produce
// the same fingerprint regardless of record type.
func Fingerprint(body []byte) uint64 {
	return xxhash.Sum64(body)
}
