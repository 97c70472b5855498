// Package replace loads the operator-defined replacement table that maps
// non-numeric status values ("ok", "yes", "none") to numbers.
//
// File shape:
//
//	{"values": {"ok": 1, "yes": 1, "no": 0, "none": "0"}}
//
// Substitutes may be JSON numbers or numeric strings; each is a tagged Value.
// Entries whose substitute is not numeric are skipped with a warning.
//
// LoadOrEmpty never fails: a missing, unreadable or malformed file yields an
// empty Table so the exporter keeps serving numeric metrics. Store publishes
// the current Table to concurrent readers and Watch (fsnotify) swaps in a
// fresh Table when the file changes.
package replace
