// Package convert turns a Nextcloud serverinfo XML status page into
// Prometheus text exposition lines.
//
// The pipeline for one document:
//   - flatten.go: depth-first walk over the XML token stream; every element
//     with direct, non-blank text yields (ancestor path, raw text)
//   - coerce.go: numeric coercion; non-numeric text is looked up in the
//     Replacer, anything else is dropped with a debug log line
//   - names.go: path → metric name, occurrence suffixes for repeated names
//   - signature.go: drift signature over the sorted set of undecorated names
//   - convert.go: Convert(r, replacer, reserved...) drives the above and returns a Result
//     that renders the final text block, optionally behind an opaque prefix
//
// A malformed document never fails the conversion: records produced before
// the syntax error are kept and the trailer is computed over them.
package convert
