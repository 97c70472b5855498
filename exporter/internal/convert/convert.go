package convert

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// SignatureMetric is the name of the drift signature line.
const SignatureMetric = "nc_metric_names_hash"

var signatureComment = []string{
	"# nc_metric_names_hash: first digits of a hash of all extracted metric names",
	"# this number indicates change of names or change of number of metrics",
}

// Record is one accepted metric.
type Record struct {
	// Name is unique within a Result; repeated names carry an occurrence suffix.
	Name string
	// Base is the name derived from the element path, before any suffix.
	Base string
	// Value is the coerced numeric value in text form.
	Value string
}

// Result is the outcome of converting one status document.
type Result struct {
	// Records are in document order.
	Records []Record

	// Signature is the drift signature over the undecorated names of Records.
	Signature int64

	// Ignored counts text values that were neither numeric nor replaceable.
	Ignored int

	// Err is a *SyntaxError when the document was truncated by a parse error.
	// Records still hold everything read before the error.
	Err error
}

// Convert flattens the status document read from r into metric records.
// rep may be nil, in which case every non-numeric value is dropped.
//
// SignatureMetric and any reserved names are never handed out to records;
// a record that flattens to one of them gets an occurrence suffix instead.
// reserved is for names the caller emits next to the converted lines.
//
// Convert never fails: a malformed document yields the records read up to
// the error, with the error logged and kept in Result.Err.
func Convert(r io.Reader, rep Replacer, reserved ...string) *Result {
	res := &Result{}
	seen := newOccurrences()
	seen.reserve(SignatureMetric)
	seen.reserve(reserved...)

	err := walk(r, func(path []string, text string) {
		base := metricName(path)
		value, ok := coerce(text, rep)
		if !ok {
			res.Ignored++
			slog.Debug("convert: ignored metric", "name", base, "value", text)
			return
		}
		res.Records = append(res.Records, Record{
			Name:  seen.claim(base),
			Base:  base,
			Value: value,
		})
	})
	if err != nil {
		res.Err = err
		slog.Warn("convert: make sure the configured url points at the serverinfo status page")
		slog.Error("convert: status document truncated", "records", len(res.Records), "err", err)
	}

	res.Signature = Signature(seen.names())
	return res
}

// Lines returns the output lines: one "name value" line per record followed
// by the signature trailer.
func (r *Result) Lines() []string {
	lines := make([]string, 0, len(r.Records)+len(signatureComment)+1)
	for _, rec := range r.Records {
		lines = append(lines, rec.Name+" "+rec.Value)
	}
	lines = append(lines, signatureComment...)
	lines = append(lines, SignatureMetric+" "+strconv.FormatInt(r.Signature, 10))
	return lines
}

// String returns the newline-joined output lines without a trailing newline.
func (r *Result) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Render returns prefix followed by the output lines. prefix is opaque to
// the converter; a trailing newline on it is optional.
func (r *Result) Render(prefix string) string {
	body := r.String()
	prefix = strings.TrimRight(prefix, "\n")
	if prefix == "" {
		return body
	}
	return prefix + "\n" + body
}
