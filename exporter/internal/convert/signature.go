package convert

import (
	"crypto/md5" //nolint:gosec // change indicator, not a security boundary
	"io"
	"slices"
)

// Signature returns the drift signature of a set of undecorated metric
// names: the first three bytes of the MD5 digest of the sorted names, each
// terminated by "\n", read as a big-endian integer.
//
// Input order and duplicates do not affect the result.
func Signature(names []string) int64 {
	set := slices.Clone(names)
	slices.Sort(set)
	set = slices.Compact(set)

	h := md5.New() //nolint:gosec
	for _, n := range set {
		_, _ = io.WriteString(h, n)
		_, _ = io.WriteString(h, "\n")
	}
	sum := h.Sum(nil)
	return int64(sum[0])<<16 | int64(sum[1])<<8 | int64(sum[2])
}
