package convert

import (
	"strconv"
	"strings"
)

// metricName joins an ancestor path into a metric name.
// Dots are not valid in Prometheus names and become underscores.
func metricName(path []string) string {
	return strings.ReplaceAll(strings.Join(path, "_"), ".", "_")
}

// occurrences tracks undecorated names within one conversion and hands out
// unique output names.
type occurrences struct {
	count   map[string]int
	emitted map[string]bool
	order   []string
}

func newOccurrences() *occurrences {
	return &occurrences{
		count:   make(map[string]int),
		emitted: make(map[string]bool),
	}
}

// reserve marks names as taken without counting them as occurrences.
func (o *occurrences) reserve(names ...string) {
	for _, n := range names {
		o.emitted[n] = true
	}
}

// claim records one more occurrence of base and returns the name to emit:
// base itself the first time, base+N for the N-th occurrence.
//
// A suffixed name can clash with a genuine element of that name
// (<a>, <a>, <a2>); the counter keeps advancing until the result is unused.
func (o *occurrences) claim(base string) string {
	if o.count[base] == 0 {
		o.order = append(o.order, base)
	}
	for {
		o.count[base]++
		name := base
		if n := o.count[base]; n > 1 {
			name = base + strconv.Itoa(n)
		}
		if !o.emitted[name] {
			o.emitted[name] = true
			return name
		}
	}
}

// names returns every undecorated name claimed so far, once each, in order
// of first appearance.
func (o *occurrences) names() []string {
	return o.order
}
