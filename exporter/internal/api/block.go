package api

import (
	"strings"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// blockNames are the metric names exporterBlock emits. Converted records
// must not reuse them.
var blockNames = []string{
	"rust_nce_parse_duration",
	"rust_nce_load_duration",
	"rust_nce_total_duration",
	"rust_nce_request_start_count",
	"rust_nce_request_end_count",
	upMetric,
}

const upMetric = "ocs_meta_up"

// timings are the phases of one status request.
type timings struct {
	load  time.Duration
	parse time.Duration
	total time.Duration
}

// exporterBlock renders the lines placed in front of the converted metrics:
// request timings in seconds, the request counters and the up marker.
func exporterBlock(t timings, started, completed uint64) (string, error) {
	var b strings.Builder
	b.WriteString("# exporter duration\n")

	for _, mf := range []*dto.MetricFamily{
		untyped("rust_nce_parse_duration", t.parse.Seconds()),
		untyped("rust_nce_load_duration", t.load.Seconds()),
		untyped("rust_nce_total_duration", t.total.Seconds()),
		untyped("rust_nce_request_start_count", float64(started)),
		untyped("rust_nce_request_end_count", float64(completed)),
	} {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return "", err
		}
	}

	b.WriteString("# nextcloud metrics\n")
	b.WriteString(upMetric + " 1\n")
	return b.String(), nil
}

func untyped(name string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Type: dto.MetricType_UNTYPED.Enum(),
		Metric: []*dto.Metric{
			{Untyped: &dto.Untyped{Value: proto.Float64(v)}},
		},
	}
}
