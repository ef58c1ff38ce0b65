package metrics

import (
	"fmt"
	"io"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric name suffixes, joined to the configured namespace.
const (
	scoresSuffix   = "_respiratory_scores_total"
	entriesSuffix  = "_respiratory_entries_total"
	batchesSuffix  = "_respiratory_batches_total"
	rejectedSuffix = "_respiratory_rejected_batches_total"

	scoreLabel = "score"
)

// Families converts d into Prometheus counter families named under namespace.
func Families(namespace string, d Distribution) []*dto.MetricFamily {
	scores := make([]*dto.Metric, 0, len(d.Scores))
	for s, n := range d.Scores {
		scores = append(scores, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: ptr(scoreLabel), Value: ptr(strconv.Itoa(s))}},
			Counter: &dto.Counter{Value: ptr(float64(n))},
		})
	}

	return []*dto.MetricFamily{
		{
			Name:   ptr(namespace + scoresSuffix),
			Help:   ptr("Respiratory sub-scores computed, by score value."),
			Type:   dto.MetricType_COUNTER.Enum(),
			Metric: scores,
		},
		counter(namespace+entriesSuffix, "Entries scored across all batches.", d.Entries),
		counter(namespace+batchesSuffix, "Batches scored successfully.", d.Batches),
		counter(namespace+rejectedSuffix, "Batches rejected because series lengths differed.", d.Rejected),
	}
}

// Write encodes families to w in the Prometheus text format.
func Write(w io.Writer, families []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func counter(name, help string, v uint64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   ptr(name),
		Help:   ptr(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: ptr(float64(v))}}},
	}
}

func ptr[T any](v T) *T {
	return &v
}
