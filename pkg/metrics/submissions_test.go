package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSubmissionMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSubmissionMetrics(reg)
	kind := "swap"
	metrics.ObserveDuration(kind, 120*time.Millisecond)
	metrics.IncSuccess(kind)
	metrics.IncFailure(kind)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounter(mfs, "modification_submission_success", kind); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	if got, err := fetchCounter(mfs, "modification_submission_failure", kind); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := fetchHistSum(mfs, "modification_submission_duration_seconds", kind); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestSubmissionMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewSubmissionMetrics(nil)
	metrics.ObserveDuration("return", time.Second)
	metrics.IncSuccess("return")
	metrics.IncFailure("")
}

func TestSubmissionMetricsEmptyKindNormalized(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSubmissionMetrics(reg)
	metrics.IncSuccess("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounter(mfs, "modification_submission_success", "unknown"); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1 under unknown, got %f", got)
	}
}

func fetchCounter(mfs []*dto.MetricFamily, name, kind string) (float64, error) {
	mf := findFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasLabel(metric.GetLabel(), "kind", kind) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label kind=%s", name, kind)
}

func fetchHistSum(mfs []*dto.MetricFamily, name, kind string) (float64, error) {
	mf := findFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasLabel(metric.GetLabel(), "kind", kind) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label kind=%s", name, kind)
}

func findFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
