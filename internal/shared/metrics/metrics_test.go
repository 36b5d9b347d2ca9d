package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesAllSeries(t *testing.T) {
	IncGenerationStarted()
	IncGenerationCompleted()
	IncGenerationFailed()
	ObserveGenerationDurationMs(1234)

	out := Render()
	for _, want := range []string{
		"generation_started_total",
		"generation_completed_total",
		"generation_failed_total",
		"generation_duration_ms_bucket",
		"generation_duration_ms_sum",
		"generation_duration_ms_count",
		`le="+Inf"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestHistogramCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Errorf("count = %d, want 3", snap.count)
	}
	if snap.sum != 5055 {
		t.Errorf("sum = %g, want 5055", snap.sum)
	}
	wantCounts := []uint64{1, 2, 2}
	for i, want := range wantCounts {
		if snap.counts[i] != want {
			t.Errorf("counts[%d] = %d, want %d", i, snap.counts[i], want)
		}
	}
}

func TestObserveNegativeClampedToZero(t *testing.T) {
	before := generationDuration.Snapshot().count
	ObserveGenerationDurationMs(-5)
	after := generationDuration.Snapshot()
	if after.count != before+1 {
		t.Errorf("count = %d, want %d", after.count, before+1)
	}
}
