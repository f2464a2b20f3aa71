package observability

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"gatewayd/internal/common/apierr"
)

type staticNames []string

func (s staticNames) Names() []string { return s }

func newDashboard() *Dashboard {
	d := New(staticNames{"deepseek-chat", "qwen-plus"})
	d.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }
	return d
}

func TestBuildDefaults(t *testing.T) {
	resp, err := newDashboard().Build(Filter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if resp.Org != AllOrgs || resp.Service != AllServices {
		t.Fatalf("unexpected filter echo: %s %s", resp.Org, resp.Service)
	}
	if got := resp.To.Sub(resp.From); got != 24*time.Hour {
		t.Fatalf("default range=%v", got)
	}
	if len(resp.Series) != 7 {
		t.Fatalf("expected 7 series, got %d", len(resp.Series))
	}
	for _, s := range resp.Series {
		if len(s.Points) != 24 {
			t.Fatalf("series %s has %d points", s.Name, len(s.Points))
		}
	}
	if first := resp.Series[0].Points[0].Time; first != "12:00" {
		t.Fatalf("first label=%q", first)
	}
	if len(resp.Summary) != 6 || len(resp.Performance) != 5 {
		t.Fatalf("summary=%d perf=%d", len(resp.Summary), len(resp.Performance))
	}
}

func TestBuildIsDeterministicPerFilter(t *testing.T) {
	d := newDashboard()
	a, err := d.Build(Filter{Org: "组织A"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, _ := d.Build(Filter{Org: "组织A"})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same filter produced different dashboards:\n%s", diff)
	}
	c, _ := d.Build(Filter{Org: "组织B"})
	if cmp.Equal(a.Series, c.Series) {
		t.Fatalf("different filters should produce different series")
	}
}

func TestSeriesRanges(t *testing.T) {
	resp, err := newDashboard().Build(Filter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, s := range resp.Series {
		for _, def := range seriesDefs {
			if def.name != s.Name {
				continue
			}
			lo, hi := def.base, math.Ceil(def.base+def.variance)
			if def.div > 0 {
				lo, hi = lo/def.div, hi/def.div
			}
			for _, p := range s.Points {
				if p.Value < lo || p.Value > hi {
					t.Fatalf("%s value %v outside [%v, %v]", s.Name, p.Value, lo, hi)
				}
			}
		}
	}
}

func TestPerformanceRowsOrdered(t *testing.T) {
	resp, err := newDashboard().Build(Filter{Service: "qwen-plus"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, row := range resp.Performance {
		if !(row.P50 <= row.P90 && row.P90 <= row.P95 && row.P95 <= row.P99) {
			t.Fatalf("percentiles out of order: %+v", row)
		}
	}
}

func TestFilterValidation(t *testing.T) {
	d := newDashboard()
	now := d.now()
	cases := []struct {
		f     Filter
		field string
	}{
		{Filter{Org: "组织Z"}, "org"},
		{Filter{Service: "gpt-9"}, "service"},
		{Filter{From: now, To: now.Add(-time.Hour)}, "from"},
		{Filter{From: now.Add(-8 * 24 * time.Hour), To: now}, "to"},
	}
	for _, c := range cases {
		_, err := d.Build(c.f)
		ve, ok := err.(apierr.ValidationError)
		if !ok || ve.Field != c.field {
			t.Fatalf("%+v: expected validation error on %s, got %v", c.f, c.field, err)
		}
	}
}

func TestWeekRangeUsesDateLabels(t *testing.T) {
	d := newDashboard()
	now := d.now()
	resp, err := d.Build(Filter{From: now.Add(-72 * time.Hour), To: now})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	pts := resp.Series[0].Points
	if len(pts) != 72 || pts[0].Time != "02-26 12:00" {
		t.Fatalf("points=%d first=%q", len(pts), pts[0].Time)
	}
}

func TestPercentile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cases := map[float64]float64{50: 5, 90: 9, 95: 10, 99: 10}
	for p, want := range cases {
		if got := percentile(vals, p); got != want {
			t.Fatalf("p%v=%v want %v", p, got, want)
		}
	}
	if percentile(nil, 50) != 0 {
		t.Fatalf("empty percentile should be 0")
	}
}

func TestSITokens(t *testing.T) {
	cases := map[float64]string{2100000: "2.1M", 900000: "900k", 1260: "1.3k"}
	for in, want := range cases {
		if got := siTokens(in); got != want {
			t.Fatalf("siTokens(%v)=%q want %q", in, got, want)
		}
	}
}
