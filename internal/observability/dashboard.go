// Package observability builds the gateway dashboard: headline call and
// token figures, hourly trend series and a latency/throughput percentile
// table. The figures are synthetic. They are generated from a PRNG seeded by
// the filter, so the same filter always yields the same dashboard.
package observability

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"

	"gatewayd/internal/common/apierr"
	"gatewayd/pkg/types"
)

const (
	AllOrgs     = "全部组织"
	AllServices = "全部模型服务"

	defaultRange = 24 * time.Hour
	maxRange     = 7 * 24 * time.Hour
)

// Orgs are the organisations the dashboard can be filtered by.
var Orgs = []string{AllOrgs, "组织A", "组织B"}

// ServiceNames lists the model services the dashboard can be filtered by.
type ServiceNames interface {
	Names() []string
}

// Filter selects the slice of traffic to show. Zero times mean the last 24h.
type Filter struct {
	Org     string
	Service string
	From    time.Time
	To      time.Time
}

type seriesDef struct {
	name     string
	label    string
	unit     string
	base     float64
	variance float64
	// volume series shrink when the filter narrows the traffic
	volume bool
	// divisor applied after rounding, for fractional series
	div float64
}

var seriesDefs = []seriesDef{
	{name: "call_volume", unit: "calls", base: 800, variance: 200, volume: true},
	{name: "failure_rate", unit: "%", base: 2, variance: 1.5, div: 10},
	{name: "ttft", label: "TTFT (ms)", unit: "ms", base: 400, variance: 150},
	{name: "otps", label: "OTPS (tokens/s)", unit: "tokens/s", base: 1200, variance: 300},
	{name: "tpot", label: "TPOT (ms)", unit: "ms", base: 80, variance: 30},
	{name: "latency", label: "E2E latency (ms)", unit: "ms", base: 1200, variance: 400},
	{name: "tpm", label: "TPM", unit: "tokens/min", base: 50000, variance: 20000, volume: true},
}

// Dashboard generates dashboards for a set of model services.
type Dashboard struct {
	services ServiceNames
	now      func() time.Time
}

func New(services ServiceNames) *Dashboard {
	return &Dashboard{services: services, now: time.Now}
}

// Build validates f and returns the dashboard for it.
func (d *Dashboard) Build(f Filter) (types.DashboardResponse, error) {
	f, err := d.normalize(f)
	if err != nil {
		return types.DashboardResponse{}, err
	}
	hours := int(f.To.Sub(f.From) / time.Hour)
	if hours < 1 {
		hours = 1
	}
	rng := rand.New(rand.NewSource(int64(seedFor(f))))
	scale := 1.0
	if f.Org != AllOrgs {
		scale *= 0.5
	}
	if f.Service != AllServices {
		scale *= 0.5
	}

	labelFmt := "15:04"
	if hours > 24 {
		labelFmt = "01-02 15:04"
	}
	resp := types.DashboardResponse{Org: f.Org, Service: f.Service, From: f.From, To: f.To}
	values := make(map[string][]float64, len(seriesDefs))
	for _, def := range seriesDefs {
		s := types.Series{Name: def.name, Unit: def.unit, Points: make([]types.Point, 0, hours)}
		vals := make([]float64, 0, hours)
		for i := 0; i < hours; i++ {
			v := math.Round(def.base + rng.Float64()*def.variance)
			if def.volume {
				v = math.Round(v * scale)
			}
			if def.div > 0 {
				v /= def.div
			}
			at := f.To.Add(-time.Duration(hours-i) * time.Hour)
			s.Points = append(s.Points, types.Point{Time: at.Format(labelFmt), Value: v})
			vals = append(vals, v)
		}
		values[def.name] = vals
		resp.Series = append(resp.Series, s)
	}
	resp.Summary = summarize(values)
	for _, def := range seriesDefs {
		if def.label == "" {
			continue
		}
		resp.Performance = append(resp.Performance, perfRow(def.label, values[def.name]))
	}
	return resp, nil
}

func (d *Dashboard) normalize(f Filter) (Filter, error) {
	if f.Org == "" {
		f.Org = AllOrgs
	}
	if f.Service == "" {
		f.Service = AllServices
	}
	if !slices.Contains(Orgs, f.Org) {
		return f, apierr.Invalid("org", "unknown organisation "+f.Org)
	}
	if f.Service != AllServices && !slices.Contains(d.services.Names(), f.Service) {
		return f, apierr.Invalid("service", "unknown model service "+f.Service)
	}
	if f.To.IsZero() {
		f.To = d.now()
	}
	if f.From.IsZero() {
		f.From = f.To.Add(-defaultRange)
	}
	f.To = f.To.Truncate(time.Hour)
	f.From = f.From.Truncate(time.Hour)
	switch {
	case !f.From.Before(f.To):
		return f, apierr.Invalid("from", "must be at least one hour before to")
	case f.To.Sub(f.From) > maxRange:
		return f, apierr.Invalid("to", "range must not exceed 7 days")
	}
	return f, nil
}

func seedFor(f Filter) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(f.Org)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.Service)
	_, _ = fmt.Fprintf(h, "\x00%d\x00%d", f.From.Unix(), f.To.Unix())
	return h.Sum64()
}

func summarize(values map[string][]float64) []types.SummaryStat {
	var calls, failures, tokens float64
	for i, c := range values["call_volume"] {
		calls += c
		failures += math.Round(c * values["failure_rate"][i] / 100)
	}
	for _, tpm := range values["tpm"] {
		tokens += tpm * 60
	}
	input := math.Round(tokens * 0.57)
	output := tokens - input
	rate := 0.0
	if calls > 0 {
		rate = failures / calls * 100
	}
	return []types.SummaryStat{
		{Label: "calls", Value: calls, Display: humanize.Comma(int64(calls))},
		{Label: "failures", Value: failures, Display: humanize.Comma(int64(failures))},
		{Label: "failure_rate", Value: rate, Display: fmt.Sprintf("%.2f%%", rate)},
		{Label: "total_tokens", Value: tokens, Display: siTokens(tokens)},
		{Label: "input_tokens", Value: input, Display: siTokens(input)},
		{Label: "output_tokens", Value: output, Display: siTokens(output)},
	}
}

// siTokens renders a token count the way the dashboard shows it, e.g. 2.1M.
func siTokens(v float64) string {
	value, prefix := humanize.ComputeSI(v)
	return humanize.FtoaWithDigits(value, 1) + prefix
}

func perfRow(metric string, vals []float64) types.PerfRow {
	sorted := slices.Clone(vals)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return types.PerfRow{
		Metric: metric,
		Avg:    math.Round(sum / float64(len(sorted))),
		P50:    percentile(sorted, 50),
		P90:    percentile(sorted, 90),
		P95:    percentile(sorted, 95),
		P99:    percentile(sorted, 99),
	}
}

// percentile uses the nearest-rank method over an ascending slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
