package metrics

import (
	"math"
	"sort"
	"time"

	"vpnbench/internal/grade"
	"vpnbench/internal/model"
)

// Summary is a basic statistics snapshot over logged reports.
type Summary struct {
	Count           int
	From            time.Time
	To              time.Time
	AvgDownlinkMbps float64
	MinDownlinkMbps float64
	MaxDownlinkMbps float64
	AvgUplinkMbps   float64
	AvgLatencyMs    float64
	P95LatencyMs    float64
	GoodRuns        int // runs where every graded metric rates good
}

// Summarize computes summary statistics for reports in a time window.
// Zero bandwidth/latency values are absent readings coerced for display
// and are excluded per metric so they don't drag the averages.
func Summarize(items []model.Report, since time.Time) Summary {
	filtered := make([]model.Report, 0, len(items))
	for _, r := range items {
		if r.Timestamp.After(since) || r.Timestamp.Equal(since) {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		return Summary{Count: 0}
	}

	var sumDown, sumUp, sumLatency float64
	var downCount, upCount, latencyCount int
	minDown := math.MaxFloat64
	maxDown := 0.0
	latencies := make([]float64, 0, len(filtered))
	goodRuns := 0
	from := filtered[0].Timestamp
	to := filtered[0].Timestamp

	for _, r := range filtered {
		if v := sampleValue(r.DownlinkMbps); v > 0 {
			sumDown += v
			downCount++
			if v < minDown {
				minDown = v
			}
			if v > maxDown {
				maxDown = v
			}
		}
		if v := sampleValue(r.UplinkMbps); v > 0 {
			sumUp += v
			upCount++
		}
		if v := sampleValue(r.IdleLatencyMs); v > 0 {
			sumLatency += v
			latencyCount++
			latencies = append(latencies, v)
		}
		if allGood(r) {
			goodRuns++
		}
		if r.Timestamp.Before(from) {
			from = r.Timestamp
		}
		if r.Timestamp.After(to) {
			to = r.Timestamp
		}
	}

	summary := Summary{
		Count:    len(filtered),
		From:     from,
		To:       to,
		GoodRuns: goodRuns,
	}
	if downCount > 0 {
		summary.AvgDownlinkMbps = sumDown / float64(downCount)
		summary.MinDownlinkMbps = minDown
		summary.MaxDownlinkMbps = maxDown
	}
	if upCount > 0 {
		summary.AvgUplinkMbps = sumUp / float64(upCount)
	}
	if latencyCount > 0 {
		summary.AvgLatencyMs = sumLatency / float64(latencyCount)
		sort.Float64s(latencies)
		summary.P95LatencyMs = percentile(latencies, 0.95)
	}
	return summary
}

func allGood(r model.Report) bool {
	return grade.Downlink(r.DownlinkMbps) == grade.TierGood &&
		grade.Uplink(r.UplinkMbps) == grade.TierGood &&
		grade.IdleLatency(r.IdleLatencyMs) == grade.TierGood &&
		grade.Responsiveness(r.Responsiveness) == grade.TierGood
}

func sampleValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p <= 0 {
		return values[0]
	}
	if p >= 1 {
		return values[len(values)-1]
	}
	idx := int(math.Ceil(p*float64(len(values)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}
