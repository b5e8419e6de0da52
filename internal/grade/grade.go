package grade

import "strings"

// Tier is a qualitative rating for a single metric.
type Tier string

const (
	TierGood    Tier = "good"
	TierCaution Tier = "caution"
	TierPoor    Tier = "poor"
)

// Marker returns the console marker for a tier.
func (t Tier) Marker() string {
	switch t {
	case TierGood:
		return "🟢"
	case TierCaution:
		return "🟡"
	default:
		return "🔴"
	}
}

// Downlink rates downlink capacity in Mbps. A nil reading means the
// metric was absent from the measurement output and rates poor.
func Downlink(mbps *float64) Tier {
	switch {
	case mbps == nil:
		return TierPoor
	case *mbps > 300:
		return TierGood
	case *mbps >= 100:
		return TierCaution
	default:
		return TierPoor
	}
}

// Uplink rates uplink capacity in Mbps.
func Uplink(mbps *float64) Tier {
	switch {
	case mbps == nil:
		return TierPoor
	case *mbps > 20:
		return TierGood
	case *mbps >= 5:
		return TierCaution
	default:
		return TierPoor
	}
}

// IdleLatency rates idle round-trip latency in milliseconds.
func IdleLatency(ms *float64) Tier {
	switch {
	case ms == nil:
		return TierPoor
	case *ms < 50:
		return TierGood
	case *ms <= 150:
		return TierCaution
	default:
		return TierPoor
	}
}

// Responsiveness rates the High/Medium/Low label reported by the
// measurement tool. Unknown rates poor.
func Responsiveness(label string) Tier {
	switch strings.ToLower(label) {
	case "high":
		return TierGood
	case "medium":
		return TierCaution
	default:
		return TierPoor
	}
}
