package bench

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"vpnbench/internal/config"
	"vpnbench/internal/execx"
	"vpnbench/internal/grade"
	"vpnbench/internal/ipinfo"
	"vpnbench/internal/model"
	"vpnbench/internal/netquality"
)

// Run executes one measurement pass: invoke the external tool, parse
// whatever it printed, resolve the external IP and stamp the report.
// A measurement run that exits non-zero still yields a report; only a
// command that produced no output at all is an error.
func Run(ctx context.Context, cfg config.Config, profile string, runner execx.Runner) (model.Report, error) {
	raw, err := netquality.Measure(runner, cfg.Command)
	if err != nil {
		return model.Report{}, err
	}

	report := netquality.Parse(raw)
	report.Timestamp = time.Now()
	report.Profile = profile
	report.ExternalIP = ipinfo.Lookup(ctx, cfg.IPEchoURL, cfg.STUNServers, cfg.IPTimeout())
	return report, nil
}

// FormatSummary renders the one-line console summary with tier markers.
func FormatSummary(r model.Report) string {
	return fmt.Sprintf("📊 Down: %s Mbps %s | Up: %s Mbps %s | Latency: %s ms %s | Resp: %s %s",
		displayFloat(r.DownlinkMbps), grade.Downlink(r.DownlinkMbps).Marker(),
		displayFloat(r.UplinkMbps), grade.Uplink(r.UplinkMbps).Marker(),
		displayFloat(r.IdleLatencyMs), grade.IdleLatency(r.IdleLatencyMs).Marker(),
		r.Responsiveness, grade.Responsiveness(r.Responsiveness).Marker())
}

// Absent readings display as 0.000, matching the CSV log.
func displayFloat(v *float64) string {
	if v == nil {
		return "0.000"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
