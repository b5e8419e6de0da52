package netquality

import (
	"regexp"
	"strconv"
	"strings"

	"vpnbench/internal/model"
)

// Patterns are deliberately loose because networkQuality wording has
// shifted between macOS releases. Variants seen in the wild:
//
//	Downlink capacity: 369.737 Mbps
//	Uplink capacity: 45.350 Mbps
//	Responsiveness: Medium (208.467 milliseconds | 287 RPM)
//	Responsiveness: Low (48 RPM)
//	Idle Latency: 35.624 ms
//	Idle Latency: 35.624 milliseconds | 1684 RPM
var (
	downlinkRe  = regexp.MustCompile(`(?i)Downlink\s+capacity:\s*([\d.]+)`)
	uplinkRe    = regexp.MustCompile(`(?i)Uplink\s+capacity:\s*([\d.]+)`)
	latencyRe   = regexp.MustCompile(`(?i)Idle\s+Latency:\s*([\d.]+)\s*(?:ms|milliseconds)`)
	idleRPMRe   = regexp.MustCompile(`(?i)Idle\s+Latency:.*?\|\s*(\d+)\s*RPM`)
	respLabelRe = regexp.MustCompile(`(?i)Responsiveness:\s*(High|Medium|Low)`)
	respRPMRe   = regexp.MustCompile(`(?i)Responsiveness:.*?(\d+)\s*RPM`)
)

// Parse extracts metrics from raw measurement output. Each field is
// independent: a metric whose pattern does not match stays nil and the
// remaining fields are still returned. Parse never fails; feeding it
// error text from a broken run simply yields an empty report.
func Parse(text string) model.Report {
	report := model.Report{
		Responsiveness: model.ResponsivenessUnknown,
	}

	report.DownlinkMbps = grabFloat(downlinkRe, text)
	report.UplinkMbps = grabFloat(uplinkRe, text)
	report.IdleLatencyMs = grabFloat(latencyRe, text)
	report.IdleRPM = grabInt(idleRPMRe, text)
	report.ResponsivenessRPM = grabInt(respRPMRe, text)

	if label := grabString(respLabelRe, text); label != "" {
		report.Responsiveness = titleCase(label)
	}

	return report
}

func grabFloat(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

func grabInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

func grabString(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
