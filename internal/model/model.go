package model

import "time"

// ResponsivenessUnknown is used when the measurement output carries no
// responsiveness label.
const ResponsivenessUnknown = "Unknown"

// Report is a single measurement run against the active network path.
// Numeric fields are pointers: nil means the measurement tool did not
// report that metric, which is distinct from a zero reading.
type Report struct {
	Timestamp         time.Time
	Profile           string
	ExternalIP        string
	DownlinkMbps      *float64
	UplinkMbps        *float64
	IdleLatencyMs     *float64
	Responsiveness    string // High|Medium|Low|Unknown
	ResponsivenessRPM *int
	IdleRPM           *int
}
