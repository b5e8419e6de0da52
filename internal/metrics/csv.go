package metrics

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"vpnbench/internal/model"
)

// Header is the fixed column order of the performance log.
var Header = []string{
	"Timestamp",
	"Profile",
	"IP",
	"Downlink (Mbps)",
	"Uplink (Mbps)",
	"Latency (ms)",
	"Responsiveness",
	"Responsiveness RPM",
	"Idle RPM",
}

// TimestampLayout is the local date-time format used in the log.
const TimestampLayout = "2006-01-02 15:04:05"

// AppendCSV appends reports to the log, writing the header row only
// when the file does not exist yet.
//
// AppendCSV is not safe for concurrent use across processes; the tool
// is one-shot and concurrent invocations are unsupported.
func AppendCSV(path string, items []model.Report) error {
	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, os.ErrNotExist)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(Header); err != nil {
			return err
		}
	}
	for _, r := range items {
		if err := writer.Write(record(r)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Absent bandwidth/latency readings render as "0.000" while absent RPM
// readings render as empty cells; existing logs use this shape.
func record(r model.Report) []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.Profile,
		r.ExternalIP,
		formatFloat(r.DownlinkMbps),
		formatFloat(r.UplinkMbps),
		formatFloat(r.IdleLatencyMs),
		r.Responsiveness,
		formatInt(r.ResponsivenessRPM),
		formatInt(r.IdleRPM),
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return "0.000"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
