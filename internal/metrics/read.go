package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"vpnbench/internal/model"
)

// ReadCSV loads report history from the performance log.
func ReadCSV(path string) ([]model.Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readCSV(file)
}

func readCSV(r io.Reader) ([]model.Report, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	start := 0
	if len(records[0]) > 0 && records[0][0] == "Timestamp" {
		start = 1
	}

	items := make([]model.Report, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(Header) {
			return nil, fmt.Errorf("invalid record at line %d", i+1)
		}
		ts, err := time.ParseInLocation(TimestampLayout, rec[0], time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp at line %d: %w", i+1, err)
		}
		items = append(items, model.Report{
			Timestamp:         ts,
			Profile:           rec[1],
			ExternalIP:        rec[2],
			DownlinkMbps:      parseFloat(rec[3]),
			UplinkMbps:        parseFloat(rec[4]),
			IdleLatencyMs:     parseFloat(rec[5]),
			Responsiveness:    rec[6],
			ResponsivenessRPM: parseInt(rec[7]),
			IdleRPM:           parseInt(rec[8]),
		})
	}

	return items, nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
