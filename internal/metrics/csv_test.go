package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vpnbench/internal/model"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestAppendCSV_WritesHeaderOnce(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "vpn_performance.csv")

	r1 := model.Report{Timestamp: time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local), Profile: "office", ExternalIP: "203.0.113.7", Responsiveness: "High"}
	r2 := model.Report{Timestamp: time.Date(2026, 8, 27, 9, 5, 0, 0, time.Local), Profile: "office", ExternalIP: "203.0.113.7", Responsiveness: "Low"}

	if err := AppendCSV(path, []model.Report{r1}); err != nil {
		t.Fatalf("AppendCSV #1: %v", err)
	}
	if err := AppendCSV(path, []model.Report{r2}); err != nil {
		t.Fatalf("AppendCSV #2: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d\n%s", len(lines), string(data))
	}
	if !strings.HasPrefix(lines[0], "Timestamp,Profile,IP,") {
		t.Fatalf("missing header: %q", lines[0])
	}
}

func TestAppendCSV_AbsentValueFormatting(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "vpn_performance.csv")

	// Absent floats are coerced to 0.000, absent RPMs stay empty.
	r := model.Report{
		Timestamp:      time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local),
		Profile:        "home",
		ExternalIP:     "N/A",
		Responsiveness: "Unknown",
	}
	if err := AppendCSV(path, []model.Report{r}); err != nil {
		t.Fatalf("AppendCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%d", len(lines))
	}
	want := "2026-08-27 09:00:00,home,N/A,0.000,0.000,0.000,Unknown,,"
	if lines[1] != want {
		t.Fatalf("row=%q, want %q", lines[1], want)
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "vpn_performance.csv")

	r := model.Report{
		Timestamp:         time.Date(2026, 8, 27, 10, 30, 15, 0, time.Local),
		Profile:           "wg-eu",
		ExternalIP:        "198.51.100.4",
		DownlinkMbps:      fp(369.737),
		UplinkMbps:        fp(45.35),
		IdleLatencyMs:     fp(35.624),
		Responsiveness:    "Medium",
		ResponsivenessRPM: ip(287),
		IdleRPM:           ip(1684),
	}
	if err := AppendCSV(path, []model.Report{r}); err != nil {
		t.Fatalf("AppendCSV: %v", err)
	}

	items, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items=%d", len(items))
	}
	got := items[0]
	if !got.Timestamp.Equal(r.Timestamp) {
		t.Fatalf("timestamp=%v", got.Timestamp)
	}
	if got.Profile != "wg-eu" || got.ExternalIP != "198.51.100.4" {
		t.Fatalf("identity fields: %+v", got)
	}
	if got.DownlinkMbps == nil || *got.DownlinkMbps != 369.737 {
		t.Fatalf("downlink=%v", got.DownlinkMbps)
	}
	if got.ResponsivenessRPM == nil || *got.ResponsivenessRPM != 287 {
		t.Fatalf("resp_rpm=%v", got.ResponsivenessRPM)
	}
	if got.IdleRPM == nil || *got.IdleRPM != 1684 {
		t.Fatalf("idle_rpm=%v", got.IdleRPM)
	}
}

func TestReadCSV_EmptyRPMStaysNil(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "vpn_performance.csv")
	r := model.Report{Timestamp: time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local), Profile: "p", ExternalIP: "N/A", Responsiveness: "Unknown"}
	if err := AppendCSV(path, []model.Report{r}); err != nil {
		t.Fatalf("AppendCSV: %v", err)
	}

	items, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if items[0].ResponsivenessRPM != nil || items[0].IdleRPM != nil {
		t.Fatalf("RPM fields not nil: %+v", items[0])
	}
}
