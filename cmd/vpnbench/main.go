package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vpnbench/internal/bench"
	"vpnbench/internal/config"
	"vpnbench/internal/execx"
	"vpnbench/internal/metrics"
	"vpnbench/internal/model"
)

const usage = `vpnbench - VPN link quality logger

Usage:
  vpnbench run [profile] [--config <path>] [--csv <path>]
  vpnbench [profile]
  vpnbench stats [--config <path>] [--csv <path>] [--window 24h]
  vpnbench export csv --out <file> [--config <path>] [--csv <path>]
  vpnbench doctor [--config <path>]

Running with no subcommand measures once and appends to the CSV log,
using the first argument (if any) as the profile label.
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		handleRun(nil)
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		fmt.Print(usage)
	case "run":
		handleRun(args[1:])
	case "stats":
		handleStats(args[1:])
	case "export":
		handleExport(args[1:])
	case "doctor":
		handleDoctor(args[1:])
	default:
		// Bare profile label, the original single-argument interface.
		handleRun(args)
	}
}

func handleRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	csvPath := fs.String("csv", "", "CSV log path override")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath, *csvPath)
	if err != nil {
		fatal(err)
	}

	profile := fs.Arg(0)
	if profile == "" {
		profile = cfg.DefaultProfile
	}

	fmt.Fprintf(os.Stdout, "Running VPN performance test for profile: %s\n", profile)
	fmt.Fprintln(os.Stdout, "-------------------------------------------")

	report, err := bench.Run(context.Background(), cfg, profile, execx.NewOSRunner())
	if err != nil {
		fatal(err)
	}

	if err := metrics.AppendCSV(cfg.CSVPath, []model.Report{report}); err != nil {
		fatal(err)
	}

	fmt.Fprintf(os.Stdout, "✅ Logged results to %s\n", cfg.CSVPath)
	fmt.Fprintln(os.Stdout, bench.FormatSummary(report))
}

func handleStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	csvPath := fs.String("csv", "", "CSV log path override")
	window := fs.Duration("window", 24*time.Hour, "time window")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath, *csvPath)
	if err != nil {
		fatal(err)
	}

	items, err := metrics.ReadCSV(cfg.CSVPath)
	if err != nil {
		fatal(err)
	}

	cutoff := time.Now().Add(-*window)
	summary := metrics.Summarize(items, cutoff)
	if summary.Count == 0 {
		fmt.Fprintln(os.Stdout, "no runs in window")
		return
	}

	fmt.Fprintf(os.Stdout, "runs=%d good=%d from=%s to=%s\n",
		summary.Count, summary.GoodRuns,
		summary.From.Format(metrics.TimestampLayout), summary.To.Format(metrics.TimestampLayout))
	fmt.Fprintf(os.Stdout, "downlink avg=%.2f Mbps min=%.2f max=%.2f\n",
		summary.AvgDownlinkMbps, summary.MinDownlinkMbps, summary.MaxDownlinkMbps)
	fmt.Fprintf(os.Stdout, "uplink avg=%.2f Mbps latency avg=%.2fms p95=%.2fms\n",
		summary.AvgUplinkMbps, summary.AvgLatencyMs, summary.P95LatencyMs)
}

func handleExport(args []string) {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, "export subcommand required\n")
		os.Exit(2)
	}
	if args[0] != "csv" {
		fmt.Fprintf(os.Stderr, "unknown export format %q\n", args[0])
		os.Exit(2)
	}

	fs := flag.NewFlagSet("export csv", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	csvPath := fs.String("csv", "", "CSV log path override")
	out := fs.String("out", "", "output file")
	_ = fs.Parse(args[1:])

	if *out == "" {
		fatal(errors.New("--out is required"))
	}

	cfg, err := loadConfig(*configPath, *csvPath)
	if err != nil {
		fatal(err)
	}

	if err := copyFile(cfg.CSVPath, *out); err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stdout, "exported %s\n", *out)
}

func handleDoctor(args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath, "")
	if err != nil {
		fatal(err)
	}

	runner := execx.NewOSRunner()
	if path, err := runner.LookPath(cfg.Command[0]); err == nil {
		fmt.Fprintf(os.Stdout, "measurement command: %s (%s)\n", strings.Join(cfg.Command, " "), path)
	} else {
		fmt.Fprintf(os.Stdout, "measurement command: %s (not found: %v)\n", strings.Join(cfg.Command, " "), err)
	}

	fmt.Fprintf(os.Stdout, "ip_echo_url=%s timeout=%s\n", cfg.IPEchoURL, cfg.IPTimeout())
	fmt.Fprintf(os.Stdout, "stun_servers=%s\n", strings.Join(cfg.STUNServers, ","))

	if _, err := os.Stat(cfg.CSVPath); err == nil {
		fmt.Fprintf(os.Stdout, "csv_path=%s (exists)\n", cfg.CSVPath)
	} else {
		fmt.Fprintf(os.Stdout, "csv_path=%s (will be created on first run)\n", cfg.CSVPath)
	}
}

func loadConfig(path, csvOverride string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if csvOverride != "" {
		cfg.CSVPath = csvOverride
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func fatal(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
