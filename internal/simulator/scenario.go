package simulator

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/fileutil"
	"github.com/lox/camelup/internal/statistics"
)

// duration lets TOML carry values like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Scenario is a reusable simulation setup loaded from a TOML file, so
// strategy comparisons can be re-run with identical parameters.
type Scenario struct {
	Games      int      `toml:"games"`
	Strategies []string `toml:"strategies"`
	Seed       int64    `toml:"seed"`
	Deadline   duration `toml:"deadline"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("simulator: parsing scenario %s: %w", path, err)
	}
	return &s, nil
}

// Config turns the scenario into a runnable simulator Config.
func (s *Scenario) Config(logger *log.Logger) Config {
	return Config{
		Games:      s.Games,
		Strategies: s.Strategies,
		Seed:       s.Seed,
		Deadline:   s.Deadline.Duration,
		Logger:     logger,
	}
}

// Report is the file form of a finished run, mirroring what Summary
// prints.
type Report struct {
	Strategies []string `toml:"strategies"`
	Seed       int64    `toml:"seed"`
	Games      int      `toml:"games"`
	Elapsed    string   `toml:"elapsed"`

	MeanCoins  float64 `toml:"mean_coins"`
	StdDev     float64 `toml:"std_dev"`
	CILow      float64 `toml:"ci_low"`
	CIHigh     float64 `toml:"ci_high"`
	Median     float64 `toml:"median"`
	WinRate    float64 `toml:"win_rate"`
	BetHitRate float64 `toml:"bet_hit_rate"`
	MeanLegs   float64 `toml:"mean_legs"`
	MaxLegs    int     `toml:"max_legs"`

	Winners map[string]int `toml:"winners"`
}

// NewReport snapshots a run's statistics for writing to disk.
func NewReport(stats *statistics.Statistics, strategies []string, seed int64, elapsed time.Duration) Report {
	low, high := stats.ConfidenceInterval95()
	return Report{
		Strategies: strategies,
		Seed:       seed,
		Games:      stats.Games,
		Elapsed:    elapsed.Round(time.Millisecond).String(),
		MeanCoins:  stats.Mean(),
		StdDev:     stats.StdDev(),
		CILow:      low,
		CIHigh:     high,
		Median:     stats.Median(),
		WinRate:    stats.WinRate(),
		BetHitRate: stats.BetHitRate(),
		MeanLegs:   stats.MeanLegs(),
		MaxLegs:    stats.MaxLegs,
		Winners:    stats.WinnerCounts,
	}
}

// Write encodes the report as TOML and writes it atomically, so a
// watcher never reads a half-written report.
func (r Report) Write(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		return fmt.Errorf("simulator: encoding report: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
