// Package main generates the Grafana dashboard and Prometheus rule files
// for the chitai-qa monitor.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/dashboards"
	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/rules"
	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// Artifact paths relative to the output directory.
var (
	dashboardPath = filepath.Join("grafana", "data", dashboards.OverviewUID+".json")
	recordingPath = filepath.Join("prometheus", "chitai-qa-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "chitai-qa-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifacts renders every enabled artifact keyed by relative path.
func artifacts(cfg Config) (map[string][]byte, error) {
	out := make(map[string][]byte)

	if cfg.DashboardEnabled {
		data, err := renderDashboard()
		if err != nil {
			return nil, err
		}
		out[dashboardPath] = data
	}

	if cfg.RulesEnabled {
		recording, err := renderRules(rules.RecordingRules())
		if err != nil {
			return nil, err
		}
		alerts, err := renderRules(rules.AlertRules())
		if err != nil {
			return nil, err
		}
		out[recordingPath] = recording
		out[alertsPath] = alerts
	}

	return out, nil
}

func renderDashboard() ([]byte, error) {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}
	data, err := json.MarshalIndent(dash, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding dashboard: %w", err)
	}
	return append(data, '\n'), nil
}

func renderRules(cr rules.PrometheusRule) ([]byte, error) {
	data, err := yaml.Marshal(cr)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", cr.Metadata.Name, err)
	}
	return append([]byte(generatedHeader), data...), nil
}

// check validates the rendered dashboard and both rule sets.
func check(files map[string][]byte) validate.Result {
	var res validate.Result

	if data, ok := files[dashboardPath]; ok {
		r := validate.DashboardJSON(data, KnownMetrics)
		res.Errors = append(res.Errors, r.Errors...)
		res.Warnings = append(res.Warnings, r.Warnings...)
	}
	if _, ok := files[alertsPath]; ok {
		groups := append(rules.RecordingRules().Spec.Groups, rules.AlertRules().Spec.Groups...)
		r := validate.Rules(groups, KnownMetrics)
		res.Errors = append(res.Errors, r.Errors...)
		res.Warnings = append(res.Warnings, r.Warnings...)
	}

	return res
}

func run(cfg Config, validateOnly bool) error {
	files, err := artifacts(cfg)
	if err != nil {
		return err
	}

	res := check(files)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !res.Ok() {
		return errors.New("validation failed:\n  " + strings.Join(res.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for rel, data := range files {
		path := filepath.Join(cfg.OutputDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}

	return nil
}
